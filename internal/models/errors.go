package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"github.com/iancoleman/strcase"
)

type (
	MapErrs     map[error]ErrorDetail
	ErrorDetail struct {
		Code         string `json:"code,omitempty"`
		HTTPStatus   int    `json:"-"`
		ErrorMessage error  `json:"message,omitempty"`
	}
)

func (e ErrorDetail) Error() string {
	return fmt.Sprintf("code: %s, message: %v", e.Code, e.ErrorMessage)
}

func (e ErrorDetail) Unwrap() error {
	return e.ErrorMessage
}

// ReasonCode turns a sentinel error message into an upper snake reason code,
// e.g. "policy violation" -> "POLICY_VIOLATION".
func ReasonCode(err error) string {
	return strcase.ToScreamingSnake(strings.TrimSpace(err.Error()))
}

func newErrorDetail(err error, status int) ErrorDetail {
	return ErrorDetail{Code: ReasonCode(err), HTTPStatus: status, ErrorMessage: err}
}

// MapErrors lists every error that is surfaced to the intent originator with
// a stable reason code.
var MapErrors = MapErrs{
	common.ErrPolicyViolation:           newErrorDetail(common.ErrPolicyViolation, http.StatusUnprocessableEntity),
	common.ErrUnverifiedRecipient:       newErrorDetail(common.ErrUnverifiedRecipient, http.StatusUnprocessableEntity),
	common.ErrDuplicateIntent:           newErrorDetail(common.ErrDuplicateIntent, http.StatusOK),
	common.ErrTransientClearingFailure:  newErrorDetail(common.ErrTransientClearingFailure, http.StatusServiceUnavailable),
	common.ErrTerminalClearingRejection: newErrorDetail(common.ErrTerminalClearingRejection, http.StatusConflict),
	common.ErrObservationImbalance:      newErrorDetail(common.ErrObservationImbalance, http.StatusInternalServerError),
	common.ErrHonoringFailure:           newErrorDetail(common.ErrHonoringFailure, http.StatusBadGateway),
	common.ErrAttestationExpired:        newErrorDetail(common.ErrAttestationExpired, http.StatusGone),
	common.ErrAttestationConsumed:       newErrorDetail(common.ErrAttestationConsumed, http.StatusConflict),
	common.ErrAttestationMismatch:       newErrorDetail(common.ErrAttestationMismatch, http.StatusUnprocessableEntity),
	common.ErrAttestationDenied:         newErrorDetail(common.ErrAttestationDenied, http.StatusUnprocessableEntity),
	common.ErrCrossLedgerTransfer:       newErrorDetail(common.ErrCrossLedgerTransfer, http.StatusUnprocessableEntity),
	common.ErrUnknownLedger:             newErrorDetail(common.ErrUnknownLedger, http.StatusUnprocessableEntity),
	common.ErrUnknownAccount:            newErrorDetail(common.ErrUnknownAccount, http.StatusUnprocessableEntity),
	common.ErrInvalidTransition:         newErrorDetail(common.ErrInvalidTransition, http.StatusConflict),
	common.ErrBindingLimitReached:       newErrorDetail(common.ErrBindingLimitReached, http.StatusConflict),
	common.ErrBindingNotPending:         newErrorDetail(common.ErrBindingNotPending, http.StatusConflict),
	common.ErrVerificationMethod:        newErrorDetail(common.ErrVerificationMethod, http.StatusBadRequest),
	common.ErrMicroDepositMismatch:      newErrorDetail(common.ErrMicroDepositMismatch, http.StatusUnprocessableEntity),
	common.ErrMicroDepositWindow:        newErrorDetail(common.ErrMicroDepositWindow, http.StatusGone),
	common.ErrConcurrentUpdate:          newErrorDetail(common.ErrConcurrentUpdate, http.StatusConflict),
	common.ErrDataNotFound:              newErrorDetail(common.ErrDataNotFound, http.StatusNotFound),
	common.ErrUnknownHonoringRail:       newErrorDetail(common.ErrUnknownHonoringRail, http.StatusUnprocessableEntity),
	common.ErrInvalidAmount:             newErrorDetail(common.ErrInvalidAmount, http.StatusUnprocessableEntity),
	common.ErrValidation:                newErrorDetail(common.ErrValidation, http.StatusBadRequest),
	common.ErrInvalidFormatDate:         newErrorDetail(common.ErrInvalidFormatDate, http.StatusBadRequest),
	common.ErrDataExist:                 newErrorDetail(common.ErrDataExist, http.StatusConflict),
	common.ErrTransferNotFinalized:      newErrorDetail(common.ErrTransferNotFinalized, http.StatusConflict),
	common.ErrRuleSetNotLoaded:          newErrorDetail(common.ErrRuleSetNotLoaded, http.StatusServiceUnavailable),
	common.ErrMissingIdempotencyKey:     newErrorDetail(common.ErrMissingIdempotencyKey, http.StatusBadRequest),
	common.ErrInvalidFingerprint:        newErrorDetail(common.ErrInvalidFingerprint, http.StatusUnprocessableEntity),
	common.ErrRequestBeingProcessed:     newErrorDetail(common.ErrRequestBeingProcessed, http.StatusConflict),
}

// GetErrMap returns the first mapped sentinel found in err's chain. Unmapped
// errors yield INTERNAL_SERVER_ERROR with status 500.
func GetErrMap(err error) ErrorDetail {
	var detail ErrorDetail
	if errors.As(err, &detail) && detail.Code != "" {
		return detail
	}

	for sentinel, v := range MapErrors {
		if errors.Is(err, sentinel) {
			v.ErrorMessage = err
			return v
		}
	}

	return ErrorDetail{
		Code:         ReasonCode(common.ErrInternalServerError),
		HTTPStatus:   http.StatusInternalServerError,
		ErrorMessage: err,
	}
}
