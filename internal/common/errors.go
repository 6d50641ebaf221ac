package common

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrNoRowsAffected      = errors.New("no rows affected")
	ErrValidation          = errors.New("validation failed")
	ErrDataNotFound        = errors.New("data not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrInvalidFormatDate   = errors.New("invalid format date")
	ErrDataExist           = errors.New("data exist")
	ErrUnableToCreate      = errors.New("unable to create data")
	ErrUnableToUpdate      = errors.New("unable to update data")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")

	ErrInsufficientAvailableBalance = errors.New("insufficient available balance")
	ErrInsufficientPendingBalance   = errors.New("insufficient pending balance")
	ErrNoRows                       = sql.ErrNoRows

	ErrInvalidFingerprint    = errors.New("idempotency key cannot be reused for different requests payload")
	ErrRequestBeingProcessed = errors.New("request with same idempotency key is being processed")
	ErrMissingIdempotencyKey = errors.New("missing idempotency key. this operation requires idempotency key")

	ErrPolicyViolation           = errors.New("policy violation")
	ErrUnverifiedRecipient       = errors.New("unverified recipient")
	ErrDuplicateIntent           = errors.New("duplicate intent")
	ErrTransientClearingFailure  = errors.New("transient clearing failure")
	ErrTerminalClearingRejection = errors.New("terminal clearing rejection")
	ErrObservationImbalance      = errors.New("observation imbalance")
	ErrHonoringFailure           = errors.New("honoring failure")

	ErrAttestationExpired  = errors.New("attestation expired")
	ErrAttestationConsumed = errors.New("attestation already consumed")
	ErrAttestationMismatch = errors.New("attestation does not match intent")
	ErrAttestationDenied   = errors.New("attestation denied")

	ErrCrossLedgerTransfer  = errors.New("transfer accounts belong to different ledgers")
	ErrUnknownLedger        = errors.New("unknown ledger")
	ErrUnknownAccount       = errors.New("unknown account")
	ErrInvalidTransition    = errors.New("invalid state transition")
	ErrTransferNotFinalized = errors.New("transfer is not finalized")

	ErrBindingLimitReached    = errors.New("recipient binding limit reached")
	ErrBindingNotPending      = errors.New("binding is not awaiting verification")
	ErrVerificationMethod     = errors.New("unsupported verification method")
	ErrMicroDepositMismatch   = errors.New("micro deposit amounts do not match")
	ErrMicroDepositWindow     = errors.New("micro deposit window elapsed")
	ErrConcurrentUpdate       = errors.New("concurrent update detected, retry later")
	ErrUnknownHonoringRail    = errors.New("unknown honoring rail")
	ErrUnableGetTransformer   = errors.New("unable to get transformer")
	ErrRuleSetNotLoaded       = errors.New("rule set is not loaded")
	ErrEngineUnexpectedResult = errors.New("unexpected clearing engine result")
)

type WrapError struct {
	Causer interface{}
	Err    error
}

func (e WrapError) Error() string {
	return fmt.Sprintf("%v, root cause: %v", e.Causer, e.Err)
}

func (e WrapError) Unwrap() error {
	return e.Err
}
