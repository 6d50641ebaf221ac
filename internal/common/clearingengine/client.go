package clearingengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/models"
)

// Client is the contract of the external double-entry clearing engine. The
// engine is authoritative for balances and transfer state.
type Client interface {
	// CreateTransfer submits a pending or immediate transfer. Resubmitting the
	// same id with the same fields yields ResultAlreadyExists.
	CreateTransfer(ctx context.Context, transfer models.Transfer) (Outcome, error)

	// PostPending finalizes a pending transfer.
	PostPending(ctx context.Context, transferID string) (Outcome, error)

	// VoidPending releases a pending transfer.
	VoidPending(ctx context.Context, transferID string) (Outcome, error)

	LookupTransfer(ctx context.Context, transferID string) (EngineTransfer, error)

	GetAccountBalance(ctx context.Context, accountID string) (models.AccountBalance, error)
}

type Result string

const (
	ResultCreated       Result = "created"
	ResultAlreadyExists Result = "already_exists"
	ResultPosted        Result = "posted"
	ResultAlreadyPosted Result = "already_posted"
	ResultVoided        Result = "voided"
	ResultAlreadyVoided Result = "already_voided"
)

// IsReplay reports results that describe an effect applied by an earlier
// call with the same id.
func (r Result) IsReplay() bool {
	return r == ResultAlreadyExists || r == ResultAlreadyPosted || r == ResultAlreadyVoided
}

// Outcome is the engine acknowledgement of one write.
type Outcome struct {
	Result    Result               `json:"result"`
	State     models.TransferState `json:"state"`
	Timestamp time.Time            `json:"timestamp"`
}

// EngineTransfer is the engine's record of a transfer.
type EngineTransfer struct {
	models.Transfer
	State     models.TransferState `json:"state"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type RejectReason string

const (
	RejectExceedsCredits          RejectReason = "exceeds_credits"
	RejectAccountNotFound         RejectReason = "account_not_found"
	RejectAccountClosed           RejectReason = "account_closed"
	RejectLedgerMismatch          RejectReason = "ledger_mismatch"
	RejectAccountsMustDiffer      RejectReason = "accounts_must_be_different"
	RejectAmountMustBePositive    RejectReason = "amount_must_be_positive"
	RejectExistsWithDifferentData RejectReason = "exists_with_different_fields"
	RejectTransferNotFound        RejectReason = "pending_transfer_not_found"
	RejectTransferNotPending      RejectReason = "pending_transfer_not_pending"
	RejectAlreadyVoided           RejectReason = "pending_transfer_already_voided"
	RejectAlreadyPosted           RejectReason = "pending_transfer_already_posted"
)

var (
	// ErrRejected marks terminal engine rejections. It is never retried.
	ErrRejected = errors.New("clearing engine rejected request")
	// ErrUnavailable marks transport failures and 5xx answers. The same call
	// may be retried with the same transfer id.
	ErrUnavailable = errors.New("clearing engine unavailable")
	// ErrTransferNotFound is returned by LookupTransfer.
	ErrTransferNotFound = errors.New("transfer not found in clearing engine")
	ErrAccountNotFound  = errors.New("account not found in clearing engine")
)

type RejectionError struct {
	Reason RejectReason
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrRejected, e.Reason, e.Detail)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

func reject(reason RejectReason, format string, args ...any) error {
	return &RejectionError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// RejectReasonOf returns the rejection reason carried by err, if any.
func RejectReasonOf(err error) (RejectReason, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
