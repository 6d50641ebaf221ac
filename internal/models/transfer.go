package models

import (
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// TransferNamespace seeds deterministic transfer ids. Changing it would
// break idempotency for every in-flight intent.
var TransferNamespace = uuid.MustParse("7c1f6a2e-52a4-4f0b-9a57-2b8e3c1d9f40")

// DeterministicTransferID derives the transfer id from an intent idempotency
// key so that retried submissions collapse into one transfer.
func DeterministicTransferID(idempotencyKey string) string {
	return uuid.NewSHA1(TransferNamespace, []byte(idempotencyKey)).String()
}

type TransferState string

const (
	TransferStateNone    TransferState = ""
	TransferStatePending TransferState = "PENDING"
	TransferStatePosted  TransferState = "POSTED"
	TransferStateVoided  TransferState = "VOIDED"
)

var transferTransitions = map[TransferState][]TransferState{
	TransferStateNone:    {TransferStatePending, TransferStatePosted},
	TransferStatePending: {TransferStatePosted, TransferStateVoided},
}

func (s TransferState) CanTransitionTo(next TransferState) bool {
	return slices.Contains(transferTransitions[s], next)
}

func (s TransferState) IsFinal() bool {
	return s == TransferStatePosted || s == TransferStateVoided
}

// Transfer is the atomic double-entry movement submitted to the engine.
type Transfer struct {
	ID              string          `json:"id"`
	LedgerID        uint32          `json:"ledgerId"`
	DebitAccountID  string          `json:"debitAccountId"`
	CreditAccountID string          `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Pending         bool            `json:"pending"`
	Code            uint16          `json:"code"`
}

// Validate checks the shape of the transfer against the known accounts.
// Cross-ledger legs never reach the engine.
func (t Transfer) Validate(ledgers Ledgers) error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}
	if t.DebitAccountID == t.CreditAccountID {
		return fmt.Errorf("%w: debit and credit account are the same", common.ErrUnknownAccount)
	}

	debit, ok := ledgers.Account(t.DebitAccountID)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownAccount, t.DebitAccountID)
	}
	credit, ok := ledgers.Account(t.CreditAccountID)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownAccount, t.CreditAccountID)
	}

	if debit.LedgerID != t.LedgerID || credit.LedgerID != t.LedgerID {
		return fmt.Errorf("%w: ledger %d, debit on %d, credit on %d",
			common.ErrCrossLedgerTransfer, t.LedgerID, debit.LedgerID, credit.LedgerID)
	}

	if debit.Closed || credit.Closed {
		return fmt.Errorf("%w: account closed", common.ErrUnknownAccount)
	}

	return nil
}

// TransferRecord is the local view of a submitted transfer. The engine stays
// authoritative; this row only remembers which state we were told about.
type TransferRecord struct {
	TransferID      string          `json:"transferId"`
	IntentID        string          `json:"intentId"`
	AttestationID   string          `json:"attestationId"`
	Kind            IntentKind      `json:"kind"`
	LedgerID        uint32          `json:"ledgerId"`
	LedgerCode      string          `json:"ledgerCode"`
	DebitAccountID  string          `json:"debitAccountId"`
	CreditAccountID string          `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Code            uint16          `json:"code"`
	State           TransferState   `json:"state"`
	Honoring        *HonoringSpec   `json:"honoring,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	FinalizedAt     *time.Time      `json:"finalizedAt,omitempty"`
}

func (r TransferRecord) ToTransfer() Transfer {
	return Transfer{
		ID:              r.TransferID,
		LedgerID:        r.LedgerID,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Amount:          r.Amount,
		Pending:         r.State == TransferStatePending,
		Code:            r.Code,
	}
}

func (r TransferRecord) ToClearingResult() ClearingResult {
	return ClearingResult{
		TransferID:  r.TransferID,
		IntentID:    r.IntentID,
		State:       r.State,
		FinalizedAt: r.FinalizedAt,
	}
}

func (r TransferRecord) ToClearingEvent() ClearingEvent {
	return ClearingEvent{
		TransferID:      r.TransferID,
		IntentID:        r.IntentID,
		Kind:            r.Kind,
		LedgerID:        r.LedgerID,
		LedgerCode:      r.LedgerCode,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Amount:          r.Amount,
		FinalizedAt:     *r.FinalizedAt,
		Honoring:        r.Honoring,
	}
}

// ClearingResult is returned by clear/confirm/cancel. FinalizedAt is set only
// once the engine acknowledged a posted transfer.
type ClearingResult struct {
	TransferID  string        `json:"transferId"`
	IntentID    string        `json:"intentId"`
	State       TransferState `json:"state"`
	FinalizedAt *time.Time    `json:"finalizedAt,omitempty"`
}

func (r ClearingResult) IsFinalized() bool {
	return r.State == TransferStatePosted && r.FinalizedAt != nil
}

// ClearingFailure carries an engine rejection or an exhausted transient
// failure back to the intent originator.
type ClearingFailure struct {
	TransferID string `json:"transferId"`
	Reason     string `json:"reason"`
	Err        error  `json:"-"`
}

func (f *ClearingFailure) Error() string {
	return fmt.Sprintf("clearing failed for transfer %s: %s: %v", f.TransferID, f.Reason, f.Err)
}

func (f *ClearingFailure) Unwrap() error {
	return f.Err
}

// ClearingEvent is emitted exactly once per posted transfer.
type ClearingEvent struct {
	TransferID      string            `json:"transferId"`
	IntentID        string            `json:"intentId"`
	Kind            IntentKind        `json:"kind"`
	LedgerID        uint32            `json:"ledgerId"`
	LedgerCode      string            `json:"ledgerCode"`
	DebitAccountID  string            `json:"debitAccountId"`
	CreditAccountID string            `json:"creditAccountId"`
	Amount          decimal.Decimal   `json:"amount"`
	FinalizedAt     time.Time         `json:"finalizedAt"`
	Honoring        *HonoringSpec     `json:"honoring,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

func (e ClearingEvent) ToClearingResult() ClearingResult {
	finalizedAt := e.FinalizedAt
	return ClearingResult{
		TransferID:  e.TransferID,
		IntentID:    e.IntentID,
		State:       TransferStatePosted,
		FinalizedAt: &finalizedAt,
	}
}

type TransferDisplayStatus string

const (
	TransferDisplayPending         TransferDisplayStatus = "PENDING"
	TransferDisplayVoided          TransferDisplayStatus = "VOIDED"
	TransferDisplayCleared         TransferDisplayStatus = "CLEARED"
	TransferDisplayHonoringPending TransferDisplayStatus = "CLEARED_HONORING_PENDING"
	TransferDisplayHonoringFailed  TransferDisplayStatus = "CLEARED_HONORING_FAILED"
	TransferDisplayHonored         TransferDisplayStatus = "CLEARED_HONORED"
)

// TransferStatusView never reports a cleared transfer as failed, whatever
// happened to honoring.
type TransferStatusView struct {
	Transfer TransferRecord        `json:"transfer"`
	Honoring []HonoringOutcome     `json:"honoring"`
	Status   TransferDisplayStatus `json:"status"`
}

func NewTransferStatusView(record TransferRecord, outcomes []HonoringOutcome) TransferStatusView {
	view := TransferStatusView{Transfer: record, Honoring: outcomes}

	switch record.State {
	case TransferStatePending:
		view.Status = TransferDisplayPending
		return view
	case TransferStateVoided:
		view.Status = TransferDisplayVoided
		return view
	}

	view.Status = TransferDisplayCleared
	if record.Honoring == nil {
		return view
	}
	if len(outcomes) == 0 {
		view.Status = TransferDisplayHonoringPending
		return view
	}

	switch outcomes[len(outcomes)-1].Status {
	case HonoringStatusSuccess:
		view.Status = TransferDisplayHonored
	case HonoringStatusFailed:
		view.Status = TransferDisplayHonoringFailed
	default:
		view.Status = TransferDisplayHonoringPending
	}
	return view
}
