package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HonoringSpec asks for an external execution of a cleared obligation.
type HonoringSpec struct {
	Rail        string                     `json:"rail"`
	Destination *ExternalAccountDescriptor `json:"destination,omitempty"`
	Metadata    map[string]string          `json:"metadata,omitempty"`
}

type HonoringStatus string

const (
	HonoringStatusSuccess  HonoringStatus = "SUCCESS"
	HonoringStatusFailed   HonoringStatus = "FAILED"
	HonoringStatusRetrying HonoringStatus = "RETRYING"
)

// HonoringOutcome is recorded per transfer and rail. It never affects the
// clearing state of the transfer.
type HonoringOutcome struct {
	TransferID       string          `json:"transferId"`
	IntentID         string          `json:"intentId"`
	Rail             string          `json:"rail"`
	IdempotencyKey   string          `json:"idempotencyKey"`
	Status           HonoringStatus  `json:"status"`
	Attempts         int             `json:"attempts"`
	Amount           decimal.Decimal `json:"amount"`
	Ledger           string          `json:"ledger"`
	AdapterReference string          `json:"adapterReference,omitempty"`
	LastError        string          `json:"lastError,omitempty"`
	Spec             HonoringSpec    `json:"spec"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// HonoringIdempotencyKey is stable per transfer so every adapter attempt
// collapses to one execution.
func HonoringIdempotencyKey(transferID string) string {
	return "honor-" + transferID
}

// CorrectiveIntentRequest is published after a terminal honoring failure so
// that a new, independently attested intent can be raised.
type CorrectiveIntentRequest struct {
	TransferID string          `json:"transferId"`
	IntentID   string          `json:"intentId"`
	Rail       string          `json:"rail"`
	Ledger     string          `json:"ledger"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	RaisedAt   time.Time       `json:"raisedAt"`
}
