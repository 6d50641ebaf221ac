package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type IntentKind string

const (
	IntentKindCharge           IntentKind = "charge"
	IntentKindPayout           IntentKind = "payout"
	IntentKindPayroll          IntentKind = "payroll"
	IntentKindTransfer         IntentKind = "transfer"
	IntentKindBridgeWithdrawal IntentKind = "bridge_withdrawal"
)

var IntentKinds = []IntentKind{
	IntentKindCharge,
	IntentKindPayout,
	IntentKindPayroll,
	IntentKindTransfer,
	IntentKindBridgeWithdrawal,
}

func (k IntentKind) IsValid() bool {
	for _, known := range IntentKinds {
		if k == known {
			return true
		}
	}
	return false
}

// PartyDescriptor identifies one side of an intent. Exactly one of AccountID
// (internal account) or RecipientID (external party, resolved through its
// bindings) is expected.
type PartyDescriptor struct {
	AccountID   string `json:"accountId,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`
	BindingID   string `json:"bindingId,omitempty"`
	// Alias refers to a chart-of-accounts account such as "revenue".
	Alias string `json:"alias,omitempty"`
}

func (p PartyDescriptor) IsExternal() bool {
	return p.RecipientID != ""
}

// Intent is a domain request that has not become a transfer yet.
type Intent struct {
	ID                   string            `json:"id"`
	Kind                 IntentKind        `json:"kind"`
	Amount               decimal.Decimal   `json:"amount"`
	Ledger               string            `json:"ledger"`
	Source               PartyDescriptor   `json:"source"`
	Destination          PartyDescriptor   `json:"destination"`
	IdempotencyKey       string            `json:"idempotencyKey"`
	RequiresConfirmation bool              `json:"requiresConfirmation"`
	Honoring             *HonoringSpec     `json:"honoring,omitempty"`
	Metadata             map[string]string `json:"metadata,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
}

// ExternalParties returns the parties that reference an external recipient.
func (i Intent) ExternalParties() []PartyDescriptor {
	var res []PartyDescriptor
	for _, p := range []PartyDescriptor{i.Source, i.Destination} {
		if p.IsExternal() {
			res = append(res, p)
		}
	}
	return res
}

// Fingerprint identifies the intent content an attestation was issued for.
// Metadata and honoring instructions are excluded: they do not move funds.
// RequiresConfirmation is included, it picks the pending or immediate flow.
func (i Intent) Fingerprint() string {
	parts := []string{
		i.ID,
		string(i.Kind),
		i.Amount.String(),
		i.Ledger,
		i.Source.AccountID, i.Source.RecipientID, i.Source.BindingID, i.Source.Alias,
		i.Destination.AccountID, i.Destination.RecipientID, i.Destination.BindingID, i.Destination.Alias,
		i.IdempotencyKey,
		strconv.FormatBool(i.RequiresConfirmation),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

type IntentStatus string

const (
	IntentStatusAccepted IntentStatus = "ACCEPTED"
	IntentStatusRejected IntentStatus = "REJECTED"
	IntentStatusPending  IntentStatus = "PENDING"
	IntentStatusCleared  IntentStatus = "CLEARED"
	IntentStatusVoided   IntentStatus = "VOIDED"
	IntentStatusFailed   IntentStatus = "FAILED"
)

// IntentRecord is the audit row kept once an intent was consumed. It also
// stores the outcome returned to duplicate submissions.
type IntentRecord struct {
	ID             string          `json:"id"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Kind           IntentKind      `json:"kind"`
	Ledger         string          `json:"ledger"`
	Amount         decimal.Decimal `json:"amount"`
	Status         IntentStatus    `json:"status"`
	ReasonCode     string          `json:"reasonCode,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	TransferID     string          `json:"transferId,omitempty"`
	AttestationID  string          `json:"attestationId,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type (
	SubmitIntentRequest struct {
		Kind                 string            `json:"kind" validate:"required,intent_kind"`
		Amount               string            `json:"amount" validate:"required,positive_amount"`
		Ledger               string            `json:"ledger" validate:"required,ledger_code"`
		Source               PartyRequest      `json:"source" validate:"required"`
		Destination          PartyRequest      `json:"destination" validate:"required"`
		IdempotencyKey       string            `json:"idempotencyKey" validate:"required,max=128"`
		RequiresConfirmation bool              `json:"requiresConfirmation"`
		Honoring             *HonoringRequest  `json:"honoring,omitempty"`
		Metadata             map[string]string `json:"metadata,omitempty"`
	}

	PartyRequest struct {
		AccountID   string `json:"accountId,omitempty" validate:"required_without_all=RecipientID Alias"`
		RecipientID string `json:"recipientId,omitempty"`
		BindingID   string `json:"bindingId,omitempty"`
		Alias       string `json:"alias,omitempty"`
	}

	HonoringRequest struct {
		Rail     string            `json:"rail" validate:"required"`
		Metadata map[string]string `json:"metadata,omitempty"`
	}

	IntentAccepted struct {
		Kind        string       `json:"kind" example:"intent"`
		IntentID    string       `json:"intentId"`
		TransferID  string       `json:"transferId"`
		Status      IntentStatus `json:"status"`
		Duplicate   bool         `json:"duplicate"`
		FinalizedAt *time.Time   `json:"finalizedAt,omitempty"`
	}

	IntentRejected struct {
		Kind       string `json:"kind" example:"intent"`
		IntentID   string `json:"intentId,omitempty"`
		ReasonCode string `json:"reasonCode"`
		Reason     string `json:"reason"`
	}
)

func (p PartyRequest) ToDescriptor() PartyDescriptor {
	return PartyDescriptor(p)
}

// ToIntent converts the request; Amount must already be validated.
func (r SubmitIntentRequest) ToIntent(id string, now time.Time) Intent {
	amount, _ := decimal.NewFromString(r.Amount)

	var honoring *HonoringSpec
	if r.Honoring != nil {
		honoring = &HonoringSpec{Rail: r.Honoring.Rail, Metadata: r.Honoring.Metadata}
	}

	return Intent{
		ID:                   id,
		Kind:                 IntentKind(r.Kind),
		Amount:               amount,
		Ledger:               r.Ledger,
		Source:               r.Source.ToDescriptor(),
		Destination:          r.Destination.ToDescriptor(),
		IdempotencyKey:       r.IdempotencyKey,
		RequiresConfirmation: r.RequiresConfirmation,
		Honoring:             honoring,
		Metadata:             r.Metadata,
		CreatedAt:            now,
	}
}

func (r IntentRecord) ToAccepted(duplicate bool) IntentAccepted {
	return IntentAccepted{
		Kind:       "intent",
		IntentID:   r.ID,
		TransferID: r.TransferID,
		Status:     r.Status,
		Duplicate:  duplicate,
	}
}
