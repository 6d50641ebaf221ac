package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type ExternalAccountType string

const (
	ExternalAccountBank   ExternalAccountType = "bank_account"
	ExternalAccountCard   ExternalAccountType = "card"
	ExternalAccountWallet ExternalAccountType = "wallet"
)

// ExternalAccountDescriptor describes an account outside the ledger.
type ExternalAccountDescriptor struct {
	Type          ExternalAccountType `json:"type" validate:"required,oneof=bank_account card wallet"`
	HolderName    string              `json:"holderName,omitempty"`
	RoutingNumber string              `json:"routingNumber,omitempty" validate:"required_if=Type bank_account"`
	AccountNumber string              `json:"accountNumber,omitempty" validate:"required_if=Type bank_account"`
	CardToken     string              `json:"cardToken,omitempty" validate:"required_if=Type card"`
	WalletAddress string              `json:"walletAddress,omitempty" validate:"required_if=Type wallet"`
	Network       string              `json:"network,omitempty"`
	Country       string              `json:"country,omitempty"`
}

// IdentityFields returns the fields checked against the sanctions denylist.
func (d ExternalAccountDescriptor) IdentityFields() map[string]string {
	fields := map[string]string{
		"holder_name":    d.HolderName,
		"routing_number": d.RoutingNumber,
		"account_number": d.AccountNumber,
		"card_token":     d.CardToken,
		"wallet_address": d.WalletAddress,
		"country":        d.Country,
	}
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

func (d ExternalAccountDescriptor) Fingerprint() string {
	parts := []string{
		string(d.Type),
		strings.TrimSpace(d.RoutingNumber),
		strings.TrimSpace(d.AccountNumber),
		strings.TrimSpace(d.CardToken),
		strings.ToLower(strings.TrimSpace(d.WalletAddress)),
		strings.ToLower(strings.TrimSpace(d.Network)),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Masked hides all but the last four characters of the account identifier.
func (d ExternalAccountDescriptor) Masked() string {
	id := d.AccountNumber
	switch d.Type {
	case ExternalAccountCard:
		id = d.CardToken
	case ExternalAccountWallet:
		id = d.WalletAddress
	}
	if len(id) <= 4 {
		return id
	}
	return strings.Repeat("*", len(id)-4) + id[len(id)-4:]
}

type VerificationMethod string

const (
	VerificationInstant      VerificationMethod = "INSTANT"
	VerificationMicroDeposit VerificationMethod = "MICRO_DEPOSIT"
	VerificationManual       VerificationMethod = "MANUAL"
)

type BindingStatus string

const (
	BindingStatusUnverified          BindingStatus = "UNVERIFIED"
	BindingStatusPendingVerification BindingStatus = "PENDING_VERIFICATION"
	BindingStatusPendingReview       BindingStatus = "PENDING_REVIEW"
	BindingStatusVerified            BindingStatus = "VERIFIED"
	BindingStatusFailed              BindingStatus = "FAILED"
)

var bindingTransitions = map[BindingStatus][]BindingStatus{
	BindingStatusUnverified:          {BindingStatusPendingVerification, BindingStatusPendingReview, BindingStatusVerified, BindingStatusFailed},
	BindingStatusPendingVerification: {BindingStatusVerified, BindingStatusFailed},
	BindingStatusPendingReview:       {BindingStatusVerified, BindingStatusFailed},
}

func (s BindingStatus) CanTransitionTo(next BindingStatus) bool {
	return slices.Contains(bindingTransitions[s], next)
}

func (s BindingStatus) IsTerminal() bool {
	return s == BindingStatusVerified || s == BindingStatusFailed
}

// RecipientAccountBinding maps an external account to an internal account.
type RecipientAccountBinding struct {
	ID                    string                    `json:"id"`
	RecipientID           string                    `json:"recipientId"`
	AccountID             string                    `json:"accountId"`
	Ledger                string                    `json:"ledger"`
	Descriptor            ExternalAccountDescriptor `json:"descriptor"`
	DescriptorFingerprint string                    `json:"-"`
	Status                BindingStatus             `json:"status"`
	Method                VerificationMethod        `json:"method,omitempty"`
	IsDefault             bool                      `json:"isDefault"`
	MicroDepositAmounts   []decimal.Decimal         `json:"-"`
	MicroDepositAttempts  int                       `json:"microDepositAttempts"`
	MicroDepositExpiresAt *time.Time                `json:"microDepositExpiresAt,omitempty"`
	VerifiedAt            *time.Time                `json:"verifiedAt,omitempty"`
	FailureReason         string                    `json:"failureReason,omitempty"`
	Reviewer              string                    `json:"reviewer,omitempty"`
	CreatedAt             time.Time                 `json:"createdAt"`
	UpdatedAt             time.Time                 `json:"updatedAt"`
}

// VerificationEvidence is what the recipient or the provider supplies.
type VerificationEvidence struct {
	Amounts   []decimal.Decimal `json:"amounts,omitempty"`
	Reference string            `json:"reference,omitempty"`
}

// MatchMicroDeposits compares confirmed amounts with the deposited ones
// exactly, in any order.
func (b RecipientAccountBinding) MatchMicroDeposits(amounts []decimal.Decimal) bool {
	if len(amounts) != len(b.MicroDepositAmounts) || len(amounts) == 0 {
		return false
	}

	used := make([]bool, len(b.MicroDepositAmounts))
	for _, got := range amounts {
		matched := false
		for i, want := range b.MicroDepositAmounts {
			if !used[i] && want.Equal(got) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

type (
	BindRequest struct {
		RecipientID string                    `json:"-" param:"recipient_id" validate:"required"`
		AccountID   string                    `json:"accountId" validate:"required"`
		Ledger      string                    `json:"ledger" validate:"required,ledger_code"`
		Descriptor  ExternalAccountDescriptor `json:"descriptor" validate:"required"`
	}

	VerifyRequest struct {
		Method    string   `json:"method" validate:"required,oneof=INSTANT MICRO_DEPOSIT MANUAL"`
		Amounts   []string `json:"amounts,omitempty" validate:"omitempty,dive,positive_amount"`
		Reference string   `json:"reference,omitempty"`
	}

	ManualReviewRequest struct {
		Approved bool   `json:"approved"`
		Reviewer string `json:"reviewer" validate:"required"`
		Reason   string `json:"reason,omitempty"`
	}

	BindingOut struct {
		Kind                  string             `json:"kind" example:"binding"`
		ID                    string             `json:"id"`
		RecipientID           string             `json:"recipientId"`
		AccountID             string             `json:"accountId"`
		Ledger                string             `json:"ledger"`
		Type                  string             `json:"type"`
		Masked                string             `json:"masked"`
		Status                BindingStatus      `json:"status"`
		Method                VerificationMethod `json:"method,omitempty"`
		IsDefault             bool               `json:"isDefault"`
		MicroDepositAttempts  int                `json:"microDepositAttempts"`
		MicroDepositExpiresAt *time.Time         `json:"microDepositExpiresAt,omitempty"`
		VerifiedAt            *time.Time         `json:"verifiedAt,omitempty"`
		FailureReason         string             `json:"failureReason,omitempty"`
	}
)

func (r VerifyRequest) ToEvidence() (VerificationEvidence, error) {
	ev := VerificationEvidence{Reference: r.Reference}
	for _, a := range r.Amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return VerificationEvidence{}, err
		}
		ev.Amounts = append(ev.Amounts, d)
	}
	return ev, nil
}

func (b RecipientAccountBinding) ToBindingOut() BindingOut {
	return BindingOut{
		Kind:                  "binding",
		ID:                    b.ID,
		RecipientID:           b.RecipientID,
		AccountID:             b.AccountID,
		Ledger:                b.Ledger,
		Type:                  string(b.Descriptor.Type),
		Masked:                b.Descriptor.Masked(),
		Status:                b.Status,
		Method:                b.Method,
		IsDefault:             b.IsDefault,
		MicroDepositAttempts:  b.MicroDepositAttempts,
		MicroDepositExpiresAt: b.MicroDepositExpiresAt,
		VerifiedAt:            b.VerifiedAt,
		FailureReason:         b.FailureReason,
	}
}
