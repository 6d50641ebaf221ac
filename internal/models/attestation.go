package models

import (
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"golang.org/x/exp/slices"
)

type AttestationStatus string

const (
	AttestationStatusPending  AttestationStatus = "PENDING"
	AttestationStatusAttested AttestationStatus = "ATTESTED"
	AttestationStatusDenied   AttestationStatus = "DENIED"
	AttestationStatusConsumed AttestationStatus = "CONSUMED"
	AttestationStatusExpired  AttestationStatus = "EXPIRED"
)

var attestationTransitions = map[AttestationStatus][]AttestationStatus{
	AttestationStatusPending:  {AttestationStatusAttested, AttestationStatusDenied},
	AttestationStatusAttested: {AttestationStatusConsumed, AttestationStatusExpired},
}

func (s AttestationStatus) CanTransitionTo(next AttestationStatus) bool {
	return slices.Contains(attestationTransitions[s], next)
}

func (s AttestationStatus) IsTerminal() bool {
	return len(attestationTransitions[s]) == 0
}

// Attestation is the single-use proof that an intent passed the gate.
type Attestation struct {
	ID                 string            `json:"id"`
	IntentID           string            `json:"intentId"`
	IntentFingerprint  string            `json:"intentFingerprint"`
	IdempotencyKey     string            `json:"idempotencyKey"`
	IssuedAt           time.Time         `json:"issuedAt"`
	ExpiresAt          time.Time         `json:"expiresAt"`
	Nonce              string            `json:"nonce"`
	PolicyChecksPassed []string          `json:"policyChecksPassed"`
	Violations         []string          `json:"violations,omitempty"`
	RuleSetVersion     string            `json:"ruleSetVersion"`
	Status             AttestationStatus `json:"status"`
	ConsumedAt         *time.Time        `json:"consumedAt,omitempty"`
}

func (a Attestation) IsExpired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

// CheckUsable reports why the attestation cannot authorise intent at now.
func (a Attestation) CheckUsable(intent Intent, now time.Time) error {
	switch a.Status {
	case AttestationStatusConsumed:
		return fmt.Errorf("%w: %s", common.ErrAttestationConsumed, a.ID)
	case AttestationStatusExpired:
		return fmt.Errorf("%w: %s", common.ErrAttestationExpired, a.ID)
	case AttestationStatusDenied, AttestationStatusPending:
		return fmt.Errorf("%w: %s", common.ErrAttestationDenied, a.ID)
	}

	if a.IsExpired(now) {
		return fmt.Errorf("%w: %s expired at %s", common.ErrAttestationExpired, a.ID, a.ExpiresAt.Format(time.RFC3339))
	}

	if a.IntentID != intent.ID || a.IntentFingerprint != intent.Fingerprint() {
		return fmt.Errorf("%w: attestation %s, intent %s", common.ErrAttestationMismatch, a.ID, intent.ID)
	}

	return nil
}
