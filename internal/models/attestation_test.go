package models

import (
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAttestationStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, AttestationStatusPending.CanTransitionTo(AttestationStatusAttested))
	assert.True(t, AttestationStatusPending.CanTransitionTo(AttestationStatusDenied))
	assert.True(t, AttestationStatusAttested.CanTransitionTo(AttestationStatusConsumed))
	assert.True(t, AttestationStatusAttested.CanTransitionTo(AttestationStatusExpired))

	assert.False(t, AttestationStatusConsumed.CanTransitionTo(AttestationStatusConsumed))
	assert.False(t, AttestationStatusExpired.CanTransitionTo(AttestationStatusConsumed))
	assert.False(t, AttestationStatusDenied.CanTransitionTo(AttestationStatusAttested))
	assert.True(t, AttestationStatusConsumed.IsTerminal())
	assert.False(t, AttestationStatusAttested.IsTerminal())
}

func TestAttestation_CheckUsable(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	intent := Intent{
		ID:             "intent-1",
		Kind:           IntentKindCharge,
		Amount:         decimal.NewFromInt(500),
		Ledger:         "USD",
		IdempotencyKey: "idem-1",
	}
	valid := Attestation{
		ID:                "att-1",
		IntentID:          intent.ID,
		IntentFingerprint: intent.Fingerprint(),
		IssuedAt:          now.Add(-time.Minute),
		ExpiresAt:         now.Add(time.Minute),
		Status:            AttestationStatusAttested,
	}

	tampered := intent
	tampered.Amount = decimal.NewFromInt(5000)

	expired := valid
	expired.ExpiresAt = now

	consumed := valid
	consumed.Status = AttestationStatusConsumed

	tests := []struct {
		name        string
		attestation Attestation
		intent      Intent
		wantErr     error
	}{
		{name: "usable", attestation: valid, intent: intent},
		{name: "consumed", attestation: consumed, intent: intent, wantErr: common.ErrAttestationConsumed},
		{name: "expired by ttl", attestation: expired, intent: intent, wantErr: common.ErrAttestationExpired},
		{name: "mismatched intent", attestation: valid, intent: tampered, wantErr: common.ErrAttestationMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.attestation.CheckUsable(tt.intent, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
