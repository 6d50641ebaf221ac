package models

import (
	"math/rand"
	"testing"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestObservationSet_Validate(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name    string
		set     ObservationSet
		wantErr bool
	}{
		{
			name: "balanced pair",
			set: ObservationSet{
				{LegIndex: 0, AccountID: "clearing", Debit: d(500), Credit: decimal.Zero},
				{LegIndex: 1, AccountID: "revenue", Debit: decimal.Zero, Credit: d(500)},
			},
		},
		{
			name: "balanced with fee leg",
			set: ObservationSet{
				{LegIndex: 0, AccountID: "a", Debit: d(100), Credit: decimal.Zero},
				{LegIndex: 1, AccountID: "b", Debit: decimal.Zero, Credit: d(97)},
				{LegIndex: 2, AccountID: "fee", Debit: decimal.Zero, Credit: d(3)},
			},
		},
		{
			name: "imbalanced",
			set: ObservationSet{
				{LegIndex: 0, AccountID: "a", Debit: d(100), Credit: decimal.Zero},
				{LegIndex: 1, AccountID: "b", Debit: decimal.Zero, Credit: d(99)},
			},
			wantErr: true,
		},
		{
			name: "two sided leg",
			set: ObservationSet{
				{LegIndex: 0, AccountID: "a", Debit: d(100), Credit: d(100)},
				{LegIndex: 1, AccountID: "b", Debit: decimal.Zero, Credit: decimal.Zero},
			},
			wantErr: true,
		},
		{
			name:    "single leg",
			set:     ObservationSet{{LegIndex: 0, AccountID: "a", Debit: d(1)}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrObservationImbalance)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestObservationRecord_SignedAmount(t *testing.T) {
	r := ObservationRecord{Debit: decimal.NewFromInt(10), Credit: decimal.Zero}
	assert.Equal(t, "10", r.SignedAmount(NormalBalanceDebit).String())
	assert.Equal(t, "-10", r.SignedAmount(NormalBalanceCredit).String())
}

func TestObservationSet_RandomBalancedSplits(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		total := decimal.New(rnd.Int63n(1_000_000)+1, -2)
		set := ObservationSet{{LegIndex: 0, AccountID: "src", Debit: total, Credit: decimal.Zero}}

		remaining := total
		legs := rnd.Intn(4) + 1
		for l := 1; l < legs; l++ {
			part := remaining.Mul(decimal.NewFromFloat(rnd.Float64())).Round(2)
			if part.IsZero() || part.GreaterThanOrEqual(remaining) {
				continue
			}
			set = append(set, ObservationRecord{LegIndex: len(set), AccountID: "fee", Debit: decimal.Zero, Credit: part})
			remaining = remaining.Sub(part)
		}
		set = append(set, ObservationRecord{LegIndex: len(set), AccountID: "dst", Debit: decimal.Zero, Credit: remaining})

		assert.NoError(t, set.Validate(), "iteration %d", i)
	}
}
