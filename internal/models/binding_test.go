package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecipientAccountBinding_MatchMicroDeposits(t *testing.T) {
	b := RecipientAccountBinding{
		MicroDepositAmounts: []decimal.Decimal{
			decimal.RequireFromString("0.12"),
			decimal.RequireFromString("0.34"),
		},
	}
	tests := []struct {
		name    string
		amounts []string
		want    bool
	}{
		{name: "exact order", amounts: []string{"0.12", "0.34"}, want: true},
		{name: "reversed order", amounts: []string{"0.34", "0.12"}, want: true},
		{name: "trailing zero is still exact", amounts: []string{"0.120", "0.34"}, want: true},
		{name: "off by one cent", amounts: []string{"0.13", "0.34"}},
		{name: "same amount twice", amounts: []string{"0.12", "0.12"}},
		{name: "only one amount", amounts: []string{"0.12"}},
		{name: "empty", amounts: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []decimal.Decimal
			for _, a := range tt.amounts {
				got = append(got, decimal.RequireFromString(a))
			}
			assert.Equal(t, tt.want, b.MatchMicroDeposits(got))
		})
	}
}

func TestBindingStatus_Transitions(t *testing.T) {
	assert.True(t, BindingStatusUnverified.CanTransitionTo(BindingStatusPendingVerification))
	assert.True(t, BindingStatusPendingReview.CanTransitionTo(BindingStatusVerified))
	assert.False(t, BindingStatusVerified.CanTransitionTo(BindingStatusFailed))
	assert.False(t, BindingStatusFailed.CanTransitionTo(BindingStatusVerified))
	assert.True(t, BindingStatusFailed.IsTerminal())
}

func TestExternalAccountDescriptor(t *testing.T) {
	d := ExternalAccountDescriptor{
		Type:          ExternalAccountBank,
		RoutingNumber: "021000021",
		AccountNumber: "123456789",
		HolderName:    "Jane Roe",
	}
	assert.Equal(t, "*****6789", d.Masked())
	assert.Equal(t, d.Fingerprint(), ExternalAccountDescriptor{
		Type:          ExternalAccountBank,
		RoutingNumber: " 021000021 ",
		AccountNumber: "123456789",
	}.Fingerprint())
	assert.Equal(t, map[string]string{
		"holder_name":    "Jane Roe",
		"routing_number": "021000021",
		"account_number": "123456789",
	}, d.IdentityFields())
}
