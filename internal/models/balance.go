package models

import (
	"encoding/json"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"github.com/shopspring/decimal"
)

// Balance tracks posted credits minus posted debits (actual) and the debit
// holds of pending transfers (pending). Available = actual - pending.
type Balance struct {
	actualBalance  decimal.Decimal
	pendingBalance decimal.Decimal

	ignoreBalanceSufficiency bool
}

// BalanceOption is an option for creating a new Balance
type BalanceOption func(b *Balance)

// WithIgnoreBalanceSufficiency lets the balance go negative, used for
// accounts that do not enforce debits <= credits.
func WithIgnoreBalanceSufficiency() BalanceOption {
	return func(b *Balance) {
		b.ignoreBalanceSufficiency = true
	}
}

func NewBalance(actualBalance, pendingBalance decimal.Decimal, options ...BalanceOption) Balance {
	b := Balance{
		actualBalance:  actualBalance,
		pendingBalance: pendingBalance,
	}

	for _, option := range options {
		option(&b)
	}

	return b
}

// Reserve places a debit hold for a pending transfer.
func (b *Balance) Reserve(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}

	if !b.ignoreBalanceSufficiency && b.Available().LessThan(amount) {
		return common.ErrInsufficientAvailableBalance
	}

	b.pendingBalance = b.pendingBalance.Add(amount)

	return nil
}

// CancelReservation releases a hold placed by Reserve.
func (b *Balance) CancelReservation(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}

	if b.Pending().LessThan(amount) {
		return common.ErrInsufficientPendingBalance
	}

	b.pendingBalance = b.pendingBalance.Sub(amount)

	return nil
}

// Commit turns a hold into a posted debit.
func (b *Balance) Commit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}

	if b.Pending().LessThan(amount) {
		return common.ErrInsufficientPendingBalance
	}

	b.actualBalance = b.actualBalance.Sub(amount)
	b.pendingBalance = b.pendingBalance.Sub(amount)

	return nil
}

// AddFunds posts a credit.
func (b *Balance) AddFunds(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}

	b.actualBalance = b.actualBalance.Add(amount)

	return nil
}

// Withdraw posts a debit immediately.
func (b *Balance) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}

	if !b.ignoreBalanceSufficiency && b.Available().LessThan(amount) {
		return common.ErrInsufficientAvailableBalance
	}

	b.actualBalance = b.actualBalance.Sub(amount)

	return nil
}

func (b *Balance) Available() decimal.Decimal {
	return b.actualBalance.Sub(b.pendingBalance)
}

func (b *Balance) Actual() decimal.Decimal {
	return b.actualBalance
}

func (b *Balance) Pending() decimal.Decimal {
	return b.pendingBalance
}

// AccountBalance is the engine's informational view of one account, signed
// by the account's normal balance.
type AccountBalance struct {
	AccountID string          `json:"accountId"`
	Posted    decimal.Decimal `json:"posted"`
	Pending   decimal.Decimal `json:"pending"`
	Available decimal.Decimal `json:"available"`
}

type balanceJSON struct {
	ActualBalance  decimal.Decimal `json:"actualBalance"`
	PendingBalance decimal.Decimal `json:"pendingBalance"`
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(balanceJSON{
		ActualBalance:  b.actualBalance,
		PendingBalance: b.pendingBalance,
	})
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	var jsonBalance balanceJSON

	if err := json.Unmarshal(data, &jsonBalance); err != nil {
		return err
	}

	b.actualBalance = jsonBalance.ActualBalance
	b.pendingBalance = jsonBalance.PendingBalance

	return nil
}
