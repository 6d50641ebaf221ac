package clearingengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accEmployer = "acc-employer"
	accPayroll  = "acc-payroll"
	accEquity   = "acc-equity"
	accOther    = "acc-other-ledger"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestEngine(t *testing.T) *InMemory {
	t.Helper()

	engine := NewInMemory([]models.Account{
		{ID: accEmployer, LedgerID: 1, NormalBalance: models.NormalBalanceCredit, DebitsMustNotExceedCredits: true},
		{ID: accPayroll, LedgerID: 1, NormalBalance: models.NormalBalanceCredit},
		{ID: accEquity, LedgerID: 1, NormalBalance: models.NormalBalanceDebit},
		{ID: accOther, LedgerID: 2, NormalBalance: models.NormalBalanceCredit},
	}, WithClock(func() time.Time { return fixedNow }))

	require.NoError(t, engine.Fund(accEmployer, decimal.NewFromInt(1000)))
	return engine
}

func transfer(id string, amount int64, pending bool) models.Transfer {
	return models.Transfer{
		ID:              id,
		LedgerID:        1,
		DebitAccountID:  accEmployer,
		CreditAccountID: accPayroll,
		Amount:          decimal.NewFromInt(amount),
		Pending:         pending,
		Code:            10,
	}
}

func balanceOf(t *testing.T, engine *InMemory, accountID string) models.AccountBalance {
	t.Helper()
	b, err := engine.GetAccountBalance(context.Background(), accountID)
	require.NoError(t, err)
	return b
}

func TestInMemory_PendingLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("pending then post", func(t *testing.T) {
		engine := newTestEngine(t)

		out, err := engine.CreateTransfer(ctx, transfer("t-1", 500, true))
		require.NoError(t, err)
		assert.Equal(t, ResultCreated, out.Result)
		assert.Equal(t, models.TransferStatePending, out.State)

		employer := balanceOf(t, engine, accEmployer)
		assert.True(t, employer.Posted.Equal(decimal.NewFromInt(1000)))
		assert.True(t, employer.Pending.Equal(decimal.NewFromInt(500)))
		assert.True(t, employer.Available.Equal(decimal.NewFromInt(500)))
		assert.True(t, balanceOf(t, engine, accPayroll).Posted.IsZero())

		out, err = engine.PostPending(ctx, "t-1")
		require.NoError(t, err)
		assert.Equal(t, ResultPosted, out.Result)
		assert.Equal(t, models.TransferStatePosted, out.State)

		employer = balanceOf(t, engine, accEmployer)
		assert.True(t, employer.Posted.Equal(decimal.NewFromInt(500)))
		assert.True(t, employer.Pending.IsZero())
		assert.True(t, balanceOf(t, engine, accPayroll).Posted.Equal(decimal.NewFromInt(500)))

		out, err = engine.PostPending(ctx, "t-1")
		require.NoError(t, err)
		assert.Equal(t, ResultAlreadyPosted, out.Result)

		_, err = engine.VoidPending(ctx, "t-1")
		reason, ok := RejectReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, RejectAlreadyPosted, reason)
	})

	t.Run("pending then void", func(t *testing.T) {
		engine := newTestEngine(t)

		_, err := engine.CreateTransfer(ctx, transfer("t-2", 300, true))
		require.NoError(t, err)

		out, err := engine.VoidPending(ctx, "t-2")
		require.NoError(t, err)
		assert.Equal(t, ResultVoided, out.Result)
		assert.Equal(t, models.TransferStateVoided, out.State)

		employer := balanceOf(t, engine, accEmployer)
		assert.True(t, employer.Posted.Equal(decimal.NewFromInt(1000)))
		assert.True(t, employer.Available.Equal(decimal.NewFromInt(1000)))

		out, err = engine.VoidPending(ctx, "t-2")
		require.NoError(t, err)
		assert.Equal(t, ResultAlreadyVoided, out.Result)

		_, err = engine.PostPending(ctx, "t-2")
		reason, _ := RejectReasonOf(err)
		assert.Equal(t, RejectAlreadyVoided, reason)
	})

	t.Run("post of an immediate transfer is rejected", func(t *testing.T) {
		engine := newTestEngine(t)

		out, err := engine.CreateTransfer(ctx, transfer("t-3", 100, false))
		require.NoError(t, err)
		assert.Equal(t, models.TransferStatePosted, out.State)

		_, err = engine.PostPending(ctx, "t-3")
		reason, _ := RejectReasonOf(err)
		assert.Equal(t, RejectTransferNotPending, reason)
	})
}

func TestInMemory_CreateTransferIdempotent(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	first, err := engine.CreateTransfer(ctx, transfer("t-1", 200, false))
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, first.Result)

	again, err := engine.CreateTransfer(ctx, transfer("t-1", 200, false))
	require.NoError(t, err)
	assert.Equal(t, ResultAlreadyExists, again.Result)
	assert.True(t, again.Result.IsReplay())
	assert.Equal(t, first.State, again.State)

	// applied once
	assert.True(t, balanceOf(t, engine, accEmployer).Posted.Equal(decimal.NewFromInt(800)))

	_, err = engine.CreateTransfer(ctx, transfer("t-1", 201, false))
	assert.True(t, errors.Is(err, ErrRejected))
	reason, _ := RejectReasonOf(err)
	assert.Equal(t, RejectExistsWithDifferentData, reason)
}

func TestInMemory_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		transfer models.Transfer
		want     RejectReason
	}{
		{
			name:     "exceeds credits",
			transfer: transfer("t-big", 5000, false),
			want:     RejectExceedsCredits,
		},
		{
			name: "same account",
			transfer: models.Transfer{ID: "t-same", LedgerID: 1, DebitAccountID: accPayroll, CreditAccountID: accPayroll,
				Amount: decimal.NewFromInt(1)},
			want: RejectAccountsMustDiffer,
		},
		{
			name: "cross ledger",
			transfer: models.Transfer{ID: "t-x", LedgerID: 1, DebitAccountID: accEmployer, CreditAccountID: accOther,
				Amount: decimal.NewFromInt(1)},
			want: RejectLedgerMismatch,
		},
		{
			name: "unknown account",
			transfer: models.Transfer{ID: "t-u", LedgerID: 1, DebitAccountID: "nope", CreditAccountID: accPayroll,
				Amount: decimal.NewFromInt(1)},
			want: RejectAccountNotFound,
		},
		{
			name:     "zero amount",
			transfer: transfer("t-zero", 0, false),
			want:     RejectAmountMustBePositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)

			_, err := engine.CreateTransfer(ctx, tt.transfer)
			require.Error(t, err)
			assert.False(t, IsTransient(err))

			reason, ok := RejectReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, reason)

			_, err = engine.LookupTransfer(ctx, tt.transfer.ID)
			assert.ErrorIs(t, err, ErrTransferNotFound)
		})
	}
}

func TestInMemory_UnconstrainedAccountGoesNegative(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	_, err := engine.CreateTransfer(ctx, models.Transfer{
		ID: "t-seed", LedgerID: 1, DebitAccountID: accEquity, CreditAccountID: accPayroll, Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// debit-normal accounts report debits as positive
	assert.True(t, balanceOf(t, engine, accEquity).Posted.Equal(decimal.NewFromInt(50)))
}

func TestInMemory_CancelledContext(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.CreateTransfer(ctx, transfer("t-1", 1, false))
	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.LookupTransfer(context.Background(), "t-1")
	assert.ErrorIs(t, err, ErrTransferNotFound)
}

func TestInMemory_LookupTransfer(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	_, err := engine.CreateTransfer(ctx, transfer("t-1", 10, true))
	require.NoError(t, err)

	got, err := engine.LookupTransfer(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatePending, got.State)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, accEmployer, got.DebitAccountID)

	_, err = engine.GetAccountBalance(ctx, "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
