package clearingengine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
)

// InMemory is a test double of the engine contract. It keeps real
// pending/available semantics but no durability.
type InMemory struct {
	mu        sync.Mutex
	accounts  map[string]*memAccount
	transfers map[string]*EngineTransfer
	now       func() time.Time
}

type memAccount struct {
	account models.Account
	balance models.Balance
}

type InMemoryOption func(m *InMemory)

func WithClock(now func() time.Time) InMemoryOption {
	return func(m *InMemory) {
		m.now = now
	}
}

func NewInMemory(accounts []models.Account, opts ...InMemoryOption) *InMemory {
	m := &InMemory{
		accounts:  make(map[string]*memAccount, len(accounts)),
		transfers: make(map[string]*EngineTransfer),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, a := range accounts {
		m.addAccount(a)
	}
	return m
}

func (m *InMemory) addAccount(a models.Account) {
	var opts []models.BalanceOption
	if !a.DebitsMustNotExceedCredits {
		opts = append(opts, models.WithIgnoreBalanceSufficiency())
	}
	m.accounts[a.ID] = &memAccount{
		account: a,
		balance: models.NewBalance(decimal.Zero, decimal.Zero, opts...),
	}
}

// Fund credits an opening balance outside of any transfer. Used to seed
// local runs.
func (m *InMemory) Fund(accountID string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return acc.balance.AddFunds(amount)
}

func (m *InMemory) CreateTransfer(ctx context.Context, t models.Transfer) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.transfers[t.ID]; ok {
		if !sameTransfer(existing.Transfer, t) {
			return Outcome{}, reject(RejectExistsWithDifferentData, "transfer %s", t.ID)
		}
		return Outcome{Result: ResultAlreadyExists, State: existing.State, Timestamp: existing.CreatedAt}, nil
	}

	debit, credit, err := m.checkTransfer(t)
	if err != nil {
		return Outcome{}, err
	}

	state := models.TransferStatePosted
	if t.Pending {
		state = models.TransferStatePending
		err = debit.balance.Reserve(t.Amount)
	} else {
		err = debit.balance.Withdraw(t.Amount)
	}
	if err != nil {
		return Outcome{}, balanceRejection(err, debit.account.ID)
	}

	if !t.Pending {
		if err = credit.balance.AddFunds(t.Amount); err != nil {
			return Outcome{}, balanceRejection(err, credit.account.ID)
		}
	}

	now := m.now()
	m.transfers[t.ID] = &EngineTransfer{
		Transfer:  t,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return Outcome{Result: ResultCreated, State: state, Timestamp: now}, nil
}

func (m *InMemory) PostPending(ctx context.Context, transferID string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pendingTransfer(transferID)
	if err != nil {
		return Outcome{}, err
	}

	switch t.State {
	case models.TransferStatePosted:
		return Outcome{Result: ResultAlreadyPosted, State: t.State, Timestamp: t.UpdatedAt}, nil
	case models.TransferStateVoided:
		return Outcome{}, reject(RejectAlreadyVoided, "transfer %s", transferID)
	}

	debit, credit := m.accounts[t.DebitAccountID], m.accounts[t.CreditAccountID]
	if err := debit.balance.Commit(t.Amount); err != nil {
		return Outcome{}, balanceRejection(err, debit.account.ID)
	}
	if err := credit.balance.AddFunds(t.Amount); err != nil {
		return Outcome{}, balanceRejection(err, credit.account.ID)
	}

	t.State = models.TransferStatePosted
	t.UpdatedAt = m.now()

	return Outcome{Result: ResultPosted, State: t.State, Timestamp: t.UpdatedAt}, nil
}

func (m *InMemory) VoidPending(ctx context.Context, transferID string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pendingTransfer(transferID)
	if err != nil {
		return Outcome{}, err
	}

	switch t.State {
	case models.TransferStateVoided:
		return Outcome{Result: ResultAlreadyVoided, State: t.State, Timestamp: t.UpdatedAt}, nil
	case models.TransferStatePosted:
		return Outcome{}, reject(RejectAlreadyPosted, "transfer %s", transferID)
	}

	debit := m.accounts[t.DebitAccountID]
	if err := debit.balance.CancelReservation(t.Amount); err != nil {
		return Outcome{}, balanceRejection(err, debit.account.ID)
	}

	t.State = models.TransferStateVoided
	t.UpdatedAt = m.now()

	return Outcome{Result: ResultVoided, State: t.State, Timestamp: t.UpdatedAt}, nil
}

func (m *InMemory) LookupTransfer(ctx context.Context, transferID string) (EngineTransfer, error) {
	if err := ctx.Err(); err != nil {
		return EngineTransfer{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transfers[transferID]
	if !ok {
		return EngineTransfer{}, fmt.Errorf("%w: %s", ErrTransferNotFound, transferID)
	}
	return *t, nil
}

func (m *InMemory) GetAccountBalance(ctx context.Context, accountID string) (models.AccountBalance, error) {
	if err := ctx.Err(); err != nil {
		return models.AccountBalance{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[accountID]
	if !ok {
		return models.AccountBalance{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	// balance tracks credits minus debits
	sign := decimal.NewFromInt(1)
	if acc.account.NormalBalance == models.NormalBalanceDebit {
		sign = sign.Neg()
	}

	return models.AccountBalance{
		AccountID: accountID,
		Posted:    acc.balance.Actual().Mul(sign),
		Pending:   acc.balance.Pending(),
		Available: acc.balance.Available().Mul(sign),
	}, nil
}

func (m *InMemory) checkTransfer(t models.Transfer) (debit, credit *memAccount, err error) {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, reject(RejectAmountMustBePositive, "amount %s", t.Amount)
	}
	if t.DebitAccountID == t.CreditAccountID {
		return nil, nil, reject(RejectAccountsMustDiffer, "account %s", t.DebitAccountID)
	}

	debit, ok := m.accounts[t.DebitAccountID]
	if !ok {
		return nil, nil, reject(RejectAccountNotFound, "debit account %s", t.DebitAccountID)
	}
	credit, ok = m.accounts[t.CreditAccountID]
	if !ok {
		return nil, nil, reject(RejectAccountNotFound, "credit account %s", t.CreditAccountID)
	}

	if debit.account.LedgerID != t.LedgerID || credit.account.LedgerID != t.LedgerID {
		return nil, nil, reject(RejectLedgerMismatch, "ledger %d", t.LedgerID)
	}
	if debit.account.Closed || credit.account.Closed {
		return nil, nil, reject(RejectAccountClosed, "transfer %s", t.ID)
	}

	return debit, credit, nil
}

func (m *InMemory) pendingTransfer(transferID string) (*EngineTransfer, error) {
	t, ok := m.transfers[transferID]
	if !ok {
		return nil, reject(RejectTransferNotFound, "transfer %s", transferID)
	}
	if !t.Pending {
		return nil, reject(RejectTransferNotPending, "transfer %s", transferID)
	}
	return t, nil
}

func sameTransfer(a, b models.Transfer) bool {
	return a.ID == b.ID &&
		a.LedgerID == b.LedgerID &&
		a.DebitAccountID == b.DebitAccountID &&
		a.CreditAccountID == b.CreditAccountID &&
		a.Amount.Equal(b.Amount) &&
		a.Pending == b.Pending &&
		a.Code == b.Code
}

func balanceRejection(err error, accountID string) error {
	if errors.Is(err, common.ErrInsufficientAvailableBalance) {
		return reject(RejectExceedsCredits, "account %s", accountID)
	}
	return fmt.Errorf("account %s: %w", accountID, err)
}
