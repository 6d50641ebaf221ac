package models

import (
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
)

type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "debit"
	NormalBalanceCredit NormalBalance = "credit"
)

// Ledger isolates one unit of account.
type Ledger struct {
	ID       uint32 `json:"id"`
	Code     string `json:"code"`
	Currency string `json:"currency"`
	// Scale is the number of minor-unit digits, 2 for USD.
	Scale int32 `json:"scale"`
}

// Account is an engine account. Its balance is never stored here.
type Account struct {
	ID            string        `json:"id"`
	LedgerID      uint32        `json:"ledgerId"`
	Alias         string        `json:"alias,omitempty"`
	NormalBalance NormalBalance `json:"normalBalance"`
	Closed        bool          `json:"closed"`
	// DebitsMustNotExceedCredits makes the engine reject debits that would
	// take the available balance below zero.
	DebitsMustNotExceedCredits bool `json:"debitsMustNotExceedCredits"`
}

// Ledgers is an index of ledgers and accounts used to resolve intents.
type Ledgers struct {
	byCode   map[string]Ledger
	byID     map[uint32]Ledger
	accounts map[string]Account
	aliases  map[string]Account
}

func NewLedgers(ledgers []Ledger, accounts []Account) Ledgers {
	l := Ledgers{
		byCode:   make(map[string]Ledger, len(ledgers)),
		byID:     make(map[uint32]Ledger, len(ledgers)),
		accounts: make(map[string]Account, len(accounts)),
		aliases:  make(map[string]Account, len(accounts)),
	}
	for _, v := range ledgers {
		l.byCode[v.Code] = v
		l.byID[v.ID] = v
	}
	for _, a := range accounts {
		l.accounts[a.ID] = a
		if a.Alias != "" {
			l.aliases[aliasKey(a.LedgerID, a.Alias)] = a
		}
	}
	return l
}

func aliasKey(ledgerID uint32, alias string) string {
	return fmt.Sprintf("%d/%s", ledgerID, alias)
}

func (l Ledgers) LedgerByCode(code string) (Ledger, error) {
	v, ok := l.byCode[code]
	if !ok {
		return Ledger{}, fmt.Errorf("%w: %s", common.ErrUnknownLedger, code)
	}
	return v, nil
}

func (l Ledgers) LedgerByID(id uint32) (Ledger, error) {
	v, ok := l.byID[id]
	if !ok {
		return Ledger{}, fmt.Errorf("%w: %d", common.ErrUnknownLedger, id)
	}
	return v, nil
}

func (l Ledgers) Account(id string) (Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

func (l Ledgers) AccountByAlias(ledgerID uint32, alias string) (Account, error) {
	a, ok := l.aliases[aliasKey(ledgerID, alias)]
	if !ok {
		return Account{}, fmt.Errorf("%w: alias %s on ledger %d", common.ErrUnknownAccount, alias, ledgerID)
	}
	return a, nil
}

func (l Ledgers) AllAccounts() []Account {
	res := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		res = append(res, a)
	}
	return res
}
