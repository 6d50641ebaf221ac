package models

import (
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
)

type LegSide string

const (
	LegSideDebit  LegSide = "debit"
	LegSideCredit LegSide = "credit"
)

type LegBasis string

const (
	// LegBasisAmount takes the full transfer amount.
	LegBasisAmount LegBasis = "amount"
	// LegBasisFee takes FeeBps basis points of the amount.
	LegBasisFee LegBasis = "fee"
	// LegBasisNet takes the amount minus every fee leg on the same side.
	LegBasisNet LegBasis = "net"
)

const (
	// AccountRefDebit and AccountRefCredit point at the transfer's own legs.
	AccountRefDebit  = "$debit"
	AccountRefCredit = "$credit"
)

type LegRule struct {
	Side    LegSide  `json:"side"`
	Account string   `json:"account"`
	Basis   LegBasis `json:"basis"`
	FeeBps  int64    `json:"feeBps,omitempty"`
}

// Routing tells clearing which accounts a kind moves funds between when the
// intent does not name them explicitly.
type Routing struct {
	Code          uint16 `json:"code"`
	DebitAccount  string `json:"debitAccount,omitempty"`
	CreditAccount string `json:"creditAccount,omitempty"`
	Pending       bool   `json:"pending"`
}

type KindMapping struct {
	Routing Routing   `json:"routing"`
	Legs    []LegRule `json:"legs"`
}

// ChartOfAccounts is the versioned mapping used by clearing to resolve
// accounts and by the mirror to decompose clearing events.
type ChartOfAccounts struct {
	Version  string                     `json:"version"`
	Ledgers  []Ledger                   `json:"ledgers"`
	Accounts []Account                  `json:"accounts"`
	Mappings map[IntentKind]KindMapping `json:"mappings"`
}

func (c ChartOfAccounts) Index() Ledgers {
	return NewLedgers(c.Ledgers, c.Accounts)
}

func (c ChartOfAccounts) Mapping(kind IntentKind) (KindMapping, error) {
	m, ok := c.Mappings[kind]
	if !ok {
		return KindMapping{}, fmt.Errorf("%w: no mapping for kind %s", common.ErrUnableGetTransformer, kind)
	}
	return m, nil
}
