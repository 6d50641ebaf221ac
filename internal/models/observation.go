package models

import (
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/pagination"

	"github.com/shopspring/decimal"
)

type ObserveResult string

const (
	Observed        ObserveResult = "OBSERVED"
	AlreadyObserved ObserveResult = "ALREADY_OBSERVED"
)

// ObservationRecord is one immutable mirror leg of a posted transfer.
// Exactly one of Debit and Credit is non-zero.
type ObservationRecord struct {
	ID                 string          `json:"id"`
	ClearingTransferID string          `json:"clearingTransferId"`
	LegIndex           int             `json:"legIndex"`
	AccountID          string          `json:"accountId"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	ObservedAt         time.Time       `json:"observedAt"`
	ChartVersion       string          `json:"chartVersion"`
	CorrectsRecordID   *string         `json:"correctsRecordId,omitempty"`
}

// ObservationSet is every record sharing one clearing transfer id.
type ObservationSet []ObservationRecord

func (s ObservationSet) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, r := range s {
		debit = debit.Add(r.Debit)
		credit = credit.Add(r.Credit)
	}
	return debit, credit
}

// Validate enforces sum(debit) == sum(credit) and one-sided legs.
func (s ObservationSet) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("%w: need at least two legs, got %d", common.ErrObservationImbalance, len(s))
	}

	for _, r := range s {
		if r.Debit.IsNegative() || r.Credit.IsNegative() {
			return fmt.Errorf("%w: negative leg %d", common.ErrObservationImbalance, r.LegIndex)
		}
		if r.Debit.IsZero() == r.Credit.IsZero() {
			return fmt.Errorf("%w: leg %d must be one-sided", common.ErrObservationImbalance, r.LegIndex)
		}
	}

	debit, credit := s.Totals()
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debit %s, credit %s", common.ErrObservationImbalance, debit, credit)
	}

	return nil
}

// SignedAmount is the record's effect on an account of the given polarity.
func (r ObservationRecord) SignedAmount(normal NormalBalance) decimal.Decimal {
	if normal == NormalBalanceDebit {
		return r.Debit.Sub(r.Credit)
	}
	return r.Credit.Sub(r.Debit)
}

func (r ObservationRecord) GetCursor() string {
	return pagination.NewCursor(r.ObservedAt, r.ID).Encode()
}

func (r ObservationRecord) ToModelResponse() ObservationOut {
	return ObservationOut{
		Kind:               "observation",
		ID:                 r.ID,
		ClearingTransferID: r.ClearingTransferID,
		LegIndex:           r.LegIndex,
		AccountID:          r.AccountID,
		Debit:              r.Debit,
		Credit:             r.Credit,
		ObservedAt:         r.ObservedAt,
		CorrectsRecordID:   r.CorrectsRecordID,
	}
}

// HistoryFilter selects one account's records in [From, To). Limit already
// includes the over-fetched row.
type HistoryFilter struct {
	AccountID string
	From      time.Time
	To        time.Time
	Limit     int
	Cursor    *pagination.Cursor
}

// HistoryPage is one page of an account history. NextCursor is empty on the
// last page.
type HistoryPage struct {
	Records    []ObservationRecord `json:"records"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

// ToFilter parses the query of the history endpoint. The limit is capped at
// maxLimit and over-fetched by one row.
func (r HistoryRequest) ToFilter(accountID string, maxLimit int) (HistoryFilter, error) {
	opts := pagination.Options{Limit: r.Limit, NextCursor: r.Cursor}
	cursor, limit, err := opts.BuildCursorAndLimit(maxLimit)
	if err != nil {
		return HistoryFilter{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	filter := HistoryFilter{AccountID: accountID, Limit: limit, Cursor: cursor}
	if r.From != "" {
		if filter.From, err = time.Parse(time.RFC3339, r.From); err != nil {
			return HistoryFilter{}, fmt.Errorf("%w: from: %v", common.ErrInvalidFormatDate, err)
		}
	}
	if r.To != "" {
		if filter.To, err = time.Parse(time.RFC3339, r.To); err != nil {
			return HistoryFilter{}, fmt.Errorf("%w: to: %v", common.ErrInvalidFormatDate, err)
		}
	}
	return filter, nil
}

type (
	HistoryRequest struct {
		From   string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
		To     string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
		Limit  int    `query:"limit" validate:"omitempty,min=1"`
		Cursor string `query:"cursor"`
	}

	ObservationOut struct {
		Kind               string          `json:"kind" example:"observation"`
		ID                 string          `json:"id"`
		ClearingTransferID string          `json:"clearingTransferId"`
		LegIndex           int             `json:"legIndex"`
		AccountID          string          `json:"accountId"`
		Debit              decimal.Decimal `json:"debit"`
		Credit             decimal.Decimal `json:"credit"`
		ObservedAt         time.Time       `json:"observedAt"`
		CorrectsRecordID   *string         `json:"correctsRecordId,omitempty"`
	}

	BalanceOut struct {
		Kind      string          `json:"kind" example:"balance"`
		AccountID string          `json:"accountId"`
		Balance   decimal.Decimal `json:"balance"`
		AsOf      time.Time       `json:"asOf"`
	}
)

// ObservationAlert is published when a decomposition fails the balance check.
type ObservationAlert struct {
	TransferID   string    `json:"transferId"`
	Kind         string    `json:"kind"`
	ChartVersion string    `json:"chartVersion"`
	Reason       string    `json:"reason"`
	RaisedAt     time.Time `json:"raisedAt"`
}

// BalanceDrift is one line of the mirror recon report.
type BalanceDrift struct {
	AccountID     string          `json:"accountId"`
	MirrorBalance decimal.Decimal `json:"mirrorBalance"`
	EngineBalance decimal.Decimal `json:"engineBalance"`
	Difference    decimal.Decimal `json:"difference"`
}

// ObservationTotals aggregates an account's mirror records.
type ObservationTotals struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

func (t ObservationTotals) Signed(normal NormalBalance) decimal.Decimal {
	if normal == NormalBalanceDebit {
		return t.Debit.Sub(t.Credit)
	}
	return t.Credit.Sub(t.Debit)
}
