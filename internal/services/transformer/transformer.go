package transformer

import (
	"context"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
)

// Transformer decomposes a posted clearing event into mirror legs.
// The returned set is not validated; callers check the balance before
// committing it.
type Transformer interface {
	Transform(ctx context.Context, event models.ClearingEvent) (models.ObservationSet, error)
}

// baseTransformer carries what every kind needs to resolve legs: the chart
// version the legs are computed against and an id source for the records.
type baseTransformer struct {
	chartVersion string
	ledgers      models.Ledgers
	idgenerator  idgenerator.Generator
}

// MapTransformer resolves the transformer of an intent kind.
type MapTransformer map[models.IntentKind]Transformer

// NewMapTransformer registers one transformer per kind mapped by the chart.
func NewMapTransformer(chart models.ChartOfAccounts, idgen idgenerator.Generator) MapTransformer {
	base := baseTransformer{
		chartVersion: chart.Version,
		ledgers:      chart.Index(),
		idgenerator:  idgen,
	}

	m := make(MapTransformer, len(chart.Mappings))
	for kind, mapping := range chart.Mappings {
		m[kind] = &legTransformer{baseTransformer: base, kind: kind, legs: mapping.Legs}
	}

	return m
}

func (m MapTransformer) GetTransformer(kind models.IntentKind) (Transformer, error) {
	transformer, ok := m[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", common.ErrUnableGetTransformer, kind)
	}

	return transformer, nil
}

// Decompose is a shortcut for a single event.
func Decompose(ctx context.Context, chart models.ChartOfAccounts, idgen idgenerator.Generator, event models.ClearingEvent) (models.ObservationSet, error) {
	t, err := NewMapTransformer(chart, idgen).GetTransformer(event.Kind)
	if err != nil {
		return nil, err
	}

	return t.Transform(ctx, event)
}

func (b baseTransformer) resolveAccount(ref string, event models.ClearingEvent) (string, error) {
	switch ref {
	case models.AccountRefDebit:
		return event.DebitAccountID, nil
	case models.AccountRefCredit:
		return event.CreditAccountID, nil
	}

	if acc, ok := b.ledgers.Account(ref); ok {
		if acc.LedgerID != event.LedgerID {
			return "", fmt.Errorf("%w: account %s is on ledger %d", common.ErrCrossLedgerTransfer, ref, acc.LedgerID)
		}
		return acc.ID, nil
	}

	acc, err := b.ledgers.AccountByAlias(event.LedgerID, ref)
	if err != nil {
		return "", err
	}
	return acc.ID, nil
}

func (b baseTransformer) newRecord(event models.ClearingEvent, legIndex int, accountID string) models.ObservationRecord {
	return models.ObservationRecord{
		ID:                 b.idgenerator.Generate(idgenerator.PrefixObservation),
		ClearingTransferID: event.TransferID,
		LegIndex:           legIndex,
		AccountID:          accountID,
		ObservedAt:         event.FinalizedAt,
		ChartVersion:       b.chartVersion,
	}
}
