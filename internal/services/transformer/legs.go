package transformer

import (
	"context"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
)

const basisPointsDivisor = 10000

type legTransformer struct {
	baseTransformer
	kind models.IntentKind
	legs []models.LegRule
}

func (t *legTransformer) Transform(_ context.Context, event models.ClearingEvent) (models.ObservationSet, error) {
	if len(t.legs) == 0 {
		return nil, fmt.Errorf("%w: kind %s has no legs", common.ErrUnableGetTransformer, t.kind)
	}

	ledger, err := t.ledgers.LedgerByID(event.LedgerID)
	if err != nil {
		return nil, err
	}

	fees := feesBySide(t.legs, event.Amount, ledger.Scale)

	set := make(models.ObservationSet, 0, len(t.legs))
	for i, rule := range t.legs {
		amount, err := legAmount(rule, event.Amount, ledger.Scale, fees)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		// a fee that rounds to nothing leaves no trace in the mirror
		if amount.IsZero() {
			continue
		}

		accountID, err := t.resolveAccount(rule.Account, event)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}

		record := t.newRecord(event, i, accountID)
		record.Debit, record.Credit = decimal.Zero, decimal.Zero
		switch rule.Side {
		case models.LegSideDebit:
			record.Debit = amount
		case models.LegSideCredit:
			record.Credit = amount
		default:
			return nil, fmt.Errorf("leg %d: unknown side %q", i, rule.Side)
		}

		set = append(set, record)
	}

	return set, nil
}

func feeAmount(amount decimal.Decimal, bps int64, scale int32) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(bps)).Div(decimal.NewFromInt(basisPointsDivisor)).RoundBank(scale)
}

func feesBySide(legs []models.LegRule, amount decimal.Decimal, scale int32) map[models.LegSide]decimal.Decimal {
	fees := map[models.LegSide]decimal.Decimal{
		models.LegSideDebit:  decimal.Zero,
		models.LegSideCredit: decimal.Zero,
	}
	for _, rule := range legs {
		if rule.Basis == models.LegBasisFee {
			fees[rule.Side] = fees[rule.Side].Add(feeAmount(amount, rule.FeeBps, scale))
		}
	}
	return fees
}

func legAmount(rule models.LegRule, amount decimal.Decimal, scale int32, fees map[models.LegSide]decimal.Decimal) (decimal.Decimal, error) {
	switch rule.Basis {
	case models.LegBasisAmount, "":
		return amount, nil
	case models.LegBasisFee:
		if rule.FeeBps < 0 || rule.FeeBps > basisPointsDivisor {
			return decimal.Zero, fmt.Errorf("%w: fee %d bps out of range", common.ErrObservationImbalance, rule.FeeBps)
		}
		return feeAmount(amount, rule.FeeBps, scale), nil
	case models.LegBasisNet:
		net := amount.Sub(fees[rule.Side])
		if net.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: fees exceed amount", common.ErrObservationImbalance)
		}
		return net, nil
	}

	return decimal.Zero, fmt.Errorf("unknown leg basis %q", rule.Basis)
}
