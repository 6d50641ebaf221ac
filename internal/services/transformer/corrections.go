package transformer

import (
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
)

// Live returns the records of set that were neither corrected nor are
// themselves reversals.
func Live(set models.ObservationSet) models.ObservationSet {
	corrected := make(map[string]bool)
	for _, r := range set {
		if r.CorrectsRecordID != nil {
			corrected[*r.CorrectsRecordID] = true
		}
	}

	var live models.ObservationSet
	for _, r := range set {
		if r.CorrectsRecordID == nil && !corrected[r.ID] {
			live = append(live, r)
		}
	}
	return live
}

func netByAccount(set models.ObservationSet) map[string]decimal.Decimal {
	res := make(map[string]decimal.Decimal)
	for _, r := range set {
		res[r.AccountID] = res[r.AccountID].Add(r.Debit).Sub(r.Credit)
	}
	return res
}

func sameEffect(a, b models.ObservationSet) bool {
	na, nb := netByAccount(a), netByAccount(b)
	for acc, v := range na {
		if !v.Equal(nb[acc]) {
			return false
		}
	}
	for acc, v := range nb {
		if !v.Equal(na[acc]) {
			return false
		}
	}
	return true
}

// Corrections builds the records that move the mirror of one transfer from
// existing to fresh without touching what was already written: every live
// record is reversed and the fresh legs are appended with new leg indexes.
// It returns nil when both sets have the same effect on every account.
func Corrections(existing, fresh models.ObservationSet, idgen idgenerator.Generator) models.ObservationSet {
	live := Live(existing)
	if sameEffect(live, fresh) {
		return nil
	}

	next := 0
	for _, r := range existing {
		if r.LegIndex >= next {
			next = r.LegIndex + 1
		}
	}

	res := make(models.ObservationSet, 0, len(live)+len(fresh))
	for _, r := range live {
		original := r.ID
		res = append(res, models.ObservationRecord{
			ID:                 idgen.Generate(idgenerator.PrefixObservation),
			ClearingTransferID: r.ClearingTransferID,
			LegIndex:           next,
			AccountID:          r.AccountID,
			Debit:              r.Credit,
			Credit:             r.Debit,
			ObservedAt:         r.ObservedAt,
			ChartVersion:       r.ChartVersion,
			CorrectsRecordID:   &original,
		})
		next++
	}

	for _, r := range fresh {
		r.LegIndex = next
		res = append(res, r)
		next++
	}

	return res
}
