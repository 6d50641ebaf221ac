package repositories

import (
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	sq "github.com/Masterminds/squirrel"
)

var observationColumns = []string{
	`"id"`, `"clearing_transfer_id"`, `"leg_index"`, `"account_id"`, `"debit"`, `"credit"`, `"observed_at"`,
	`"chart_version"`, `"corrects_record_id"`,
}

var (
	queryObservationExists = `SELECT EXISTS(SELECT 1 FROM observation_records WHERE "clearing_transfer_id" = $1);`

	queryObservationListByTransfer = `
		SELECT "id", "clearing_transfer_id", "leg_index", "account_id", "debit", "credit", "observed_at",
			"chart_version", "corrects_record_id"
		FROM observation_records WHERE "clearing_transfer_id" = $1 ORDER BY "leg_index" ASC;`

	queryObservationSumByAccount = `
		SELECT COALESCE(SUM("debit"), 0), COALESCE(SUM("credit"), 0)
		FROM observation_records WHERE "account_id" = $1 AND "observed_at" <= $2;`

	queryObservationSumAllAccounts = `
		SELECT "account_id", COALESCE(SUM("debit"), 0), COALESCE(SUM("credit"), 0)
		FROM observation_records GROUP BY "account_id" ORDER BY "account_id";`
)

// buildObservationInsert writes the whole set in one statement; legs already
// mirrored for the transfer are skipped.
func buildObservationInsert(set models.ObservationSet) sq.InsertBuilder {
	query := psql.Insert("observation_records").Columns(observationColumns...)
	for _, r := range set {
		query = query.Values(r.ID, r.ClearingTransferID, r.LegIndex, r.AccountID, r.Debit, r.Credit, r.ObservedAt,
			r.ChartVersion, toNullString(r.CorrectsRecordID))
	}
	return query.Suffix(`ON CONFLICT ("clearing_transfer_id", "leg_index") DO NOTHING`)
}

func buildObservationHistory(filter models.HistoryFilter) sq.SelectBuilder {
	query := psql.Select(observationColumns...).
		From("observation_records").
		Where(sq.Eq{`"account_id"`: filter.AccountID})

	if !filter.From.IsZero() {
		query = query.Where(sq.GtOrEq{`"observed_at"`: filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(sq.Lt{`"observed_at"`: filter.To})
	}
	if filter.Cursor != nil {
		query = query.Where(sq.Expr(`("observed_at", "id") > (?, ?)`, filter.Cursor.At, filter.Cursor.ID))
	}

	query = query.OrderBy(`"observed_at" ASC`, `"id" ASC`)
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	return query
}
