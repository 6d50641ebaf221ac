package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
)

type ObservationRepository interface {
	// InsertSet returns how many legs were new.
	InsertSet(ctx context.Context, set models.ObservationSet) (int64, error)
	ExistsForTransfer(ctx context.Context, transferID string) (bool, error)
	ListByTransfer(ctx context.Context, transferID string) (models.ObservationSet, error)
	SumByAccount(ctx context.Context, accountID string, asOf time.Time) (models.ObservationTotals, error)
	SumAllAccounts(ctx context.Context) ([]models.ObservationTotals, error)
	History(ctx context.Context, filter models.HistoryFilter) ([]models.ObservationRecord, error)
}

type observationRepository sqlRepo

var _ ObservationRepository = (*observationRepository)(nil)

func scanObservation(row rowScanner) (models.ObservationRecord, error) {
	var (
		rec      models.ObservationRecord
		corrects sql.NullString
	)

	err := row.Scan(
		&rec.ID,
		&rec.ClearingTransferID,
		&rec.LegIndex,
		&rec.AccountID,
		&rec.Debit,
		&rec.Credit,
		&rec.ObservedAt,
		&rec.ChartVersion,
		&corrects,
	)
	if err != nil {
		return rec, err
	}
	rec.CorrectsRecordID = fromNullString(corrects)

	return rec, nil
}

func (r *observationRepository) InsertSet(ctx context.Context, set models.ObservationSet) (inserted int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if len(set) == 0 {
		return 0, nil
	}

	query, args, err := buildObservationInsert(set).ToSql()
	if err != nil {
		return 0, err
	}

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *observationRepository) ExistsForTransfer(ctx context.Context, transferID string) (exists bool, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	err = db.QueryRowContext(ctx, queryObservationExists, transferID).Scan(&exists)
	return exists, err
}

func (r *observationRepository) ListByTransfer(ctx context.Context, transferID string) (set models.ObservationSet, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	rows, err := db.QueryContext(ctx, queryObservationListByTransfer, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rec, errScan := scanObservation(rows)
		if errScan != nil {
			return nil, errScan
		}
		set = append(set, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

func (r *observationRepository) SumByAccount(ctx context.Context, accountID string, asOf time.Time) (totals models.ObservationTotals, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("accountId", accountID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	totals.AccountID = accountID

	db := r.r.extractTxRead(ctx)
	err = db.QueryRowContext(ctx, queryObservationSumByAccount, accountID, asOf).Scan(&totals.Debit, &totals.Credit)
	return totals, err
}

func (r *observationRepository) SumAllAccounts(ctx context.Context) (res []models.ObservationTotals, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	rows, err := db.QueryContext(ctx, queryObservationSumAllAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t models.ObservationTotals
		if err = rows.Scan(&t.AccountID, &t.Debit, &t.Credit); err != nil {
			return nil, err
		}
		res = append(res, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *observationRepository) History(ctx context.Context, filter models.HistoryFilter) (res []models.ObservationRecord, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("accountId", filter.AccountID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	query, args, err := buildObservationHistory(filter).ToSql()
	if err != nil {
		return nil, err
	}

	db := r.r.extractTxRead(ctx)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rec, errScan := scanObservation(rows)
		if errScan != nil {
			return nil, errScan
		}
		res = append(res, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}
