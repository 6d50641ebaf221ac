package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
)

type HonoringOutcomeRepository interface {
	// Upsert records the outcome; applied is false when a terminal outcome
	// for the same transfer and rail already exists.
	Upsert(ctx context.Context, outcome *models.HonoringOutcome) (applied bool, err error)
	Get(ctx context.Context, transferID, rail string) (*models.HonoringOutcome, error)
	ListByTransfer(ctx context.Context, transferID string) ([]models.HonoringOutcome, error)
	ListRetrying(ctx context.Context, limit int) ([]models.HonoringOutcome, error)
}

type honoringOutcomeRepository sqlRepo

var _ HonoringOutcomeRepository = (*honoringOutcomeRepository)(nil)

func scanHonoringOutcome(row rowScanner) (*models.HonoringOutcome, error) {
	var (
		o         models.HonoringOutcome
		reference sql.NullString
		lastError sql.NullString
		spec      []byte
	)

	err := row.Scan(
		&o.TransferID,
		&o.IntentID,
		&o.Rail,
		&o.IdempotencyKey,
		&o.Status,
		&o.Attempts,
		&o.Amount,
		&o.Ledger,
		&reference,
		&lastError,
		&spec,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = fromJSON(spec, &o.Spec); err != nil {
		return nil, fmt.Errorf("failed to decode honoring spec: %w", err)
	}
	o.AdapterReference = reference.String
	o.LastError = lastError.String

	return &o, nil
}

func (r *honoringOutcomeRepository) Upsert(ctx context.Context, o *models.HonoringOutcome) (applied bool, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", o.TransferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	spec, err := toJSON(o.Spec)
	if err != nil {
		return false, err
	}

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryHonoringOutcomeUpsert,
		o.TransferID,
		o.IntentID,
		o.Rail,
		o.IdempotencyKey,
		o.Status,
		o.Attempts,
		o.Amount,
		o.Ledger,
		toNullString(&o.AdapterReference),
		toNullString(&o.LastError),
		spec,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *honoringOutcomeRepository) Get(ctx context.Context, transferID, rail string) (o *models.HonoringOutcome, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	o, err = scanHonoringOutcome(db.QueryRowContext(ctx, queryHonoringOutcomeGet, transferID, rail))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("honoring outcome %s/%s", transferID, rail))
	}

	return o, nil
}

func (r *honoringOutcomeRepository) ListByTransfer(ctx context.Context, transferID string) (res []models.HonoringOutcome, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return r.list(ctx, queryHonoringOutcomeListByTransfer, transferID)
}

func (r *honoringOutcomeRepository) ListRetrying(ctx context.Context, limit int) (res []models.HonoringOutcome, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return r.list(ctx, queryHonoringOutcomeListRetrying, limit)
}

func (r *honoringOutcomeRepository) list(ctx context.Context, query string, args ...any) ([]models.HonoringOutcome, error) {
	db := r.r.extractTxRead(ctx)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.HonoringOutcome
	for rows.Next() {
		o, errScan := scanHonoringOutcome(rows)
		if errScan != nil {
			return nil, errScan
		}
		res = append(res, *o)
	}

	return res, rows.Err()
}
