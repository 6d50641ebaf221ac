package repositories

import (
	"context"
	"database/sql"

	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
)

type IntentRepository interface {
	// Create stores the record unless its idempotency key is already known.
	Create(ctx context.Context, rec *models.IntentRecord) (created bool, err error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.IntentRecord, error)
	GetByID(ctx context.Context, id string) (*models.IntentRecord, error)
	UpdateResult(ctx context.Context, rec *models.IntentRecord) error
}

type intentRepository sqlRepo

var _ IntentRepository = (*intentRepository)(nil)

func scanIntent(row rowScanner) (*models.IntentRecord, error) {
	var (
		rec           models.IntentRecord
		reasonCode    sql.NullString
		reason        sql.NullString
		transferID    sql.NullString
		attestationID sql.NullString
		payload       []byte
	)

	err := row.Scan(
		&rec.ID,
		&rec.IdempotencyKey,
		&rec.Kind,
		&rec.Ledger,
		&rec.Amount,
		&rec.Status,
		&reasonCode,
		&reason,
		&transferID,
		&attestationID,
		&payload,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ReasonCode = reasonCode.String
	rec.Reason = reason.String
	rec.TransferID = transferID.String
	rec.AttestationID = attestationID.String
	if len(payload) > 0 {
		rec.Payload = payload
	}

	return &rec, nil
}

func (r *intentRepository) Create(ctx context.Context, rec *models.IntentRecord) (created bool, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("idempotencyKey", rec.IdempotencyKey))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var payload []byte
	if len(rec.Payload) > 0 {
		payload = rec.Payload
	}

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryIntentCreate,
		rec.ID,
		rec.IdempotencyKey,
		rec.Kind,
		rec.Ledger,
		rec.Amount,
		rec.Status,
		toNullString(&rec.ReasonCode),
		toNullString(&rec.Reason),
		toNullString(&rec.TransferID),
		toNullString(&rec.AttestationID),
		payload,
		rec.CreatedAt,
		rec.UpdatedAt,
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

func (r *intentRepository) GetByIdempotencyKey(ctx context.Context, key string) (rec *models.IntentRecord, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	rec, err = scanIntent(db.QueryRowContext(ctx, queryIntentGetByIdempotencyKey, key))
	if err != nil {
		return nil, notFound(err, "intent with idempotency key "+key)
	}

	return rec, nil
}

func (r *intentRepository) GetByID(ctx context.Context, id string) (rec *models.IntentRecord, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	rec, err = scanIntent(db.QueryRowContext(ctx, queryIntentGetByID, id))
	if err != nil {
		return nil, notFound(err, "intent "+id)
	}

	return rec, nil
}

func (r *intentRepository) UpdateResult(ctx context.Context, rec *models.IntentRecord) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryIntentUpdateResult,
		rec.ID,
		rec.Status,
		toNullString(&rec.ReasonCode),
		toNullString(&rec.Reason),
		toNullString(&rec.TransferID),
		toNullString(&rec.AttestationID),
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return checkRowsAffected(res)
}
