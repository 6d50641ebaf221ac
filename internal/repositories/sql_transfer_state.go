package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
)

type TransferStateRepository interface {
	// Create remembers a transfer submitted to the engine; replays are no-ops.
	Create(ctx context.Context, rec *models.TransferRecord) (created bool, err error)
	GetByID(ctx context.Context, transferID string) (*models.TransferRecord, error)
	GetByIntentID(ctx context.Context, intentID string) (*models.TransferRecord, error)
	// UpdateState moves the transfer from one state to the next. It fails with
	// common.ErrInvalidTransition when the stored state is no longer from.
	UpdateState(ctx context.Context, transferID string, from, to models.TransferState, finalizedAt *time.Time, now time.Time) error
}

type transferStateRepository sqlRepo

var _ TransferStateRepository = (*transferStateRepository)(nil)

func scanTransferState(row rowScanner) (*models.TransferRecord, error) {
	var (
		rec           models.TransferRecord
		attestationID sql.NullString
		honoring      []byte
		finalizedAt   sql.NullTime
	)

	err := row.Scan(
		&rec.TransferID,
		&rec.IntentID,
		&attestationID,
		&rec.Kind,
		&rec.LedgerID,
		&rec.LedgerCode,
		&rec.DebitAccountID,
		&rec.CreditAccountID,
		&rec.Amount,
		&rec.Code,
		&rec.State,
		&honoring,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&finalizedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(honoring) > 0 {
		rec.Honoring = &models.HonoringSpec{}
		if err = fromJSON(honoring, rec.Honoring); err != nil {
			return nil, fmt.Errorf("failed to decode honoring spec: %w", err)
		}
	}
	rec.AttestationID = attestationID.String
	rec.FinalizedAt = fromNullTime(finalizedAt)

	return &rec, nil
}

func (r *transferStateRepository) Create(ctx context.Context, rec *models.TransferRecord) (created bool, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", rec.TransferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var honoring []byte
	if rec.Honoring != nil {
		if honoring, err = toJSON(rec.Honoring); err != nil {
			return false, err
		}
	}

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryTransferStateCreate,
		rec.TransferID,
		rec.IntentID,
		toNullString(&rec.AttestationID),
		rec.Kind,
		int64(rec.LedgerID),
		rec.LedgerCode,
		rec.DebitAccountID,
		rec.CreditAccountID,
		rec.Amount,
		int64(rec.Code),
		rec.State,
		honoring,
		rec.CreatedAt,
		rec.UpdatedAt,
		toNullTime(rec.FinalizedAt),
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

func (r *transferStateRepository) GetByID(ctx context.Context, transferID string) (rec *models.TransferRecord, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	rec, err = scanTransferState(db.QueryRowContext(ctx, queryTransferStateGetByID, transferID))
	if err != nil {
		return nil, notFound(err, "transfer "+transferID)
	}

	return rec, nil
}

func (r *transferStateRepository) GetByIntentID(ctx context.Context, intentID string) (rec *models.TransferRecord, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	rec, err = scanTransferState(db.QueryRowContext(ctx, queryTransferStateGetByIntentID, intentID))
	if err != nil {
		return nil, notFound(err, "transfer of intent "+intentID)
	}

	return rec, nil
}

func (r *transferStateRepository) UpdateState(ctx context.Context, transferID string, from, to models.TransferState, finalizedAt *time.Time, now time.Time) (err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: transfer %s from %s to %s", common.ErrInvalidTransition, transferID, from, to)
	}

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryTransferStateUpdate, transferID, from, to, toNullTime(finalizedAt), now)
	if err != nil {
		return err
	}

	if err = checkRowsAffected(res); err != nil {
		if errors.Is(err, common.ErrNoRowsAffected) {
			return fmt.Errorf("%w: transfer %s is no longer %s", common.ErrInvalidTransition, transferID, from)
		}
		return err
	}

	return nil
}
