package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"github.com/lib/pq"
)

type AttestationRepository interface {
	Create(ctx context.Context, a *models.Attestation) error
	GetByID(ctx context.Context, id string) (*models.Attestation, error)
	// Consume marks the attestation CONSUMED. It returns false when the row
	// was already consumed, expired, or issued for another fingerprint.
	Consume(ctx context.Context, id, fingerprint string, now time.Time) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type attestationRepository sqlRepo

var _ AttestationRepository = (*attestationRepository)(nil)

func scanAttestation(row rowScanner) (*models.Attestation, error) {
	var (
		a          models.Attestation
		consumedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.IntentID,
		&a.IntentFingerprint,
		&a.IdempotencyKey,
		&a.IssuedAt,
		&a.ExpiresAt,
		&a.Nonce,
		pq.Array(&a.PolicyChecksPassed),
		pq.Array(&a.Violations),
		&a.RuleSetVersion,
		&a.Status,
		&consumedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ConsumedAt = fromNullTime(consumedAt)

	return &a, nil
}

func (r *attestationRepository) Create(ctx context.Context, a *models.Attestation) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	_, err = db.ExecContext(ctx, queryAttestationCreate,
		a.ID,
		a.IntentID,
		a.IntentFingerprint,
		a.IdempotencyKey,
		a.IssuedAt,
		a.ExpiresAt,
		a.Nonce,
		pq.Array(a.PolicyChecksPassed),
		pq.Array(a.Violations),
		a.RuleSetVersion,
		a.Status,
		toNullTime(a.ConsumedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: attestation %s", common.ErrDataExist, a.ID)
		}
		return err
	}

	return nil
}

func (r *attestationRepository) GetByID(ctx context.Context, id string) (a *models.Attestation, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	a, err = scanAttestation(db.QueryRowContext(ctx, queryAttestationGetByID, id))
	if err != nil {
		return nil, notFound(err, "attestation "+id)
	}

	return a, nil
}

func (r *attestationRepository) Consume(ctx context.Context, id, fingerprint string, now time.Time) (consumed bool, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("attestationId", id))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryAttestationConsume, id, fingerprint, now)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *attestationRepository) ExpireStale(ctx context.Context, now time.Time) (n int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryAttestationExpireStale, now)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
