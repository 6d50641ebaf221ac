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

	"github.com/lib/pq"
)

type BindingRepository interface {
	Create(ctx context.Context, b *models.RecipientAccountBinding) error
	GetByID(ctx context.Context, id string) (*models.RecipientAccountBinding, error)
	// GetByIDForUpdate locks the row; only meaningful inside Atomic.
	GetByIDForUpdate(ctx context.Context, id string) (*models.RecipientAccountBinding, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]models.RecipientAccountBinding, error)
	GetDefault(ctx context.Context, recipientID string) (*models.RecipientAccountBinding, error)
	CountActive(ctx context.Context, recipientID string) (int, error)
	// UpdateVerification writes the verification fields when the stored
	// status still equals fromStatus.
	UpdateVerification(ctx context.Context, b *models.RecipientAccountBinding, fromStatus models.BindingStatus) error
	SwitchDefault(ctx context.Context, recipientID, bindingID string) error
	ExpireMicroDeposits(ctx context.Context, now time.Time) (int64, error)

	EnsureVersion(ctx context.Context, recipientID string) error
	GetVersion(ctx context.Context, recipientID string) (int64, error)
	// CompareAndSwapVersion bumps the version if it still equals expected.
	CompareAndSwapVersion(ctx context.Context, recipientID string, expected int64) (bool, error)
}

type bindingRepository sqlRepo

var _ BindingRepository = (*bindingRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*models.RecipientAccountBinding, error) {
	var (
		b             models.RecipientAccountBinding
		descriptor    []byte
		method        sql.NullString
		amounts       []string
		expiresAt     sql.NullTime
		verifiedAt    sql.NullTime
		failureReason sql.NullString
		reviewer      sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&b.RecipientID,
		&b.AccountID,
		&b.Ledger,
		&descriptor,
		&b.DescriptorFingerprint,
		&b.Status,
		&method,
		&b.IsDefault,
		pq.Array(&amounts),
		&b.MicroDepositAttempts,
		&expiresAt,
		&verifiedAt,
		&failureReason,
		&reviewer,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = fromJSON(descriptor, &b.Descriptor); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}
	if b.MicroDepositAmounts, err = stringsToDecimals(amounts); err != nil {
		return nil, fmt.Errorf("failed to decode micro deposit amounts: %w", err)
	}

	b.Method = models.VerificationMethod(method.String)
	b.MicroDepositExpiresAt = fromNullTime(expiresAt)
	b.VerifiedAt = fromNullTime(verifiedAt)
	b.FailureReason = failureReason.String
	b.Reviewer = reviewer.String

	return &b, nil
}

func (r *bindingRepository) Create(ctx context.Context, b *models.RecipientAccountBinding) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	descriptor, err := toJSON(b.Descriptor)
	if err != nil {
		return err
	}

	db := r.r.extractTxWrite(ctx)
	_, err = db.ExecContext(ctx, queryBindingCreate,
		b.ID,
		b.RecipientID,
		b.AccountID,
		b.Ledger,
		descriptor,
		b.DescriptorFingerprint,
		b.Status,
		sql.NullString{String: string(b.Method), Valid: b.Method != ""},
		b.IsDefault,
		pq.Array(decimalsToStrings(b.MicroDepositAmounts)),
		b.MicroDepositAttempts,
		toNullTime(b.MicroDepositExpiresAt),
		toNullTime(b.VerifiedAt),
		toNullString(&b.FailureReason),
		toNullString(&b.Reviewer),
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: binding for recipient %s", common.ErrDataExist, b.RecipientID)
		}
		return err
	}

	return nil
}

func (r *bindingRepository) GetByID(ctx context.Context, id string) (b *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	b, err = scanBinding(db.QueryRowContext(ctx, queryBindingGetByID, id))
	if err != nil {
		return nil, notFound(err, "binding "+id)
	}

	return b, nil
}

func (r *bindingRepository) GetByIDForUpdate(ctx context.Context, id string) (b *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	b, err = scanBinding(db.QueryRowContext(ctx, queryBindingGetByIDForUpdate, id))
	if err != nil {
		return nil, notFound(err, "binding "+id)
	}

	return b, nil
}

func (r *bindingRepository) ListByRecipient(ctx context.Context, recipientID string) (res []models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	rows, err := db.QueryContext(ctx, queryBindingListByRecipient, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		b, errScan := scanBinding(rows)
		if errScan != nil {
			return nil, errScan
		}
		res = append(res, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *bindingRepository) GetDefault(ctx context.Context, recipientID string) (b *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxRead(ctx)
	b, err = scanBinding(db.QueryRowContext(ctx, queryBindingGetDefault, recipientID))
	if err != nil {
		return nil, notFound(err, "default binding of "+recipientID)
	}

	return b, nil
}

func (r *bindingRepository) CountActive(ctx context.Context, recipientID string) (count int, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	err = db.QueryRowContext(ctx, queryBindingCountActive, recipientID).Scan(&count)
	return count, err
}

func (r *bindingRepository) UpdateVerification(ctx context.Context, b *models.RecipientAccountBinding, fromStatus models.BindingStatus) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryBindingUpdateVerification,
		b.ID,
		b.Status,
		sql.NullString{String: string(b.Method), Valid: b.Method != ""},
		pq.Array(decimalsToStrings(b.MicroDepositAmounts)),
		b.MicroDepositAttempts,
		toNullTime(b.MicroDepositExpiresAt),
		toNullTime(b.VerifiedAt),
		toNullString(&b.FailureReason),
		toNullString(&b.Reviewer),
		b.UpdatedAt,
		fromStatus,
	)
	if err != nil {
		return err
	}

	if err = checkRowsAffected(res); err != nil {
		if errors.Is(err, common.ErrNoRowsAffected) {
			return fmt.Errorf("%w: binding %s left status %s", common.ErrConcurrentUpdate, b.ID, fromStatus)
		}
		return err
	}

	return nil
}

func (r *bindingRepository) SwitchDefault(ctx context.Context, recipientID, bindingID string) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, querySwitchDefault, recipientID, bindingID)
	if err != nil {
		return err
	}

	return checkRowsAffected(res)
}

func (r *bindingRepository) ExpireMicroDeposits(ctx context.Context, now time.Time) (n int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryBindingExpireMicroDeposits, now, common.ErrMicroDepositWindow.Error())
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *bindingRepository) EnsureVersion(ctx context.Context, recipientID string) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	_, err = db.ExecContext(ctx, queryBindingVersionEnsure, recipientID)
	return err
}

func (r *bindingRepository) GetVersion(ctx context.Context, recipientID string) (version int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	err = db.QueryRowContext(ctx, queryBindingVersionGet, recipientID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}

func (r *bindingRepository) CompareAndSwapVersion(ctx context.Context, recipientID string, expected int64) (swapped bool, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.extractTxWrite(ctx)
	res, err := db.ExecContext(ctx, queryBindingVersionCAS, recipientID, expected)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
