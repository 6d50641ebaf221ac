package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntentRepo(t *testing.T) (IntentRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLRepository(db, db, config.Config{}).GetIntentRepository(), mock
}

func TestIntentRepository_Create(t *testing.T) {
	repo, mock := newIntentRepo(t)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := models.IntentRecord{
		ID:             "int-1",
		IdempotencyKey: "payroll-2026-03-jordan",
		Kind:           models.IntentKindPayroll,
		Ledger:         "USD",
		Amount:         decimal.NewFromInt(500),
		Status:         models.IntentStatusAccepted,
		TransferID:     "t-1",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tests := []struct {
		name    string
		result  int64
		err     error
		want    bool
		wantErr bool
	}{
		{name: "new key", result: 1, want: true},
		{name: "duplicate key keeps first record", result: 0, want: false},
		{name: "db error", err: assert.AnError, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := mock.ExpectExec(regexp.QuoteMeta(queryIntentCreate))
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result))
			}

			got, err := repo.Create(context.Background(), &rec)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepository_GetByIdempotencyKey(t *testing.T) {
	repo, mock := newIntentRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "idempotency_key", "kind", "ledger", "amount", "status", "reason_code",
		"reason", "transfer_id", "attestation_id", "payload", "created_at", "updated_at"}).
		AddRow("int-1", "k-1", "payroll", "USD", "500", "REJECTED", "policy_violation", "per intent limit", nil, nil,
			nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(queryIntentGetByIdempotencyKey)).WithArgs("k-1").WillReturnRows(rows)

	got, err := repo.GetByIdempotencyKey(context.Background(), "k-1")
	require.NoError(t, err)
	assert.Equal(t, models.IntentStatusRejected, got.Status)
	assert.Equal(t, "policy_violation", got.ReasonCode)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, got.TransferID)
	assert.Nil(t, got.Payload)

	mock.ExpectQuery(regexp.QuoteMeta(queryIntentGetByIdempotencyKey)).WithArgs("k-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByIdempotencyKey(context.Background(), "k-2")
	assert.ErrorIs(t, err, common.ErrDataNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepository_UpdateResult(t *testing.T) {
	repo, mock := newIntentRepo(t)
	rec := models.IntentRecord{ID: "int-1", Status: models.IntentStatusCleared, TransferID: "t-1", UpdatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta(queryIntentUpdateResult)).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateResult(context.Background(), &rec))

	mock.ExpectExec(regexp.QuoteMeta(queryIntentUpdateResult)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateResult(context.Background(), &rec), common.ErrNoRowsAffected)

	assert.NoError(t, mock.ExpectationsWereMet())
}
