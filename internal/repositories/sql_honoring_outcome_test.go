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

func newHonoringOutcomeRepo(t *testing.T) (HonoringOutcomeRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLRepository(db, db, config.Config{}).GetHonoringOutcomeRepository(), mock
}

var honoringOutcomeRowColumns = []string{"transfer_id", "intent_id", "rail", "idempotency_key", "status", "attempts",
	"amount", "ledger", "adapter_reference", "last_error", "spec", "created_at", "updated_at"}

func TestHonoringOutcomeRepository_Upsert(t *testing.T) {
	repo, mock := newHonoringOutcomeRepo(t)
	now := time.Now().UTC()

	outcome := models.HonoringOutcome{
		TransferID:     "t-1",
		IntentID:       "int-1",
		Rail:           "ach",
		IdempotencyKey: models.HonoringIdempotencyKey("t-1"),
		Status:         models.HonoringStatusSuccess,
		Attempts:       2,
		Amount:         decimal.NewFromInt(500),
		Ledger:         "USD",
		Spec:           models.HonoringSpec{Rail: "ach"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectExec(regexp.QuoteMeta(queryHonoringOutcomeUpsert)).WillReturnResult(sqlmock.NewResult(0, 1))
	applied, err := repo.Upsert(context.Background(), &outcome)
	require.NoError(t, err)
	assert.True(t, applied)

	// a terminal row already exists
	mock.ExpectExec(regexp.QuoteMeta(queryHonoringOutcomeUpsert)).WillReturnResult(sqlmock.NewResult(0, 0))
	applied, err = repo.Upsert(context.Background(), &outcome)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHonoringOutcomeRepository_Reads(t *testing.T) {
	repo, mock := newHonoringOutcomeRepo(t)
	now := time.Now().UTC()
	spec := []byte(`{"rail":"ach"}`)

	mock.ExpectQuery(regexp.QuoteMeta(queryHonoringOutcomeGet)).
		WithArgs("t-1", "ach").
		WillReturnRows(sqlmock.NewRows(honoringOutcomeRowColumns).
			AddRow("t-1", "int-1", "ach", "honor-t-1", "FAILED", 5, "500", "USD", nil, "account closed", spec, now, now))

	got, err := repo.Get(context.Background(), "t-1", "ach")
	require.NoError(t, err)
	assert.Equal(t, models.HonoringStatusFailed, got.Status)
	assert.Equal(t, "account closed", got.LastError)
	assert.Equal(t, "ach", got.Spec.Rail)

	mock.ExpectQuery(regexp.QuoteMeta(queryHonoringOutcomeGet)).
		WithArgs("t-2", "ach").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "t-2", "ach")
	assert.ErrorIs(t, err, common.ErrDataNotFound)

	mock.ExpectQuery(regexp.QuoteMeta(queryHonoringOutcomeListRetrying)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(honoringOutcomeRowColumns).
			AddRow("t-3", "int-3", "ach", "honor-t-3", "RETRYING", 1, "20", "USD", nil, "timeout", spec, now, now).
			AddRow("t-4", "int-4", "card", "honor-t-4", "RETRYING", 3, "35", "USD", nil, "timeout", spec, now, now))

	retrying, err := repo.ListRetrying(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, retrying, 2)

	mock.ExpectQuery(regexp.QuoteMeta(queryHonoringOutcomeListByTransfer)).
		WithArgs("t-5").
		WillReturnRows(sqlmock.NewRows(honoringOutcomeRowColumns))

	list, err := repo.ListByTransfer(context.Background(), "t-5")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}
