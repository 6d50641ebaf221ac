package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestBindingRepositoryTestSuite(t *testing.T) {
	t.Helper()
	suite.Run(t, new(bindingTestSuite))
}

type bindingTestSuite struct {
	suite.Suite
	t      *testing.T
	db     *sql.DB
	mock   sqlmock.Sqlmock
	repo   BindingRepository
	tx     SQLRepository
	now    time.Time
	sample models.RecipientAccountBinding
}

func (suite *bindingTestSuite) SetupTest() {
	var err error

	suite.db, suite.mock, err = sqlmock.New()
	require.NoError(suite.T(), err)

	suite.t = suite.T()
	suite.tx = NewSQLRepository(suite.db, suite.db, config.Config{})
	suite.repo = suite.tx.GetBindingRepository()
	suite.now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	descriptor := models.ExternalAccountDescriptor{
		Type:          models.ExternalAccountBank,
		HolderName:    "Jordan Lee",
		RoutingNumber: "110000000",
		AccountNumber: "000123456789",
	}
	suite.sample = models.RecipientAccountBinding{
		ID:                    "bnd-1",
		RecipientID:           "rcp-1",
		AccountID:             "acc-payroll-rcp-1",
		Ledger:                "USD",
		Descriptor:            descriptor,
		DescriptorFingerprint: descriptor.Fingerprint(),
		Status:                models.BindingStatusUnverified,
		CreatedAt:             suite.now,
		UpdatedAt:             suite.now,
	}
}

func (suite *bindingTestSuite) TearDownTest() {
	defer suite.db.Close()
}

func bindingRows(bindings ...models.RecipientAccountBinding) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "recipient_id", "account_id", "ledger", "descriptor", "descriptor_fingerprint", "status", "method",
		"is_default", "micro_deposit_amounts", "micro_deposit_attempts", "micro_deposit_expires_at", "verified_at",
		"failure_reason", "reviewer", "created_at", "updated_at",
	})
	for _, b := range bindings {
		descriptor, _ := toJSON(b.Descriptor)
		amounts, _ := pq.Array(decimalsToStrings(b.MicroDepositAmounts)).(driver.Valuer).Value()

		var method, expiresAt, verifiedAt any
		if b.Method != "" {
			method = string(b.Method)
		}
		if b.MicroDepositExpiresAt != nil {
			expiresAt = *b.MicroDepositExpiresAt
		}
		if b.VerifiedAt != nil {
			verifiedAt = *b.VerifiedAt
		}

		rows.AddRow(b.ID, b.RecipientID, b.AccountID, b.Ledger, descriptor, b.DescriptorFingerprint, string(b.Status),
			method, b.IsDefault, amounts, b.MicroDepositAttempts, expiresAt, verifiedAt, nil, nil, b.CreatedAt, b.UpdatedAt)
	}
	return rows
}

func (suite *bindingTestSuite) TestRepository_Create() {
	testCases := []struct {
		name    string
		doMock  func()
		wantErr error
	}{
		{
			name: "success",
			doMock: func() {
				suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingCreate)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate descriptor",
			doMock: func() {
				suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingCreate)).
					WillReturnError(&pq.Error{Code: pqUniqueViolation})
			},
			wantErr: common.ErrDataExist,
		},
		{
			name: "db error",
			doMock: func() {
				suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingCreate)).
					WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range testCases {
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.doMock()

			b := suite.sample
			err := suite.repo.Create(context.Background(), &b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if err = suite.mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func (suite *bindingTestSuite) TestRepository_GetByID() {
	expires := suite.now.Add(72 * time.Hour)
	pending := suite.sample
	pending.Status = models.BindingStatusPendingVerification
	pending.Method = models.VerificationMicroDeposit
	pending.MicroDepositAmounts = []decimal.Decimal{decimal.RequireFromString("0.12"), decimal.RequireFromString("0.34")}
	pending.MicroDepositAttempts = 1
	pending.MicroDepositExpiresAt = &expires

	suite.t.Run("found", func(t *testing.T) {
		suite.mock.ExpectQuery(regexp.QuoteMeta(queryBindingGetByID)).
			WithArgs("bnd-1").
			WillReturnRows(bindingRows(pending))

		got, err := suite.repo.GetByID(context.Background(), "bnd-1")
		require.NoError(t, err)
		assert.Equal(t, models.BindingStatusPendingVerification, got.Status)
		assert.Equal(t, models.VerificationMicroDeposit, got.Method)
		assert.Equal(t, pending.Descriptor, got.Descriptor)
		assert.True(t, got.MatchMicroDeposits(pending.MicroDepositAmounts))
		require.NotNil(t, got.MicroDepositExpiresAt)
		assert.True(t, expires.Equal(*got.MicroDepositExpiresAt))
		assert.Nil(t, got.VerifiedAt)
	})

	suite.t.Run("not found", func(t *testing.T) {
		suite.mock.ExpectQuery(regexp.QuoteMeta(queryBindingGetByID)).
			WithArgs("bnd-x").
			WillReturnError(sql.ErrNoRows)

		_, err := suite.repo.GetByID(context.Background(), "bnd-x")
		assert.ErrorIs(t, err, common.ErrDataNotFound)
	})

	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_ListByRecipient() {
	second := suite.sample
	second.ID = "bnd-2"
	second.IsDefault = true

	suite.mock.ExpectQuery(regexp.QuoteMeta(queryBindingListByRecipient)).
		WithArgs("rcp-1").
		WillReturnRows(bindingRows(suite.sample, second))

	got, err := suite.repo.ListByRecipient(context.Background(), "rcp-1")
	require.NoError(suite.t, err)
	require.Len(suite.t, got, 2)
	assert.Equal(suite.t, "bnd-1", got[0].ID)
	assert.True(suite.t, got[1].IsDefault)
	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_UpdateVerification() {
	verified := suite.sample
	verified.Status = models.BindingStatusVerified
	verified.Method = models.VerificationInstant
	verified.VerifiedAt = &suite.now

	suite.t.Run("status moved", func(t *testing.T) {
		suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingUpdateVerification)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := suite.repo.UpdateVerification(context.Background(), &verified, models.BindingStatusUnverified)
		assert.NoError(t, err)
	})

	suite.t.Run("concurrent writer won", func(t *testing.T) {
		suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingUpdateVerification)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := suite.repo.UpdateVerification(context.Background(), &verified, models.BindingStatusUnverified)
		assert.ErrorIs(t, err, common.ErrConcurrentUpdate)
	})

	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_CountActive() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(queryBindingCountActive)).
		WithArgs("rcp-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.CountActive(context.Background(), "rcp-1")
	require.NoError(suite.t, err)
	assert.Equal(suite.t, 3, count)
	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_ExpireMicroDeposits() {
	suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingExpireMicroDeposits)).
		WithArgs(suite.now, common.ErrMicroDepositWindow.Error()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := suite.repo.ExpireMicroDeposits(context.Background(), suite.now)
	require.NoError(suite.t, err)
	assert.Equal(suite.t, int64(2), n)
	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_SwitchDefaultInsideAtomic() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingVersionEnsure)).
		WithArgs("rcp-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectQuery(regexp.QuoteMeta(queryBindingVersionGet)).
		WithArgs("rcp-1").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(4))
	suite.mock.ExpectExec(regexp.QuoteMeta(querySwitchDefault)).
		WithArgs("rcp-1", "bnd-2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingVersionCAS)).
		WithArgs("rcp-1", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	err := suite.tx.Atomic(context.Background(), func(ctx context.Context, r SQLRepository) error {
		repo := r.GetBindingRepository()
		if err := repo.EnsureVersion(ctx, "rcp-1"); err != nil {
			return err
		}
		version, err := repo.GetVersion(ctx, "rcp-1")
		if err != nil {
			return err
		}
		if err = repo.SwitchDefault(ctx, "rcp-1", "bnd-2"); err != nil {
			return err
		}
		swapped, err := repo.CompareAndSwapVersion(ctx, "rcp-1", version)
		if err != nil {
			return err
		}
		if !swapped {
			return common.ErrConcurrentUpdate
		}
		return nil
	})
	require.NoError(suite.t, err)
	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_CompareAndSwapVersionLost() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingVersionCAS)).
		WithArgs("rcp-1", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectRollback()

	err := suite.tx.Atomic(context.Background(), func(ctx context.Context, r SQLRepository) error {
		swapped, err := r.GetBindingRepository().CompareAndSwapVersion(ctx, "rcp-1", 4)
		if err != nil {
			return err
		}
		if !swapped {
			return common.ErrConcurrentUpdate
		}
		return nil
	})
	assert.ErrorIs(suite.t, err, common.ErrConcurrentUpdate)
	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}

func (suite *bindingTestSuite) TestRepository_SwitchDefaultRolledBackOnLostVersion() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingVersionEnsure)).
		WithArgs("rcp-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectQuery(regexp.QuoteMeta(queryBindingVersionGet)).
		WithArgs("rcp-1").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(4))
	suite.mock.ExpectExec(regexp.QuoteMeta(querySwitchDefault)).
		WithArgs("rcp-1", "bnd-2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	// another writer bumped the version after it was read
	suite.mock.ExpectExec(regexp.QuoteMeta(queryBindingVersionCAS)).
		WithArgs("rcp-1", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectRollback()

	switched := false
	err := suite.tx.Atomic(context.Background(), func(ctx context.Context, r SQLRepository) error {
		repo := r.GetBindingRepository()
		if err := repo.EnsureVersion(ctx, "rcp-1"); err != nil {
			return err
		}
		version, err := repo.GetVersion(ctx, "rcp-1")
		if err != nil {
			return err
		}
		if err = repo.SwitchDefault(ctx, "rcp-1", "bnd-2"); err != nil {
			return err
		}
		switched = true
		swapped, err := repo.CompareAndSwapVersion(ctx, "rcp-1", version)
		if err != nil {
			return err
		}
		if !swapped {
			return common.ErrConcurrentUpdate
		}
		return nil
	})
	require.ErrorIs(suite.t, err, common.ErrConcurrentUpdate)
	assert.True(suite.t, switched)
	// the switch ran inside the transaction and is undone by the rollback,
	// no commit is expected
	assert.NoError(suite.t, suite.mock.ExpectationsWereMet())
}
