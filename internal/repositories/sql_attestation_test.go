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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestAttestationRepositoryTestSuite(t *testing.T) {
	t.Helper()
	suite.Run(t, new(attestationTestSuite))
}

type attestationTestSuite struct {
	suite.Suite
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo AttestationRepository
	now  time.Time
}

func (suite *attestationTestSuite) SetupTest() {
	var err error

	suite.db, suite.mock, err = sqlmock.New()
	require.NoError(suite.T(), err)

	suite.repo = NewSQLRepository(suite.db, suite.db, config.Config{}).GetAttestationRepository()
	suite.now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *attestationTestSuite) TearDownTest() {
	defer suite.db.Close()
}

func (suite *attestationTestSuite) sample() models.Attestation {
	return models.Attestation{
		ID:                 "att-1",
		IntentID:           "int-1",
		IntentFingerprint:  "fp-1",
		IdempotencyKey:     "payroll-2026-03-jordan",
		IssuedAt:           suite.now,
		ExpiresAt:          suite.now.Add(15 * time.Minute),
		Nonce:              "n-1",
		PolicyChecksPassed: []string{"per_intent_limit", "denylist"},
		RuleSetVersion:     "policy-v1",
		Status:             models.AttestationStatusAttested,
	}
}

func (suite *attestationTestSuite) TestRepository_Create() {
	a := suite.sample()

	suite.mock.ExpectExec(regexp.QuoteMeta(queryAttestationCreate)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(suite.T(), suite.repo.Create(context.Background(), &a))

	suite.mock.ExpectExec(regexp.QuoteMeta(queryAttestationCreate)).
		WillReturnError(assert.AnError)
	assert.ErrorIs(suite.T(), suite.repo.Create(context.Background(), &a), assert.AnError)

	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *attestationTestSuite) TestRepository_GetByID() {
	a := suite.sample()

	rows := sqlmock.NewRows([]string{"id", "intent_id", "intent_fingerprint", "idempotency_key", "issued_at",
		"expires_at", "nonce", "policy_checks_passed", "violations", "rule_set_version", "status", "consumed_at"}).
		AddRow(a.ID, a.IntentID, a.IntentFingerprint, a.IdempotencyKey, a.IssuedAt, a.ExpiresAt, a.Nonce,
			"{per_intent_limit,denylist}", "{}", a.RuleSetVersion, "ATTESTED", nil)
	suite.mock.ExpectQuery(regexp.QuoteMeta(queryAttestationGetByID)).WithArgs("att-1").WillReturnRows(rows)

	got, err := suite.repo.GetByID(context.Background(), "att-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"per_intent_limit", "denylist"}, got.PolicyChecksPassed)
	assert.Empty(suite.T(), got.Violations)
	assert.Equal(suite.T(), models.AttestationStatusAttested, got.Status)
	assert.Nil(suite.T(), got.ConsumedAt)

	suite.mock.ExpectQuery(regexp.QuoteMeta(queryAttestationGetByID)).WithArgs("att-x").WillReturnError(sql.ErrNoRows)
	_, err = suite.repo.GetByID(context.Background(), "att-x")
	assert.ErrorIs(suite.T(), err, common.ErrDataNotFound)

	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *attestationTestSuite) TestRepository_Consume() {
	testCases := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "first consumer", affected: 1, want: true},
		{name: "already consumed or expired", affected: 0, want: false},
	}

	for _, tt := range testCases {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.mock.ExpectExec(regexp.QuoteMeta(queryAttestationConsume)).
				WithArgs("att-1", "fp-1", suite.now).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := suite.repo.Consume(context.Background(), "att-1", "fp-1", suite.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *attestationTestSuite) TestRepository_ExpireStale() {
	suite.mock.ExpectExec(regexp.QuoteMeta(queryAttestationExpireStale)).
		WithArgs(suite.now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := suite.repo.ExpireStale(context.Background(), suite.now)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), n)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
