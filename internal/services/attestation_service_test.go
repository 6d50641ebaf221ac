package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
	"github.com/sovr-labs/go-fp-clearing/internal/services/policy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func payrollIntent(id, key, amount string) models.Intent {
	return models.Intent{
		ID:             id,
		Kind:           models.IntentKindPayroll,
		Amount:         decimal.RequireFromString(amount),
		Ledger:         "USD",
		Source:         models.PartyDescriptor{AccountID: "acc-employer"},
		Destination:    models.PartyDescriptor{RecipientID: recipientJordan},
		IdempotencyKey: key,
		CreatedAt:      testStart,
	}
}

func TestAttestation_Attest(t *testing.T) {
	t.Run("attested", func(t *testing.T) {
		f := newFixture(t)
		f.fundedPayroll()

		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "500.00"))
		require.NoError(t, err)

		assert.Equal(t, models.AttestationStatusAttested, att.Status)
		assert.Equal(t, "int-1", att.IntentID)
		assert.Equal(t, testStart.Add(15*time.Minute), att.ExpiresAt)
		assert.Equal(t, "policy-v1", att.RuleSetVersion)
		assert.NotEmpty(t, att.Nonce)
		assert.Empty(t, att.Violations)
		assert.Equal(t, []string{
			"recipient_verified",
			policy.CheckPositiveAmount,
			policy.CheckPerIntentMax,
			policy.CheckVelocityMax,
			policy.CheckDenylist,
		}, att.PolicyChecksPassed)

		stored, err := f.srv.Attestation.Get(f.ctx, att.ID)
		require.NoError(t, err)
		assert.Equal(t, att.IntentFingerprint, stored.IntentFingerprint)
	})

	t.Run("internal transfer needs no recipient", func(t *testing.T) {
		f := newFixture(t)

		att, err := f.srv.Attestation.Attest(f.ctx, transferIntent("int-1", "key-1", "50.00"))
		require.NoError(t, err)
		assert.NotContains(t, att.PolicyChecksPassed, "recipient_verified")
	})

	t.Run("unverified recipient is denied", func(t *testing.T) {
		f := newFixture(t)

		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "500.00"))
		require.ErrorIs(t, err, common.ErrUnverifiedRecipient)
		require.NotNil(t, att)
		assert.Equal(t, models.AttestationStatusDenied, att.Status)
		assert.Equal(t, []string{"recipient_verified"}, att.Violations)
	})

	t.Run("per intent max", func(t *testing.T) {
		f := newFixture(t)
		f.fundedPayroll()

		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "10000.01"))
		require.ErrorIs(t, err, common.ErrPolicyViolation)
		assert.Equal(t, models.AttestationStatusDenied, att.Status)
		assert.Contains(t, att.Violations, policy.CheckPerIntentMax)
	})

	t.Run("denylisted holder", func(t *testing.T) {
		f := newFixture(t)
		descriptor := jordanDescriptor()
		descriptor.HolderName = "  sanctioned person "
		f.verifiedBinding(recipientJordan, "acc-payroll-jordan", descriptor)

		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "10.00"))
		require.ErrorIs(t, err, common.ErrPolicyViolation)
		assert.Equal(t, []string{policy.CheckDenylist}, att.Violations)
	})

	t.Run("duplicate idempotency key", func(t *testing.T) {
		f := newFixture(t)
		f.fundedPayroll()

		_, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "10.00"))
		require.NoError(t, err)

		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-2", "key-1", "10.00"))
		assert.ErrorIs(t, err, common.ErrDuplicateIntent)
		assert.Nil(t, att)
	})

	t.Run("denied intent still claims its key", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "10.00"))
		require.ErrorIs(t, err, common.ErrUnverifiedRecipient)

		f.fundedPayroll()
		_, err = f.srv.Attestation.Attest(f.ctx, payrollIntent("int-2", "key-1", "10.00"))
		assert.ErrorIs(t, err, common.ErrDuplicateIntent)
	})
}

func TestAttestation_Velocity(t *testing.T) {
	t.Run("window total counts attested amounts", func(t *testing.T) {
		f := newFixture(t)
		f.fundedPayroll()

		_, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "700.00"))
		require.NoError(t, err)

		f.clock.Advance(2 * time.Hour)
		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-2", "key-2", "600.00"))
		require.ErrorIs(t, err, common.ErrPolicyViolation)
		assert.Equal(t, []string{policy.CheckVelocityMax}, att.Violations)

		// the denied amount was not counted
		_, err = f.srv.Attestation.Attest(f.ctx, payrollIntent("int-3", "key-3", "500.00"))
		assert.NoError(t, err)
	})

	t.Run("window rolls over", func(t *testing.T) {
		f := newFixture(t)
		f.fundedPayroll()

		_, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "700.00"))
		require.NoError(t, err)

		f.clock.Advance(25 * time.Hour)
		_, err = f.srv.Attestation.Attest(f.ctx, payrollIntent("int-2", "key-2", "600.00"))
		assert.NoError(t, err)
	})

	t.Run("flag off skips the check", func(t *testing.T) {
		f := newFixture(t)
		delete(f.flags.Enabled, flagVelocityCheck)
		f.fundedPayroll()

		_, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-1", "key-1", "700.00"))
		require.NoError(t, err)

		att, err := f.srv.Attestation.Attest(f.ctx, payrollIntent("int-2", "key-2", "600.00"))
		require.NoError(t, err)
		assert.NotContains(t, att.PolicyChecksPassed, policy.CheckVelocityMax)
	})
}

// meetingCache holds the first n window reads until all n have happened.
type meetingCache struct {
	*memCache

	mu      sync.Mutex
	n       int
	arrived int
	release chan struct{}
}

func (c *meetingCache) SumInts(ctx context.Context, keys ...string) (int64, error) {
	sum, err := c.memCache.SumInts(ctx, keys...)

	c.mu.Lock()
	c.arrived++
	if c.arrived == c.n {
		close(c.release)
	}
	c.mu.Unlock()

	<-c.release
	return sum, err
}

func TestAttestation_Velocity_Concurrent(t *testing.T) {
	f := newFixture(t, withCache(func(c *memCache) repositories.CacheRepository {
		return &meetingCache{memCache: c, n: 3, release: make(chan struct{})}
	}))
	f.fundedPayroll()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		attested int
	)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("int-%d", i)
			_, err := f.srv.Attestation.Attest(f.ctx, payrollIntent(id, "key-"+id, "500.00"))
			if err == nil {
				mu.Lock()
				attested++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, common.ErrPolicyViolation)
		}(i)
	}
	wg.Wait()

	// 3 x 500 would break the 1200 window
	assert.LessOrEqual(t, attested, 2)

	key := models.VelocityKey("USD", recipientJordan, testStart.Truncate(time.Hour).Unix())
	window, err := f.cache.SumInts(f.ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(attested)*50000, window, "denied intents give their reservation back")
}

func TestAttestation_Consume(t *testing.T) {
	setup := func(t *testing.T) (*fixture, *models.Attestation, models.Intent) {
		f := newFixture(t)
		f.fundedPayroll()

		in := payrollIntent("int-1", "key-1", "500.00")
		att, err := f.srv.Attestation.Attest(f.ctx, in)
		require.NoError(t, err)
		return f, att, in
	}

	t.Run("single use", func(t *testing.T) {
		f, att, in := setup(t)

		require.NoError(t, f.srv.Attestation.Validate(f.ctx, att, in))
		require.NoError(t, f.srv.Attestation.Consume(f.ctx, att.ID, in))

		err := f.srv.Attestation.Consume(f.ctx, att.ID, in)
		assert.ErrorIs(t, err, common.ErrAttestationConsumed)

		err = f.srv.Attestation.Validate(f.ctx, att, in)
		assert.ErrorIs(t, err, common.ErrAttestationConsumed)

		stored, err := f.srv.Attestation.Get(f.ctx, att.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AttestationStatusConsumed, stored.Status)
		require.NotNil(t, stored.ConsumedAt)
	})

	t.Run("concurrent consumers", func(t *testing.T) {
		f, att, in := setup(t)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if f.srv.Attestation.Consume(context.Background(), att.ID, in) == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})

	t.Run("expired", func(t *testing.T) {
		f, att, in := setup(t)
		f.clock.Advance(15 * time.Minute)

		err := f.srv.Attestation.Consume(f.ctx, att.ID, in)
		assert.ErrorIs(t, err, common.ErrAttestationExpired)
	})

	t.Run("different intent", func(t *testing.T) {
		f, att, in := setup(t)
		in.Amount = decimal.RequireFromString("5000.00")

		err := f.srv.Attestation.Consume(f.ctx, att.ID, in)
		assert.ErrorIs(t, err, common.ErrAttestationMismatch)
	})

	t.Run("immediate attestation cannot start a pending transfer", func(t *testing.T) {
		f, att, in := setup(t)
		in.RequiresConfirmation = true

		assert.ErrorIs(t, f.srv.Attestation.Validate(f.ctx, att, in), common.ErrAttestationMismatch)
		assert.ErrorIs(t, f.srv.Attestation.Consume(f.ctx, att.ID, in), common.ErrAttestationMismatch)
	})

	t.Run("denied attestation", func(t *testing.T) {
		f := newFixture(t)
		in := payrollIntent("int-1", "key-1", "500.00")
		att, err := f.srv.Attestation.Attest(f.ctx, in)
		require.Error(t, err)

		err = f.srv.Attestation.Consume(f.ctx, att.ID, in)
		assert.ErrorIs(t, err, common.ErrAttestationDenied)
	})
}

func TestAttestation_ExpireStale(t *testing.T) {
	f := newFixture(t)
	f.fundedPayroll()

	in := payrollIntent("int-1", "key-1", "500.00")
	att, err := f.srv.Attestation.Attest(f.ctx, in)
	require.NoError(t, err)

	n, err := f.srv.Attestation.ExpireStale(f.ctx, testStart.Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.srv.Attestation.ExpireStale(f.ctx, testStart.Add(16*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := f.srv.Attestation.Get(f.ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttestationStatusExpired, stored.Status)
}

func TestAttestation_VerifierNotCalledForInternal(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().VerifyInstant(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.srv.Attestation.Attest(f.ctx, transferIntent("int-1", "key-1", "1.00"))
	assert.NoError(t, err)
}
