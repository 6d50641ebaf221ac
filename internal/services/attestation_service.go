package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
	"github.com/sovr-labs/go-fp-clearing/internal/services/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// checkRecipientVerified is recorded as a violation when an external party
// has no verified binding. It is not a rule set check.
const checkRecipientVerified = "recipient_verified"

//go:generate mockgen -source attestation_service.go -destination mock/attestation_service_mock.go -package mock

type AttestationService interface {
	// Attest runs the gate. A denied intent returns the persisted DENIED
	// attestation together with an error wrapping ErrPolicyViolation or
	// ErrUnverifiedRecipient. A duplicate returns only ErrDuplicateIntent.
	Attest(ctx context.Context, intent models.Intent) (*models.Attestation, error)
	Consume(ctx context.Context, attestationID string, intent models.Intent) error
	Validate(ctx context.Context, attestation *models.Attestation, intent models.Intent) error
	Get(ctx context.Context, attestationID string) (*models.Attestation, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type attestation service

var _ AttestationService = (*attestation)(nil)

func (as *attestation) Attest(ctx context.Context, intent models.Intent) (res *models.Attestation, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("intentId", intent.ID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	decision, verdict, reserved, err := as.decide(ctx, intent)
	if err != nil {
		return nil, err
	}
	// only an attested intent keeps its share of the velocity window
	defer func() {
		if err != nil {
			as.releaseVelocity(ctx, reserved)
		}
	}()

	dedupKey := models.IntentDedupKey(intent.IdempotencyKey)
	claimed, err := as.srv.cacheRepo.SetIfNotExists(ctx, dedupKey, intent.ID, as.srv.conf.Attestation.DedupWindow)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("%w: %s", common.ErrDuplicateIntent, intent.IdempotencyKey)
	}

	now := as.srv.now()
	res = &models.Attestation{
		ID:                 as.srv.idgenerator.Generate(idgenerator.PrefixAttestation),
		IntentID:           intent.ID,
		IntentFingerprint:  intent.Fingerprint(),
		IdempotencyKey:     intent.IdempotencyKey,
		IssuedAt:           now,
		ExpiresAt:          now.Add(as.srv.conf.Attestation.TTL),
		Nonce:              uuid.NewString(),
		PolicyChecksPassed: decision.Passed,
		Violations:         decision.Violations,
		RuleSetVersion:     decision.RuleSetVersion,
		Status:             models.AttestationStatusAttested,
	}
	if verdict != nil {
		res.Status = models.AttestationStatusDenied
	}

	if err = as.srv.sqlRepo.GetAttestationRepository().Create(ctx, res); err != nil {
		if delErr := as.srv.cacheRepo.Del(ctx, dedupKey); delErr != nil {
			xlog.Warn(ctx, "[ATTESTATION.DEDUP] release failed", xlog.String("key", dedupKey), xlog.Err(delErr))
		}
		return nil, checkDatabaseError(ctx, err, "create attestation")
	}

	xlog.Info(ctx, "[ATTESTATION.DECISION]",
		xlog.String("attestationId", res.ID),
		xlog.String("intentId", intent.ID),
		xlog.String("status", string(res.Status)),
		xlog.String("ruleSetVersion", res.RuleSetVersion),
		xlog.Strings("passed", res.PolicyChecksPassed),
		xlog.Strings("violations", res.Violations))

	if verdict != nil {
		return res, verdict
	}

	return res, nil
}

// velocityReservation is an amount added to the recipient's current bucket
// ahead of the velocity check.
type velocityReservation struct {
	key   string
	units int64
}

// decide runs the recipient and policy checks. err is an infrastructure
// failure; verdict is the reason the intent is denied. The intent amount is
// reserved in the velocity window before the check so concurrent intents see
// each other; the caller releases reserved unless the intent is attested.
func (as *attestation) decide(ctx context.Context, intent models.Intent) (decision models.PolicyDecision, verdict error, reserved *velocityReservation, err error) {
	in := models.PolicyInput{Intent: intent, WindowTotal: decimal.Zero}

	for _, party := range intent.ExternalParties() {
		binding, err := as.srv.Identity.ResolveVerified(ctx, party.RecipientID, party.BindingID)
		if errors.Is(err, common.ErrUnverifiedRecipient) {
			return models.PolicyDecision{Violations: []string{checkRecipientVerified}}, err, nil, nil
		}
		if err != nil {
			return decision, nil, nil, err
		}
		in.IdentityFields = append(in.IdentityFields, binding.Descriptor.IdentityFields())
	}

	ruleSet, err := as.srv.ruleSetRepo.GetPolicy(ctx)
	if err != nil {
		return decision, nil, nil, err
	}

	var opts []policy.Option
	if as.srv.flag.IsEnabled(as.srv.conf.FeatureFlagKeyLookup.VelocityCheck) {
		reserved, in.WindowTotal, err = as.reserveVelocity(ctx, intent)
		if err != nil {
			return decision, nil, nil, err
		}
	} else {
		opts = append(opts, policy.WithoutCheck(policy.CheckVelocityMax))
		// keep counting so the window is warm when the check is switched on
		reserved, _, err = as.reserveVelocity(ctx, intent)
		if err != nil {
			xlog.Warn(ctx, "[ATTESTATION.VELOCITY]", xlog.Err(err))
		}
	}

	decision, verdict = policy.Evaluate(ruleSet, in, opts...)
	if len(intent.ExternalParties()) > 0 {
		decision.Passed = append([]string{checkRecipientVerified}, decision.Passed...)
	}
	return decision, verdict, reserved, nil
}

// reserveVelocity adds the intent amount to the recipient's current bucket
// and returns the window total of everything else, reservations of
// concurrent intents included.
func (as *attestation) reserveVelocity(ctx context.Context, intent models.Intent) (*velocityReservation, decimal.Decimal, error) {
	recipientID := velocityRecipient(intent)
	if recipientID == "" {
		return nil, decimal.Zero, nil
	}

	ledger, err := as.ledger(ctx, intent.Ledger)
	if err != nil {
		return nil, decimal.Zero, err
	}

	units, err := toMinorUnits(intent.Amount, ledger.Scale)
	if err != nil {
		return nil, decimal.Zero, err
	}

	now := as.srv.now()
	res := &velocityReservation{
		key:   models.VelocityKey(intent.Ledger, recipientID, now.Truncate(velocityBucket).Unix()),
		units: units,
	}
	ttl := as.srv.conf.Attestation.VelocityWindow + velocityBucket
	if _, err = as.srv.cacheRepo.IncrBy(ctx, res.key, units, ttl); err != nil {
		return nil, decimal.Zero, err
	}

	keys := velocityKeys(intent.Ledger, recipientID, now, as.srv.conf.Attestation.VelocityWindow)
	total, err := as.srv.cacheRepo.SumInts(ctx, keys...)
	if err != nil {
		as.releaseVelocity(ctx, res)
		return nil, decimal.Zero, err
	}

	return res, fromMinorUnits(total-units, ledger.Scale), nil
}

// releaseVelocity takes a reservation back. A failure only leaves the window
// stricter than it should be, so it is logged and swallowed.
func (as *attestation) releaseVelocity(ctx context.Context, res *velocityReservation) {
	if res == nil {
		return
	}

	ttl := as.srv.conf.Attestation.VelocityWindow + velocityBucket
	if _, err := as.srv.cacheRepo.IncrBy(ctx, res.key, -res.units, ttl); err != nil {
		xlog.Warn(ctx, "[ATTESTATION.VELOCITY] release failed", xlog.String("key", res.key), xlog.Err(err))
	}
}

func (as *attestation) ledger(ctx context.Context, code string) (models.Ledger, error) {
	chart, err := as.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return models.Ledger{}, err
	}
	return chart.Index().LedgerByCode(code)
}

// Consume marks the attestation used. The Redis marker rejects most reuse
// early; the conditional SQL update decides.
func (as *attestation) Consume(ctx context.Context, attestationID string, intent models.Intent) (err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("attestationId", attestationID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	repo := as.srv.sqlRepo.GetAttestationRepository()
	att, err := repo.GetByID(ctx, attestationID)
	if err != nil {
		return err
	}

	now := as.srv.now()
	if err = att.CheckUsable(intent, now); err != nil {
		return err
	}

	marker := models.AttestationConsumedKey(attestationID)
	claimed, err := as.srv.cacheRepo.SetIfNotExists(ctx, marker, intent.ID, att.ExpiresAt.Sub(now))
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("%w: %s", common.ErrAttestationConsumed, attestationID)
	}

	consumed, err := repo.Consume(ctx, attestationID, att.IntentFingerprint, now)
	if err != nil {
		if delErr := as.srv.cacheRepo.Del(ctx, marker); delErr != nil {
			xlog.Warn(ctx, "[ATTESTATION.CONSUME] release marker failed", xlog.Err(delErr))
		}
		return checkDatabaseError(ctx, err, "consume attestation")
	}
	if consumed {
		return nil
	}

	// lost the race or the row moved on; report what it is now
	att, err = repo.GetByID(ctx, attestationID)
	if err != nil {
		return err
	}
	if err = att.CheckUsable(intent, now); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", common.ErrAttestationConsumed, attestationID)
}

func (as *attestation) Validate(ctx context.Context, att *models.Attestation, intent models.Intent) (err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("attestationId", att.ID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if err = att.CheckUsable(intent, as.srv.now()); err != nil {
		return err
	}

	_, err = as.srv.cacheRepo.Get(ctx, models.AttestationConsumedKey(att.ID))
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", common.ErrAttestationConsumed, att.ID)
	case errors.Is(err, common.ErrDataNotFound):
		return nil
	}

	xlog.Warn(ctx, "[ATTESTATION.VALIDATE] marker lookup failed", xlog.String("attestationId", att.ID), xlog.Err(err))
	return nil
}

func (as *attestation) Get(ctx context.Context, attestationID string) (res *models.Attestation, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return as.srv.sqlRepo.GetAttestationRepository().GetByID(ctx, attestationID)
}

func (as *attestation) ExpireStale(ctx context.Context, now time.Time) (n int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	n, err = as.srv.sqlRepo.GetAttestationRepository().ExpireStale(ctx, now)
	if err != nil {
		return 0, err
	}

	xlog.Info(ctx, "[ATTESTATION.EXPIRE-STALE]", xlog.Int64("expired", n))
	return n, nil
}
