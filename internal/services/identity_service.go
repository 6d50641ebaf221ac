package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/verification"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"

	"github.com/shopspring/decimal"
)

const microDepositCount = 2

//go:generate mockgen -source identity_service.go -destination mock/identity_service_mock.go -package mock

type IdentityService interface {
	Bind(ctx context.Context, in models.BindRequest) (*models.RecipientAccountBinding, error)
	Verify(ctx context.Context, bindingID string, method models.VerificationMethod, evidence models.VerificationEvidence) (*models.RecipientAccountBinding, error)
	CompleteManualReview(ctx context.Context, bindingID string, in models.ManualReviewRequest) (*models.RecipientAccountBinding, error)
	SetDefault(ctx context.Context, recipientID, bindingID string) error
	ListBindings(ctx context.Context, recipientID string) ([]models.RecipientAccountBinding, error)
	GetBinding(ctx context.Context, bindingID string) (*models.RecipientAccountBinding, error)
	ResolveVerified(ctx context.Context, recipientID, bindingID string) (*models.RecipientAccountBinding, error)
	ExpireMicroDeposits(ctx context.Context, now time.Time) (int64, error)
}

type identity service

var _ IdentityService = (*identity)(nil)

// Bind registers an external account for a recipient. The first binding of
// a recipient becomes its default. The per-recipient version is bumped in the
// same transaction so concurrent binds cannot exceed the limit.
func (is *identity) Bind(ctx context.Context, in models.BindRequest) (res *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("recipientId", in.RecipientID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	chart, err := is.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return nil, err
	}
	ledgers := chart.Index()

	ledger, err := ledgers.LedgerByCode(in.Ledger)
	if err != nil {
		return nil, err
	}
	account, ok := ledgers.Account(in.AccountID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownAccount, in.AccountID)
	}
	if account.LedgerID != ledger.ID {
		return nil, fmt.Errorf("%w: account %s is not on ledger %s", common.ErrCrossLedgerTransfer, in.AccountID, in.Ledger)
	}

	now := is.srv.now()
	binding := &models.RecipientAccountBinding{
		ID:                    is.srv.idgenerator.Generate(idgenerator.PrefixBinding),
		RecipientID:           in.RecipientID,
		AccountID:             in.AccountID,
		Ledger:                in.Ledger,
		Descriptor:            in.Descriptor,
		DescriptorFingerprint: in.Descriptor.Fingerprint(),
		Status:                models.BindingStatusUnverified,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err = is.withRecipientVersion(ctx, in.RecipientID, func(ctx context.Context, repo repositories.BindingRepository) error {
		count, err := repo.CountActive(ctx, in.RecipientID)
		if err != nil {
			return err
		}
		if count >= is.srv.conf.Identity.MaxBindingsPerRecipient {
			return fmt.Errorf("%w: recipient %s has %d bindings", common.ErrBindingLimitReached, in.RecipientID, count)
		}

		_, err = repo.GetDefault(ctx, in.RecipientID)
		switch {
		case errors.Is(err, common.ErrDataNotFound):
			binding.IsDefault = true
		case err != nil:
			return err
		}

		return repo.Create(ctx, binding)
	})
	if err != nil {
		return nil, err
	}

	xlog.Info(ctx, "[IDENTITY.BIND]",
		xlog.String("recipientId", binding.RecipientID),
		xlog.String("bindingId", binding.ID),
		xlog.Bool("isDefault", binding.IsDefault))

	return binding, nil
}

func (is *identity) Verify(ctx context.Context, bindingID string, method models.VerificationMethod, evidence models.VerificationEvidence) (res *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("bindingId", bindingID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	switch method {
	case models.VerificationInstant:
		return is.verifyInstant(ctx, bindingID, evidence)
	case models.VerificationMicroDeposit:
		return is.verifyMicroDeposit(ctx, bindingID, evidence)
	case models.VerificationManual:
		return is.requestManualReview(ctx, bindingID)
	}

	return nil, fmt.Errorf("%w: %s", common.ErrVerificationMethod, method)
}

func (is *identity) verifyInstant(ctx context.Context, bindingID string, evidence models.VerificationEvidence) (*models.RecipientAccountBinding, error) {
	binding, err := is.getUnverified(ctx, bindingID)
	if err != nil {
		return nil, err
	}

	result, err := is.srv.verifier.VerifyInstant(ctx, binding.Descriptor, evidence.Reference)
	if err != nil {
		return nil, err
	}

	now := is.srv.now()
	binding.Method = models.VerificationInstant
	binding.UpdatedAt = now
	if result.Verified {
		binding.Status = models.BindingStatusVerified
		binding.VerifiedAt = &now
	} else {
		binding.Status = models.BindingStatusFailed
		binding.FailureReason = result.Reason
	}

	if err = is.srv.sqlRepo.GetBindingRepository().UpdateVerification(ctx, binding, models.BindingStatusUnverified); err != nil {
		return nil, err
	}

	is.logVerification(ctx, binding)
	return binding, nil
}

// verifyMicroDeposit issues the deposits on the first call and checks the
// confirmed amounts on later calls.
func (is *identity) verifyMicroDeposit(ctx context.Context, bindingID string, evidence models.VerificationEvidence) (*models.RecipientAccountBinding, error) {
	binding, err := is.srv.sqlRepo.GetBindingRepository().GetByID(ctx, bindingID)
	if err != nil {
		return nil, err
	}

	switch {
	case binding.Status == models.BindingStatusUnverified:
		return is.issueMicroDeposits(ctx, binding)
	case binding.Status == models.BindingStatusPendingVerification && binding.Method == models.VerificationMicroDeposit:
		return is.confirmMicroDeposits(ctx, bindingID, evidence.Amounts)
	}

	return nil, fmt.Errorf("%w: %s is %s", common.ErrBindingNotPending, bindingID, binding.Status)
}

func (is *identity) issueMicroDeposits(ctx context.Context, binding *models.RecipientAccountBinding) (*models.RecipientAccountBinding, error) {
	amounts, err := verification.RandomMicroDeposits(microDepositCount)
	if err != nil {
		return nil, err
	}

	if err = is.srv.verifier.SendMicroDeposits(ctx, binding.ID, binding.Descriptor, amounts); err != nil {
		return nil, err
	}

	now := is.srv.now()
	expiresAt := now.Add(is.srv.conf.Identity.MicroDepositWindow)
	binding.Status = models.BindingStatusPendingVerification
	binding.Method = models.VerificationMicroDeposit
	binding.MicroDepositAmounts = amounts
	binding.MicroDepositAttempts = 0
	binding.MicroDepositExpiresAt = &expiresAt
	binding.UpdatedAt = now

	if err = is.srv.sqlRepo.GetBindingRepository().UpdateVerification(ctx, binding, models.BindingStatusUnverified); err != nil {
		return nil, err
	}

	is.logVerification(ctx, binding)
	return binding, nil
}

// confirmMicroDeposits persists the attempt before reporting a mismatch, so
// a failed confirmation still counts.
func (is *identity) confirmMicroDeposits(ctx context.Context, bindingID string, amounts []decimal.Decimal) (*models.RecipientAccountBinding, error) {
	var (
		binding *models.RecipientAccountBinding
		verdict error
	)

	err := is.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) (err error) {
		repo := r.GetBindingRepository()
		binding, err = repo.GetByIDForUpdate(ctx, bindingID)
		if err != nil {
			return err
		}
		if binding.Status != models.BindingStatusPendingVerification {
			return fmt.Errorf("%w: %s is %s", common.ErrBindingNotPending, bindingID, binding.Status)
		}

		now := is.srv.now()
		binding.UpdatedAt = now

		switch {
		case binding.MicroDepositExpiresAt != nil && !now.Before(*binding.MicroDepositExpiresAt):
			binding.Status = models.BindingStatusFailed
			binding.FailureReason = common.ErrMicroDepositWindow.Error()
			verdict = common.ErrMicroDepositWindow
		case binding.MatchMicroDeposits(amounts):
			binding.Status = models.BindingStatusVerified
			binding.VerifiedAt = &now
		default:
			binding.MicroDepositAttempts++
			verdict = fmt.Errorf("%w: attempt %d of %d", common.ErrMicroDepositMismatch,
				binding.MicroDepositAttempts, is.srv.conf.Identity.MicroDepositMaxAttempts)
			if binding.MicroDepositAttempts >= is.srv.conf.Identity.MicroDepositMaxAttempts {
				binding.Status = models.BindingStatusFailed
				binding.FailureReason = common.ErrMicroDepositMismatch.Error()
			}
		}

		return repo.UpdateVerification(ctx, binding, models.BindingStatusPendingVerification)
	})
	if err != nil {
		return nil, err
	}

	is.logVerification(ctx, binding)
	return binding, verdict
}

func (is *identity) requestManualReview(ctx context.Context, bindingID string) (*models.RecipientAccountBinding, error) {
	binding, err := is.getUnverified(ctx, bindingID)
	if err != nil {
		return nil, err
	}

	binding.Status = models.BindingStatusPendingReview
	binding.Method = models.VerificationManual
	binding.UpdatedAt = is.srv.now()

	if err = is.srv.sqlRepo.GetBindingRepository().UpdateVerification(ctx, binding, models.BindingStatusUnverified); err != nil {
		return nil, err
	}

	is.logVerification(ctx, binding)
	return binding, nil
}

func (is *identity) CompleteManualReview(ctx context.Context, bindingID string, in models.ManualReviewRequest) (res *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("bindingId", bindingID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	repo := is.srv.sqlRepo.GetBindingRepository()
	binding, err := repo.GetByID(ctx, bindingID)
	if err != nil {
		return nil, err
	}
	if binding.Status != models.BindingStatusPendingReview {
		return nil, fmt.Errorf("%w: %s is %s", common.ErrBindingNotPending, bindingID, binding.Status)
	}

	now := is.srv.now()
	binding.Reviewer = in.Reviewer
	binding.UpdatedAt = now
	if in.Approved {
		binding.Status = models.BindingStatusVerified
		binding.VerifiedAt = &now
	} else {
		binding.Status = models.BindingStatusFailed
		binding.FailureReason = in.Reason
	}

	if err = repo.UpdateVerification(ctx, binding, models.BindingStatusPendingReview); err != nil {
		return nil, err
	}

	is.logVerification(ctx, binding)
	return binding, nil
}

// SetDefault moves the default flag to bindingID. A stale recipient version
// is retried a bounded number of times before ErrConcurrentUpdate surfaces.
func (is *identity) SetDefault(ctx context.Context, recipientID, bindingID string) (err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("recipientId", recipientID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return is.withRecipientVersion(ctx, recipientID, func(ctx context.Context, repo repositories.BindingRepository) error {
		binding, err := repo.GetByID(ctx, bindingID)
		if err != nil {
			return err
		}
		if binding.RecipientID != recipientID {
			return fmt.Errorf("%w: binding %s of recipient %s", common.ErrDataNotFound, bindingID, recipientID)
		}
		if binding.Status == models.BindingStatusFailed {
			return fmt.Errorf("%w: binding %s failed verification", common.ErrInvalidTransition, bindingID)
		}
		if binding.IsDefault {
			return nil
		}

		return repo.SwitchDefault(ctx, recipientID, bindingID)
	})
}

// withRecipientVersion runs steps in one transaction and commits only when
// the recipient version is unchanged since it was read.
func (is *identity) withRecipientVersion(ctx context.Context, recipientID string, steps func(ctx context.Context, repo repositories.BindingRepository) error) error {
	attempt := func() error {
		err := is.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
			repo := r.GetBindingRepository()
			if err := repo.EnsureVersion(ctx, recipientID); err != nil {
				return err
			}

			version, err := repo.GetVersion(ctx, recipientID)
			if err != nil {
				return err
			}

			if err = steps(ctx, repo); err != nil {
				return err
			}

			swapped, err := repo.CompareAndSwapVersion(ctx, recipientID, version)
			if err != nil {
				return err
			}
			if !swapped {
				return fmt.Errorf("%w: recipient %s", common.ErrConcurrentUpdate, recipientID)
			}
			return nil
		})
		if err != nil && !errors.Is(err, common.ErrConcurrentUpdate) {
			return is.srv.casRetry.StopRetryWithErr(err)
		}
		return err
	}

	return is.srv.casRetry.Retry(ctx, attempt, func(err error) error {
		if errors.Is(err, common.ErrConcurrentUpdate) {
			xlog.Warn(ctx, "[IDENTITY.CAS] giving up", xlog.String("recipientId", recipientID), xlog.Err(err))
		}
		return err
	})
}

func (is *identity) ListBindings(ctx context.Context, recipientID string) (res []models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return is.srv.sqlRepo.GetBindingRepository().ListByRecipient(ctx, recipientID)
}

func (is *identity) GetBinding(ctx context.Context, bindingID string) (res *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return is.srv.sqlRepo.GetBindingRepository().GetByID(ctx, bindingID)
}

// ResolveVerified returns the named binding, or the recipient's default when
// bindingID is empty. Anything but a VERIFIED binding is ErrUnverifiedRecipient.
func (is *identity) ResolveVerified(ctx context.Context, recipientID, bindingID string) (res *models.RecipientAccountBinding, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("recipientId", recipientID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	repo := is.srv.sqlRepo.GetBindingRepository()

	var binding *models.RecipientAccountBinding
	if bindingID != "" {
		binding, err = repo.GetByID(ctx, bindingID)
		if err == nil && binding.RecipientID != recipientID {
			err = common.ErrDataNotFound
		}
	} else {
		binding, err = repo.GetDefault(ctx, recipientID)
	}

	if errors.Is(err, common.ErrDataNotFound) {
		return nil, fmt.Errorf("%w: recipient %s has no such binding", common.ErrUnverifiedRecipient, recipientID)
	}
	if err != nil {
		return nil, err
	}

	if binding.Status != models.BindingStatusVerified {
		return nil, fmt.Errorf("%w: binding %s is %s", common.ErrUnverifiedRecipient, binding.ID, binding.Status)
	}

	return binding, nil
}

func (is *identity) ExpireMicroDeposits(ctx context.Context, now time.Time) (n int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	n, err = is.srv.sqlRepo.GetBindingRepository().ExpireMicroDeposits(ctx, now)
	if err != nil {
		return 0, err
	}

	xlog.Info(ctx, "[IDENTITY.EXPIRE-MICRO-DEPOSITS]", xlog.Int64("expired", n))
	return n, nil
}

func (is *identity) getUnverified(ctx context.Context, bindingID string) (*models.RecipientAccountBinding, error) {
	binding, err := is.srv.sqlRepo.GetBindingRepository().GetByID(ctx, bindingID)
	if err != nil {
		return nil, err
	}
	if binding.Status != models.BindingStatusUnverified {
		return nil, fmt.Errorf("%w: %s is %s", common.ErrBindingNotPending, bindingID, binding.Status)
	}
	return binding, nil
}

func (is *identity) logVerification(ctx context.Context, binding *models.RecipientAccountBinding) {
	xlog.Info(ctx, "[IDENTITY.VERIFY]",
		xlog.String("bindingId", binding.ID),
		xlog.String("method", string(binding.Method)),
		xlog.String("status", string(binding.Status)),
		xlog.Int("attempts", binding.MicroDepositAttempts))
}
