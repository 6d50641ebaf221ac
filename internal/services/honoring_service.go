package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/honoring"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"github.com/hashicorp/go-multierror"
)

const defaultHonoringRetryBatch = 100

//go:generate mockgen -source honoring_service.go -destination mock/honoring_service_mock.go -package mock

type HonoringService interface {
	// Dispatch executes spec for a finalized transfer and records the outcome.
	// A recorded outcome, including FAILED, is not an error; errors mean the
	// outcome could not be stored.
	Dispatch(ctx context.Context, result models.ClearingResult, spec models.HonoringSpec) (models.HonoringOutcome, error)
	DispatchEvent(ctx context.Context, event models.ClearingEvent) error
	ListOutcomes(ctx context.Context, transferID string) ([]models.HonoringOutcome, error)
	RetryPending(ctx context.Context) (int, error)
}

type honoringDispatcher service

var _ HonoringService = (*honoringDispatcher)(nil)

func (hd *honoringDispatcher) Dispatch(ctx context.Context, result models.ClearingResult, spec models.HonoringSpec) (res models.HonoringOutcome, err error) {
	monitor := monitoring.New(ctx,
		monitoring.WithAttribute("transferId", result.TransferID),
		monitoring.WithAttribute("rail", spec.Rail))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if !result.IsFinalized() {
		return res, fmt.Errorf("%w: %s is %s", common.ErrTransferNotFinalized, result.TransferID, result.State)
	}

	repo := hd.srv.sqlRepo.GetHonoringOutcomeRepository()
	existing, err := repo.Get(ctx, result.TransferID, spec.Rail)
	switch {
	case err == nil:
		if existing.Status != models.HonoringStatusRetrying {
			return *existing, nil
		}
	case errors.Is(err, common.ErrDataNotFound):
		existing = nil
	default:
		return res, checkDatabaseError(ctx, err, "get honoring outcome")
	}

	record, err := hd.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, result.TransferID)
	if err != nil {
		return res, err
	}

	now := hd.srv.now()
	res = models.HonoringOutcome{
		TransferID:     record.TransferID,
		IntentID:       record.IntentID,
		Rail:           spec.Rail,
		IdempotencyKey: models.HonoringIdempotencyKey(record.TransferID),
		Status:         models.HonoringStatusRetrying,
		Amount:         record.Amount,
		Ledger:         record.LedgerCode,
		Spec:           spec,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if existing != nil {
		res.Attempts = existing.Attempts
		res.CreatedAt = existing.CreatedAt
	}

	if hd.srv.flag.IsEnabled(hd.srv.conf.FeatureFlagKeyLookup.HonoringDispatch) {
		hd.execute(ctx, &res)
	} else {
		res.LastError = "honoring dispatch disabled"
	}

	applied, err := repo.Upsert(ctx, &res)
	if err != nil {
		return res, checkDatabaseError(ctx, err, "upsert honoring outcome")
	}
	if !applied {
		// a terminal outcome was stored by another dispatch in the meantime
		stored, err := repo.Get(ctx, res.TransferID, res.Rail)
		if err != nil {
			return res, err
		}
		return *stored, nil
	}

	if res.Status == models.HonoringStatusFailed {
		hd.raiseCorrective(ctx, res)
	}

	hd.srv.metrics.GetClearingPrometheus().RecordHonoring(res.Rail, string(res.Status))
	xlog.Info(ctx, "[HONORING.DISPATCH]",
		xlog.String("transferId", res.TransferID),
		xlog.String("rail", res.Rail),
		xlog.String("status", string(res.Status)),
		xlog.Int("attempts", res.Attempts),
		xlog.String("reference", res.AdapterReference))

	return res, nil
}

// execute calls the adapter and folds its answer into out.
func (hd *honoringDispatcher) execute(ctx context.Context, out *models.HonoringOutcome) {
	adapter, err := hd.srv.registry.Get(out.Rail)
	if err != nil {
		out.Status = models.HonoringStatusFailed
		out.LastError = err.Error()
		return
	}

	currency, err := hd.currency(ctx, out.Ledger)
	if err != nil {
		out.LastError = err.Error()
		return
	}

	amount := honoring.Amount{Value: out.Amount, Currency: currency}
	// Attempts counts adapter calls across every dispatch of the outcome
	maxAttempts := hd.srv.conf.Honoring.MaxAttempts

	var result honoring.Result
	err = hd.srv.honoringRetry.Retry(ctx, func() error {
		out.Attempts++
		var execErr error
		result, execErr = adapter.Execute(ctx, out.IdempotencyKey, out.Spec.Destination, amount, out.Spec.Metadata)
		if execErr == nil {
			return nil
		}
		if !honoring.IsTransient(execErr) || (maxAttempts > 0 && out.Attempts >= maxAttempts) {
			return hd.srv.honoringRetry.StopRetryWithErr(execErr)
		}
		return execErr
	}, nil)

	switch {
	case err != nil && (honoring.IsTransient(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)):
		out.Status = models.HonoringStatusRetrying
		out.LastError = err.Error()
	case err != nil:
		out.Status = models.HonoringStatusFailed
		out.LastError = err.Error()
	case result.Status == honoring.StatusAccepted:
		out.Status = models.HonoringStatusSuccess
		out.AdapterReference = result.Reference
		out.LastError = ""
	case result.Status == honoring.StatusDeclined:
		out.Status = models.HonoringStatusFailed
		out.AdapterReference = result.Reference
		out.LastError = result.Reason
	default:
		out.Status = models.HonoringStatusRetrying
		out.AdapterReference = result.Reference
		out.LastError = result.Reason
	}

	if out.Status == models.HonoringStatusRetrying && maxAttempts > 0 && out.Attempts >= maxAttempts {
		out.Status = models.HonoringStatusFailed
		out.LastError = fmt.Sprintf("gave up after %d attempts: %s", out.Attempts, out.LastError)
	}
}

func (hd *honoringDispatcher) currency(ctx context.Context, ledgerCode string) (string, error) {
	chart, err := hd.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return "", err
	}
	ledger, err := chart.Index().LedgerByCode(ledgerCode)
	if err != nil {
		return "", err
	}
	return ledger.Currency, nil
}

// raiseCorrective asks for a new intent. The cleared transfer itself is never
// reversed here.
func (hd *honoringDispatcher) raiseCorrective(ctx context.Context, out models.HonoringOutcome) {
	req := models.CorrectiveIntentRequest{
		TransferID: out.TransferID,
		IntentID:   out.IntentID,
		Rail:       out.Rail,
		Ledger:     out.Ledger,
		Amount:     out.Amount,
		Reason:     out.LastError,
		RaisedAt:   hd.srv.now(),
	}

	xlog.Warn(ctx, "[HONORING.CORRECTIVE]",
		xlog.String("transferId", out.TransferID),
		xlog.String("rail", out.Rail),
		xlog.String("reason", out.LastError))

	if err := hd.srv.correctivePub.Publish(ctx, req, publisher.WithKey(out.TransferID)); err != nil {
		xlog.Error(ctx, "[HONORING.CORRECTIVE] publish failed", xlog.String("transferId", out.TransferID), xlog.Err(err))
	}
}

// DispatchEvent is the consumer entry point. Events without a honoring spec
// are skipped.
func (hd *honoringDispatcher) DispatchEvent(ctx context.Context, event models.ClearingEvent) error {
	if event.Honoring == nil {
		return nil
	}
	_, err := hd.Dispatch(ctx, event.ToClearingResult(), *event.Honoring)
	return err
}

func (hd *honoringDispatcher) ListOutcomes(ctx context.Context, transferID string) (res []models.HonoringOutcome, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return hd.srv.sqlRepo.GetHonoringOutcomeRepository().ListByTransfer(ctx, transferID)
}

// RetryPending re-dispatches one batch of RETRYING outcomes and returns how
// many were attempted.
func (hd *honoringDispatcher) RetryPending(ctx context.Context) (n int, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	batch := hd.srv.conf.Honoring.RetryBatch
	if batch <= 0 {
		batch = defaultHonoringRetryBatch
	}

	outcomes, err := hd.srv.sqlRepo.GetHonoringOutcomeRepository().ListRetrying(ctx, batch)
	if err != nil {
		return 0, err
	}

	var errs *multierror.Error
	for _, o := range outcomes {
		record, err := hd.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, o.TransferID)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("load transfer %s: %w", o.TransferID, err))
			continue
		}

		if _, err = hd.Dispatch(ctx, record.ToClearingResult(), o.Spec); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("dispatch %s/%s: %w", o.TransferID, o.Rail, err))
			continue
		}
		n++
	}

	xlog.Info(ctx, "[HONORING.RETRY-PENDING]",
		xlog.Int("candidates", len(outcomes)),
		xlog.Int("dispatched", n))

	return n, errs.ErrorOrNil()
}
