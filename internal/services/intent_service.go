package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"golang.org/x/exp/slices"
)

// resumableReasons are FAILED outcomes a resubmission with the same key may
// pick up again. Nothing reached the engine, or the engine saw the same id.
var resumableReasons = []string{
	models.ReasonCode(common.ErrTransientClearingFailure),
	models.ReasonCode(common.ErrInternalServerError),
}

//go:generate mockgen -source intent_service.go -destination mock/intent_service_mock.go -package mock

type IntentService interface {
	// Submit runs an intent through the gate and clearing. duplicate is true
	// when the idempotency key was already known and the stored outcome is
	// returned unchanged.
	Submit(ctx context.Context, req models.SubmitIntentRequest) (rec *models.IntentRecord, duplicate bool, err error)
	Get(ctx context.Context, intentID string) (*models.IntentRecord, error)
}

type intent service

var _ IntentService = (*intent)(nil)

func (is *intent) Submit(ctx context.Context, req models.SubmitIntentRequest) (rec *models.IntentRecord, duplicate bool, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("idempotencyKey", req.IdempotencyKey))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	repo := is.srv.sqlRepo.GetIntentRepository()

	rec, err = repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
	switch {
	case err == nil:
		if !isResumable(rec) {
			return rec, true, nil
		}
		return is.resume(ctx, rec)
	case !errors.Is(err, common.ErrDataNotFound):
		return nil, false, checkDatabaseError(ctx, err, "get intent")
	}

	now := is.srv.now()
	in := req.ToIntent(is.srv.idgenerator.Generate(idgenerator.PrefixIntent), now)
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, false, err
	}

	rec = &models.IntentRecord{
		ID:             in.ID,
		IdempotencyKey: in.IdempotencyKey,
		Kind:           in.Kind,
		Ledger:         in.Ledger,
		Amount:         in.Amount,
		Status:         models.IntentStatusAccepted,
		Payload:        payload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := repo.Create(ctx, rec)
	if err != nil {
		return nil, false, checkDatabaseError(ctx, err, "create intent")
	}
	if !created {
		// a concurrent submission with the same key won
		rec, err = repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		return rec, true, nil
	}

	err = is.process(ctx, rec, in, nil)
	return rec, false, err
}

func isResumable(rec *models.IntentRecord) bool {
	return rec.Status == models.IntentStatusFailed && slices.Contains(resumableReasons, rec.ReasonCode)
}

// resume re-drives a failed intent with its stored payload and attestation.
func (is *intent) resume(ctx context.Context, rec *models.IntentRecord) (*models.IntentRecord, bool, error) {
	var in models.Intent
	if err := json.Unmarshal(rec.Payload, &in); err != nil {
		return nil, false, fmt.Errorf("decode stored intent %s: %w", rec.ID, err)
	}

	var att *models.Attestation
	if rec.AttestationID != "" {
		var err error
		att, err = is.srv.Attestation.Get(ctx, rec.AttestationID)
		if err != nil {
			return nil, false, err
		}
	}

	xlog.Info(ctx, "[INTENT.RESUME]",
		xlog.String("intentId", rec.ID),
		xlog.String("reasonCode", rec.ReasonCode))

	err := is.process(ctx, rec, in, att)
	return rec, false, err
}

// process attests (unless att is given) and clears the intent, then stores
// the outcome on rec. The returned error is the one the originator sees.
func (is *intent) process(ctx context.Context, rec *models.IntentRecord, in models.Intent, att *models.Attestation) (err error) {
	defer func() {
		rec.UpdatedAt = is.srv.now()
		if updErr := is.srv.sqlRepo.GetIntentRepository().UpdateResult(ctx, rec); updErr != nil {
			xlog.Error(ctx, "[INTENT.UPDATE-RESULT]", xlog.String("intentId", rec.ID), xlog.Err(updErr))
			if err == nil {
				err = checkDatabaseError(ctx, updErr, "update intent result")
			}
		}
		is.srv.metrics.GetClearingPrometheus().RecordIntent(string(rec.Kind), string(rec.Status))
	}()

	if att == nil {
		att, err = is.srv.Attestation.Attest(ctx, in)
		if att != nil {
			rec.AttestationID = att.ID
		}
		if err != nil {
			is.fail(rec, err)
			return err
		}
	}

	result, err := is.srv.Clearing.Clear(ctx, in, att)
	if err != nil {
		is.fail(rec, err)
		return err
	}

	rec.TransferID = result.TransferID
	rec.ReasonCode, rec.Reason = "", ""
	rec.Status = models.IntentStatusCleared
	switch result.State {
	case models.TransferStatePending:
		rec.Status = models.IntentStatusPending
	case models.TransferStateVoided:
		rec.Status = models.IntentStatusVoided
	}

	xlog.Info(ctx, "[INTENT.SUBMIT]",
		xlog.String("intentId", rec.ID),
		xlog.String("transferId", rec.TransferID),
		xlog.String("status", string(rec.Status)))

	return nil
}

// fail classifies err onto rec. Gate and shape errors reject the intent;
// clearing failures and infrastructure errors fail it.
func (is *intent) fail(rec *models.IntentRecord, err error) {
	rec.Reason = err.Error()

	var failure *models.ClearingFailure
	switch {
	case errors.As(err, &failure):
		rec.TransferID = failure.TransferID
		rec.Status = models.IntentStatusFailed
		rec.ReasonCode = models.ReasonCode(common.ErrTransientClearingFailure)
		if errors.Is(err, common.ErrTerminalClearingRejection) {
			rec.ReasonCode = models.ReasonCode(common.ErrTerminalClearingRejection)
		}
	default:
		detail := models.GetErrMap(err)
		rec.ReasonCode = detail.Code
		rec.Status = models.IntentStatusRejected
		if detail.HTTPStatus >= 500 {
			rec.Status = models.IntentStatusFailed
		}
	}
}

func (is *intent) Get(ctx context.Context, intentID string) (res *models.IntentRecord, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return is.srv.sqlRepo.GetIntentRepository().GetByID(ctx, intentID)
}
