package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/cache"
	"github.com/sovr-labs/go-fp-clearing/internal/common/clearingengine"
	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
)

// finalized results never change, the ttl only bounds memory
const resultCacheTTL = 24 * time.Hour

//go:generate mockgen -source clearing_service.go -destination mock/clearing_service_mock.go -package mock

type ClearingService interface {
	Clear(ctx context.Context, intent models.Intent, attestation *models.Attestation) (*models.ClearingResult, error)
	Confirm(ctx context.Context, transferID string) (*models.ClearingResult, error)
	Cancel(ctx context.Context, transferID string) (*models.ClearingResult, error)
	Lookup(ctx context.Context, transferID string) (*models.ClearingResult, error)
	Status(ctx context.Context, transferID string) (*models.TransferStatusView, error)
}

type clearing service

var _ ClearingService = (*clearing)(nil)

// pendingFlowVariant is the payload of the pending-flow flag: kinds forced
// through pending/post even without RequiresConfirmation.
type pendingFlowVariant struct {
	Kinds []string `json:"kinds"`
}

// resolvedTransfer is an intent mapped onto engine accounts.
type resolvedTransfer struct {
	transfer    models.Transfer
	ledger      models.Ledger
	ledgers     models.Ledgers
	destination *models.RecipientAccountBinding
}

// Clear turns an attested intent into one engine transfer. The transfer id is
// derived from the idempotency key so a retried Clear lands on the same
// transfer.
func (cs *clearing) Clear(ctx context.Context, intent models.Intent, att *models.Attestation) (res *models.ClearingResult, err error) {
	transferID := models.DeterministicTransferID(intent.IdempotencyKey)

	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	repo := cs.srv.sqlRepo.GetTransferStateRepository()
	stored, err := repo.GetByID(ctx, transferID)
	if err == nil {
		return cs.replayed(ctx, stored, intent.Metadata)
	}
	if !errors.Is(err, common.ErrDataNotFound) {
		return nil, err
	}

	// a transfer the engine already holds is recorded whatever the gate
	// says now, otherwise it would never reach the mirror
	var adopted *clearingengine.EngineTransfer
	if err = cs.srv.Attestation.Validate(ctx, att, intent); err != nil {
		adopted, err = cs.engineTransfer(ctx, transferID, err)
		if err != nil {
			return nil, err
		}
	}

	resolved, err := cs.resolve(ctx, intent, transferID)
	if err != nil {
		return nil, err
	}

	var outcome clearingengine.Outcome
	if adopted != nil {
		resolved.transfer = adopted.Transfer
		outcome = clearingengine.Outcome{
			Result:    clearingengine.ResultAlreadyExists,
			State:     adopted.State,
			Timestamp: adopted.UpdatedAt,
		}
	} else {
		outcome, err = cs.submit(ctx, transferID, func() (clearingengine.Outcome, error) {
			return cs.srv.engine.CreateTransfer(ctx, resolved.transfer)
		})
		if err != nil {
			cs.srv.metrics.GetClearingPrometheus().RecordTransfer(intent.Ledger, "FAILED")
			return nil, err
		}
	}

	if adopted != nil {
		xlog.Warn(ctx, "[CLEARING.ADOPT] attestation no longer valid, engine already holds the transfer",
			xlog.String("transferId", transferID),
			xlog.String("attestationId", att.ID),
			xlog.String("state", string(adopted.State)))
	} else if err = cs.srv.Attestation.Consume(ctx, att.ID, intent); err != nil {
		if !(outcome.Result.IsReplay() && errors.Is(err, common.ErrAttestationConsumed)) {
			// funds already moved, the transfer must still be recorded
			xlog.Error(ctx, "[CLEARING.CONSUME-ATTESTATION]",
				xlog.String("transferId", transferID),
				xlog.String("attestationId", att.ID),
				xlog.Err(err))
		}
	}

	now := cs.srv.now()
	record := &models.TransferRecord{
		TransferID:      transferID,
		IntentID:        intent.ID,
		AttestationID:   att.ID,
		Kind:            intent.Kind,
		LedgerID:        resolved.ledger.ID,
		LedgerCode:      resolved.ledger.Code,
		DebitAccountID:  resolved.transfer.DebitAccountID,
		CreditAccountID: resolved.transfer.CreditAccountID,
		Amount:          resolved.transfer.Amount,
		Code:            resolved.transfer.Code,
		State:           outcome.State,
		Honoring:        honoringSpec(intent, resolved.destination),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if outcome.State == models.TransferStatePosted {
		finalizedAt := outcome.Timestamp
		record.FinalizedAt = &finalizedAt
	}

	created, err := repo.Create(ctx, record)
	if err != nil {
		return nil, checkDatabaseError(ctx, err, "create transfer state")
	}
	if !created {
		stored, err = repo.GetByID(ctx, transferID)
		if err != nil {
			return nil, err
		}
		return cs.replayed(ctx, stored, intent.Metadata)
	}

	xlog.Info(ctx, "[CLEARING.CLEAR]",
		xlog.String("transferId", transferID),
		xlog.String("intentId", intent.ID),
		xlog.String("engineResult", string(outcome.Result)),
		xlog.String("state", string(record.State)))

	return cs.finish(ctx, record, intent.Metadata), nil
}

// replayed answers a Clear for a transfer that was already recorded. The
// event is published again because the earlier publish may not have landed;
// every consumer is idempotent on the transfer id.
func (cs *clearing) replayed(ctx context.Context, record *models.TransferRecord, metadata map[string]string) (*models.ClearingResult, error) {
	xlog.Info(ctx, "[CLEARING.REPLAY]",
		xlog.String("transferId", record.TransferID),
		xlog.String("state", string(record.State)))

	return cs.finish(ctx, record, metadata), nil
}

// finish publishes the clearing event of a posted transfer and caches the
// final result.
func (cs *clearing) finish(ctx context.Context, record *models.TransferRecord, metadata map[string]string) *models.ClearingResult {
	result := record.ToClearingResult()

	if record.State == models.TransferStatePosted && record.FinalizedAt != nil {
		event := record.ToClearingEvent()
		event.Metadata = metadata
		cs.publish(ctx, event)
	}

	if record.State.IsFinal() {
		if err := cs.srv.resultCache.Set(ctx, record.TransferID, result, resultCacheTTL); err != nil {
			xlog.Warn(ctx, "[CLEARING.CACHE]", xlog.String("transferId", record.TransferID), xlog.Err(err))
		}
	}

	cs.srv.metrics.GetClearingPrometheus().RecordTransfer(record.LedgerCode, string(record.State))
	return &result
}

// publish never fails the caller: the transfer is final in the engine. A lost
// event shows up in the mirror recon report.
func (cs *clearing) publish(ctx context.Context, event models.ClearingEvent) {
	err := cs.srv.clearingRetry.Retry(ctx, func() error {
		return cs.srv.clearingPub.Publish(ctx, event, publisher.WithKey(event.TransferID))
	}, nil)
	if err != nil {
		xlog.Error(ctx, "[CLEARING.PUBLISH-EVENT]", xlog.String("transferId", event.TransferID), xlog.Err(err))
	}
}

// engineTransfer re-queries the engine after the attestation failed with
// gateErr. gateErr stands only when the engine has no such transfer; an
// engine that cannot answer fails the call as transient so the intent stays
// resumable.
func (cs *clearing) engineTransfer(ctx context.Context, transferID string, gateErr error) (*clearingengine.EngineTransfer, error) {
	var found clearingengine.EngineTransfer
	err := cs.srv.clearingRetry.Retry(ctx, func() error {
		var err error
		found, err = cs.srv.engine.LookupTransfer(ctx, transferID)
		if err == nil || clearingengine.IsTransient(err) {
			return err
		}
		return cs.srv.clearingRetry.StopRetryWithErr(err)
	}, nil)

	switch {
	case err == nil:
		return &found, nil
	case errors.Is(err, clearingengine.ErrTransferNotFound):
		return nil, gateErr
	case clearingengine.IsTransient(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return nil, &models.ClearingFailure{
			TransferID: transferID,
			Reason:     models.ReasonCode(common.ErrTransientClearingFailure),
			Err:        fmt.Errorf("%w: %w", common.ErrTransientClearingFailure, err),
		}
	default:
		return nil, err
	}
}

// resolve maps the intent parties onto accounts of the intent ledger and
// rejects anything the engine would refuse on shape alone.
func (cs *clearing) resolve(ctx context.Context, intent models.Intent, transferID string) (*resolvedTransfer, error) {
	chart, err := cs.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return nil, err
	}

	res := &resolvedTransfer{ledgers: chart.Index()}
	res.ledger, err = res.ledgers.LedgerByCode(intent.Ledger)
	if err != nil {
		return nil, err
	}

	// a kind without a chart mapping clears with explicit parties only
	mapping, _ := chart.Mapping(intent.Kind)

	debit, source, err := cs.resolveParty(ctx, res, intent.Source, mapping.Routing.DebitAccount)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	credit, binding, err := cs.resolveParty(ctx, res, intent.Destination, mapping.Routing.CreditAccount)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	// honoring moves money with the external party, whichever side it is on
	res.destination = binding
	if res.destination == nil {
		res.destination = source
	}

	res.transfer = models.Transfer{
		ID:              transferID,
		LedgerID:        res.ledger.ID,
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          intent.Amount,
		Pending:         cs.isPending(intent, mapping.Routing),
		Code:            mapping.Routing.Code,
	}

	if _, err = toMinorUnits(intent.Amount, res.ledger.Scale); err != nil {
		return nil, err
	}
	if err = res.transfer.Validate(res.ledgers); err != nil {
		return nil, err
	}

	return res, nil
}

// resolveParty returns the engine account of one side. fallback is the chart
// routing account used when the party names nothing.
func (cs *clearing) resolveParty(ctx context.Context, res *resolvedTransfer, party models.PartyDescriptor, fallback string) (string, *models.RecipientAccountBinding, error) {
	switch {
	case party.AccountID != "":
		return party.AccountID, nil, nil
	case party.IsExternal():
		binding, err := cs.srv.Identity.ResolveVerified(ctx, party.RecipientID, party.BindingID)
		if err != nil {
			return "", nil, err
		}
		if binding.Ledger != res.ledger.Code {
			return "", nil, fmt.Errorf("%w: binding %s is on ledger %s", common.ErrCrossLedgerTransfer, binding.ID, binding.Ledger)
		}
		return binding.AccountID, binding, nil
	case party.Alias != "":
		account, err := res.ledgers.AccountByAlias(res.ledger.ID, party.Alias)
		if err != nil {
			return "", nil, err
		}
		return account.ID, nil, nil
	case fallback != "":
		if _, ok := res.ledgers.Account(fallback); ok {
			return fallback, nil, nil
		}
		account, err := res.ledgers.AccountByAlias(res.ledger.ID, fallback)
		if err != nil {
			return "", nil, err
		}
		return account.ID, nil, nil
	}

	return "", nil, fmt.Errorf("%w: party names no account", common.ErrUnknownAccount)
}

func (cs *clearing) isPending(intent models.Intent, routing models.Routing) bool {
	if intent.RequiresConfirmation || routing.Pending || isPendingKind(cs.srv.conf.Clearing.PendingKinds, intent.Kind) {
		return true
	}

	variant, err := flag.GetVariant[pendingFlowVariant](cs.srv.flag, cs.srv.conf.FeatureFlagKeyLookup.PendingFlow)
	if err != nil || !variant.Enabled {
		return false
	}
	return isPendingKind(variant.Value.Kinds, intent.Kind)
}

func honoringSpec(intent models.Intent, destination *models.RecipientAccountBinding) *models.HonoringSpec {
	if intent.Honoring == nil {
		return nil
	}

	spec := *intent.Honoring
	if spec.Destination == nil && destination != nil {
		descriptor := destination.Descriptor
		spec.Destination = &descriptor
	}
	return &spec
}

// submit runs one engine write under the clearing retryer. Transient errors
// are retried with the same transfer id; a rejection is never retried.
func (cs *clearing) submit(ctx context.Context, transferID string, call func() (clearingengine.Outcome, error)) (clearingengine.Outcome, error) {
	var outcome clearingengine.Outcome

	err := cs.srv.clearingRetry.Retry(ctx, func() error {
		var err error
		outcome, err = call()
		if err == nil {
			return nil
		}
		if clearingengine.IsTransient(err) {
			xlog.Warn(ctx, "[CLEARING.ENGINE] transient failure", xlog.String("transferId", transferID), xlog.Err(err))
			return err
		}
		return cs.srv.clearingRetry.StopRetryWithErr(err)
	}, func(err error) error {
		if errors.Is(err, clearingengine.ErrRejected) {
			reason, _ := clearingengine.RejectReasonOf(err)
			return &models.ClearingFailure{
				TransferID: transferID,
				Reason:     string(reason),
				Err:        fmt.Errorf("%w: %w", common.ErrTerminalClearingRejection, err),
			}
		}
		if clearingengine.IsTransient(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &models.ClearingFailure{
				TransferID: transferID,
				Reason:     models.ReasonCode(common.ErrTransientClearingFailure),
				Err:        fmt.Errorf("%w: %w", common.ErrTransientClearingFailure, err),
			}
		}
		return err
	})

	return outcome, err
}

// Confirm posts a pending transfer. Confirming a posted transfer returns it
// unchanged.
func (cs *clearing) Confirm(ctx context.Context, transferID string) (res *models.ClearingResult, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	record, err := cs.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	switch record.State {
	case models.TransferStatePosted:
		result := record.ToClearingResult()
		return &result, nil
	case models.TransferStateVoided:
		return nil, fmt.Errorf("%w: transfer %s is voided", common.ErrInvalidTransition, transferID)
	}

	outcome, err := cs.submit(ctx, transferID, func() (clearingengine.Outcome, error) {
		return cs.srv.engine.PostPending(ctx, transferID)
	})
	if err != nil {
		return nil, err
	}

	return cs.settle(ctx, record, outcome, models.TransferStatePosted)
}

// Cancel voids a pending transfer. No clearing event is emitted.
func (cs *clearing) Cancel(ctx context.Context, transferID string) (res *models.ClearingResult, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	record, err := cs.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	switch record.State {
	case models.TransferStateVoided:
		result := record.ToClearingResult()
		return &result, nil
	case models.TransferStatePosted:
		return nil, fmt.Errorf("%w: transfer %s is posted", common.ErrInvalidTransition, transferID)
	}

	outcome, err := cs.submit(ctx, transferID, func() (clearingengine.Outcome, error) {
		return cs.srv.engine.VoidPending(ctx, transferID)
	})
	if err != nil {
		return nil, err
	}

	return cs.settle(ctx, record, outcome, models.TransferStateVoided)
}

// settle records the engine's answer to a post or void of record.
func (cs *clearing) settle(ctx context.Context, record *models.TransferRecord, outcome clearingengine.Outcome, want models.TransferState) (*models.ClearingResult, error) {
	if outcome.State != want {
		return nil, fmt.Errorf("%w: %s answered %s with state %s",
			common.ErrEngineUnexpectedResult, record.TransferID, outcome.Result, outcome.State)
	}

	repo := cs.srv.sqlRepo.GetTransferStateRepository()
	now := cs.srv.now()

	var finalizedAt *time.Time
	if want == models.TransferStatePosted {
		ts := outcome.Timestamp
		finalizedAt = &ts
	}

	err := repo.UpdateState(ctx, record.TransferID, models.TransferStatePending, want, finalizedAt, now)
	if errors.Is(err, common.ErrInvalidTransition) {
		// a concurrent confirm or cancel got there first
		stored, getErr := repo.GetByID(ctx, record.TransferID)
		if getErr != nil {
			return nil, getErr
		}
		if stored.State != want {
			return nil, err
		}
		result := stored.ToClearingResult()
		return &result, nil
	}
	if err != nil {
		return nil, checkDatabaseError(ctx, err, "update transfer state")
	}

	record.State = want
	record.FinalizedAt = finalizedAt
	record.UpdatedAt = now

	xlog.Info(ctx, "[CLEARING.SETTLE]",
		xlog.String("transferId", record.TransferID),
		xlog.String("engineResult", string(outcome.Result)),
		xlog.String("state", string(want)))

	return cs.finish(ctx, record, cs.intentMetadata(ctx, record.IntentID)), nil
}

// intentMetadata reads the metadata of the original intent for the event of
// a confirmed transfer. It is informational, a failure yields nil.
func (cs *clearing) intentMetadata(ctx context.Context, intentID string) map[string]string {
	rec, err := cs.srv.sqlRepo.GetIntentRepository().GetByID(ctx, intentID)
	if err != nil || len(rec.Payload) == 0 {
		return nil
	}

	var intent models.Intent
	if err = json.Unmarshal(rec.Payload, &intent); err != nil {
		return nil
	}
	return intent.Metadata
}

// Lookup re-reads a transfer after a timeout or cancellation. The local
// record answers first; the engine is asked only for transfers never
// recorded here.
func (cs *clearing) Lookup(ctx context.Context, transferID string) (res *models.ClearingResult, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	result, err := cs.srv.resultCache.GetOrSet(ctx, cache.GetOrSetOpts[models.ClearingResult]{
		Key: transferID,
		TTL: resultCacheTTL,
		Callback: func() (models.ClearingResult, error) {
			return cs.load(ctx, transferID)
		},
		ShouldCache: func(r models.ClearingResult) bool {
			return r.State.IsFinal()
		},
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (cs *clearing) load(ctx context.Context, transferID string) (models.ClearingResult, error) {
	record, err := cs.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, transferID)
	if err == nil {
		return record.ToClearingResult(), nil
	}
	if !errors.Is(err, common.ErrDataNotFound) {
		return models.ClearingResult{}, err
	}

	transfer, err := cs.srv.engine.LookupTransfer(ctx, transferID)
	if errors.Is(err, clearingengine.ErrTransferNotFound) {
		return models.ClearingResult{}, fmt.Errorf("%w: transfer %s", common.ErrDataNotFound, transferID)
	}
	if err != nil {
		return models.ClearingResult{}, err
	}

	result := models.ClearingResult{TransferID: transferID, State: transfer.State}
	if transfer.State == models.TransferStatePosted {
		finalizedAt := transfer.UpdatedAt
		result.FinalizedAt = &finalizedAt
	}
	return result, nil
}

// Status joins the transfer with its honoring outcomes.
func (cs *clearing) Status(ctx context.Context, transferID string) (res *models.TransferStatusView, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	record, err := cs.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	outcomes, err := cs.srv.sqlRepo.GetHonoringOutcomeRepository().ListByTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}

	view := models.NewTransferStatusView(*record, outcomes)
	return &view, nil
}
