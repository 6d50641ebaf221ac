package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
)

const dlqStatusTTL = 24 * time.Hour

//go:generate mockgen -source dlq_processor_service.go -destination mock/dlq_processor_service_mock.go -package mock

type DLQProcessorService interface {
	// Retry re-drives the stage a clearing event failed in. It returns nil
	// once the message is handled or given up on; an error asks for another
	// redelivery.
	Retry(ctx context.Context, message models.FailedMessage) error
	SendNotificationFailure(ctx context.Context, message models.FailedMessage) error

	GetStatusRetry(ctx context.Context, processID string) (models.DLQRetryStatus, error)
	UpsertStatusRetry(ctx context.Context, status models.DLQRetryStatus) error
}

type dlqProcessor service

var _ DLQProcessorService = (*dlqProcessor)(nil)

func (d *dlqProcessor) Retry(ctx context.Context, message models.FailedMessage) (err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("stage", message.Stage))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var event models.ClearingEvent
	if err = json.Unmarshal(message.Payload, &event); err != nil {
		// nothing to retry, the payload will never decode
		xlog.Error(ctx, "[DLQ-ERROR]",
			xlog.String("operation", "decode clearing event"),
			xlog.String("error_message", err.Error()))
		return nil
	}

	processID := fmt.Sprintf("%s:%s", message.Stage, event.TransferID)
	status, err := d.GetStatusRetry(ctx, processID)
	switch {
	case errors.Is(err, common.ErrDataNotFound):
		status = models.DLQRetryStatus{ProcessID: processID, Stage: message.Stage, MaxRetry: models.DefaultDLQMaxRetry}
	case err != nil:
		return err
	}

	if status.Exhausted() {
		message.Error = fmt.Sprintf("gave up after %d retries: %s", status.Attempts, status.LastError)
		return d.SendNotificationFailure(ctx, message)
	}

	status.Attempts++
	d.logRetry(ctx, processID, status.Attempts, message.Error)

	switch message.Stage {
	case models.DLQStageMirror:
		_, err = d.srv.Observation.Observe(ctx, event)
	case models.DLQStageHonoring:
		err = d.srv.Honoring.DispatchEvent(ctx, event)
	default:
		message.Error = fmt.Sprintf("unknown stage %q: %s", message.Stage, message.Error)
		return d.SendNotificationFailure(ctx, message)
	}

	if err == nil {
		return d.UpsertStatusRetry(ctx, status)
	}

	if errors.Is(err, common.ErrObservationImbalance) {
		// the chart has to change first; the alert is already raised
		message.Error = err.Error()
		return d.SendNotificationFailure(ctx, message)
	}

	status.LastError = err.Error()
	if upErr := d.UpsertStatusRetry(ctx, status); upErr != nil {
		xlog.Warn(ctx, "[DLQ-RETRY] store status", xlog.String("processId", processID), xlog.Err(upErr))
	}
	return err
}

func (d *dlqProcessor) SendNotificationFailure(ctx context.Context, message models.FailedMessage) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var event models.ClearingEvent
	_ = json.Unmarshal(message.Payload, &event)

	xlog.Error(ctx, "[DLQ-ERROR]",
		xlog.String("operation", fmt.Sprintf("process clearing event (%s)", message.Stage)),
		xlog.String("transfer_id", event.TransferID),
		xlog.String("topic", message.Topic),
		xlog.Int64("offset", message.Offset),
		xlog.String("error_message", message.Error))

	return nil
}

func (d *dlqProcessor) logRetry(ctx context.Context, processID string, attempt int, cause string) {
	xlog.Info(ctx, "[PROCESS-RETRY]",
		xlog.String("process-id", processID),
		xlog.Int("attempt", attempt),
		xlog.String("error-causer", cause))
}

func (d *dlqProcessor) GetStatusRetry(ctx context.Context, processID string) (status models.DLQRetryStatus, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	rawData, err := d.srv.cacheRepo.Get(ctx, models.DLQRetryStatusKey(processID))
	if err != nil {
		return status, err
	}

	if err = json.Unmarshal([]byte(rawData), &status); err != nil {
		return status, fmt.Errorf("failed to unmarshal status retry: %w", err)
	}

	return status, nil
}

func (d *dlqProcessor) UpsertStatusRetry(ctx context.Context, status models.DLQRetryStatus) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	rawData, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status retry: %w", err)
	}

	if err = d.srv.cacheRepo.Set(ctx, models.DLQRetryStatusKey(status.ProcessID), rawData, dlqStatusTTL); err != nil {
		return fmt.Errorf("failed to set status retry to cache: %w", err)
	}

	return nil
}
