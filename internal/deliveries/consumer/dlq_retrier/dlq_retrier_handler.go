package dlqretrier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkacommon "github.com/sovr-labs/go-fp-clearing/internal/common/kafka"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"

	"github.com/Shopify/sarama"
)

type DLQRetrierHandler struct {
	kafkacommon.BaseHandler
	dp services.DLQProcessorService
}

func NewRetrierHandler(clientID string, dp services.DLQProcessorService, dlq dlqpublisher.Publisher, consumerMetrics *metrics.ConsumerMetrics) sarama.ConsumerGroupHandler {
	return &DLQRetrierHandler{
		BaseHandler: kafkacommon.BaseHandler{
			ClientID:        clientID,
			ConsumerMetrics: consumerMetrics,
			DLQ:             dlq,
			LogPrefix:       logMessage,
		},
		dp: dp,
	}
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (dt *DLQRetrierHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			ctx := dt.MessageContext(session.Context(), message)
			start := time.Now()
			logField := dt.CreateLogField(message)

			err := dt.handler(ctx, message)
			if err != nil {
				logField = append(logField, xlog.Duration("response-time", time.Since(start)), xlog.Err(err))
				xlog.Warn(ctx, logMessage, logField...)
				continue
			}
			logField = append(logField, xlog.Duration("response-time", time.Since(start)))
			xlog.Info(ctx, logMessage, logField...)
			dt.Ack(session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}

// processMessage retries one failed message. A retry that fails again is put
// back on the DLQ; the processor stops once the message is exhausted.
func (dt *DLQRetrierHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var payload models.FailedMessage
	if err := json.Unmarshal(message.Value, &payload); err != nil {
		// a broken envelope is dropped, there is nothing to redeliver
		xlog.Error(ctx, "[PROCESS-MESSAGE]", append(dt.CreateLogField(message), xlog.Err(err))...)
		return nil
	}

	retryErr := dt.dp.Retry(ctx, payload)
	if retryErr == nil {
		return nil
	}

	payload.CauseError = retryErr
	payload.Error = retryErr.Error()
	if err := dt.DLQ.Publish(ctx, payload); err != nil {
		// leave the offset uncommitted so the message comes back
		return fmt.Errorf("err requeue dlq message: %w", err)
	}

	xlog.Warn(ctx, "[PROCESS-MESSAGE]",
		xlog.String("stage", payload.Stage),
		xlog.String("status", "requeued"),
		xlog.Err(retryErr))
	return nil
}

func (dt *DLQRetrierHandler) handler(ctx context.Context, message *sarama.ConsumerMessage) (err error) {
	startTime := time.Now()
	err = dt.processMessage(ctx, message)
	dt.RecordMetrics(startTime, message, err)
	return
}
