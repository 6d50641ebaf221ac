package clearingmirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	kafkacommon "github.com/sovr-labs/go-fp-clearing/internal/common/kafka"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"

	"github.com/Shopify/sarama"
)

type ClearingMirrorHandler struct {
	kafkacommon.BaseHandler
	obs     services.ObservationService
	timeout time.Duration
}

func NewClearingMirrorHandler(
	clientID string,
	obs services.ObservationService,
	dlq dlqpublisher.Publisher,
	cfg config.Config,
	consumerMetrics *metrics.ConsumerMetrics,
) sarama.ConsumerGroupHandler {
	return &ClearingMirrorHandler{
		BaseHandler: kafkacommon.BaseHandler{
			ClientID:        clientID,
			ConsumerMetrics: consumerMetrics,
			DLQ:             dlq,
			LogPrefix:       logMessage,
			Stage:           models.DLQStageMirror,
		},
		obs:     obs,
		timeout: cfg.MessageBroker.KafkaConsumer.HandlerTimeout,
	}
}

func (h *ClearingMirrorHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			ctx := h.MessageContext(session.Context(), message)

			start := time.Now()
			logField := h.CreateLogField(message)

			err := h.handler(ctx, message)
			if err != nil {
				logField = append(logField, xlog.Duration("response-time", time.Since(start)), xlog.Err(err))
				xlog.Warn(ctx, logMessage, logField...)

				h.Nack(ctx, session, message, err)
				continue
			}

			logField = append(logField, xlog.Duration("response-time", time.Since(start)))
			xlog.Info(ctx, logMessage, logField...)

			h.Ack(session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *ClearingMirrorHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	logMsg := "[PROCESS-MESSAGE]"

	var event models.ClearingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("error unmarshal clearing event: %w", err)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.obs.Observe(ctx, event)
	if errors.Is(err, common.ErrObservationImbalance) {
		// already alerted; parked on the dlq, which does not redeliver it
		return fmt.Errorf("transfer %s does not balance: %w", event.TransferID, err)
	}
	if err != nil {
		return fmt.Errorf("unable to observe transfer %s: %w", event.TransferID, err)
	}

	xlog.Info(ctx, logMsg, xlog.String("transferId", event.TransferID), xlog.String("result", string(res)))
	return nil
}

func (h *ClearingMirrorHandler) handler(ctx context.Context, message *sarama.ConsumerMessage) (err error) {
	startTime := time.Now()
	err = h.processMessage(ctx, message)
	h.RecordMetrics(startTime, message, err)
	return
}
