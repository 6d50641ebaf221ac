package clearinghonoring

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkacommon "github.com/sovr-labs/go-fp-clearing/internal/common/kafka"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"

	"github.com/Shopify/sarama"
)

type ClearingHonoringHandler struct {
	kafkacommon.BaseHandler
	hs      services.HonoringService
	timeout time.Duration
}

func NewClearingHonoringHandler(
	clientID string,
	hs services.HonoringService,
	dlq dlqpublisher.Publisher,
	cfg config.Config,
	consumerMetrics *metrics.ConsumerMetrics,
) sarama.ConsumerGroupHandler {
	return &ClearingHonoringHandler{
		BaseHandler: kafkacommon.BaseHandler{
			ClientID:        clientID,
			ConsumerMetrics: consumerMetrics,
			DLQ:             dlq,
			LogPrefix:       logMessage,
			Stage:           models.DLQStageHonoring,
		},
		hs:      hs,
		timeout: cfg.MessageBroker.KafkaConsumer.HandlerTimeout,
	}
}

func (h *ClearingHonoringHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
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

func (h *ClearingHonoringHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event models.ClearingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("error unmarshal clearing event: %w", err)
	}

	if event.Honoring == nil {
		return nil
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	// adapter failures end up in the outcome; only storage errors come back here
	if err := h.hs.DispatchEvent(ctx, event); err != nil {
		return fmt.Errorf("unable to dispatch honoring for %s: %w", event.TransferID, err)
	}

	xlog.Info(ctx, "[PROCESS-MESSAGE]",
		xlog.String("transferId", event.TransferID),
		xlog.String("rail", event.Honoring.Rail))
	return nil
}

func (h *ClearingHonoringHandler) handler(ctx context.Context, message *sarama.ConsumerMessage) (err error) {
	startTime := time.Now()
	err = h.processMessage(ctx, message)
	h.RecordMetrics(startTime, message, err)
	return
}
