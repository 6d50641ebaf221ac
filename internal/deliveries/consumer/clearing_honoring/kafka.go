package clearinghonoring

import (
	"context"

	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	kafkacommon "github.com/sovr-labs/go-fp-clearing/internal/common/kafka"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"
)

const logMessage = "[KAFKA-CONSUMER] [CLEARING-HONORING] "

type Consumer struct {
	*kafkacommon.BaseConsumer
}

// New dispatches the honoring instructions carried by clearing events.
func New(ctx context.Context, cfg config.Config, hs services.HonoringService, dlq dlqpublisher.Publisher, mtc metrics.Metrics) (*Consumer, error) {
	handler := NewClearingHonoringHandler("", hs, dlq, cfg, nil)

	baseConsumer, err := kafkacommon.NewBaseConsumer(kafkacommon.BaseConsumerConfig{
		Ctx:           ctx,
		Config:        cfg,
		Metrics:       mtc,
		Handler:       handler,
		LogPrefix:     logMessage,
		Topic:         cfg.MessageBroker.KafkaConsumer.TopicClearingEvent,
		ConsumerGroup: cfg.MessageBroker.KafkaConsumer.ConsumerGroupHonoring,
	})
	if err != nil {
		return nil, err
	}

	c := &Consumer{BaseConsumer: baseConsumer}

	xlog.Info(ctx, logMessage, xlog.String("status", "success init kafka consumer"))

	return c, nil
}

func (c *Consumer) Start() graceful.ProcessStarter {
	return c.BaseConsumer.Start()
}

func (c *Consumer) Stop() graceful.ProcessStopper {
	return c.BaseConsumer.Stop()
}
