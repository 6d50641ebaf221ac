package dlqretrier

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

const logMessage = "[KAFKA-CONSUMER] [DLQ-RETRIER] "

// Consumer redelivers the failed clearing events parked on the DLQ topic.
type Consumer struct {
	*kafkacommon.BaseConsumer
}

func New(ctx context.Context, cfg config.Config, dp services.DLQProcessorService, dlq dlqpublisher.Publisher, mtc metrics.Metrics) (*Consumer, error) {
	handler := NewRetrierHandler("", dp, dlq, nil)

	baseConsumer, err := kafkacommon.NewBaseConsumer(kafkacommon.BaseConsumerConfig{
		Ctx:           ctx,
		Config:        cfg,
		Metrics:       mtc,
		Handler:       handler,
		LogPrefix:     logMessage,
		Topic:         cfg.MessageBroker.KafkaConsumer.TopicClearingEventDLQ,
		ConsumerGroup: cfg.MessageBroker.KafkaConsumer.ConsumerGroupDLQ,
	})
	if err != nil {
		return nil, err
	}

	xlog.Info(ctx, logMessage, xlog.String("status", "success init kafka consumer"))

	return &Consumer{BaseConsumer: baseConsumer}, nil
}

func (c *Consumer) Start() graceful.ProcessStarter {
	return c.BaseConsumer.Start()
}

func (c *Consumer) Stop() graceful.ProcessStopper {
	return c.BaseConsumer.Stop()
}
