package dlqpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/Shopify/sarama"
)

const prefixLogMessage = "[DLQ]"

//go:generate mockgen -source dlq.go -destination mock/dlq_mock.go -package mock
type Publisher interface {
	Publish(ctx context.Context, message models.FailedMessage) error
}

type kafkaDlq struct {
	producer sarama.SyncProducer
	topic    string
	metrics  metrics.Metrics
}

func New(p sarama.SyncProducer, topic string, metrics metrics.Metrics) Publisher {
	return kafkaDlq{p, topic, metrics}
}

func (d kafkaDlq) Publish(ctx context.Context, message models.FailedMessage) (err error) {
	startTime := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.GetPublisherPrometheus().GenerateMetrics(startTime, d.topic, err)
		}
	}()

	msg, err := d.prepareMessage(message)
	if err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "prepare dlq message failed"),
			xlog.Err(err))
		return err
	}

	if _, _, err = d.producer.SendMessage(msg); err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "publish dlq failed"),
			xlog.String("source_topic", message.Topic),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, prefixLogMessage,
		xlog.String("status", "success publish dlq message"),
		xlog.Time("timestamp", message.Timestamp),
		xlog.String("topic", d.topic),
		xlog.String("source_topic", message.Topic),
		xlog.Int64("source_offset", message.Offset),
	)

	return nil
}

func (d kafkaDlq) prepareMessage(message models.FailedMessage) (*sarama.ProducerMessage, error) {
	if message.CauseError != nil && message.Error == "" {
		message.Error = message.CauseError.Error()
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(payload),
	}, nil
}
