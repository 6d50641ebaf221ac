package kafka

import (
	"context"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"
	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/Shopify/sarama"
)

type BaseHandler struct {
	ClientID        string
	ConsumerMetrics *metrics.ConsumerMetrics
	DLQ             dlqpublisher.Publisher
	LogPrefix       string
	// Stage tags DLQ messages with the pipeline step that failed.
	Stage           string
}

func (b *BaseHandler) Setup(sarama.ConsumerGroupSession) error { return nil }

func (b *BaseHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// MessageContext derives a context carrying the producer's correlation id.
func (b *BaseHandler) MessageContext(parent context.Context, msg *sarama.ConsumerMessage) context.Context {
	opts := []ctxdata.Option{ctxdata.SetHost(b.ClientID)}
	for _, h := range msg.Headers {
		if h != nil && string(h.Key) == publisher.HeaderCorrelationID {
			opts = append(opts, ctxdata.SetCorrelationId(string(h.Value)))
		}
	}

	return ctxdata.Sets(parent, opts...)
}

func (b *BaseHandler) CreateLogField(msg *sarama.ConsumerMessage) []xlog.Field {
	return []xlog.Field{
		xlog.Time("timestamp", msg.Timestamp),
		xlog.String("topic", msg.Topic),
		xlog.String("key", string(msg.Key)),
		xlog.Int32("partition", msg.Partition),
		xlog.Int64("offset", msg.Offset),
		xlog.String("message-claimed", string(msg.Value)),
	}
}

func (b *BaseHandler) Ack(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	session.MarkMessage(message, "")
	xlog.Debug(context.Background(), b.LogPrefix+"[ACK]",
		xlog.String("topic", message.Topic),
		xlog.Int32("partition", message.Partition),
		xlog.Int64("offset", message.Offset),
	)
}

// Nack parks the message on the DLQ and commits its offset so the partition
// keeps moving.
func (b *BaseHandler) Nack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage, causeErr error) {
	logField := append(b.CreateLogField(message), xlog.Err(causeErr))

	err := b.DLQ.Publish(ctx, models.FailedMessage{
		Payload:    message.Value,
		Topic:      message.Topic,
		Partition:  message.Partition,
		Offset:     message.Offset,
		Timestamp:  message.Timestamp,
		Stage:      b.Stage,
		CauseError: causeErr,
	})
	if err != nil {
		logField = append(logField, xlog.String("dlq_status", "failed"))
		xlog.Error(ctx, b.LogPrefix+"[NACK-DLQ-FAILED]", logField...)
	} else {
		logField = append(logField, xlog.String("dlq_status", "success"))
	}

	session.MarkMessage(message, "")
	xlog.Warn(ctx, b.LogPrefix+"[NACK]", logField...)
}

func (b *BaseHandler) RecordMetrics(startTime time.Time, message *sarama.ConsumerMessage, err error) {
	b.ConsumerMetrics.GenerateMetrics(startTime, message, err)
}
