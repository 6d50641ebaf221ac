package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"

	"github.com/Shopify/sarama"
)

const (
	logIdentifier = "[GENERAL-PUBLISHER]"

	HeaderCorrelationID = ctxdata.HeaderCorrelationID
)

//go:generate mockgen -source publisher.go -destination mock/publisher_mock.go -package mock
type Publisher interface {
	Publish(ctx context.Context, message any, opts ...PublishOption) error
}

type publishOptions struct {
	key     string
	headers map[string]string
}

type PublishOption func(*publishOptions)

// WithKey sets the partition key. Clearing events use the transfer id.
func WithKey(key string) PublishOption {
	return func(opts *publishOptions) {
		opts.key = key
	}
}

func WithHeaders(headers map[string]string) PublishOption {
	return func(opts *publishOptions) {
		if opts.headers == nil {
			opts.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			opts.headers[k] = v
		}
	}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
	metrics  metrics.Metrics
}

func NewPublisher(p sarama.SyncProducer, topic string, mtc metrics.Metrics) Publisher {
	return &publisher{
		producer: p,
		topic:    topic,
		metrics:  mtc,
	}
}

func (d *publisher) Publish(ctx context.Context, message any, opts ...PublishOption) (err error) {
	startTime := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.GetPublisherPrometheus().GenerateMetrics(startTime, d.topic, err)
		}
	}()

	options := &publishOptions{}
	if correlationID := ctxdata.GetCorrelationId(ctx); correlationID != "" {
		WithHeaders(map[string]string{HeaderCorrelationID: correlationID})(options)
	}
	for _, opt := range opts {
		opt(options)
	}

	msg, err := d.prepareMessage(message, options)
	if err != nil {
		xlog.Error(ctx, logIdentifier,
			xlog.String("status", "failed prepare message"),
			xlog.String("topic", d.topic),
			xlog.Err(err))
		return err
	}

	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		xlog.Error(ctx, logIdentifier,
			xlog.String("status", "failed send message"),
			xlog.String("topic", d.topic),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, logIdentifier,
		xlog.String("status", "success publish message"),
		xlog.String("topic", d.topic),
		xlog.String("key", options.key),
		xlog.Int32("partition", partition),
		xlog.Int64("offset", offset),
	)

	return nil
}

func (d *publisher) prepareMessage(message any, opts *publishOptions) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	producerMsg := &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(payload),
	}

	if opts.key != "" {
		producerMsg.Key = sarama.StringEncoder(opts.key)
	}

	if len(opts.headers) > 0 {
		keys := make([]string, 0, len(opts.headers))
		for k := range opts.headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		producerMsg.Headers = make([]sarama.RecordHeader, 0, len(keys))
		for _, k := range keys {
			producerMsg.Headers = append(producerMsg.Headers, sarama.RecordHeader{
				Key:   []byte(k),
				Value: []byte(opts.headers[k]),
			})
		}
	}

	return producerMsg, nil
}
