package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/messaging"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"

	"github.com/Shopify/sarama"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoTopic         = errors.New("no topics given to be consumed, please set the topic")
	ErrNoConsumerGroup = errors.New("no kafka consumer group defined, please set the group")
)

// BaseConsumer owns the sarama consumer group lifecycle. Handlers embed
// BaseHandler and only implement ConsumeClaim.
type BaseConsumer struct {
	ctx             context.Context
	clientID        string
	cfg             config.Config
	consumerCfg     config.ConsumerConfig
	cg              sarama.ConsumerGroup
	handler         sarama.ConsumerGroupHandler
	metrics         metrics.Metrics
	consumerMetrics *metrics.ConsumerMetrics
	logPrefix       string
	topic           string
	consumerGroup   string
}

type BaseConsumerConfig struct {
	Ctx           context.Context
	Config        config.Config
	Metrics       metrics.Metrics
	Handler       sarama.ConsumerGroupHandler
	LogPrefix     string
	Topic         string
	ConsumerGroup string
}

func NewBaseConsumer(cfg BaseConsumerConfig) (*BaseConsumer, error) {
	if cfg.Topic == "" {
		return nil, ErrNoTopic
	}

	if cfg.ConsumerGroup == "" {
		return nil, ErrNoConsumerGroup
	}

	return &BaseConsumer{
		ctx:           cfg.Ctx,
		cfg:           cfg.Config,
		consumerCfg:   cfg.Config.MessageBroker.KafkaConsumer,
		handler:       cfg.Handler,
		metrics:       cfg.Metrics,
		logPrefix:     cfg.LogPrefix,
		topic:         cfg.Topic,
		consumerGroup: cfg.ConsumerGroup,
	}, nil
}

// ConsumerMetrics is nil until PreStart ran with metrics enabled.
func (c *BaseConsumer) ConsumerMetrics() *metrics.ConsumerMetrics {
	return c.consumerMetrics
}

func (c *BaseConsumer) PreStart() error {
	saramaCfg, err := messaging.CreateSaramaConsumerConfig(c.consumerCfg, c.logPrefix)
	if err != nil {
		return fmt.Errorf("failed to create consumer config: %w", err)
	}

	if c.metrics != nil && c.consumerMetrics == nil {
		c.consumerMetrics = metrics.NewConsumerMetrics(c.consumerGroup, c.cfg.App.Name, time.Second, c.metrics.PrometheusRegisterer())
		c.consumerMetrics.Run()
	}

	c.clientID = saramaCfg.ClientID

	client, err := sarama.NewConsumerGroup(c.consumerCfg.Brokers, c.consumerGroup, saramaCfg)
	if err != nil {
		return err
	}
	c.cg = client

	return nil
}

func (c *BaseConsumer) Start() graceful.ProcessStarter {
	return func() error {
		if err := c.PreStart(); err != nil {
			xlog.Error(c.ctx, c.logPrefix, xlog.Err(err))
			return err
		}

		xlog.Info(c.ctx, c.logPrefix,
			xlog.String("status", "consumer started"),
			xlog.String("topic", c.topic),
			xlog.String("consumer_group", c.consumerGroup),
			xlog.String("client_id", c.clientID))

		go func() {
			for errCg := range c.cg.Errors() {
				xlog.Error(c.ctx, c.logPrefix, xlog.Err(fmt.Errorf("client error: %w", errCg)))
			}
		}()

		eg, ctx := errgroup.WithContext(c.ctx)

		eg.Go(func() error {
			for {
				// Consume returns on every rebalance and must be called again.
				if err := c.cg.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return nil
					}
					xlog.Warn(c.ctx, c.logPrefix, xlog.Err(fmt.Errorf("error start consumer: %w", err)))
				}
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("context was canceled: %w", err)
				}
			}
		})

		return eg.Wait()
	}
}

func (c *BaseConsumer) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		if c.cg == nil {
			return nil
		}
		return c.cg.Close()
	}
}
