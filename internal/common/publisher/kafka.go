package publisher

import (
	"hash"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/messaging"

	"github.com/Shopify/sarama"
)

type Option func(*sarama.Config)

func NewKafkaSyncProducer(brokers []string, opts ...Option) (sarama.SyncProducer, error) {
	saramaCfg := messaging.CreateSaramaProducerConfig(2 * time.Second)

	for _, opt := range opts {
		opt(saramaCfg)
	}

	return sarama.NewSyncProducer(brokers, saramaCfg)
}

func WithCustomHasher(hasher func() hash.Hash32) Option {
	return func(cfg *sarama.Config) {
		cfg.Producer.Partitioner = sarama.NewCustomHashPartitioner(hasher)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(cfg *sarama.Config) {
		cfg.Producer.Timeout = timeout
		cfg.Net.DialTimeout = timeout
		cfg.Net.ReadTimeout = timeout
		cfg.Net.WriteTimeout = timeout
	}
}
