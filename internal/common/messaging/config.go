package messaging

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/config"

	"github.com/Shopify/sarama"
)

var ErrNoBrokers = errors.New("no kafka bootstrap brokers defined, please set the brokers")

var balanceStrategies = map[string]sarama.BalanceStrategy{
	"sticky":     sarama.BalanceStrategySticky,
	"roundrobin": sarama.BalanceStrategyRoundRobin,
	"range":      sarama.BalanceStrategyRange,
}

func CreateSaramaConsumerConfig(cfg config.ConsumerConfig, logPrefix string) (*sarama.Config, error) {
	if len(cfg.Brokers) == 0 {
		xlog.Error(context.Background(), logPrefix, xlog.Err(ErrNoBrokers))
		return nil, ErrNoBrokers
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V3_0_0_0
	saramaCfg.ClientID, _ = os.Hostname()
	saramaCfg.Consumer.Return.Errors = true

	if cfg.IsVerbose {
		sarama.Logger = log.New(os.Stdout, logPrefix, log.LstdFlags)
	}

	if cfg.IsOldest {
		saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	strategy, ok := balanceStrategies[cfg.Assignor]
	if !ok {
		strategy = sarama.BalanceStrategyRange
	}
	saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{strategy}

	return saramaCfg, nil
}

// CreateSaramaProducerConfig builds the sync producer settings shared by the
// clearing event, DLQ and alert publishers. Messages are keyed by transfer id,
// so the hash partitioner keeps every event of a transfer on one partition.
func CreateSaramaProducerConfig(timeout time.Duration) *sarama.Config {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V3_0_0_0
	saramaCfg.ClientID, _ = os.Hostname()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Idempotent = true
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner
	saramaCfg.Producer.Timeout = timeout
	saramaCfg.Net.MaxOpenRequests = 1
	saramaCfg.Net.DialTimeout = timeout
	saramaCfg.Net.ReadTimeout = timeout
	saramaCfg.Net.WriteTimeout = timeout

	return saramaCfg
}
