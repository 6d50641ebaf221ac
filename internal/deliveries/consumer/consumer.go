package consumer

import (
	"context"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/cmd/setup"
	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	clearinghonoring "github.com/sovr-labs/go-fp-clearing/internal/deliveries/consumer/clearing_honoring"
	clearingmirror "github.com/sovr-labs/go-fp-clearing/internal/deliveries/consumer/clearing_mirror"
	dlqretrier "github.com/sovr-labs/go-fp-clearing/internal/deliveries/consumer/dlq_retrier"
)

const (
	NameClearingMirror   = "clearing_mirror"
	NameClearingHonoring = "clearing_honoring"
	NameDLQRetrier       = "dlq_retrier"
)

// Names lists every consumer the binary can run.
var Names = []string{NameClearingMirror, NameClearingHonoring, NameDLQRetrier}

func NewKafkaConsumer(
	ctx context.Context,
	consumerName string,
	conf config.Config,
	svc *services.Services,
	contract *setup.Setup,
) (consumerProcess graceful.ProcessStartStopper, err error) {
	dlq := contract.PublisherClient.ClearingEventDLQ

	switch consumerName {
	case NameClearingMirror:
		consumerProcess, err = clearingmirror.New(ctx, conf, svc.Observation, dlq, contract.Metrics)
	case NameClearingHonoring:
		consumerProcess, err = clearinghonoring.New(ctx, conf, svc.Honoring, dlq, contract.Metrics)
	case NameDLQRetrier:
		consumerProcess, err = dlqretrier.New(ctx, conf, svc.DLQProcessor, dlq, contract.Metrics)
	default:
		err = fmt.Errorf("consumer type name for %s not found", consumerName)
	}

	return
}
