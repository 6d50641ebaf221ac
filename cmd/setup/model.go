package setup

import (
	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
)

type PublisherClient struct {
	ClearingEvent    publisher.Publisher
	ObservationAlert publisher.Publisher
	CorrectiveIntent publisher.Publisher
	ClearingEventDLQ dlqpublisher.Publisher
}
