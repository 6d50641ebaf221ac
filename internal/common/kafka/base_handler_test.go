package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"
	"github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher/mock"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/Shopify/sarama"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	xlog.InitForTest()
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	marked []int64
}

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

func newMessage() *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     "clearing-event",
		Partition: 1,
		Offset:    42,
		Key:       []byte("transfer-1"),
		Value:     []byte(`{"transferId":"transfer-1"}`),
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Headers: []*sarama.RecordHeader{
			{Key: []byte(publisher.HeaderCorrelationID), Value: []byte("corr-9")},
		},
	}
}

func TestBaseHandler_Ack(t *testing.T) {
	session := &fakeSession{}
	h := &BaseHandler{LogPrefix: "[TEST]"}

	h.Ack(session, newMessage())

	assert.Equal(t, []int64{42}, session.marked)
}

func TestBaseHandler_Nack(t *testing.T) {
	tests := []struct {
		name   string
		dlqErr error
	}{
		{name: "dlq publish success"},
		{name: "dlq publish failed still commits offset", dlqErr: assert.AnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dlq := mock.NewMockPublisher(ctrl)
			session := &fakeSession{}
			msg := newMessage()

			dlq.EXPECT().Publish(gomock.Any(), models.FailedMessage{
				Payload:    msg.Value,
				Topic:      msg.Topic,
				Partition:  msg.Partition,
				Offset:     msg.Offset,
				Timestamp:  msg.Timestamp,
				CauseError: assert.AnError,
			}).Return(tt.dlqErr)

			h := &BaseHandler{DLQ: dlq, LogPrefix: "[TEST]"}
			h.Nack(context.Background(), session, msg, assert.AnError)

			assert.Equal(t, []int64{42}, session.marked)
		})
	}
}

func TestBaseHandler_MessageContext(t *testing.T) {
	h := &BaseHandler{ClientID: "consumer-host"}

	ctx := h.MessageContext(context.Background(), newMessage())

	assert.Equal(t, "corr-9", ctxdata.GetCorrelationId(ctx))
	assert.Equal(t, "consumer-host", ctxdata.GetHost(ctx))
}

func TestNewBaseConsumer(t *testing.T) {
	_, err := NewBaseConsumer(BaseConsumerConfig{ConsumerGroup: "g"})
	assert.ErrorIs(t, err, ErrNoTopic)

	_, err = NewBaseConsumer(BaseConsumerConfig{Topic: "t"})
	assert.ErrorIs(t, err, ErrNoConsumerGroup)

	c, err := NewBaseConsumer(BaseConsumerConfig{Topic: "t", ConsumerGroup: "g", Ctx: context.Background()})
	assert.NoError(t, err)
	assert.NoError(t, c.Stop()(context.Background()))
}
