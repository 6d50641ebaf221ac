package clearingmirror

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher/mock"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/matcher"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	mockService "github.com/sovr-labs/go-fp-clearing/internal/services/mock"

	"github.com/Shopify/sarama"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	xlog.InitForTest()
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(values ...[]byte) *fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Topic: "clearing.events", Offset: int64(i + 1), Value: v, Timestamp: time.Now()}
	}
	close(ch)
	return &fakeClaim{messages: ch}
}

func clearingEvent(t *testing.T) (models.ClearingEvent, []byte) {
	t.Helper()
	event := models.ClearingEvent{
		TransferID:      "tr-1",
		IntentID:        "int-1",
		Kind:            models.IntentKindPayroll,
		LedgerID:        1,
		DebitAccountID:  "acc-employer",
		CreditAccountID: "acc-payroll-jordan",
		Amount:          decimal.RequireFromString("500"),
		FinalizedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return event, raw
}

func TestClearingMirrorHandler_ConsumeClaim(t *testing.T) {
	_, raw := clearingEvent(t)

	tests := []struct {
		name       string
		value      []byte
		doMock     func(obs *mockService.MockObservationService, dlq *mock.MockPublisher)
		wantMarked []int64
	}{
		{
			name:  "observed",
			value: raw,
			doMock: func(obs *mockService.MockObservationService, dlq *mock.MockPublisher) {
				obs.EXPECT().
					Observe(matcher.ContextWithTimeoutRange(500*time.Millisecond, time.Second), gomock.AssignableToTypeOf(models.ClearingEvent{})).
					DoAndReturn(func(_ context.Context, event models.ClearingEvent) (models.ObserveResult, error) {
						assert.Equal(t, "tr-1", event.TransferID)
						return models.Observed, nil
					})
			},
			wantMarked: []int64{1},
		},
		{
			name:  "imbalance is parked on the dlq",
			value: raw,
			doMock: func(obs *mockService.MockObservationService, dlq *mock.MockPublisher) {
				obs.EXPECT().
					Observe(gomock.Any(), gomock.Any()).
					Return(models.ObserveResult(""), fmt.Errorf("%w: debits 500 credits 490", common.ErrObservationImbalance))
				dlq.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg models.FailedMessage) error {
						assert.Equal(t, models.DLQStageMirror, msg.Stage)
						assert.Equal(t, raw, msg.Payload)
						assert.ErrorIs(t, msg.CauseError, common.ErrObservationImbalance)
						return nil
					})
			},
			wantMarked: []int64{1},
		},
		{
			name:  "storage failure goes to dlq",
			value: raw,
			doMock: func(obs *mockService.MockObservationService, dlq *mock.MockPublisher) {
				obs.EXPECT().
					Observe(gomock.Any(), gomock.Any()).
					Return(models.ObserveResult(""), assert.AnError)
				dlq.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg models.FailedMessage) error {
						assert.Equal(t, models.DLQStageMirror, msg.Stage)
						assert.Equal(t, raw, msg.Payload)
						assert.ErrorIs(t, msg.CauseError, assert.AnError)
						return nil
					})
			},
			wantMarked: []int64{1},
		},
		{
			name:  "undecodable event goes to dlq",
			value: []byte(`{"transferId":`),
			doMock: func(obs *mockService.MockObservationService, dlq *mock.MockPublisher) {
				dlq.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantMarked: []int64{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			obs := mockService.NewMockObservationService(ctrl)
			dlq := mock.NewMockPublisher(ctrl)
			if tt.doMock != nil {
				tt.doMock(obs, dlq)
			}

			cfg := config.Config{}
			cfg.MessageBroker.KafkaConsumer.HandlerTimeout = time.Second
			h := NewClearingMirrorHandler("consumer-host", obs, dlq, cfg, nil)

			session := &fakeSession{ctx: context.Background()}
			require.NoError(t, h.ConsumeClaim(session, claimOf(tt.value)))
			assert.Equal(t, tt.wantMarked, session.marked)
		})
	}
}

func TestClearingMirrorHandler_StopsOnSessionDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewClearingMirrorHandler("", mockService.NewMockObservationService(ctrl), mock.NewMockPublisher(ctrl), config.Config{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}
	assert.NoError(t, h.ConsumeClaim(session, claim))
	assert.Empty(t, session.marked)
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mockService.NewMockObservationService(ctrl)

	_, err := New(context.Background(), config.Config{}, obs, mock.NewMockPublisher(ctrl), nil)
	assert.Error(t, err)

	cfg := config.Config{}
	cfg.MessageBroker.KafkaConsumer.TopicClearingEvent = "clearing.events"
	cfg.MessageBroker.KafkaConsumer.ConsumerGroupMirror = "clearing_mirror"
	c, err := New(context.Background(), cfg, obs, mock.NewMockPublisher(ctrl), nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Start())
	assert.NotNil(t, c.Stop())
}
