package dlqretrier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher/mock"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	mockService "github.com/sovr-labs/go-fp-clearing/internal/services/mock"

	"github.com/Shopify/sarama"
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

func claimOf(value []byte) *fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, 1)
	ch <- &sarama.ConsumerMessage{Topic: "clearing.events.dlq", Offset: 7, Value: value, Timestamp: time.Now()}
	close(ch)
	return &fakeClaim{messages: ch}
}

func TestDLQRetrierHandler_ConsumeClaim(t *testing.T) {
	failed := models.FailedMessage{
		Payload: []byte(`{"transferId":"tr-1"}`),
		Topic:   "clearing.events",
		Offset:  42,
		Stage:   models.DLQStageMirror,
		Error:   "db down",
	}
	raw, err := json.Marshal(failed)
	require.NoError(t, err)

	tests := []struct {
		name       string
		value      []byte
		doMock     func(dp *mockService.MockDLQProcessorService, dlq *mock.MockPublisher)
		wantMarked []int64
	}{
		{
			name:  "retry succeeded",
			value: raw,
			doMock: func(dp *mockService.MockDLQProcessorService, dlq *mock.MockPublisher) {
				dp.EXPECT().
					Retry(gomock.Any(), gomock.AssignableToTypeOf(models.FailedMessage{})).
					DoAndReturn(func(_ context.Context, msg models.FailedMessage) error {
						assert.Equal(t, models.DLQStageMirror, msg.Stage)
						assert.Equal(t, int64(42), msg.Offset)
						assert.JSONEq(t, `{"transferId":"tr-1"}`, string(msg.Payload))
						return nil
					})
			},
			wantMarked: []int64{7},
		},
		{
			name:  "retry failed is requeued",
			value: raw,
			doMock: func(dp *mockService.MockDLQProcessorService, dlq *mock.MockPublisher) {
				dp.EXPECT().Retry(gomock.Any(), gomock.Any()).Return(assert.AnError)
				dlq.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg models.FailedMessage) error {
						assert.Equal(t, models.DLQStageMirror, msg.Stage)
						assert.Equal(t, assert.AnError.Error(), msg.Error)
						return nil
					})
			},
			wantMarked: []int64{7},
		},
		{
			name:  "requeue failed leaves the offset",
			value: raw,
			doMock: func(dp *mockService.MockDLQProcessorService, dlq *mock.MockPublisher) {
				dp.EXPECT().Retry(gomock.Any(), gomock.Any()).Return(assert.AnError)
				dlq.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
		},
		{
			name:       "broken envelope is dropped",
			value:      []byte(`not json`),
			wantMarked: []int64{7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dp := mockService.NewMockDLQProcessorService(ctrl)
			dlq := mock.NewMockPublisher(ctrl)
			if tt.doMock != nil {
				tt.doMock(dp, dlq)
			}

			h := NewRetrierHandler("consumer-host", dp, dlq, nil)

			session := &fakeSession{ctx: context.Background()}
			require.NoError(t, h.ConsumeClaim(session, claimOf(tt.value)))
			assert.Equal(t, tt.wantMarked, session.marked)
		})
	}
}
