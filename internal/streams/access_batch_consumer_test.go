package streams

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	aggregatormocks "usage-counter/internal/aggregators/mocks"
	"usage-counter/internal/events"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
	"usage-counter/internal/shared/svcerrors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func waitForCalls(t *testing.T, done <-chan struct{}, want int) {
	t.Helper()

	for i := 0; i < want; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for call %d of %d", i+1, want)
		}
	}
}

func TestAccessBatchConsumer_ConsumesPublishedEvents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.AccessBatchEvent]()
	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	consumer := NewAccessBatchConsumer(queue, mockAggregationService, zerolog.Nop())

	done := make(chan struct{}, 2)
	mockAggregationService.EXPECT().
		Aggregate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *events.AccessBatchEvent) *svcerrors.ServiceError {
			assert.Equal(t, "scl", event.Collection)
			done <- struct{}{}
			return nil
		}).
		Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	for _, day := range []string{"2024-05-10", "2024-05-11"} {
		event := events.AccessBatchEvent{
			BatchID:    "batch-123",
			Collection: "scl",
			Day:        day,
			Hits:       []*models.Hit{{PID: "S0100-19651997000200001"}},
		}
		queue.Publish(event.PartitionKey(), event)
	}

	waitForCalls(t, done, 2)
	consumer.Stop()
}

func TestAccessBatchConsumer_EachEventGetsOwnRequestContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.AccessBatchEvent]()
	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)

	var buf bytes.Buffer
	consumer := NewAccessBatchConsumer(queue, mockAggregationService, zerolog.New(&buf))

	done := make(chan struct{}, 2)
	mockAggregationService.EXPECT().
		Aggregate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *events.AccessBatchEvent) *svcerrors.ServiceError {
			loggers.Ctx(ctx).Info().Msg("processing access batch")
			done <- struct{}{}
			return nil
		}).
		Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	// Same partition key: one worker handles both events back to back.
	event := events.AccessBatchEvent{BatchID: "batch-123", Collection: "scl", Day: "2024-05-10"}
	queue.Publish(event.PartitionKey(), event)
	queue.Publish(event.PartitionKey(), event)

	waitForCalls(t, done, 2)
	consumer.Stop()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	requestIDs := make(map[string]struct{}, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		require.Contains(t, entry, loggers.FieldPartitionId)
		requestID, ok := entry[loggers.FieldRequestID].(string)
		require.True(t, ok, "log line missing request id: %s", line)
		requestIDs[requestID] = struct{}{}
	}
	assert.Len(t, requestIDs, 2, "each event gets a fresh request id")
}

func TestAccessBatchConsumer_SurvivesAggregationPanic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.AccessBatchEvent]()
	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	consumer := NewAccessBatchConsumer(queue, mockAggregationService, zerolog.Nop())

	done := make(chan struct{}, 1)
	first := mockAggregationService.EXPECT().
		Aggregate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *events.AccessBatchEvent) *svcerrors.ServiceError {
			panic("aggregation blew up")
		})
	mockAggregationService.EXPECT().
		Aggregate(gomock.Any(), gomock.Any()).
		After(first).
		DoAndReturn(func(ctx context.Context, event *events.AccessBatchEvent) *svcerrors.ServiceError {
			done <- struct{}{}
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	// Both events share a partition key so the same worker sees the panic
	// and the follow-up event.
	event := events.AccessBatchEvent{BatchID: "batch-123", Collection: "scl", Day: "2024-05-10"}
	queue.Publish(event.PartitionKey(), event)
	queue.Publish(event.PartitionKey(), event)

	waitForCalls(t, done, 1)
	consumer.Stop()
}

func TestAccessBatchConsumer_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.AccessBatchEvent]()
	consumer := NewAccessBatchConsumer(queue, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	consumer.Stop()
	require.NotPanics(t, consumer.Stop)
}
