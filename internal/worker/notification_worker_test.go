package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/service"
)

func TestWorkerDeliversPublishedEvents(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	logger := zaptest.NewLogger(t)
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, config.NotificationConfig{WebhookURL: srv.URL})
	w := NewNotificationWorker(notifications, logger, 8)
	StartNotificationWorker(w)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "e", Type: events.EventEmployeeCreated}))
	}
	require.Eventually(t, func() bool { return hits.Load() == 3 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWorkerDropsWhenQueueFull(t *testing.T) {
	logger := zaptest.NewLogger(t)
	notifications := service.NewNotificationService(nil, logger, config.NotificationConfig{})
	w := NewNotificationWorker(notifications, logger, 1)

	w.Enqueue(events.Event{ID: "1"})
	w.Enqueue(events.Event{ID: "2"})
	assert.Len(t, w.queue, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.Empty(t, w.queue)
}
