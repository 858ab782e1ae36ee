package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/events"
)

func TestMetricsRecordRequestAndError(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/employees/:id", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/employees/:id", "GET", 200, 5*time.Millisecond)
	m.RecordError("/employees/:id", "GET", "NOT_FOUND")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/employees/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("GET", "/employees/:id", "NOT_FOUND")))
}

func TestMetricsObserveEvents(t *testing.T) {
	m := NewMetrics()
	d := events.NewInMemoryDispatcher()
	m.ObserveEvents(d)

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventEmployeeCreated}))
	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventEmployeeCreated}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsTotal.WithLabelValues(string(events.EventEmployeeCreated))))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.ObserveEvents(events.NewInMemoryDispatcher())
}
