package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// SalaryCache caches per-department salary averages. Every Invalidate bumps
// the department's generation; Set stores avg only while the generation still
// equals gen, so an average read before a write is never cached after it.
type SalaryCache interface {
	Get(ctx context.Context, departmentID int64) (decimal.Decimal, bool, error)
	Generation(ctx context.Context, departmentID int64) (int64, error)
	Set(ctx context.Context, departmentID int64, gen int64, avg decimal.Decimal) (bool, error)
	Invalidate(ctx context.Context, departmentIDs ...int64) error
}

// Dependencies bundles collaborators shared by the domain services.
type Dependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// SalaryCache is optional; leave nil to always read from the store.
	SalaryCache SalaryCache
}

type base struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newBase(deps Dependencies) base {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{store: deps.Store, dispatcher: deps.Dispatcher, logger: logger}
}

// publish emits an event after a successful commit. Handler failures are
// logged and never reach the caller.
func (b base) publish(ctx context.Context, eventType events.EventType, entity string, id int64, payload any) {
	if b.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Entity:    entity,
		EntityID:  id,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := b.dispatcher.Publish(ctx, event); err != nil {
		b.logger.Warn("event handlers failed",
			zap.String("event_type", string(eventType)),
			zap.Int64("entity_id", id),
			zap.Error(err))
	}
}

// notFound converts repository.ErrNotFound into a NotFound domain error for
// the given entity and passes every other error through MapError.
func notFound(err error, kind string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewEntityNotFound(kind, id)
	}
	return apperrors.MapError(err)
}
