// Package command holds the mutation handlers. Every mutation runs the same
// pipeline: gate the caller, validate and store, then append an audit entry.
package command

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/cafe-inventory/internal/inventory/access"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/pkg/logger"
)

var tracer = otel.Tracer("inventory-command")

// Auditor appends the activity entry for a completed mutation.
type Auditor interface {
	Record(ctx context.Context, actorID uint, actionType, description string) (domain.ActivityLog, error)
}

// Executor runs mutations through the gate and the audit log. The handlers
// in this package share one Executor.
type Executor struct {
	auditor Auditor
	now     func() time.Time
}

// NewExecutor creates an executor. A nil clock means time.Now.
func NewExecutor(auditor Auditor, now func() time.Time) *Executor {
	if now == nil {
		now = time.Now
	}
	return &Executor{auditor: auditor, now: now}
}

// entryFunc describes the audit entry for a mutation result.
type entryFunc[T any] func(result T) (actionType, description string)

// execute checks actor against action, runs mutate and records the entry.
// When recording fails the mutation stays applied and ErrAuditWrite is
// returned alongside the result.
func execute[T any](ctx context.Context, ex *Executor, op string, actor domain.Identity, action access.Action, mutate func() (T, error), entry entryFunc[T]) (result T, err error) {
	ctx, span := tracer.Start(ctx, "command."+op,
		trace.WithAttributes(
			attribute.Int("actor.id", int(actor.UserID)),
			attribute.String("actor.role", string(actor.Role)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := access.Require(actor, action); err != nil {
		logger.Warn(ctx).
			Str("op", op).
			Uint("user_id", actor.UserID).
			Str("role", string(actor.Role)).
			Msg("Mutation rejected by access gate")
		return result, err
	}

	result, err = mutate()
	if err != nil {
		return result, err
	}

	actionType, description := entry(result)
	if _, err := ex.auditor.Record(ctx, actor.UserID, actionType, description); err != nil {
		return result, err
	}

	logger.Info(ctx).
		Str("action_type", actionType).
		Uint("user_id", actor.UserID).
		Msg(description)
	return result, nil
}

// deleted maps a false delete result to ErrNotFound.
func deleted(ok bool, kind string, id uint) error {
	if !ok {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, kind, id)
	}
	return nil
}

// DeleteCommand represents the command to delete one row by id
type DeleteCommand struct {
	Actor domain.Identity
	ID    uint
}
