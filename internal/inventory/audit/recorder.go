// Package audit appends activity entries for every successful mutation and
// fans them out to optional sinks.
package audit

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/pkg/logger"
)

// Appender is the append-only log the recorder writes to.
type Appender interface {
	AppendActivity(entry domain.ActivityLog) (domain.ActivityLog, error)
}

// Sink receives entries after they are appended. Sink errors are logged
// and never surface to the caller.
type Sink interface {
	PublishActivity(ctx context.Context, entry domain.ActivityLog) error
}

// Recorder writes audit entries.
type Recorder struct {
	log     Appender
	sinks   []Sink
	entries *prometheus.CounterVec
}

// NewRecorder creates a recorder over log. Metrics are registered on reg
// when it is non-nil.
func NewRecorder(log Appender, reg prometheus.Registerer, sinks ...Sink) *Recorder {
	entries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_audit_entries_total",
			Help: "Activity log entries written, by action type and outcome",
		},
		[]string{"action_type", "outcome"},
	)
	if reg != nil {
		reg.MustRegister(entries)
	}

	return &Recorder{
		log:     log,
		sinks:   sinks,
		entries: entries,
	}
}

// Record appends one entry attributed to actorID. The timestamp is
// assigned by the log. A failed append is reported as ErrAuditWrite.
func (r *Recorder) Record(ctx context.Context, actorID uint, actionType, description string) (domain.ActivityLog, error) {
	entry, err := r.log.AppendActivity(domain.ActivityLog{
		UserID:      actorID,
		ActionType:  actionType,
		Description: description,
	})
	if err != nil {
		r.entries.WithLabelValues(actionType, "failed").Inc()
		logger.Error(ctx).
			Err(err).
			Uint("user_id", actorID).
			Str("action_type", actionType).
			Msg("Failed to append activity log")
		return domain.ActivityLog{}, fmt.Errorf("%w: %v", domain.ErrAuditWrite, err)
	}
	r.entries.WithLabelValues(actionType, "ok").Inc()

	for _, sink := range r.sinks {
		if err := sink.PublishActivity(ctx, entry); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("activity_id", entry.ID).
				Str("action_type", actionType).
				Msg("Activity sink rejected entry")
		}
	}

	return entry, nil
}
