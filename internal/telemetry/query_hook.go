package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/uptrace/bun"
)

// QueryHook feeds every bun query into DatabaseMetrics.
type QueryHook struct {
	metrics    *DatabaseMetrics
	logQueries bool
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook creates a hook that records into metrics.
func NewQueryHook(metrics *DatabaseMetrics) *QueryHook {
	return &QueryHook{metrics: metrics}
}

// WithQueryLog makes the hook log every statement. Used when DEBUG is set.
func (h *QueryHook) WithQueryLog() *QueryHook {
	h.logQueries = true
	return h
}

// BeforeQuery implements bun.QueryHook.
func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook. sql.ErrNoRows is a lookup miss, not a failure.
func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	err := event.Err
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	durationMs := float64(time.Since(event.StartTime).Microseconds()) / 1000
	h.metrics.RecordQuery(ctx, event.Operation(), durationMs, err)

	if h.logQueries {
		if err != nil {
			log.Printf("db: %s (%.2fms): %v", event.Query, durationMs, err)
		} else {
			log.Printf("db: %s (%.2fms)", event.Query, durationMs)
		}
	}
}
