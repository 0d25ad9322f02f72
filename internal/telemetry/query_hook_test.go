package telemetry

import (
	"context"
	"testing"

	"github.com/ongood/metabase-sub001/internal/db/bunx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
)

type countingCounter struct {
	metric.Int64Counter
	total int64
}

func (c *countingCounter) Add(_ context.Context, incr int64, _ ...metric.AddOption) {
	c.total += incr
}

type countingHistogram struct {
	metric.Float64Histogram
	samples int
}

func (h *countingHistogram) Record(context.Context, float64, ...metric.RecordOption) {
	h.samples++
}

func TestNewDatabaseMetrics(t *testing.T) {
	metrics, err := NewDatabaseMetrics()
	require.NoError(t, err)
	assert.NotNil(t, metrics.QueryCounter)
	assert.NotNil(t, metrics.QueryDuration)
	assert.NotNil(t, metrics.QueryErrors)
}

func TestQueryHookRecordsQueries(t *testing.T) {
	queries := &countingCounter{}
	errs := &countingCounter{}
	durations := &countingHistogram{}
	metrics := &DatabaseMetrics{QueryCounter: queries, QueryDuration: durations, QueryErrors: errs}

	db, err := bunx.NewDB(":memory:", NewQueryHook(metrics))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	ctx := context.Background()
	var one int
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(ctx, &one))
	_, err = db.ExecContext(ctx, "SELECT * FROM missing_table")
	require.Error(t, err)

	assert.Equal(t, int64(2), queries.total)
	assert.Equal(t, 2, durations.samples)
	assert.Equal(t, int64(1), errs.total)
}
