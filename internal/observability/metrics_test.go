package observability

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveParse(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveParse("hours", true)
	m.ObserveParse("hours", true)
	m.ObserveParse("hours", false)
	m.ObserveParse("vertical", false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ParseOutcomes.WithLabelValues("hours", OutcomeMatched)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ParseOutcomes.WithLabelValues("hours", OutcomeNoMatch)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ParseOutcomes.WithLabelValues("vertical", OutcomeNoMatch)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.ParseOutcomes.WithLabelValues("lateral", OutcomeMatched)), 0)
}

func TestMetricsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsForTesting()
	require.NoError(t, m.Register(reg))

	m.MessagesConsumed.Add(3)
	m.RowsSkipped.WithLabelValues("2.18").Inc()

	expected := `
# HELP eaip_etl_rows_skipped_total Table rows skipped because of their shape, by section.
# TYPE eaip_etl_rows_skipped_total counter
eaip_etl_rows_skipped_total{section="2.18"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "eaip_etl_rows_skipped_total"))
	assert.InDelta(t, 3, testutil.ToFloat64(m.MessagesConsumed), 0)

	// A second registration of the same collectors is rejected.
	assert.Error(t, m.Register(reg))
}
