package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"suburban/infras/metrics"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New(nil)

	m.BookingTransitions.WithLabelValues("checked_in").Inc()
	m.ConferenceConflicts.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("checked_in")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ConferenceConflicts), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `suburban_booking_transitions_total{status="checked_in"} 1`)
	assert.Contains(t, string(body), "suburban_conference_conflicts_total 1")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	first := metrics.New(nil)
	second := metrics.New(nil)

	first.ActivityFailures.Inc()

	assert.InDelta(t, 0, testutil.ToFloat64(second.ActivityFailures), 0)
}
