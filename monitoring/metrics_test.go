package monitoring

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(NewCollector()))
}

func TestCollectorRecords(t *testing.T) {
	c := NewCollector()

	c.RecordModel(0.9, -1.0)
	c.RecordPrediction(3.5)
	c.RecordPrediction(7.0)
	c.RecordOutcome(OutcomeWarning)
	c.RecordCacheLookup(true)
	c.RecordCacheLookup(false)
	c.RecordCacheLookup(false)
	c.RecordRequest(http.MethodPost, "/api/predict", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 0.9, testutil.ToFloat64(c.ModelParameter.WithLabelValues("slope")))
	assert.Equal(t, -1.0, testutil.ToFloat64(c.ModelParameter.WithLabelValues("intercept")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.PredictionsTotal.WithLabelValues(OutcomePredicted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PredictionsTotal.WithLabelValues(OutcomeWarning)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestsTotal.WithLabelValues("POST", "/api/predict", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.PredictedValue))
}
