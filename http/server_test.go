package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"lpapredictor/ml"
	"lpapredictor/monitoring"
)

func newTestServer(t *testing.T, slope, intercept float64) (*Server, *monitoring.Collector) {
	t.Helper()
	metrics := monitoring.NewCollector()
	model := ml.NewLinearModel(slope, intercept)
	model.Source = "testdata/linear.json"

	s, err := NewServer(DefaultServerConfig(), model, zap.NewNop(), metrics)
	require.NoError(t, err)
	return s, metrics
}

func TestNewServerRequiresModel(t *testing.T) {
	_, err := NewServer(DefaultServerConfig(), nil, nil, nil)
	assert.Error(t, err)
}

func TestNewServerRejectsBadCacheSize(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.CacheSize = 0
	_, err := NewServer(cfg, ml.NewLinearModel(1, 0), nil, nil)
	assert.Error(t, err)
}

func TestNewServerRecordsModelParameters(t *testing.T) {
	_, metrics := newTestServer(t, 0.9, -1.0)
	assert.Equal(t, 0.9, testutil.ToFloat64(metrics.ModelParameter.WithLabelValues("slope")))
	assert.Equal(t, -1.0, testutil.ToFloat64(metrics.ModelParameter.WithLabelValues("intercept")))
}

func TestServerAddr(t *testing.T) {
	s, _ := newTestServer(t, 1, 0)
	assert.Equal(t, ":8080", s.Addr())
}

func TestMiddlewareHeaders(t *testing.T) {
	s, _ := newTestServer(t, 1, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestMiddlewareKeepsIncomingRequestID(t *testing.T) {
	s, _ := newTestServer(t, 1, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRequestSizeMiddleware(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MaxBodyBytes = 16
	s, err := NewServer(cfg, ml.NewLinearModel(1, 0), nil, nil)
	require.NoError(t, err)

	body := `{"cgpa": 7.0, "padding": "` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	handler := Chain(mark("a"), mark("b"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, 1, 0)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"cgpa": 7}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `lpa_predictions_total{outcome="predicted"} 1`)
	assert.Contains(t, body, `lpa_model_parameter{term="slope"} 1`)
	assert.Contains(t, body, `lpa_http_requests_total{method="POST",route="POST /api/predict",status="200"} 1`)
}
