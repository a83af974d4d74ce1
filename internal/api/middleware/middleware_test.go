package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trailerboard/internal/cache"
	"github.com/creamcroissant/trailerboard/internal/security"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

func TestWriteRateLimit(t *testing.T) {
	limiter, err := security.NewRateLimiter(cache.NewStore(cache.Options{}))
	require.NoError(t, err)
	h := WriteRateLimit(RateLimitConfig{Limiter: limiter, Limit: 1, Window: time.Minute})(noContent)

	send := func(method, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/orders", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "10.0.0.1:5000").Code)
	limited := send(http.MethodPost, "10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send(http.MethodGet, "10.0.0.1:5002").Code, "reads are not limited")
	assert.Equal(t, http.StatusNoContent, send(http.MethodPut, "10.0.0.2:5000").Code, "other clients have their own bucket")
}

func TestAuditActor(t *testing.T) {
	var actor string
	h := AuditActor(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		actor = security.ActorFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.9:443"
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.9", actor)
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(DefaultCORSConfig())(noContent)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "http://board.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, MetricsConfig{Namespace: "t"})
	h := m.Middleware()(noContent)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "204")))
}

func TestMetricsGuard(t *testing.T) {
	h := MetricsGuard("tok")(noContent)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
