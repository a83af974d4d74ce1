// 文件路径: internal/api/router.go
// 模块说明: HTTP 路由装配，中间件链与 /api/v1 接口都在这里注册。
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creamcroissant/trailerboard/internal/api/handler"
	"github.com/creamcroissant/trailerboard/internal/api/middleware"
	"github.com/creamcroissant/trailerboard/internal/config"
	"github.com/creamcroissant/trailerboard/internal/security"
	"github.com/creamcroissant/trailerboard/internal/service"
)

// Services bundles everything the router exposes.
type Services struct {
	Board    service.OrderBoardService
	Schedule service.ScheduleService
	Contacts service.ContactService
	Pricing  service.PricingService
	System   service.SystemService
}

type routerOptions struct {
	limiter     *security.RateLimiter
	writeLimit  int
	writeWindow time.Duration
}

// Option customizes NewRouter.
type Option func(*routerOptions)

// WithWriteLimit throttles mutating requests to limit per window per client.
func WithWriteLimit(limiter *security.RateLimiter, limit int, window time.Duration) Option {
	return func(o *routerOptions) {
		o.limiter = limiter
		o.writeLimit = limit
		o.writeWindow = window
	}
}

// NewRouter wires middleware and every API route. registry may be nil when
// metrics are disabled.
func NewRouter(logger *slog.Logger, services Services, metricsCfg config.MetricsConfig, registry *prometheus.Registry, opts ...Option) http.Handler {
	if services.Board == nil {
		panic("router requires OrderBoardService")
	}
	if services.Schedule == nil {
		panic("router requires ScheduleService")
	}
	if services.Contacts == nil {
		panic("router requires ContactService")
	}
	if services.Pricing == nil {
		panic("router requires PricingService")
	}
	if services.System == nil {
		panic("router requires SystemService")
	}
	if logger == nil {
		logger = slog.Default()
	}
	var options routerOptions
	for _, opt := range opts {
		opt(&options)
	}

	r := chi.NewRouter()
	r.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		middleware.AuditActor,
	)

	metricsEnabled := metricsCfg.Enabled && registry != nil
	if metricsEnabled {
		mCfg := middleware.DefaultMetricsConfig()
		if metricsCfg.Namespace != "" {
			mCfg.Namespace = metricsCfg.Namespace
		}
		if metricsCfg.Subsystem != "" {
			mCfg.Subsystem = metricsCfg.Subsystem
		}
		if len(metricsCfg.Buckets) > 0 {
			mCfg.Buckets = metricsCfg.Buckets
		}
		r.Use(middleware.NewMetrics(registry, mCfg).Middleware())
	}

	r.Use(
		middleware.CORS(middleware.DefaultCORSConfig()),
		middleware.BodyLimit(1<<20),
		middleware.WriteRateLimit(middleware.RateLimitConfig{
			Limiter: options.limiter,
			Limit:   options.writeLimit,
			Window:  options.writeWindow,
			Logger:  logger,
		}),
		middleware.StructuredLogger(middleware.LoggingConfig{
			Logger:        logger,
			SlowThreshold: 500 * time.Millisecond,
			SkipPaths:     []string{"/health", "/healthz", "/metrics"},
		}),
		chiMiddleware.Recoverer,
		chiMiddleware.Compress(5),
	)

	health := func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"ts":     time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
	r.Get("/healthz", health)
	// Alias for Docker health check
	r.Get("/health", health)

	if metricsEnabled {
		metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
		if metricsCfg.Token != "" {
			r.With(middleware.MetricsGuard(metricsCfg.Token)).Handle("/metrics", metricsHandler)
		} else {
			r.Handle("/metrics", metricsHandler)
		}
	}

	r.Route("/api/v1", func(v1 chi.Router) {
		registerV1Routes(v1, logger, services)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		logger.Warn("unmapped route hit", "method", req.Method, "path", req.URL.Path)
		respondJSON(w, http.StatusNotFound, map[string]any{"error": "not found / 未找到", "action": "route"})
	})

	return r
}

func registerV1Routes(v1 chi.Router, logger *slog.Logger, services Services) {
	orders := handler.NewOrderHandler(services.Board, logger)
	schedule := handler.NewScheduleHandler(services.Schedule, logger)
	contacts := handler.NewContactHandler(services.Contacts, logger)
	pricing := handler.NewPricingHandler(services.Pricing, logger)
	system := handler.NewSystemHandler(services.System, logger)

	v1.Get("/statuses", handler.Statuses)

	v1.Route("/orders", func(r chi.Router) {
		r.Get("/", orders.List)
		r.Post("/", orders.Create)
		r.Get("/summary", orders.Summary)
		r.Post("/sort", orders.ToggleSort)
		r.Get("/{id}", orders.Get)
		r.Put("/{id}", orders.Update)
	})

	v1.Get("/schedule/build", schedule.Build)
	v1.Get("/schedule/shipping", schedule.Shipping)
	v1.Post("/shipments", schedule.CreateShipment)

	v1.Route("/contacts", func(r chi.Router) {
		r.Get("/", contacts.List)
		r.Post("/", contacts.Create)
		r.Get("/{id}", contacts.Get)
		r.Put("/{id}", contacts.Update)
	})

	v1.Get("/pricing", pricing.List)
	v1.Put("/pricing", pricing.Upsert)

	v1.Get("/system/status", system.Status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response JSON", "error", err)
	}
}
