package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/kirill/internal/db"
	"github.com/jusunglee/kirill/internal/health"
	"github.com/jusunglee/kirill/internal/transliteration"
	"github.com/jusunglee/kirill/internal/web/handlers"
	"github.com/jusunglee/kirill/internal/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	repo    db.Repository
	log     *slog.Logger
	engine  *transliteration.Engine
	origins []string
	limiter *middleware.IPRateLimiter
}

func NewRouter(repo db.Repository, log *slog.Logger, engine *transliteration.Engine, origins []string) *Router {
	return &Router{
		repo:    repo,
		log:     log,
		engine:  engine,
		origins: origins,
		limiter: middleware.NewRateLimiter(30, time.Minute),
	}
}

// Close stops the rate limiter's background cleanup.
func (r *Router) Close() {
	r.limiter.Stop()
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	convertHandler := handlers.NewConvertHandler(r.engine, r.repo, r.log)
	historyHandler := handlers.NewHistoryHandler(r.repo, r.log)
	lexiconHandler := handlers.NewLexiconHandler(r.engine)

	get := func(pattern string, h http.HandlerFunc, cache string) {
		mux.Handle("GET "+pattern,
			middleware.Chain(h,
				middleware.PrometheusMetrics(),
				middleware.RequestLogger(r.log),
				middleware.CacheControl(cache),
			),
		)
	}
	post := func(pattern string, h http.HandlerFunc) {
		mux.Handle("POST "+pattern,
			middleware.Chain(h,
				middleware.PrometheusMetrics(),
				middleware.RequestLogger(r.log),
				middleware.RateLimit(r.limiter),
			),
		)
	}

	post("/api/v1/convert", convertHandler.Convert)
	post("/api/v1/convert/batch", convertHandler.Batch)

	get("/api/v1/conversions", historyHandler.ListConversions, "public, s-maxage=5, max-age=0")
	get("/api/v1/conversions/{id}", historyHandler.GetConversion, "public, s-maxage=60, max-age=0")
	post("/api/v1/conversions/{id}/corrections", historyHandler.CreateCorrection)
	get("/api/v1/corrections", historyHandler.ListCorrections, "no-store")

	get("/api/v1/lexicon", lexiconHandler.List, "public, max-age=300")

	mux.HandleFunc("GET /health", health.Handler)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.CORS(r.origins)(mux)
}
