package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// --- Request Metrics Middleware ---

// RequestMetricsMiddleware counts requests and records their latency, keyed by
// the matched chi route pattern so path parameters don't explode cardinality.
func RequestMetricsMiddleware() func(http.Handler) http.Handler {
	meter := otel.Meter("careerpath/http")
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests by route and status"))
	if err != nil {
		log.Printf("WARN [Metrics] could not create request counter: %v", err)
	}
	latency, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("ms"))
	if err != nil {
		log.Printf("WARN [Metrics] could not create latency histogram: %v", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			if requests != nil {
				requests.Add(r.Context(), 1, attrs)
			}
			if latency != nil {
				latency.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
			}
		})
	}
}
