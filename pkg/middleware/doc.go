// Package middleware provides production-grade HTTP middleware for Strada
// routers.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry distributed tracing middleware
//
// Both middlewares wrap a plain http.Handler and observe routing outcomes
// through server.RouteInfo, so recorded metrics and spans are labelled by
// route pattern rather than raw request path. That keeps label cardinality
// bounded: "/users/%u" is one label no matter how many user IDs arrive.
//
// # Prometheus Metrics
//
// The Prometheus middleware collects metrics about dispatched requests:
//   - strada_requests_total: Counter of requests by method, route, and status
//   - strada_request_duration_seconds: Histogram of request duration
//   - strada_fallbacks_total: Counter of requests answered by the fallback
//
//	handler := middleware.Prometheus()(router)
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware creates a span per request, named after the
// matched route pattern, and sets the span status from the response code.
//
//	handler := middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	)(router)
package middleware
