package server

import "context"

// RouteInfo records the outcome of route matching for a single request.
//
// Middleware that wraps a router as a plain http.Handler has no way to see
// which route pattern matched. It can instead inject an empty RouteInfo into
// the request context; the router fills it in during dispatch.
type RouteInfo struct {
	// Pattern is the route pattern that matched, e.g. "/users/%u".
	// Empty when no route matched.
	Pattern string

	// Matched reports whether the request was answered by a matched route's
	// handler, successfully or with an error. It stays false when the
	// handler declined and the request fell through to the fallback.
	Matched bool
}

type routeInfoKey struct{}

// WithRouteInfo returns a context carrying info.
func WithRouteInfo(parent context.Context, info *RouteInfo) context.Context {
	return context.WithValue(parent, routeInfoKey{}, info)
}

// RouteInfoFrom returns the RouteInfo carried by ctx, or nil.
func RouteInfoFrom(ctx context.Context) *RouteInfo {
	info, _ := ctx.Value(routeInfoKey{}).(*RouteInfo)
	return info
}
