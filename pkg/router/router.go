package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/strada-dev/strada/pkg/server"
)

// Router matches incoming requests against per-method route trees and
// dispatches to the attached handlers. It is built once by New and is
// immutable afterwards; concurrent dispatch needs no locking.
type Router struct {
	trees    map[string]*node
	notFound func(server.Ctx)
	trace    TraceFunc
	logger   *slog.Logger
	routes   []RouteDescription
	maxArity int
}

// RouteDescription describes one declared route, for diagnostics and
// route-table listings.
type RouteDescription struct {
	Method  string
	Pattern string
	Arity   int
}

// Option configures a Router during construction. Options are applied in
// declaration order; any error aborts construction.
type Option func(*Router) error

// Entry is one element of a route declaration list: a route or a sub-route
// grouping. Entries only exist inside a method group.
type Entry interface {
	build(r *Router, method, prefix string) error
}

// New builds a router from an ordered declaration list.
//
// All pattern, duplicate, ambiguity, and handler-signature problems surface
// here as errors; once New returns successfully the route set is final and
// every request-time outcome is either a match or the not-found fallback.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		trees:  make(map[string]*node),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.notFound == nil {
		r.notFound = func(ctx server.Ctx) {
			_ = ctx.Status(http.StatusNotFound).Text("not found")
		}
	}
	return r, nil
}

// Method groups entries under one HTTP method. Declaring the same method in
// several groups merges them into a single tree.
func Method(method string, entries ...Entry) Option {
	return func(r *Router) error {
		method = strings.ToUpper(method)
		for _, e := range entries {
			if err := e.build(r, method, ""); err != nil {
				return err
			}
		}
		return nil
	}
}

// Get groups entries under the GET method.
func Get(entries ...Entry) Option { return Method(http.MethodGet, entries...) }

// Post groups entries under the POST method.
func Post(entries ...Entry) Option { return Method(http.MethodPost, entries...) }

// Put groups entries under the PUT method.
func Put(entries ...Entry) Option { return Method(http.MethodPut, entries...) }

// Delete groups entries under the DELETE method.
func Delete(entries ...Entry) Option { return Method(http.MethodDelete, entries...) }

// Head groups entries under the HEAD method.
func Head(entries ...Entry) Option { return Method(http.MethodHead, entries...) }

// Options groups entries under the OPTIONS method.
func Options(entries ...Entry) Option { return Method(http.MethodOptions, entries...) }

// NotFound sets the fallback handler invoked when no route matches or the
// matched handler declines.
func NotFound(fn func(server.Ctx)) Option {
	return func(r *Router) error {
		r.notFound = fn
		return nil
	}
}

// WithTrace attaches a diagnostic sink that receives trace lines during
// matching.
func WithTrace(fn TraceFunc) Option {
	return func(r *Router) error {
		r.trace = fn
		return nil
	}
}

// WithLogger sets the router's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// routeEntry declares a single pattern bound to a handler.
type routeEntry struct {
	pattern string
	fn      any
}

// Route declares a route. fn is either the uniform HandlerFunc shape or a
// typed handler function; see adaptHandler for the contract.
func Route(pattern string, fn any) Entry {
	return routeEntry{pattern: pattern, fn: fn}
}

func (e routeEntry) build(r *Router, method, prefix string) error {
	p, err := ParsePattern(prefix + e.pattern)
	if err != nil {
		return err
	}
	h, err := adaptHandler(e.fn, p)
	if err != nil {
		return err
	}

	root, ok := r.trees[method]
	if !ok {
		root = &node{}
		r.trees[method] = root
	}
	if err := root.insert(p, &route{pattern: p, handler: h}); err != nil {
		return err
	}

	if p.arity > r.maxArity {
		r.maxArity = p.arity
	}
	r.routes = append(r.routes, RouteDescription{Method: method, Pattern: p.raw, Arity: p.arity})
	return nil
}

// mountEntry prefixes a nested declaration list with a literal mount path.
type mountEntry struct {
	prefix  string
	entries []Entry
}

// Mount declares a sub-route grouping: every pattern in entries is inserted
// with the literal mount path prepended, into the same tree the parent group
// builds. Mounting the same path twice merges the two groupings.
func Mount(prefix string, entries ...Entry) Entry {
	return mountEntry{prefix: prefix, entries: entries}
}

func (e mountEntry) build(r *Router, method, prefix string) error {
	p, err := ParsePattern(e.prefix)
	if err != nil {
		return err
	}
	if p.Arity() != 0 {
		return patternErr(e.prefix, -1, ErrMalformedPattern, "mount path must be literal")
	}
	for _, child := range e.entries {
		if err := child.build(r, method, prefix+e.prefix); err != nil {
			return err
		}
	}
	return nil
}

// Routes returns the declared routes in declaration order.
func (r *Router) Routes() []RouteDescription {
	out := make([]RouteDescription, len(r.routes))
	copy(out, r.routes)
	return out
}

// Dispatch matches ctx's request and runs the attached handler. It reports
// whether a handler accepted the request; on no tree, no match, or a
// declined handler the fallback runs instead. A handler is invoked at most
// once per request: backtracking happens only inside the structural search,
// never after a terminal handler has seen the request.
func (r *Router) Dispatch(ctx server.Ctx) bool {
	info := server.RouteInfoFrom(ctx.Context())

	root, ok := r.trees[ctx.Method()]
	if !ok {
		if r.trace != nil {
			r.trace("no tree for method " + ctx.Method())
		}
		r.notFound(ctx)
		return false
	}

	vals := make([]Value, 0, r.maxArity)
	rt, args, ok := root.match(ctx.Path(), vals, r.trace)
	if !ok {
		r.notFound(ctx)
		return false
	}
	if info != nil {
		info.Pattern = rt.pattern.raw
	}

	handled, err := rt.handler(ctx, args)
	if err != nil {
		r.logger.Error("handler failed",
			"method", ctx.Method(), "pattern", rt.pattern.raw, "error", err)
		if !ctx.Written() {
			_ = ctx.Status(http.StatusInternalServerError).Text("internal server error")
		}
		// A failing handler still answered for its route, so instrumentation
		// should attribute the request to the matched pattern.
		if info != nil {
			info.Matched = true
		}
		return true
	}
	if !handled {
		r.notFound(ctx)
		return false
	}
	if info != nil {
		info.Matched = true
	}
	return true
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := server.NewCtxWithLogger(w, req, r.logger)
	r.Dispatch(ctx)
}
