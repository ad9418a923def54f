// Package strada provides the public API for the Strada typed router.
//
// This is the recommended import for most applications:
//
//	import "github.com/strada-dev/strada"
//
// Usage:
//
//	r, err := strada.New(
//	    strada.Get(
//	        strada.Route("/", home),
//	        strada.Mount("/api",
//	            strada.Route("/users/%u", showUser),
//	        ),
//	    ),
//	    strada.NotFound(notFound),
//	)
//	http.ListenAndServe(":8080", r)
//
// Patterns mix literal text with typed placeholders: %s (segment), %i
// (int64), %u (uint64), %f (float64), %b (bool), %c (one character), %O
// (GUID), and %% for a literal percent sign. Handlers receive the captured
// values as typed arguments, checked against the pattern when the router is
// built.
package strada

import (
	"github.com/strada-dev/strada/pkg/router"
	"github.com/strada-dev/strada/pkg/server"
)

// Ctx is the per-request context passed to handlers.
type Ctx = server.Ctx

// Router matches requests against per-method route trees.
type Router = router.Router

// Value is one captured placeholder value.
type Value = router.Value

// Kind identifies a placeholder's value type.
type Kind = router.Kind

// HandlerFunc is the uniform handler shape: context plus captured values.
type HandlerFunc = router.HandlerFunc

// TraceFunc receives diagnostic lines during matching.
type TraceFunc = router.TraceFunc

// Option configures a Router during construction.
type Option = router.Option

// Entry is one element of a route declaration list.
type Entry = router.Entry

// RouteDescription describes one declared route.
type RouteDescription = router.RouteDescription

// PatternError wraps a build-time routing error with its pattern.
type PatternError = router.PatternError

// Placeholder value kinds.
const (
	KindString = router.KindString
	KindInt    = router.KindInt
	KindUint   = router.KindUint
	KindFloat  = router.KindFloat
	KindBool   = router.KindBool
	KindChar   = router.KindChar
	KindGUID   = router.KindGUID
)

// Build-time routing errors.
var (
	ErrMalformedPattern     = router.ErrMalformedPattern
	ErrArityMismatch        = router.ErrArityMismatch
	ErrDuplicateRoute       = router.ErrDuplicateRoute
	ErrAmbiguousPlaceholder = router.ErrAmbiguousPlaceholder
)

// New builds a router from an ordered declaration list.
var New = router.New

// Method groups entries under one HTTP method.
var Method = router.Method

// Get groups entries under the GET method.
var Get = router.Get

// Post groups entries under the POST method.
var Post = router.Post

// Put groups entries under the PUT method.
var Put = router.Put

// Delete groups entries under the DELETE method.
var Delete = router.Delete

// Head groups entries under the HEAD method.
var Head = router.Head

// Options groups entries under the OPTIONS method.
var Options = router.Options

// Route declares a route bound to a handler.
var Route = router.Route

// Mount prefixes nested entries with a literal mount path.
var Mount = router.Mount

// NotFound sets the fallback handler.
var NotFound = router.NotFound

// WithTrace attaches a diagnostic sink.
var WithTrace = router.WithTrace

// WithLogger sets the router's logger.
var WithLogger = router.WithLogger

// ParsePattern tokenizes a route pattern.
var ParsePattern = router.ParsePattern
