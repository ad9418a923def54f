package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Ctx is the per-request context passed to route handlers.
//
// A handler either handles the request (writing a response through the Ctx)
// or declines it, in which case the router falls through to its not-found
// handler. The Ctx itself never decides that; it only carries request state
// and response helpers.
type Ctx interface {
	// Request returns the underlying HTTP request.
	Request() *http.Request

	// Method returns the HTTP method (GET, POST, etc.).
	Method() string

	// Path returns the URL path being matched.
	Path() string

	// Query returns the parsed query parameters.
	Query() url.Values

	// QueryParam returns a single query parameter value.
	QueryParam(key string) string

	// Header returns a request header value.
	Header(key string) string

	// SetHeader sets a response header.
	SetHeader(key, value string)

	// Status sets the response status code for the next write.
	// It returns the Ctx for chaining: ctx.Status(201).JSON(v).
	Status(code int) Ctx

	// StatusCode returns the status code that was, or will be, written.
	StatusCode() int

	// Written reports whether a response has been written.
	Written() bool

	// Text writes a text/plain response body.
	Text(body string) error

	// HTML writes a text/html response body.
	HTML(body string) error

	// JSON writes v as an application/json response body.
	JSON(v any) error

	// Redirect sends an HTTP redirect to url with the given status code.
	Redirect(url string, code int) error

	// NoContent writes the status code with an empty body.
	NoContent() error

	// Logger returns the request-scoped logger.
	Logger() *slog.Logger

	// Context returns the request's context.
	Context() context.Context

	// ResponseWriter exposes the underlying writer for handlers that need
	// direct access (streaming, hijacking).
	ResponseWriter() http.ResponseWriter
}

// ctx is the concrete Ctx implementation.
type ctx struct {
	w       http.ResponseWriter
	r       *http.Request
	logger  *slog.Logger
	status  int
	written bool
}

// NewCtx creates a Ctx for an in-flight request.
func NewCtx(w http.ResponseWriter, r *http.Request) Ctx {
	return &ctx{
		w:      w,
		r:      r,
		logger: slog.Default(),
		status: http.StatusOK,
	}
}

// NewCtxWithLogger creates a Ctx with a request-scoped logger.
func NewCtxWithLogger(w http.ResponseWriter, r *http.Request, logger *slog.Logger) Ctx {
	c := NewCtx(w, r).(*ctx)
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *ctx) Request() *http.Request { return c.r }

func (c *ctx) Method() string { return c.r.Method }

func (c *ctx) Path() string { return c.r.URL.Path }

func (c *ctx) Query() url.Values { return c.r.URL.Query() }

func (c *ctx) QueryParam(key string) string { return c.r.URL.Query().Get(key) }

func (c *ctx) Header(key string) string { return c.r.Header.Get(key) }

func (c *ctx) SetHeader(key, value string) { c.w.Header().Set(key, value) }

func (c *ctx) Status(code int) Ctx {
	if !c.written {
		c.status = code
	}
	return c
}

func (c *ctx) StatusCode() int { return c.status }

func (c *ctx) Written() bool { return c.written }

func (c *ctx) Logger() *slog.Logger { return c.logger }

func (c *ctx) Context() context.Context { return c.r.Context() }

func (c *ctx) ResponseWriter() http.ResponseWriter { return c.w }

// writeHeader writes the pending status code exactly once.
func (c *ctx) writeHeader() {
	if c.written {
		return
	}
	c.w.WriteHeader(c.status)
	c.written = true
}

func (c *ctx) Text(body string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.writeHeader()
	_, err := fmt.Fprint(c.w, body)
	return err
}

func (c *ctx) HTML(body string) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.writeHeader()
	_, err := fmt.Fprint(c.w, body)
	return err
}

func (c *ctx) JSON(v any) error {
	c.w.Header().Set("Content-Type", "application/json")
	c.writeHeader()
	return json.NewEncoder(c.w).Encode(v)
}

func (c *ctx) Redirect(url string, code int) error {
	if code < 300 || code > 308 {
		return fmt.Errorf("invalid redirect code %d", code)
	}
	c.status = code
	c.written = true
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *ctx) NoContent() error {
	c.writeHeader()
	return nil
}
