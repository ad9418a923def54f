package main

import (
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strada-dev/strada/internal/config"
	"github.com/strada-dev/strada/pkg/router"
)

func TestTemplateHandlerSubstitution(t *testing.T) {
	listener := config.ListenerConfig{
		Addr: ":0",
		Routes: []config.RouteConfig{
			{Method: "GET", Pattern: "/users/%s/posts/%i", Body: "post {2} by {1}", Status: 200},
			{Method: "GET", Pattern: "/teapot", Body: "short", Status: 418},
		},
	}

	rt, err := buildRouter(listener, nil, nil)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/ana/posts/-3", nil))
	if body, _ := io.ReadAll(w.Result().Body); string(body) != "post -3 by ana" {
		t.Errorf("body = %q, want %q", body, "post -3 by ana")
	}

	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if w.Code != 418 {
		t.Errorf("status = %d, want 418", w.Code)
	}
}

func TestBuildRouterCustomNotFound(t *testing.T) {
	listener := config.ListenerConfig{
		Addr:         ":0",
		NotFoundBody: "nothing here",
		Routes: []config.RouteConfig{
			{Method: "GET", Pattern: "/x", Status: 200},
		},
	}

	rt, err := buildRouter(listener, nil, nil)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if body := w.Body.String(); body != "nothing here" {
		t.Errorf("body = %q", body)
	}
}

// buildServer must register the Prometheus collectors exactly once even when
// several listeners share the metrics middleware; a second registration of the
// same collector names panics.
func TestBuildServerMultipleListenersWithMetrics(t *testing.T) {
	cfg := &config.Config{
		Name: "multi",
		Listeners: []config.ListenerConfig{
			{Addr: ":0", Routes: []config.RouteConfig{{Method: "GET", Pattern: "/a", Status: 200}}},
			{Addr: ":0", Routes: []config.RouteConfig{{Method: "GET", Pattern: "/b", Status: 200}}},
		},
		Metrics: config.MetricsConfig{Enabled: true, Addr: ":0", Path: "/metrics"},
	}

	srv, err := buildServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, false)
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}
	if srv == nil {
		t.Fatal("buildServer returned nil server")
	}
}

func TestBuildRouterRejectsBadPattern(t *testing.T) {
	listener := config.ListenerConfig{
		Addr: ":0",
		Routes: []config.RouteConfig{
			{Method: "GET", Pattern: "/bad/%x", Status: 200},
		},
	}

	_, err := buildRouter(listener, nil, nil)
	if !stderrors.Is(err, router.ErrMalformedPattern) {
		t.Errorf("err = %v, want ErrMalformedPattern", err)
	}
}
