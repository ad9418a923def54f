package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestOpenTelemetryPassThrough(t *testing.T) {
	handler := OpenTelemetry()(markMatched("/users/%u"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	if w.Code != http.StatusOK {
		t.Errorf("code = %d, want 200", w.Code)
	}
}

func TestOpenTelemetryFilterSkips(t *testing.T) {
	inner := 0
	handler := OpenTelemetry(
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner++
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if inner != 1 {
		t.Errorf("inner handler ran %d times, want 1", inner)
	}
	if w.Code != http.StatusOK {
		t.Errorf("code = %d, want 200", w.Code)
	}
}

func TestOpenTelemetryAttributeExtractor(t *testing.T) {
	extracted := 0
	handler := OpenTelemetry(
		WithTracerName("test"),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			extracted++
			return []attribute.KeyValue{attribute.String("tenant", r.Header.Get("X-Tenant"))}
		}),
	)(markMatched("/"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant", "acme")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if extracted != 1 {
		t.Errorf("extractor ran %d times, want 1", extracted)
	}
}

func TestOpenTelemetryErrorStatus(t *testing.T) {
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	handler := OpenTelemetry()(failing)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", w.Code)
	}
}
