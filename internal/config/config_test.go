package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strada-dev/strada/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return dir
}

func TestLoadFull(t *testing.T) {
	dir := writeConfig(t, `{
		"name": "demo",
		"listeners": [
			{
				"addr": ":8080",
				"routes": [
					{"method": "GET", "pattern": "/users/%u", "body": "user {1}"},
					{"pattern": "/health"}
				]
			}
		],
		"metrics": {"enabled": true},
		"trace": {"enabled": true, "addr": ":7000"},
		"timeouts": {"read": "15s"}
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if len(cfg.Listeners) != 1 || len(cfg.Listeners[0].Routes) != 2 {
		t.Fatalf("unexpected listener shape: %+v", cfg.Listeners)
	}

	// Defaults fill in omitted fields.
	r := cfg.Listeners[0].Routes[1]
	if r.Method != "GET" || r.Status != 200 {
		t.Errorf("route defaults = %q/%d, want GET/200", r.Method, r.Status)
	}
	if cfg.Metrics.Addr != DefaultMetricsAddr || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("metrics defaults = %q %q", cfg.Metrics.Addr, cfg.Metrics.Path)
	}
	if cfg.Trace.Addr != ":7000" {
		t.Errorf("trace addr = %q, want :7000", cfg.Trace.Addr)
	}

	d, err := cfg.ReadTimeout()
	if err != nil || d != 15*time.Second {
		t.Errorf("ReadTimeout = %v, %v", d, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	var serr *errors.StradaError
	if !stderrors.As(err, &serr) || serr.Code != "E101" {
		t.Errorf("err = %v, want E101", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := writeConfig(t, `{"listeners": [`)
	_, err := Load(dir)
	var serr *errors.StradaError
	if !stderrors.As(err, &serr) || serr.Code != "E100" {
		t.Errorf("err = %v, want E100", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"no listeners", `{}`, "E102"},
		{"listener without addr", `{"listeners":[{"routes":[]}]}`, "E103"},
		{"route without pattern", `{"listeners":[{"addr":":1","routes":[{"method":"GET"}]}]}`, "E104"},
		{"unknown method", `{"listeners":[{"addr":":1","routes":[{"method":"YEET","pattern":"/x"}]}]}`, "E104"},
		{"bad timeout", `{"listeners":[{"addr":":1","routes":[]}],"timeouts":{"read":"soon"}}`, "E121"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.body)
			_, err := Load(dir)
			var serr *errors.StradaError
			if !stderrors.As(err, &serr) || serr.Code != tt.code {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}
