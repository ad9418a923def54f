package config

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/strada-dev/strada/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "strada.json"

	// DefaultMetricsAddr is the default metrics listener address.
	DefaultMetricsAddr = ":9090"

	// DefaultMetricsPath is the default metrics endpoint path.
	DefaultMetricsPath = "/metrics"

	// DefaultTraceAddr is the default trace stream listener address.
	DefaultTraceAddr = ":9091"
)

// Config represents the complete strada.json configuration.
type Config struct {
	// Name is the service name, used in logs and metrics labels.
	Name string `json:"name,omitempty"`

	// Listeners declares the HTTP listeners and their route tables.
	Listeners []ListenerConfig `json:"listeners"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Trace configures the WebSocket trace stream.
	Trace TraceConfig `json:"trace,omitempty"`

	// Timeouts configures server timeouts.
	Timeouts TimeoutConfig `json:"timeouts,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ListenerConfig declares one listener and the routes it serves.
type ListenerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr"`

	// Routes is the route table for this listener.
	Routes []RouteConfig `json:"routes"`

	// NotFoundBody overrides the fallback response body.
	NotFoundBody string `json:"notFoundBody,omitempty"`
}

// RouteConfig declares one route.
type RouteConfig struct {
	// Method is the HTTP method (default: "GET").
	Method string `json:"method,omitempty"`

	// Pattern is the route pattern, e.g. "/users/%u".
	Pattern string `json:"pattern"`

	// Body is the response body template. Placeholder captures are
	// substituted positionally: {1} is the first capture, {2} the second.
	Body string `json:"body,omitempty"`

	// Status is the response status code (default: 200).
	Status int `json:"status,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Addr    string `json:"addr,omitempty"`
	Path    string `json:"path,omitempty"`
}

// TraceConfig configures the WebSocket trace stream.
type TraceConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Addr    string `json:"addr,omitempty"`
}

// TimeoutConfig configures server timeouts as duration strings ("30s").
type TimeoutConfig struct {
	Read     string `json:"read,omitempty"`
	Write    string `json:"write,omitempty"`
	Shutdown string `json:"shutdown,omitempty"`
}

// Load reads strada.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a configuration file from path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config with an explicit path")
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E100").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "strada"
	}
	for i := range c.Listeners {
		for j := range c.Listeners[i].Routes {
			r := &c.Listeners[i].Routes[j]
			if r.Method == "" {
				r.Method = http.MethodGet
			}
			if r.Status == 0 {
				r.Status = http.StatusOK
			}
		}
	}
	if c.Metrics.Enabled {
		if c.Metrics.Addr == "" {
			c.Metrics.Addr = DefaultMetricsAddr
		}
		if c.Metrics.Path == "" {
			c.Metrics.Path = DefaultMetricsPath
		}
	}
	if c.Trace.Enabled && c.Trace.Addr == "" {
		c.Trace.Addr = DefaultTraceAddr
	}
}

var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
}

// Validate checks the configuration for structural problems. Pattern syntax
// is not checked here; the router reports those when the table is built.
func (c *Config) Validate() error {
	if len(c.Listeners) == 0 {
		return errors.New("E102")
	}
	for i, l := range c.Listeners {
		if l.Addr == "" {
			return errors.New("E103").
				WithDetail("Listener " + strconv.Itoa(i) + " has no addr")
		}
		for _, r := range l.Routes {
			if r.Pattern == "" {
				return errors.New("E104").
					WithDetail("A route on listener " + l.Addr + " has no pattern")
			}
			if !validMethods[r.Method] {
				return errors.New("E104").
					WithDetail("Route " + r.Pattern + " uses unknown method " + r.Method)
			}
		}
	}
	if _, err := c.ReadTimeout(); err != nil {
		return err
	}
	if _, err := c.WriteTimeout(); err != nil {
		return err
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}
	return nil
}

// ReadTimeout returns the configured read timeout, or 0 if unset.
func (c *Config) ReadTimeout() (time.Duration, error) {
	return parseTimeout(c.Timeouts.Read)
}

// WriteTimeout returns the configured write timeout, or 0 if unset.
func (c *Config) WriteTimeout() (time.Duration, error) {
	return parseTimeout(c.Timeouts.Write)
}

// ShutdownTimeout returns the configured shutdown timeout, or 0 if unset.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	return parseTimeout(c.Timeouts.Shutdown)
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("E121").WithDetail("Cannot use " + s + " as a timeout")
	}
	return d, nil
}
