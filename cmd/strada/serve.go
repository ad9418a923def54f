package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/strada-dev/strada/internal/config"
	"github.com/strada-dev/strada/internal/debug"
	"github.com/strada-dev/strada/internal/errors"
	"github.com/strada-dev/strada/pkg/middleware"
	"github.com/strada-dev/strada/pkg/router"
	"github.com/strada-dev/strada/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		otelTrace  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server with the listeners and routes declared
in strada.json.

Each listener gets its own route table. When metrics are enabled a
separate listener exposes Prometheus metrics; when trace streaming is
enabled another listener streams match traces over WebSocket.

Examples:
  strada serve
  strada serve --config /etc/strada/strada.json
  strada serve --otel`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, otelTrace)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to strada.json (default ./strada.json)")
	cmd.Flags().BoolVar(&otelTrace, "otel", false, "Enable OpenTelemetry tracing middleware")

	return cmd
}

func runServe(configPath string, otelTrace bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("service", cfg.Name)

	var stream *debug.StreamServer
	var trace router.TraceFunc
	if cfg.Trace.Enabled {
		stream = debug.NewStreamServer()
		trace = debug.MultiSink(stream.Sink(), debug.SlogSink(logger))
	}

	srv, err := buildServer(cfg, logger, trace, otelTrace)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		srv.Handle(cfg.Metrics.Addr, mux)
	}
	if stream != nil {
		mux := http.NewServeMux()
		mux.HandleFunc("/trace", stream.HandleWebSocket)
		srv.Handle(cfg.Trace.Addr, mux)
	}

	printBanner()
	for _, l := range cfg.Listeners {
		info("listening on %s (%d routes)", l.Addr, len(l.Routes))
	}
	if cfg.Metrics.Enabled {
		info("metrics on %s%s", cfg.Metrics.Addr, cfg.Metrics.Path)
	}
	if cfg.Trace.Enabled {
		info("trace stream on %s/trace", cfg.Trace.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return errors.New("E140").Wrap(err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(wd)
}

// buildServer assembles a Server with one router per configured listener.
func buildServer(cfg *config.Config, logger *slog.Logger, trace router.TraceFunc, otelTrace bool) (*server.Server, error) {
	var serverOpts []server.ServerOption
	serverOpts = append(serverOpts, server.WithLogger(logger))
	if d, _ := cfg.ReadTimeout(); d > 0 {
		serverOpts = append(serverOpts, server.WithReadTimeout(d))
	}
	if d, _ := cfg.WriteTimeout(); d > 0 {
		serverOpts = append(serverOpts, server.WithWriteTimeout(d))
	}
	if d, _ := cfg.ShutdownTimeout(); d > 0 {
		serverOpts = append(serverOpts, server.WithShutdownTimeout(d))
	}
	srv := server.NewServer(serverOpts...)

	// Construct each middleware once and share it across listeners. The
	// Prometheus middleware registers its collectors when built; building it
	// per listener would register the same names twice and panic.
	var otelMW, promMW middleware.Middleware
	if otelTrace {
		otelMW = middleware.OpenTelemetry()
	}
	if cfg.Metrics.Enabled {
		promMW = middleware.Prometheus()
	}

	for _, l := range cfg.Listeners {
		rt, err := buildRouter(l, logger, trace)
		if err != nil {
			return nil, errors.New("E120").
				WithDetail("Listener " + l.Addr + ": " + err.Error()).
				Wrap(err)
		}

		var handler http.Handler = rt
		if otelMW != nil {
			handler = otelMW(handler)
		}
		if promMW != nil {
			handler = promMW(handler)
		}
		srv.Handle(l.Addr, handler)
	}
	return srv, nil
}

// buildRouter turns one listener's route table into a Router.
func buildRouter(l config.ListenerConfig, logger *slog.Logger, trace router.TraceFunc) (*router.Router, error) {
	opts := []router.Option{router.WithLogger(logger)}
	if trace != nil {
		opts = append(opts, router.WithTrace(trace))
	}
	if l.NotFoundBody != "" {
		body := l.NotFoundBody
		opts = append(opts, router.NotFound(func(ctx server.Ctx) {
			_ = ctx.Status(http.StatusNotFound).Text(body)
		}))
	}

	for _, rc := range l.Routes {
		opts = append(opts, router.Method(rc.Method, router.Route(rc.Pattern, templateHandler(rc))))
	}

	return router.New(opts...)
}

// templateHandler builds a handler that renders the configured body, with
// {1}, {2}, ... replaced by the captured placeholder values in order.
func templateHandler(rc config.RouteConfig) router.HandlerFunc {
	return func(ctx server.Ctx, args []router.Value) (bool, error) {
		body := rc.Body
		for i, v := range args {
			body = strings.ReplaceAll(body, "{"+strconv.Itoa(i+1)+"}", fmt.Sprint(v.Any()))
		}
		return true, ctx.Status(rc.Status).Text(body)
	}
}
