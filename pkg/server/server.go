package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Default timeouts for listeners.
const (
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Server runs one HTTP listener per registered address. Every listener owns
// its own handler, so the listening port alone decides which router sees a
// request. Handlers must be registered before Run is called; the listener
// set is frozen once the server starts.
type Server struct {
	logger          *slog.Logger
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration

	mu        sync.Mutex
	listeners []*listener
	running   bool
}

type listener struct {
	addr    string
	handler http.Handler
	srv     *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReadTimeout sets the per-listener read timeout.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.readTimeout = d }
}

// WithWriteTimeout sets the per-listener write timeout.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.writeTimeout = d }
}

// WithShutdownTimeout sets how long Run waits for in-flight requests
// during graceful shutdown.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.shutdownTimeout = d }
}

// NewServer creates a Server with no listeners registered.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		logger:          slog.Default(),
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle binds handler to addr. Requests arriving on addr's port are
// dispatched to this handler and no other.
func (s *Server) Handle(addr string, handler http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, &listener{addr: addr, handler: handler})
}

// Addrs returns the bound addresses of all listeners. Before Run it returns
// the configured addresses; after Run has started it returns the actual
// addresses, which matters when an address like ":0" was registered.
func (s *Server) Addrs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]string, len(s.listeners))
	for i, l := range s.listeners {
		addrs[i] = l.addr
	}
	return addrs
}

// Run starts every registered listener and blocks until ctx is cancelled or
// a listener fails. On cancellation all listeners are shut down gracefully,
// bounded by the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	if len(s.listeners) == 0 {
		s.mu.Unlock()
		return errors.New("no listeners registered")
	}
	s.running = true
	listeners := s.listeners
	s.mu.Unlock()

	errCh := make(chan error, len(listeners))
	var wg sync.WaitGroup

	for i, l := range listeners {
		ln, err := net.Listen("tcp", l.addr)
		if err != nil {
			for _, started := range listeners[:i] {
				started.srv.Close()
			}
			wg.Wait()
			return fmt.Errorf("listen %s: %w", l.addr, err)
		}
		s.mu.Lock()
		l.addr = ln.Addr().String()
		s.mu.Unlock()
		l.srv = &http.Server{
			Handler:      l.handler,
			ReadTimeout:  s.readTimeout,
			WriteTimeout: s.writeTimeout,
		}

		wg.Add(1)
		go func(l *listener, ln net.Listener) {
			defer wg.Done()
			s.logger.Info("listener starting", "addr", l.addr)
			if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve %s: %w", l.addr, err)
			}
		}(l, ln)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	s.logger.Info("shutting down", "listeners", len(listeners))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	for _, l := range listeners {
		if err := l.srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("shutdown %s: %w", l.addr, err)
		}
	}
	wg.Wait()
	return runErr
}
