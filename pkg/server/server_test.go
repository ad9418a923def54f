package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

// waitForAddr waits for listener index to bind and returns a dialable
// address for it.
func waitForAddr(t *testing.T, s *Server, index int) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		addrs := s.Addrs()
		if index < len(addrs) && addrs[index] != ":0" {
			_, port, err := net.SplitHostPort(addrs[index])
			if err != nil {
				t.Fatalf("SplitHostPort(%q): %v", addrs[index], err)
			}
			return net.JoinHostPort("127.0.0.1", port)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("listener did not bind in time")
	return ""
}

func TestServerRunNoListeners(t *testing.T) {
	s := NewServer()
	if err := s.Run(context.Background()); err == nil {
		t.Error("Run with no listeners should error")
	}
}

func TestServerPortScopedDispatch(t *testing.T) {
	s := NewServer(WithShutdownTimeout(time.Second))
	s.Handle(":0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "alpha")
	}))
	s.Handle(":0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "beta")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for i, want := range []string{"alpha", "beta"} {
		addr := waitForAddr(t, s, i)
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			t.Fatalf("GET listener %d: %v", i, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != want {
			t.Errorf("listener %d body = %q, want %q", i, body, want)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancel, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServerRunTwice(t *testing.T) {
	s := NewServer(WithShutdownTimeout(time.Second))
	s.Handle(":0", http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	waitForAddr(t, s, 0)

	if err := s.Run(context.Background()); err == nil {
		t.Error("second Run should error while server is running")
	}

	cancel()
	<-done
}
