// Package debug streams router matching traces to connected WebSocket
// clients, for inspecting why a request did or did not match a route.
package debug

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// TraceMessage is sent to trace viewers via WebSocket.
type TraceMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// StreamServer manages WebSocket connections for trace streaming.
type StreamServer struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
}

// NewStreamServer creates a new trace stream server.
func NewStreamServer() *StreamServer {
	return &StreamServer{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // trace streaming is a local debugging tool
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (s *StreamServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Broadcast sends one trace line to all connected clients.
func (s *StreamServer) Broadcast(line string) {
	data, err := json.Marshal(TraceMessage{Type: "trace", Text: line})
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	// Trace sinks run on request goroutines, but a websocket connection
	// allows only one concurrent writer.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}

// Sink returns a function suitable as a router trace sink.
func (s *StreamServer) Sink() func(string) {
	return s.Broadcast
}

// ClientCount returns the number of connected clients.
func (s *StreamServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// SlogSink returns a trace sink that logs each line at debug level.
func SlogSink(logger *slog.Logger) func(string) {
	return func(line string) {
		logger.Debug("match trace", "line", line)
	}
}

// MultiSink fans one trace line out to several sinks.
func MultiSink(sinks ...func(string)) func(string) {
	return func(line string) {
		for _, sink := range sinks {
			sink(line)
		}
	}
}
