// Package web serves a websocket endpoint that mirrors every emitted
// cycle to connected clients, so a stream can be inspected without
// attaching to the pipe or PTY.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Monitor broadcasts cycles to websocket clients.
type Monitor struct {
	log      *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	cycles  int
}

func NewMonitor(log *logrus.Logger) *Monitor {
	return &Monitor{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the connection and registers the client. The
// stream is one-way; reads only serve to detect disconnects.
func (m *Monitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Errorf("websocket upgrade failed: %v", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = true
	total := len(m.clients)
	m.mu.Unlock()
	m.log.Infof("monitor client connected, %d total", total)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				m.drop(conn)
				return
			}
		}
	}()
}

// ClientCount returns the number of connected clients.
func (m *Monitor) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

func (m *Monitor) drop(conn *websocket.Conn) {
	m.mu.Lock()
	if m.clients[conn] {
		delete(m.clients, conn)
		conn.Close()
	}
	m.mu.Unlock()
}

// Broadcast sends one cycle to every connected client, dropping
// clients whose writes fail.
func (m *Monitor) Broadcast(cycle string) {
	m.mu.Lock()
	m.cycles++
	conns := make([]*websocket.Conn, 0, len(m.clients))
	for c := range m.clients {
		conns = append(conns, c)
	}
	m.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, []byte(cycle)); err != nil {
			m.log.Warnf("dropping monitor client: %v", err)
			m.drop(c)
		}
	}
}

// handleStatus reports the monitor's counters.
func (m *Monitor) handleStatus(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	status := map[string]int{
		"clients": len(m.clients),
		"cycles":  m.cycles,
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		m.log.Errorf("encode status: %v", err)
	}
}

// Handler returns the monitor's routes: the websocket stream at /nmea
// and a JSON status endpoint at /status.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/nmea", m)
	r.HandleFunc("/status", m.handleStatus).Methods(http.MethodGet)
	return r
}

// Serve runs the monitor HTTP server on addr until ctx is cancelled.
func (m *Monitor) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: m.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
