package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/campusworks/timetable-engine/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WatchHub fans freshly generated timetables out to websocket
// subscribers. It implements timetable.Notifier.
type WatchHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewWatchHub creates an empty hub
func NewWatchHub() *WatchHub {
	return &WatchHub{conns: make(map[*websocket.Conn]bool)}
}

// Publish sends the result to every subscriber. Connections that fail to
// write are dropped.
func (h *WatchHub) Publish(result *models.GenerationResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(result); err != nil {
			slog.Debug("dropping timetable watcher", "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *WatchHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *WatchHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// handleWatch upgrades the connection and streams every generation result
// until the client disconnects
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("timetable watcher connected", "remote_addr", r.RemoteAddr)

	s.watchHub.add(conn)
	defer s.watchHub.remove(conn)

	// Send the current snapshot on connect so watchers start in sync
	if latest, err := s.service.Latest(r.Context()); err == nil && latest != nil {
		if err := conn.WriteJSON(latest); err != nil {
			slog.Debug("failed to send snapshot to new watcher", "error", err)
			return
		}
	}

	// Drain client messages; the read fails when the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			break
		}
	}

	slog.Info("timetable watcher disconnected", "remote_addr", r.RemoteAddr)
}
