package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/pipeline"
)

const (
	watchWriteWait = 10 * time.Second
	watchPongWait  = 60 * time.Second
	watchPingEvery = (watchPongWait * 9) / 10
	watchBuffer    = 8
)

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// watchMessage is what watchers receive.
type watchMessage struct {
	Type    string `json:"type"` // "dump" or "error"
	Markup  string `json:"markup,omitempty"`
	Widgets int    `json:"widgets,omitempty"`
	Error   string `json:"error,omitempty"`
}

// hub fans out messages to websocket watchers. A watcher that falls behind
// is disconnected.
type hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	logger  *log.Logger
}

func newHub(logger *log.Logger) *hub {
	return &hub{clients: make(map[chan []byte]struct{}), logger: logger}
}

func (h *hub) subscribe() chan []byte {
	ch := make(chan []byte, watchBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *hub) publish(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			h.logger.Warn("dropping slow watcher")
			delete(h.clients, ch)
			close(ch)
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// snapshotMessage dumps the live tree into a watch message.
func (s *Server) snapshotMessage(ctx context.Context) []byte {
	var msg watchMessage
	artifacts, widgets, err := s.render(ctx, pipeline.Options{Formats: []string{pipeline.FormatXML}})
	if err != nil {
		msg = watchMessage{Type: "error", Error: errors.UserMessage(err)}
	} else {
		msg = watchMessage{Type: "dump", Markup: string(artifacts[pipeline.FormatXML]), Widgets: widgets}
	}
	data, _ := json.Marshal(msg)
	return data
}

// broadcast pushes the current markup to every watcher.
func (s *Server) broadcast(ctx context.Context) {
	if s.hub.len() == 0 {
		return
	}
	s.hub.publish(s.snapshotMessage(context.WithoutCancel(ctx)))
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := watchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader: only control frames are expected; it notices disconnects.
	_ = conn.SetReadDeadline(time.Now().Add(watchPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := write(conn, websocket.TextMessage, s.snapshotMessage(ctx)); err != nil {
		return
	}

	ticker := time.NewTicker(watchPingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				_ = write(conn, websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"))
				return
			}
			if err := write(conn, websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := write(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func write(conn *websocket.Conn, typ int, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(watchWriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(typ, data)
}
