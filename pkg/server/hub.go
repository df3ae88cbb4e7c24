package server

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/widgetlabs/embedchat/pkg/logger"
	"github.com/widgetlabs/embedchat/pkg/theme"
)

// frame is one UI update pushed to connected widget pages.
type frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// hub fans UI updates out to every connected widget page over websocket.
// It implements configsync.UI, so the syncer drives browsers directly.
// All writes happen under mu; gorilla connections do not allow concurrent
// writers.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	// last holds the most recent frame per type so a page connecting
	// mid-session catches up immediately.
	last map[string]frame
}

func newHub() *hub {
	return &hub{
		conns: make(map[*websocket.Conn]struct{}),
		last:  make(map[string]frame),
	}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	for _, f := range h.last {
		if err := conn.WriteJSON(f); err != nil {
			h.dropLocked(conn)
			return
		}
	}
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	h.dropLocked(conn)
	h.mu.Unlock()
}

func (h *hub) dropLocked(conn *websocket.Conn) {
	delete(h.conns, conn)
	conn.Close()
}

func (h *hub) broadcast(f frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last[f.Type] = f
	for c := range h.conns {
		if err := c.WriteJSON(f); err != nil {
			logger.DebugCF(component, "dropping stale connection", map[string]interface{}{"error": err.Error()})
			h.dropLocked(c)
		}
	}
}

func (h *hub) SetPosition(pos string)     { h.broadcast(frame{Type: "position", Payload: pos}) }
func (h *hub) SetTitle(title string)      { h.broadcast(frame{Type: "title", Payload: title}) }
func (h *hub) SetPlaceholder(text string) { h.broadcast(frame{Type: "placeholder", Payload: text}) }
func (h *hub) SetInputEnabled(on bool)    { h.broadcast(frame{Type: "input", Payload: on}) }
func (h *hub) ShowEmptyState()            { h.broadcast(frame{Type: "empty"}) }
func (h *hub) ShowInvalidKey()            { h.broadcast(frame{Type: "invalid-key"}) }

func (h *hub) AppendMessage(role, content string) {
	h.broadcast(frame{Type: "message", Payload: map[string]string{"role": role, "content": content}})
}

func (h *hub) ApplyPalette(p theme.Palette) {
	h.broadcast(frame{Type: "palette", Payload: p})
}
