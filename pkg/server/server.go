// Package server hosts the widget for embedding pages. It serves the
// widget page, relays chat messages, and pushes config-sync updates to
// connected pages over websocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/widgetlabs/embedchat/pkg/config"
	"github.com/widgetlabs/embedchat/pkg/logger"
	"github.com/widgetlabs/embedchat/pkg/widget"
)

const component = "server"

type Server struct {
	cfg    config.ServerConfig
	widget *widget.Widget
	hub    *hub
	http   *http.Server
}

// New builds the host server and the widget it fronts. The hub doubles as
// the widget's UI surface, so every sync update reaches connected pages.
func New(cfg *config.Config) *Server {
	h := newHub()
	return &Server{
		cfg:    cfg.Server,
		widget: widget.New(cfg, h),
		hub:    h,
	}
}

// Widget exposes the hosted widget instance.
func (s *Server) Widget() *widget.Widget {
	return s.widget
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is embedded on third-party pages.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.widget.Start(ctx); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.http = &http.Server{Addr: addr, Handler: s.Handler()}

	logger.InfoCF(component, "widget host started", map[string]interface{}{"addr": addr})

	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorCF(component, "server error", map[string]interface{}{"error": err.Error()})
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.widget.Stop()
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// Handler returns the widget host route set.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/widget", s.handlePage)
	mux.HandleFunc("/widget.js", s.handleScript)
	mux.HandleFunc("/widget/state", s.handleState)
	mux.HandleFunc("/widget/send", s.handleSend)
	mux.HandleFunc("/widget/ws", s.handleWS)
	mux.HandleFunc("/widget/files", s.handleFiles)
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/widget" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, widgetHTML)
}

// handleScript serves the embed bootstrap. Host pages add one script tag and
// get the widget injected as a floating iframe.
func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	fmt.Fprint(w, widgetJS)
}

// handleState returns the widget's applied state plus the transcript, so a
// freshly loaded page can render without waiting for websocket frames.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := s.widget.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"position":    state.Position,
		"title":       state.Title,
		"placeholder": state.Placeholder,
		"themeStyle":  state.ThemeStyle,
		"hasContent":  state.HasContent,
		"palette":     state.Palette,
		"history":     s.widget.History(),
	})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
		return
	}

	reply, err := s.widget.Send(r.Context(), req.Message)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// handleWS upgrades the page connection. Inbound frames are page lifecycle
// signals; "visible" and "focus" trigger an immediate config sync.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WarnCF(component, "websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	s.hub.add(conn)

	go func() {
		defer s.hub.remove(conn)
		for {
			var signal struct {
				Type string `json:"type"`
			}
			if err := conn.ReadJSON(&signal); err != nil {
				return
			}
			switch signal.Type {
			case "visible", "focus":
				s.widget.Refresh()
			}
		}
	}()
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.widget.Client().ScrapedFiles(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
