// Package widget ties the backend client, the config syncer, and a UI
// surface into one embeddable chat widget instance.
package widget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/widgetlabs/embedchat/pkg/api"
	"github.com/widgetlabs/embedchat/pkg/config"
	"github.com/widgetlabs/embedchat/pkg/configsync"
	"github.com/widgetlabs/embedchat/pkg/logger"
)

const component = "widget"

// Message is one entry in the local conversation transcript.
type Message struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Widget is one live chat widget instance. Multiple instances can coexist
// in a process; nothing here is package-global.
type Widget struct {
	client    *api.Client
	ui        configsync.UI
	syncer    *configsync.Syncer
	sessionID string

	// Send is throttled so a stuck embedding page cannot flood the backend.
	limiter *rate.Limiter

	mu      sync.Mutex
	history []Message
}

// New builds a widget from validated config and a UI surface.
func New(cfg *config.Config, ui configsync.UI) *Widget {
	w := &Widget{
		client:    api.NewClient(cfg.API.BaseURL, cfg.API.Key),
		ui:        ui,
		sessionID: uuid.NewString(),
		limiter:   rate.NewLimiter(rate.Every(time.Second), 3),
	}

	initial := configsync.State{
		Position:    cfg.Widget.Position,
		Title:       cfg.Widget.Title,
		Placeholder: cfg.Widget.Placeholder,
	}
	w.syncer = configsync.NewSyncer(w.client, ui, initial,
		configsync.WithInterval(time.Duration(cfg.Sync.PollIntervalMS)*time.Millisecond),
		configsync.WithContentChangeHook(w.onContentChange),
	)

	ui.SetPosition(initial.Position)
	ui.SetTitle(initial.Title)
	ui.SetPlaceholder(initial.Placeholder)

	return w
}

// Start validates the key and begins config polling. A key failure is
// terminal; the syncer has already put the UI into the invalid-key state.
func (w *Widget) Start(ctx context.Context) error {
	logger.InfoCF(component, "starting", map[string]interface{}{"session": w.sessionID})
	return w.syncer.Start(ctx)
}

func (w *Widget) Stop() {
	w.syncer.Stop()
}

// Refresh asks for an immediate config sync, e.g. after the embedding page
// regains visibility or focus.
func (w *Widget) Refresh() {
	w.syncer.Poll()
}

// State exposes the syncer's current applied state.
func (w *Widget) State() configsync.State {
	return w.syncer.State()
}

// Client exposes the backend client for supporting surfaces.
func (w *Widget) Client() *api.Client {
	return w.client
}

// Send relays a user message to the backend and appends both sides of the
// exchange to the transcript. It fails when no content source is active.
func (w *Widget) Send(ctx context.Context, text string) (*Message, error) {
	state := w.syncer.State()
	if !state.HasContent {
		return nil, fmt.Errorf("no content source configured")
	}
	if !w.limiter.Allow() {
		return nil, fmt.Errorf("sending too fast, slow down")
	}

	w.append(Message{ID: uuid.NewString(), Role: "user", Content: text, Time: time.Now()})

	resp, err := w.client.Chat(ctx, api.ChatRequest{
		Message:   text,
		WebsiteID: state.SelectedContentID,
		SessionID: w.sessionID,
	})
	if err != nil {
		logger.ErrorCF(component, "chat send failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	reply := Message{ID: uuid.NewString(), Role: "bot", Content: resp.Reply, Time: time.Now()}
	w.append(reply)
	w.ui.AppendMessage(reply.Role, reply.Content)
	return &reply, nil
}

// History returns a copy of the transcript.
func (w *Widget) History() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.history))
	copy(out, w.history)
	return out
}

func (w *Widget) append(m Message) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.history = append(w.history, m)
}

// onContentChange clears the transcript when the tenant switches the
// widget to a different content source. Answers about the old content
// would be misleading against the new one.
func (w *Widget) onContentChange(oldID, newID string) {
	if oldID == "" {
		return
	}
	w.mu.Lock()
	w.history = nil
	w.mu.Unlock()
	logger.InfoCF(component, "content source changed, transcript cleared", map[string]interface{}{
		"from": oldID, "to": newID,
	})
}
