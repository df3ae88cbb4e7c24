// Package configsync keeps a live widget in step with its backend
// configuration. It polls the backend on a fixed interval, diffs each
// snapshot against the previous one, and pushes only the changed facets
// into the UI.
package configsync

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/widgetlabs/embedchat/pkg/api"
	"github.com/widgetlabs/embedchat/pkg/logger"
	"github.com/widgetlabs/embedchat/pkg/theme"
)

const component = "configsync"

// Theme styles the syncer can resolve a snapshot to.
const (
	StyleDefault = "default"
	StyleWebsite = "website"
)

// UI is the rendering surface the syncer drives. Implementations must
// tolerate repeated calls with the same value.
type UI interface {
	SetPosition(pos string)
	SetTitle(title string)
	SetPlaceholder(text string)
	SetInputEnabled(enabled bool)
	AppendMessage(role, content string)
	ShowEmptyState()
	ShowInvalidKey()
	ApplyPalette(p theme.Palette)
}

// State is the syncer's view of what the UI currently shows.
type State struct {
	Position          string
	Title             string
	Placeholder       string
	SelectedContentID string
	ThemeStyle        string
	HasContent        bool
	Palette           theme.Palette
}

// Syncer polls the backend and reconciles the UI against each snapshot.
type Syncer struct {
	client   *api.Client
	ui       UI
	interval time.Duration

	mu       sync.Mutex
	baseline *api.RemoteConfig
	state    State

	active   atomic.Bool
	trigger  chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// onContentChange fires when the effective content source id changes,
	// including to "". onApply fires after every applied snapshot.
	onContentChange func(oldID, newID string)
	onApply         func(State)
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithInterval overrides the default 2s poll interval.
func WithInterval(d time.Duration) Option {
	return func(s *Syncer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithContentChangeHook registers a callback for content source switches.
func WithContentChangeHook(fn func(oldID, newID string)) Option {
	return func(s *Syncer) { s.onContentChange = fn }
}

// WithApplyHook registers a callback invoked after each applied snapshot.
func WithApplyHook(fn func(State)) Option {
	return func(s *Syncer) { s.onApply = fn }
}

// NewSyncer builds a syncer over the given backend client and UI. The
// initial state seeds the diff so locally-configured defaults are not
// clobbered by an identical remote value.
func NewSyncer(client *api.Client, ui UI, initial State, opts ...Option) *Syncer {
	s := &Syncer{
		client:   client,
		ui:       ui,
		interval: 2 * time.Second,
		state:    initial,
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start validates the API key and, on success, applies the first snapshot
// and begins the poll loop. A failed validation is terminal: the UI shows
// the invalid-key state, input stays disabled, and no loop is started.
func (s *Syncer) Start(ctx context.Context) error {
	if err := s.client.ValidateKey(ctx); err != nil {
		logger.ErrorCF(component, "api key validation failed", map[string]interface{}{"error": err.Error()})
		s.ui.ShowInvalidKey()
		s.ui.SetInputEnabled(false)
		return err
	}

	s.active.Store(true)
	s.pollOnce(ctx)

	go s.loop(ctx)
	return nil
}

func (s *Syncer) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.pollOnce(ctx)
		case <-s.trigger:
			s.pollOnce(ctx)
		}
	}
}

// Stop halts the poll loop. Safe to call more than once.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		s.active.Store(false)
		close(s.done)
	})
}

// Poll requests an immediate sync outside the regular interval, e.g. when
// the embedding page regains visibility or focus. Non-blocking; a poll
// already pending coalesces with this one.
func (s *Syncer) Poll() {
	if !s.active.Load() {
		return
	}
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// State returns a copy of the current applied state.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// pollOnce fetches one snapshot and reconciles it. Fetch failures are
// logged and swallowed; the next tick retries at the regular cadence.
func (s *Syncer) pollOnce(ctx context.Context) {
	cfg, err := s.client.SDKConfig(ctx)
	if err != nil {
		logger.WarnCF(component, "config poll failed", map[string]interface{}{"error": err.Error()})
		return
	}

	// A poll that completes after Stop() must not touch the UI.
	select {
	case <-s.done:
		return
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !changed(s.baseline, cfg) {
		return
	}
	s.apply(ctx, cfg)
	s.baseline = cfg
}

// changed reports whether the snapshot differs from the previous baseline
// on any watched field. A nil baseline always counts as changed so the
// first snapshot applies unconditionally.
func changed(prev, next *api.RemoteConfig) bool {
	if prev == nil {
		return true
	}
	if prev.SelectedID() != next.SelectedID() {
		return true
	}
	if prev.Integration.ThemeChoice != next.Integration.ThemeChoice {
		return true
	}
	if next.Integration.ThemeChoice == api.ThemeChoiceWebsite {
		prevTheme, _ := json.Marshal(prev.ThemeData)
		nextTheme, _ := json.Marshal(next.ThemeData)
		if string(prevTheme) != string(nextTheme) {
			return true
		}
	}
	return false
}

// apply reconciles the UI with a changed snapshot. Only facets that differ
// from the current state are pushed; untouched facets keep their value.
// Caller holds s.mu.
func (s *Syncer) apply(ctx context.Context, cfg *api.RemoteConfig) {
	cust := cfg.Integration.Customizations
	if cust.Position != nil && *cust.Position != s.state.Position {
		s.state.Position = *cust.Position
		s.ui.SetPosition(s.state.Position)
	}
	if cust.Title != nil && *cust.Title != s.state.Title {
		s.state.Title = *cust.Title
		s.ui.SetTitle(s.state.Title)
	}
	if cust.Placeholder != nil && *cust.Placeholder != s.state.Placeholder {
		s.state.Placeholder = *cust.Placeholder
		s.ui.SetPlaceholder(s.state.Placeholder)
	}

	s.applyTheme(ctx, cfg)
	s.applyContent(cfg)

	logger.InfoCF(component, "snapshot applied", map[string]interface{}{
		"content": s.state.SelectedContentID,
		"theme":   s.state.ThemeStyle,
	})

	if s.onApply != nil {
		s.onApply(s.state)
	}
}

// applyTheme resolves the snapshot's theme style and re-derives the palette
// when the style or the extracted colors changed. The website style only
// takes effect when extracted colors are actually available; a website
// choice without usable colors falls back to the default palette.
func (s *Syncer) applyTheme(ctx context.Context, cfg *api.RemoteConfig) {
	data := cfg.ThemeData
	if cfg.Integration.ThemeChoice == api.ThemeChoiceWebsite && data == nil {
		if id := cfg.SelectedID(); id != "" {
			fetched, err := s.client.Theme(ctx, id)
			if err != nil {
				logger.WarnCF(component, "theme fetch failed", map[string]interface{}{
					"website": id, "error": err.Error(),
				})
			} else {
				data = fetched
			}
		}
	}

	style := StyleDefault
	if cfg.Integration.ThemeChoice == api.ThemeChoiceWebsite && data != nil && len(data.Colors) > 0 {
		style = StyleWebsite
	}

	var p theme.Palette
	if style == StyleWebsite {
		p = theme.DerivePalette(data)
	} else {
		p = theme.DefaultPalette()
	}

	if style != s.state.ThemeStyle || p != s.state.Palette {
		s.state.ThemeStyle = style
		s.state.Palette = p
		s.ui.ApplyPalette(p)
	}
}

// applyContent resolves the effective content source and drives the
// empty-state / input-enabled transitions.
func (s *Syncer) applyContent(cfg *api.RemoteConfig) {
	content := cfg.ResolveContent()

	newID := ""
	if content != nil {
		newID = content.ID
	}
	oldID := s.state.SelectedContentID

	if content == nil {
		if s.state.HasContent || s.baseline == nil {
			s.state.HasContent = false
			s.state.SelectedContentID = ""
			s.ui.ShowEmptyState()
			s.ui.SetInputEnabled(false)
		}
	} else {
		s.state.HasContent = true
		s.state.SelectedContentID = newID
		s.ui.SetInputEnabled(true)
	}

	if oldID != newID && s.onContentChange != nil {
		s.onContentChange(oldID, newID)
	}
}
