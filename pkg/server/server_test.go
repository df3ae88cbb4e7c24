package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/widgetlabs/embedchat/pkg/api"
	"github.com/widgetlabs/embedchat/pkg/config"
)

func fakeBackend(t *testing.T, selected string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	envelope := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
	}
	mux.HandleFunc("/auth/validate-api-key", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, nil)
	})
	mux.HandleFunc("/sdk-config", func(w http.ResponseWriter, r *http.Request) {
		cfg := api.RemoteConfig{Integration: api.Integration{ThemeChoice: api.ThemeChoiceDefault}}
		if selected != "" {
			cfg.SelectedWebsite = &api.Website{ID: selected}
		}
		envelope(w, cfg)
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req api.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		envelope(w, map[string]string{"reply": "echo: " + req.Message})
	})
	mux.HandleFunc("/scrape/files", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []api.ScrapedFile{{FileName: "docs.json", WebsiteID: "w1"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newServerUnderTest(t *testing.T, selected string) (*Server, *httptest.Server) {
	t.Helper()
	backend := fakeBackend(t, selected)

	cfg := config.DefaultConfig()
	cfg.API.Key = "k"
	cfg.API.BaseURL = backend.URL
	cfg.Sync.PollIntervalMS = 3600000

	s := New(cfg)
	require.NoError(t, s.widget.Start(context.Background()))
	t.Cleanup(s.widget.Stop)

	host := httptest.NewServer(s.Handler())
	t.Cleanup(host.Close)
	return s, host
}

func TestPageServed(t *testing.T) {
	_, host := newServerUnderTest(t, "w1")

	resp, err := http.Get(host.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestEmbedScriptServed(t *testing.T) {
	_, host := newServerUnderTest(t, "w1")

	resp, err := http.Get(host.URL + "/widget.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")

	page, err := http.Get(host.URL + "/widget")
	require.NoError(t, err)
	defer page.Body.Close()
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.Header.Get("Content-Type"), "text/html")
}

func TestStateEndpoint(t *testing.T) {
	_, host := newServerUnderTest(t, "w1")

	resp, err := http.Get(host.URL + "/widget/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state struct {
		Title      string `json:"title"`
		HasContent bool   `json:"hasContent"`
		Palette    struct {
			Primary string `json:"primary"`
		} `json:"palette"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.True(t, state.HasContent)
	assert.Equal(t, "#3b82f6", state.Palette.Primary)
}

func TestSendEndpoint(t *testing.T) {
	_, host := newServerUnderTest(t, "w1")

	body := bytes.NewBufferString(`{"message": "hello"}`)
	resp, err := http.Post(host.URL+"/widget/send", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, "bot", reply.Role)
	assert.Equal(t, "echo: hello", reply.Content)
}

func TestSendEndpointRejectsEmpty(t *testing.T) {
	_, host := newServerUnderTest(t, "w1")

	resp, err := http.Post(host.URL+"/widget/send", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendEndpointWithoutContent(t *testing.T) {
	_, host := newServerUnderTest(t, "")

	body := bytes.NewBufferString(`{"message": "hello"}`)
	resp, err := http.Post(host.URL+"/widget/send", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestFilesEndpoint(t *testing.T) {
	_, host := newServerUnderTest(t, "w1")

	resp, err := http.Get(host.URL + "/widget/files")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var files []api.ScrapedFile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&files))
	require.Len(t, files, 1)
	assert.Equal(t, "docs.json", files[0].FileName)
}

func TestWebsocketReplaysAndBroadcasts(t *testing.T) {
	s, host := newServerUnderTest(t, "w1")

	wsURL := "ws" + strings.TrimPrefix(host.URL, "http") + "/widget/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Connect replays the frames the syncer already pushed.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	seen := map[string]bool{}
	for !(seen["palette"] && seen["input"]) {
		var f frame
		require.NoError(t, conn.ReadJSON(&f), "replayed state frames missing, got %v", seen)
		seen[f.Type] = true
	}

	// A fresh broadcast reaches the live connection.
	s.hub.SetTitle("Updated")
	deadline := time.Now().Add(time.Second)
	for {
		require.False(t, time.Now().After(deadline), "title frame never arrived")
		conn.SetReadDeadline(deadline)
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type == "title" {
			assert.Equal(t, "Updated", f.Payload)
			break
		}
	}
}
