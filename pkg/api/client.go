// Package api is the typed client for the chat backend. Every endpoint
// requires the tenant's x-api-key header and answers with a
// {success, data} JSON envelope.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/widgetlabs/embedchat/pkg/theme"
)

type Client struct {
	http *resty.Client
}

// NewClient builds a backend client. The base URL is required configuration;
// it is never inferred from the environment.
func NewClient(baseURL, apiKey string) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)
	return &Client{http: rc}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

func decode(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("backend returned %s", resp.Status())
	}
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("backend rejected request: %s", env.Error)
		}
		return fmt.Errorf("backend rejected request")
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

// ValidateKey checks the tenant API key. An error means the key is unusable
// and chat must stay disabled.
func (c *Client) ValidateKey(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Post("/auth/validate-api-key")
	if err := decode(resp, err, nil); err != nil {
		return fmt.Errorf("validating api key: %w", err)
	}
	return nil
}

// SDKConfig fetches the current tenant configuration snapshot. The request
// is cache-busted with a timestamp query parameter so intermediaries never
// serve a stale snapshot.
func (c *Client) SDKConfig(ctx context.Context) (*RemoteConfig, error) {
	var cfg RemoteConfig
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("t", strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Get("/sdk-config")
	if err := decode(resp, err, &cfg); err != nil {
		return nil, fmt.Errorf("fetching sdk config: %w", err)
	}
	return &cfg, nil
}

// Theme fetches the extracted brand colors for one content source. A theme
// without usable colors is not an error here; callers treat it as
// "theme unavailable" and fall back to the default palette.
func (c *Client) Theme(ctx context.Context, websiteID string) (*theme.ExtractedTheme, error) {
	var t theme.ExtractedTheme
	resp, err := c.http.R().SetContext(ctx).Get("/theme/" + websiteID)
	if err := decode(resp, err, &t); err != nil {
		return nil, fmt.Errorf("fetching theme %s: %w", websiteID, err)
	}
	return &t, nil
}

// Chat relays a user message and returns the bot reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/chat")
	if err := decode(resp, err, &out); err != nil {
		return nil, fmt.Errorf("sending chat message: %w", err)
	}
	return &out, nil
}

// ScrapedFiles lists the tenant's stored scrape artifacts.
func (c *Client) ScrapedFiles(ctx context.Context) ([]ScrapedFile, error) {
	var files []ScrapedFile
	resp, err := c.http.R().SetContext(ctx).Get("/scrape/files")
	if err := decode(resp, err, &files); err != nil {
		return nil, fmt.Errorf("listing scraped files: %w", err)
	}
	return files, nil
}
