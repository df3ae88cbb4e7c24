package api

import "github.com/widgetlabs/embedchat/pkg/theme"

// Theme choices a tenant can make in the dashboard.
const (
	ThemeChoiceDefault = "default"
	ThemeChoiceWebsite = "website"
)

// Website is one scraped content source the chat can answer questions about.
type Website struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	DisplayName string `json:"displayName"`
	FileName    string `json:"fileName"`
}

// Customizations carries the dashboard-controlled widget facets. Nil fields
// were not set by the tenant and must leave the current UI value untouched.
type Customizations struct {
	Position    *string `json:"position,omitempty"`
	Title       *string `json:"title,omitempty"`
	Placeholder *string `json:"placeholder,omitempty"`
}

type Integration struct {
	ThemeChoice    string         `json:"themeChoice"`
	Customizations Customizations `json:"customizations"`
}

// RemoteConfig is one snapshot of the backend-controlled widget settings.
// Snapshots are compared whole against the previous baseline; they are never
// merged field by field.
type RemoteConfig struct {
	SelectedWebsite   *Website              `json:"selectedWebsite,omitempty"`
	AvailableWebsites []Website             `json:"availableWebsites,omitempty"`
	Integration       Integration           `json:"integration"`
	ThemeData         *theme.ExtractedTheme `json:"themeData,omitempty"`
}

// SelectedID returns the id of the explicitly selected content source, or "".
func (c *RemoteConfig) SelectedID() string {
	if c == nil || c.SelectedWebsite == nil {
		return ""
	}
	return c.SelectedWebsite.ID
}

// ResolveContent picks the effective content source: the selected website,
// else the first available one, else nil.
func (c *RemoteConfig) ResolveContent() *Website {
	if c == nil {
		return nil
	}
	if c.SelectedWebsite != nil {
		return c.SelectedWebsite
	}
	if len(c.AvailableWebsites) > 0 {
		return &c.AvailableWebsites[0]
	}
	return nil
}

type ChatRequest struct {
	Message   string `json:"message"`
	WebsiteID string `json:"websiteId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ScrapedFile describes one stored scrape artifact for the tenant.
type ScrapedFile struct {
	FileName  string `json:"fileName"`
	WebsiteID string `json:"websiteId"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"sizeBytes"`
}
