// Package theme derives the widget's UI palette from brand colors reported
// by the page-analysis service, with a fixed default palette as the fallback
// for anything unusable.
package theme

// Palette is the complete set of named UI colors for one theme state.
type Palette struct {
	Primary      string `json:"primary"`
	PrimaryDark  string `json:"primaryDark"`
	PrimaryLight string `json:"primaryLight"`
	Secondary    string `json:"secondary"`
	Background   string `json:"background"`
	Text         string `json:"text"`
	Border       string `json:"border"`
	Button       string `json:"button"`
	Link         string `json:"link"`
	Accent       string `json:"accent"`
	UserBg       string `json:"userBg"`
	BotBg        string `json:"botBg"`
	HeaderBg     string `json:"headerBg"`
	HeaderText   string `json:"headerText"`
}

// ExtractedTheme holds the raw colors the page-analysis service reported for
// one content source. Only "primary" is required for the theme to be usable.
type ExtractedTheme struct {
	Colors map[string]string `json:"colors"`
}

const (
	darkText  = "#2d3748"
	lightText = "#f7fafc"

	// Replacement primaries used when the brand color sits too close to the
	// background to be distinguishable.
	fallbackBlueOnLight = "#2563eb"
	fallbackBlueOnDark  = "#60a5fa"
)

// DefaultPalette is the built-in theme used whenever no usable brand color
// is available. It is already accessibility-stable: EnsureAccessible leaves
// it unchanged.
func DefaultPalette() Palette {
	return Palette{
		Primary:      "#3b82f6",
		PrimaryDark:  "#2f68c5",
		PrimaryLight: "#629bf8",
		Secondary:    "#155cd0",
		Background:   "#ffffff",
		Text:         darkText,
		Border:       "#ebebeb",
		Button:       "#3b82f6",
		Link:         "#3b82f6",
		Accent:       "#3b82f6",
		UserBg:       "#3b82f6",
		BotBg:        "#cee0fd",
		HeaderBg:     "#3b82f6",
		HeaderText:   "#ffffff",
	}
}

// genericColors are values the page-analysis service frequently reports that
// say nothing about the brand: pure black/white, common greys, and stock
// framework accents. A primary matching any of these is rejected.
var genericColors = map[string]bool{
	"#000000": true,
	"#ffffff": true,
	"#808080": true,
	"#a9a9a9": true,
	"#c0c0c0": true,
	"#cccccc": true,
	"#d3d3d3": true,
	"#dddddd": true,
	"#eeeeee": true,
	"#f5f5f5": true,
	"#f8f9fa": true,
	"#e9ecef": true,
	"#dee2e6": true,
	"#6c757d": true,
	"#343a40": true,
	"#212529": true,
	"#222222": true,
	"#333333": true,
	"#007bff": true, // bootstrap 4 primary
	"#0d6efd": true, // bootstrap 5 primary
	"#1976d2": true, // material blue 700
	"#2196f3": true, // material blue 500
	"#4285f4": true, // google blue
	"#6c5ce7": true, // common template accent
}
