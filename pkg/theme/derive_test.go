package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractedWith(primary string) *ExtractedTheme {
	return &ExtractedTheme{Colors: map[string]string{"primary": primary}}
}

func paletteRoles(p Palette) map[string]string {
	return map[string]string{
		"primary":      p.Primary,
		"primaryDark":  p.PrimaryDark,
		"primaryLight": p.PrimaryLight,
		"secondary":    p.Secondary,
		"background":   p.Background,
		"text":         p.Text,
		"border":       p.Border,
		"button":       p.Button,
		"link":         p.Link,
		"accent":       p.Accent,
		"userBg":       p.UserBg,
		"botBg":        p.BotBg,
		"headerBg":     p.HeaderBg,
		"headerText":   p.HeaderText,
	}
}

func TestDerivePaletteNilFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultPalette(), DerivePalette(nil))
	assert.Equal(t, DefaultPalette(), DerivePalette(&ExtractedTheme{}))
}

func TestDerivePaletteRejectsGenericColors(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#cccccc", "#007bff", "#2196f3"} {
		assert.Equal(t, DefaultPalette(), DerivePalette(extractedWith(hex)), hex)
	}
}

func TestDerivePaletteRejectsExtremeLuminance(t *testing.T) {
	// Luminance > 0.9 (near white) and < 0.1 (near black).
	assert.Equal(t, DefaultPalette(), DerivePalette(extractedWith("#fdf9ee")))
	assert.Equal(t, DefaultPalette(), DerivePalette(extractedWith("#0a0a14")))
}

func TestDerivePaletteRejectsNearGrayscale(t *testing.T) {
	// Saturation (max-min)/max at or below 0.15.
	assert.Equal(t, DefaultPalette(), DerivePalette(extractedWith("#8a8f95")))
}

func TestDerivePaletteRejectsMalformedPrimary(t *testing.T) {
	for _, bad := range []string{"ff6600", "#f60", "orange", ""} {
		assert.Equal(t, DefaultPalette(), DerivePalette(extractedWith(bad)), bad)
	}
}

func TestDerivePaletteFromBrandColor(t *testing.T) {
	p := DerivePalette(extractedWith("#ff6600"))

	assert.Equal(t, "#ff6600", p.Primary)
	assert.Equal(t, "#cc5200", p.PrimaryDark)
	assert.Equal(t, "#ff8533", p.PrimaryLight)
	assert.Equal(t, "#ff6600", p.UserBg)
	assert.Equal(t, "#ff6600", p.HeaderBg)
	assert.Equal(t, "#ff6600", p.Button)
	assert.Equal(t, "#ffffff", p.Background)
	// No distinct secondary: brightness-adjusted primary and a 75% lightened botBg.
	assert.Equal(t, AdjustBrightness("#ff6600", -15), p.Secondary)
	assert.Equal(t, Lighten("#ff6600", 75), p.BotBg)
}

func TestDerivePaletteUsesDistinctSecondary(t *testing.T) {
	p := DerivePalette(&ExtractedTheme{Colors: map[string]string{
		"primary":   "#ff6600",
		"secondary": "#0044aa",
	}})
	assert.Equal(t, "#0044aa", p.Secondary)
	assert.Equal(t, Lighten("#0044aa", 60), p.BotBg)
}

func TestDerivePaletteChannelsInRange(t *testing.T) {
	for _, primary := range []string{"#ff6600", "#3b82f6", "#12c48b", "#b2230f", "#7722dd"} {
		p := DerivePalette(extractedWith(primary))
		for role, hex := range paletteRoles(p) {
			c, ok := parseHex(hex)
			require.True(t, ok, "%s: %q", role, hex)
			for _, ch := range []int{c.r, c.g, c.b} {
				assert.GreaterOrEqual(t, ch, 0, role)
				assert.LessOrEqual(t, ch, 255, role)
			}
		}
	}
}

func TestEnsureAccessibleFixesSameBucketText(t *testing.T) {
	p := DefaultPalette()
	p.Text = "#ffffff" // white on white
	fixed := EnsureAccessible(p)
	assert.Equal(t, darkText, fixed.Text)

	p = DefaultPalette()
	p.Background = "#101418"
	p.BotBg = "#181c22"
	p.Text = "#202428" // dark on dark
	fixed = EnsureAccessible(p)
	assert.Equal(t, lightText, fixed.Text)
}

func TestEnsureAccessibleReplacesInvisiblePrimary(t *testing.T) {
	p := DefaultPalette()
	p.Primary = "#fafafa" // nearly the white background
	fixed := EnsureAccessible(p)
	assert.Equal(t, fallbackBlueOnLight, fixed.Primary)

	p.Background = "#10141a"
	p.Primary = "#202830"
	fixed = EnsureAccessible(p)
	assert.Equal(t, fallbackBlueOnDark, fixed.Primary)
}

func TestEnsureAccessibleIdempotent(t *testing.T) {
	cases := []Palette{
		DefaultPalette(),
		DerivePalette(extractedWith("#ff6600")),
		{Primary: "#fefefe", Background: "#ffffff", Text: "#ffffff", BotBg: "#111111"},
		{Primary: "#101010", Background: "#0a0a0a", Text: "#090909", BotBg: "#fafafa"},
	}
	for _, p := range cases {
		once := EnsureAccessible(p)
		assert.Equal(t, once, EnsureAccessible(once))
	}
}

func TestDefaultPaletteIsAccessibilityStable(t *testing.T) {
	assert.Equal(t, DefaultPalette(), EnsureAccessible(DefaultPalette()))
}
