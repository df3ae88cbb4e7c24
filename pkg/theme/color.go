package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type rgb struct {
	r, g, b int
}

// parseHex accepts only full #rrggbb strings. Anything else (short form,
// missing hash, stray input) is reported as unparseable so callers can
// degrade instead of guessing.
func parseHex(s string) (rgb, bool) {
	if len(s) != 7 || s[0] != '#' {
		return rgb{}, false
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return rgb{}, false
	}
	r, g, b := c.RGB255()
	return rgb{int(r), int(g), int(b)}, true
}

func formatHex(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.r), clamp(c.g), clamp(c.b))
}

// clamp keeps a channel in [0,255]. Channels are clamped, never wrapped.
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// luminance is the BT.601 weighted sum normalized to [0,1].
func luminance(c rgb) float64 {
	return (0.299*float64(c.r) + 0.587*float64(c.g) + 0.114*float64(c.b)) / 255.0
}

// saturation is (max-min)/max over the channels, 0 for pure black.
func saturation(c rgb) float64 {
	max := float64(c.r)
	min := float64(c.r)
	for _, v := range []float64{float64(c.g), float64(c.b)} {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if max == 0 {
		return 0
	}
	return (max - min) / max
}

// brightness is the perceptual weighting used for light/dark bucketing.
func brightness(c rgb) float64 {
	return (float64(c.r)*299 + float64(c.g)*587 + float64(c.b)*114) / 1000
}

func isLight(hex string) bool {
	c, ok := parseHex(hex)
	if !ok {
		return false
	}
	return brightness(c) > 155
}

// rgbDistance is the Euclidean distance in 0-255 RGB space. Unparseable
// inputs are treated as maximally far apart so no replacement fires.
func rgbDistance(a, b string) float64 {
	ca, okA := parseHex(a)
	cb, okB := parseHex(b)
	if !okA || !okB {
		return math.MaxFloat64
	}
	dr := float64(ca.r - cb.r)
	dg := float64(ca.g - cb.g)
	db := float64(ca.b - cb.b)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Darken interpolates a color toward black by percent. Malformed input is
// returned unchanged.
func Darken(hex string, percent float64) string {
	c, ok := parseHex(hex)
	if !ok {
		return hex
	}
	f := 1 - percent/100
	return formatHex(rgb{
		r: int(math.Round(float64(c.r) * f)),
		g: int(math.Round(float64(c.g) * f)),
		b: int(math.Round(float64(c.b) * f)),
	})
}

// Lighten interpolates a color toward white by percent. Malformed input is
// returned unchanged.
func Lighten(hex string, percent float64) string {
	c, ok := parseHex(hex)
	if !ok {
		return hex
	}
	f := percent / 100
	return formatHex(rgb{
		r: int(math.Round(float64(c.r) + (255-float64(c.r))*f)),
		g: int(math.Round(float64(c.g) + (255-float64(c.g))*f)),
		b: int(math.Round(float64(c.b) + (255-float64(c.b))*f)),
	})
}

// AdjustBrightness shifts every channel by a signed offset of
// round(2.55*percent). Unlike Darken/Lighten this does not converge on
// black or white. Malformed input is returned unchanged.
func AdjustBrightness(hex string, percent float64) string {
	c, ok := parseHex(hex)
	if !ok {
		return hex
	}
	offset := int(math.Round(2.55 * percent))
	return formatHex(rgb{r: c.r + offset, g: c.g + offset, b: c.b + offset})
}

// ContrastText returns the text color paired with a background color.
// The light/dark mapping mirrors the widget's historical behavior: light
// backgrounds get white text and dark backgrounds get dark text. Downstream
// visual snapshots depend on that mapping, so it is preserved as-is; the
// accessibility pass is what guarantees readable pairs in the final palette.
func ContrastText(background string) string {
	c, ok := parseHex(background)
	if !ok {
		return darkText
	}
	if brightness(c) > 155 {
		return "#ffffff"
	}
	return darkText
}
