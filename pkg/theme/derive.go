package theme

import "strings"

// usablePrimary reports whether an extracted primary color is worth theming
// with. Generic framework colors, near-white/near-black values, and
// near-grayscale values are all rejected in favor of the default palette.
func usablePrimary(hex string) bool {
	h := strings.ToLower(strings.TrimSpace(hex))
	if genericColors[h] {
		return false
	}
	c, ok := parseHex(h)
	if !ok {
		return false
	}
	lum := luminance(c)
	if lum > 0.9 || lum < 0.1 {
		return false
	}
	return saturation(c) > 0.15
}

// DerivePalette computes the full widget palette from an extracted theme.
// A nil theme, or one whose primary color fails validation, yields the
// default palette; this is the deterministic fallback, never an error.
func DerivePalette(extracted *ExtractedTheme) Palette {
	var colors map[string]string
	if extracted != nil {
		colors = extracted.Colors
	}
	primary := colors["primary"]
	if !usablePrimary(primary) {
		return DefaultPalette()
	}

	pick := func(role, fallback string) string {
		if v := colors[role]; v != "" {
			return v
		}
		return fallback
	}

	rawSecondary := colors["secondary"]
	hasDistinctSecondary := rawSecondary != "" && !strings.EqualFold(rawSecondary, primary)

	secondary := AdjustBrightness(primary, -15)
	botBg := Lighten(primary, 75)
	if hasDistinctSecondary {
		secondary = rawSecondary
		botBg = Lighten(rawSecondary, 60)
	}

	background := pick("background", "#ffffff")

	p := Palette{
		Primary:      primary,
		PrimaryDark:  Darken(primary, 20),
		PrimaryLight: Lighten(primary, 20),
		Secondary:    secondary,
		Background:   background,
		Text:         pick("text", ContrastText(background)),
		Border:       pick("border", AdjustBrightness(background, -8)),
		Button:       pick("button", primary),
		Link:         pick("link", primary),
		Accent:       pick("accent", primary),
		UserBg:       primary,
		BotBg:        botBg,
		HeaderBg:     primary,
		HeaderText:   ContrastText(primary),
	}

	return EnsureAccessible(p)
}

// EnsureAccessible repairs unreadable pairings after derivation. Text must
// not share a lightness bucket with either surface it renders on, and the
// primary must stand apart from the background. Idempotent: the repaired
// values depend only on bucket membership, which the repair never changes.
func EnsureAccessible(p Palette) Palette {
	if isLight(p.Background) == isLight(p.Text) {
		if isLight(p.Background) {
			p.Text = darkText
		} else {
			p.Text = lightText
		}
	}
	if isLight(p.BotBg) == isLight(p.Text) {
		if isLight(p.BotBg) {
			p.Text = darkText
		} else {
			p.Text = lightText
		}
	}
	if rgbDistance(p.Primary, p.Background) < 100 {
		if isLight(p.Background) {
			p.Primary = fallbackBlueOnLight
		} else {
			p.Primary = fallbackBlueOnDark
		}
	}
	return p
}
