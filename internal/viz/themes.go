package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/springcurve/internal/render"
)

// Theme defines the panel colors of the TUI and, optionally, the colors the
// curve is drawn with.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color

	// Curve colors; a zero Curve keeps the configured style.
	Curve, Tangent, Endpoint, Interior color.RGBA
}

// Available themes
var (
	ThemeConfig = Theme{
		Name:    "config",
		Primary: lipgloss.Color("#00ffaa"),
		Accent:  lipgloss.Color("#ffaa00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff5555"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Primary:  lipgloss.Color("#ff00ff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Warning:  lipgloss.Color("#ff8800"),
		Curve:    color.RGBA{0x00, 0xff, 0xff, 0xff},
		Tangent:  color.RGBA{0xff, 0x00, 0xff, 0xff},
		Endpoint: color.RGBA{0xff, 0xff, 0x00, 0xff},
		Interior: color.RGBA{0xff, 0x88, 0x00, 0xff},
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ffff00"),
		Curve:    color.RGBA{0x00, 0xff, 0x00, 0xff},
		Tangent:  color.RGBA{0x00, 0x88, 0x00, 0xff},
		Endpoint: color.RGBA{0x88, 0xff, 0x88, 0xff},
		Interior: color.RGBA{0xcc, 0xff, 0xcc, 0xff},
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#0077be"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Warning:  lipgloss.Color("#ffcc00"),
		Curve:    color.RGBA{0xe0, 0xf0, 0xff, 0xff},
		Tangent:  color.RGBA{0x00, 0xa8, 0xcc, 0xff},
		Endpoint: color.RGBA{0xff, 0xd7, 0x00, 0xff},
		Interior: color.RGBA{0x00, 0xff, 0x88, 0xff},
	}

	// All available themes
	Themes = []Theme{
		ThemeConfig,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// Apply returns st with the theme's curve colors substituted.
func (t Theme) Apply(st render.Style) render.Style {
	if t.Curve == (color.RGBA{}) {
		return st
	}
	st.Curve = t.Curve
	st.Tangent = t.Tangent
	st.Endpoint = t.Endpoint
	st.Interior = t.Interior
	return st
}

// GetTheme returns a theme by name, falling back to the configured colors.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeConfig
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
