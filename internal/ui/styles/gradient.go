package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyGradient renders text with a horizontal color gradient.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, lipgloss.NewStyle(), from, to)
}

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, lipgloss.NewStyle().Bold(true), from, to)
}

func applyGradient(text string, base lipgloss.Style, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return base.Foreground(from).Render(text)
	}

	c1 := toColorful(from)
	c2 := toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		blended := c1.BlendHcl(c2, float64(i)/last).Clamped()
		b.WriteString(base.Foreground(lipgloss.Color(blended.Hex())).Render(cluster))
	}
	return b.String()
}

// graphemes splits text into user-perceived characters so that combined
// emoji and accents keep a single color.
func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// toColorful converts a "#rrggbb" lipgloss color. ANSI palette colors
// fall back to neutral gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if hex := string(c); len(hex) == 7 && hex[0] == '#' {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
	}
	col, _ := colorful.MakeColor(color.Gray{Y: 128})
	return col
}
