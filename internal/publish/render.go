package publish

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// Styles accepted by RenderTerminal.
var Styles = []string{styles.NoTTYStyle, styles.DarkStyle, styles.LightStyle, styles.AsciiStyle}

// RenderTerminal renders md for a terminal using a fixed glamour style.
func RenderTerminal(md string, style string, width int) (string, error) {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = styles.NoTTYStyle
	}
	known := false
	for _, s := range Styles {
		if s == style {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("unknown style %q (want %s)", style, strings.Join(Styles, "|"))
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle can block on terminal background queries.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
