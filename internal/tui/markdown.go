package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Renderers are cached by style and wrap width. glamour.WithAutoStyle can block on terminal
// queries, so a fixed standard style is always chosen up front.
var mdRenderers, _ = lru.New[string, *glamour.TermRenderer](16)

func renderMarkdown(md, styleName string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	key := styleName + ":" + strconv.Itoa(width)
	r, ok := mdRenderers.Get(key)
	if !ok {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(styleName)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers.Add(key, rr)
		r = rr
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	switch styleName {
	case "light":
		cfg = styles.LightStyleConfig
	case "notty":
		cfg = styles.ASCIIStyleConfig
	default:
		cfg = styles.DarkStyleConfig
	}
	zero := uint(0)
	cfg.Document.Margin = &zero
	return cfg
}

// markdownStyle picks the glamour style: MOMENTUM_TUI_MD_STYLE, then the configured style,
// then the theme, then Lip Gloss's background detection.
func markdownStyle(configured, theme string) string {
	for _, v := range []string{os.Getenv("MOMENTUM_TUI_MD_STYLE"), configured} {
		switch s := strings.ToLower(strings.TrimSpace(v)); s {
		case "light", "dark", "notty":
			return s
		}
	}
	switch themePreference(theme) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if dark, ok := colorFGBGDark(); ok {
		if dark {
			return "dark"
		}
		return "light"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
