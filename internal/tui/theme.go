package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on light and dark terminals, so colors are adaptive and faint
// styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted     = ac("240", "243")
	colorSurfaceFg = ac("235", "252")
	colorAccent    = ac("27", "62")
	colorAccentFg  = ac("255", "235")
	colorSuccess   = ac("28", "42")
	colorErrorBg   = ac("196", "160")
	colorErrorFg   = ac("255", "255")
	colorBorder    = ac("250", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorErrorBg).Foreground(colorErrorFg).Padding(0, 1)
}

func styleButton(enabled bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 2)
	if enabled {
		return st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
	}
	return st.Foreground(colorMuted)
}

func styleBox() lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
}

// applyColorProfilePreference picks the Lip Gloss color profile. termenv's env profile also
// honors CLICOLOR, which can switch colors off in a TUI, so only NO_COLOR is respected.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// themePreference resolves light|dark|auto. MOMENTUM_TUI_THEME beats the config value.
func themePreference(configured string) string {
	for _, v := range []string{os.Getenv("MOMENTUM_TUI_THEME"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "light":
			return "light"
		case "dark":
			return "dark"
		}
	}
	return "auto"
}

// colorFGBGDark reads the COLORFGBG "fg;bg" hint. ok is false when it is absent or unparsable.
func colorFGBGDark() (dark bool, ok bool) {
	v := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false, false
	}
	// xterm palette: 0-6 are dark, 7-15 light.
	return bg < 7, true
}

func applyThemePreference(configured string) {
	switch themePreference(configured) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if dark, ok := colorFGBGDark(); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}
