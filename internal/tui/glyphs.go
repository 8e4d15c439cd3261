package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render box-drawing and ballot glyphs badly; MOMENTUM_TUI_GLYPHS=ascii
// swaps them for plain characters.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MOMENTUM_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func glyphCheckbox(on bool) string {
	switch {
	case glyphs() == glyphSetASCII && on:
		return "[x]"
	case glyphs() == glyphSetASCII:
		return "[ ]"
	case on:
		return "☑"
	}
	return "☐"
}

// glyphEmptySlot marks a slot with nothing left to show.
func glyphEmptySlot() string {
	if glyphs() == glyphSetASCII {
		return "."
	}
	return "·"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}
