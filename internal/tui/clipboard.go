package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var errClipboardUnsupported = errors.New("no clipboard utility found (install wl-copy, xclip or xsel)")

type clipboardDoneMsg struct {
	what string
	err  error
}

func systemClipboard(s string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(s)
}

func (m appModel) copyCmd(what, text string) tea.Cmd {
	write := m.copyText
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return func() tea.Msg {
		return clipboardDoneMsg{what: what, err: write(text)}
	}
}
