package tui

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type editorDoneMsg struct {
	path string
	err  error
}

func externalEditorName() string {
	for _, k := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return "vi"
}

// editorCommand builds the process that opens path in the user's editor.
func editorCommand(path string) *exec.Cmd {
	args := splitCommandLine(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}
	return exec.Command(args[0], append(args[1:], path)...)
}

// editReflectionCmd suspends the TUI while the reflection is edited in place.
func editReflectionCmd(path string) tea.Cmd {
	return tea.ExecProcess(editorCommand(path), func(err error) tea.Msg {
		return editorDoneMsg{path: path, err: err}
	})
}
