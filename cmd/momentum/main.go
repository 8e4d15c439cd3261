package main

import (
	"os"
	"strconv"
	"strings"

	"momentum-cli/internal/cli"
)

func isChecklistItemID(s string) bool {
	s = strings.TrimSpace(s)
	n, ok := strings.CutPrefix(s, "item-")
	if !ok || n == "" {
		return false
	}
	_, err := strconv.Atoi(n)
	return err == nil
}

// rewriteItemShortcutArgs turns `momentum item-3` into `momentum check show item-3`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first, so look for the first positional token.
func rewriteItemShortcutArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config-dir": true,
		"--format":     true,
		"--source":     true,
	}

	rewriteAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "check", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isChecklistItemID(argv[i+1]) {
				return rewriteAt(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isChecklistItemID(a):
			return rewriteAt(i)
		default:
			return argv
		}
	}
	return argv
}

func main() {
	os.Args = rewriteItemShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
