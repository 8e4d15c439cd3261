package store

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"momentum-cli/internal/model"
)

const sessionsHeading = "## Sessions"

//go:embed reflection-template.md
var reflectionTemplate string

// Vault is the markdown notes tree sessions are logged into.
type Vault struct {
	Root string
}

func (v Vault) Ensure() error {
	for _, sub := range []string{"capture", "reflections"} {
		if err := os.MkdirAll(filepath.Join(v.Root, sub), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// DailyNoteRelPath is capture/YYYY/YYYY-MM/YYYY-MM-DD.md for the UTC day of t.
func DailyNoteRelPath(t time.Time) string {
	d := t.UTC()
	return filepath.Join("capture", d.Format("2006"), d.Format("2006-01"), d.Format("2006-01-02")+".md")
}

// SanitizeGoalForFilename lowercases the goal and turns spaces into dashes.
func SanitizeGoalForFilename(goal string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(goal)), " ", "-")
}

func dailyNoteHeader(now time.Time) string {
	return fmt.Sprintf("---\ndate: %s\n---\n\n# Daily Note - %s\n\n%s\n",
		now.UTC().Format(time.RFC3339), now.Format("Monday, January 2, 2006"), sessionsHeading)
}

// AppendSessionBlock appends content under the "## Sessions" heading of the daily note for
// now, creating the note when missing. The block ends with a ^anchor line; a numeric suffix
// keeps anchors unique within the note. It returns the note path.
func (v Vault) AppendSessionBlock(now time.Time, anchor, content string) (string, error) {
	path := filepath.Join(v.Root, DailyNoteRelPath(now))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	doc := string(b)
	if strings.TrimSpace(doc) == "" {
		doc = dailyNoteHeader(now)
	}
	anchor = uniqueAnchor(doc, anchor)
	block := strings.TrimRight(content, "\n") + "\n^" + anchor + "\n"

	doc = insertUnderHeading(doc, sessionsHeading, block)
	if err := atomicWriteFile(filepath.Dir(path), filepath.Base(path)+".*.tmp", path, []byte(doc), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func uniqueAnchor(doc, anchor string) string {
	if !strings.Contains(doc, "^"+anchor+"\n") {
		return anchor
	}
	for n := 2; ; n++ {
		cand := anchor + "-" + strconv.Itoa(n)
		if !strings.Contains(doc, "^"+cand+"\n") {
			return cand
		}
	}
}

// insertUnderHeading places block at the end of the heading's section (before the next
// heading of the same or higher level). A missing heading is appended to the document.
func insertUnderHeading(doc, heading, block string) string {
	lines := strings.Split(doc, "\n")
	start := -1
	for i, ln := range lines {
		if strings.TrimSpace(ln) == heading {
			start = i
			break
		}
	}
	if start < 0 {
		doc = strings.TrimRight(doc, "\n") + "\n\n" + heading + "\n"
		return doc + "\n" + block
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if strings.HasPrefix(t, "# ") || strings.HasPrefix(t, "## ") {
			end = i
			break
		}
	}
	before := strings.TrimRight(strings.Join(lines[:end], "\n"), "\n")
	after := strings.Join(lines[end:], "\n")
	out := before + "\n\n" + block
	if strings.TrimSpace(after) != "" {
		out += "\n" + after
	}
	return out
}

// WriteReflection renders the reflection template for a finished session and writes it to
// reflections/YYYY-MM-DD-HHMM-<goal>.md.
func (v Vault) WriteReflection(now time.Time, sd model.SessionData) (string, error) {
	dir := filepath.Join(v.Root, "reflections")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.md", now.Format("2006-01-02-1504"), SanitizeGoalForFilename(sd.Goal))
	path := filepath.Join(dir, name)

	body := strings.NewReplacer(
		"{{goal}}", sd.Goal,
		"{{duration}}", fmt.Sprintf("%d minutes", ElapsedMinutes(sd, now)),
		"{{date}}", now.Format("Monday, January 2, 2006 at 3:04 PM"),
		"{{time_expected}}", strconv.FormatUint(sd.TimeExpected, 10),
	).Replace(reflectionTemplate)

	if err := atomicWriteFile(dir, name+".*.tmp", path, []byte(body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ElapsedMinutes is the whole minutes between the session start and now (never negative).
func ElapsedMinutes(sd model.SessionData, now time.Time) uint64 {
	start := time.Unix(int64(sd.StartTime), 0)
	if now.Before(start) {
		return 0
	}
	return uint64(now.Sub(start) / time.Minute)
}
