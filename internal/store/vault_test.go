package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"momentum-cli/internal/model"
)

func TestDailyNoteRelPath(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 7, 23, 30, 0, 0, time.UTC)
	want := filepath.Join("capture", "2025", "2025-03", "2025-03-07.md")
	if got := DailyNoteRelPath(ts); got != want {
		t.Fatalf("DailyNoteRelPath=%q want %q", got, want)
	}
}

func TestSanitizeGoalForFilename(t *testing.T) {
	t.Parallel()

	if got := SanitizeGoalForFilename("  Write The Report "); got != "write-the-report" {
		t.Fatalf("got %q", got)
	}
}

func TestVault_AppendSessionBlock(t *testing.T) {
	t.Parallel()

	v := Vault{Root: t.TempDir()}
	now := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)

	path, err := v.AppendSessionBlock(now, "session-start-0905", "**Goal:** one")
	if err != nil {
		t.Fatalf("AppendSessionBlock: %v", err)
	}
	if want := filepath.Join(v.Root, DailyNoteRelPath(now)); path != want {
		t.Fatalf("path=%q want %q", path, want)
	}
	if _, err := v.AppendSessionBlock(now, "session-start-0905", "**Goal:** two"); err != nil {
		t.Fatalf("AppendSessionBlock (2): %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	doc := string(b)
	if !strings.Contains(doc, "# Daily Note - Friday, March 7, 2025") {
		t.Fatalf("missing header:\n%s", doc)
	}
	if strings.Count(doc, sessionsHeading) != 1 {
		t.Fatalf("expected a single sessions heading:\n%s", doc)
	}
	if !strings.Contains(doc, "^session-start-0905\n") || !strings.Contains(doc, "^session-start-0905-2\n") {
		t.Fatalf("expected unique anchors:\n%s", doc)
	}
	if strings.Index(doc, "**Goal:** one") > strings.Index(doc, "**Goal:** two") {
		t.Fatalf("blocks out of order:\n%s", doc)
	}
}

func TestInsertUnderHeading_KeepsFollowingSections(t *testing.T) {
	t.Parallel()

	doc := "# Day\n\n## Sessions\n\nold\n^a\n\n## Notes\n\nkeep me\n"
	out := insertUnderHeading(doc, sessionsHeading, "new\n^b\n")

	iNew := strings.Index(out, "new\n^b")
	iNotes := strings.Index(out, "## Notes")
	if iNew < 0 || iNotes < 0 || iNew > iNotes {
		t.Fatalf("block not inserted before next heading:\n%s", out)
	}
	if !strings.Contains(out, "keep me") {
		t.Fatalf("lost following section:\n%s", out)
	}
}

func TestInsertUnderHeading_AddsMissingHeading(t *testing.T) {
	t.Parallel()

	out := insertUnderHeading("# Day\n\nsome text\n", sessionsHeading, "x\n^a\n")
	if !strings.HasSuffix(out, sessionsHeading+"\n\nx\n^a\n") {
		t.Fatalf("unexpected doc:\n%s", out)
	}
}

func TestVault_WriteReflection(t *testing.T) {
	t.Parallel()

	v := Vault{Root: t.TempDir()}
	start := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	now := start.Add(42*time.Minute + 10*time.Second)
	sd := model.SessionData{Goal: "Deep Work", StartTime: uint64(start.Unix()), TimeExpected: 45}

	path, err := v.WriteReflection(now, sd)
	if err != nil {
		t.Fatalf("WriteReflection: %v", err)
	}
	if filepath.Base(path) != "2025-03-07-0942-deep-work.md" {
		t.Fatalf("unexpected file name %q", filepath.Base(path))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body := string(b)
	for _, want := range []string{"# Reflection: Deep Work", "45 minutes", "42 minutes"} {
		if !strings.Contains(body, want) {
			t.Fatalf("reflection missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "{{") {
		t.Fatalf("unrendered placeholder:\n%s", body)
	}
}

func TestElapsedMinutes_NeverNegative(t *testing.T) {
	t.Parallel()

	start := time.Unix(1_700_000_000, 0)
	sd := model.SessionData{StartTime: uint64(start.Unix())}
	if got := ElapsedMinutes(sd, start.Add(-time.Hour)); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := ElapsedMinutes(sd, start.Add(90*time.Second)); got != 1 {
		t.Fatalf("got %d", got)
	}
}
