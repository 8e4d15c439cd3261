package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

type sample struct {
	ReflectionPath string    `json:"reflectionPath"`
	StartedAt      time.Time `json:"startedAt"`
	Minutes        uint64    `json:"minutes"`
	Tags           []string  `json:"tags"`
	Done           bool      `json:"done"`
	Note           *string   `json:"note"`
}

func TestWriteJSON_Envelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	env := Wrap(map[string]any{"id": "1"}).WithHint("run `momentum check list`")
	if err := Write(&buf, env, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if got["data"].(map[string]any)["id"] != "1" {
		t.Fatalf("unexpected data: %#v", got)
	}
	if hints := got["_hints"].([]any); len(hints) != 1 {
		t.Fatalf("unexpected hints: %#v", got["_hints"])
	}
	if !strings.Contains(buf.String(), "`momentum") {
		t.Fatalf("expected unescaped output, got %q", buf.String())
	}
}

func TestWriteJSON_NilDataStaysNull(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, Wrap(nil), false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":null}` {
		t.Fatalf("got %s", got)
	}
}

func TestWithHint_DoesNotAlias(t *testing.T) {
	t.Parallel()

	base := Envelope{Hints: make([]string, 0, 4)}
	a := base.WithHint("a")
	b := base.WithHint("b")
	if a.Hints[0] != "a" || b.Hints[0] != "b" {
		t.Fatalf("hints aliased: %v %v", a.Hints, b.Hints)
	}
}

func TestWriteEDN(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 7, 9, 42, 0, 0, time.UTC)
	v := Wrap(sample{
		ReflectionPath: "/vault/r.md",
		StartedAt:      start,
		Minutes:        25,
		Tags:           []string{"a", "b"},
		Done:           true,
	})
	var buf bytes.Buffer
	if err := Write(&buf, v, "EDN", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:data {:done true :minutes 25 :note nil :reflection-path "/vault/r.md" :started-at #inst "2025-03-07T09:42:00Z" :tags ["a" "b"]}}` + "\n"
	if buf.String() != want {
		t.Fatalf("got  %s\nwant %s", buf.String(), want)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": 1, "b": []int{1, 2}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{:a 1\n :b [1\n  2]}\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"id":             ":id",
		"reflectionPath": ":reflection-path",
		"_hints":         ":hints",
		"timeMinutes":    ":time-minutes",
		"fade_in":        ":fade-in",
		"ID":             ":id",
		"item2Done":      ":item2-done",
	}
	for in, want := range cases {
		if got := Keyword(in); got != want {
			t.Fatalf("Keyword(%q)=%q want %q", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("expected error for yaml")
	}
	if f, _ := ParseFormat(""); f != "json" {
		t.Fatalf("default format = %q", f)
	}
}

func TestIsInstant(t *testing.T) {
	t.Parallel()

	if !isInstant("2025-03-07T09:42:00.123+01:00") {
		t.Fatalf("expected instant")
	}
	for _, s := range []string{"2025-03-07", "hello world, this is long", "2025-13-07T09:42:00Z"} {
		if isInstant(s) {
			t.Fatalf("%q should not be an instant", s)
		}
	}
}
