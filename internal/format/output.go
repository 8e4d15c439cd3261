// Package format renders CLI results as JSON or EDN.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Envelope is the shape of every successful command result. Data is null when
// there is nothing to report (for example no active session).
type Envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Hints []string       `json:"_hints,omitempty"`
}

// Wrap puts v in an Envelope.
func Wrap(v any) Envelope {
	return Envelope{Data: v}
}

// WithHint returns a copy of e with hint appended.
func (e Envelope) WithHint(hint string) Envelope {
	e.Hints = append(append([]string(nil), e.Hints...), hint)
	return e
}

// ParseFormat normalizes a --format value.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", "json":
		return "json", nil
	case "edn":
		return "edn", nil
	default:
		return "", fmt.Errorf("unknown format: %s (want json or edn)", s)
	}
}

// Write renders v as json (default) or edn followed by a newline.
func Write(w io.Writer, v any, format string, pretty bool) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if f == "edn" {
		return WriteEDN(w, v, pretty)
	}
	return WriteJSON(w, v, pretty)
}

// WriteJSON writes v as a single JSON document. Output stays strict JSON so
// scripts can pipe it to jq; extra guidance goes in meta or _hints.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
