package format

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so struct
// tags decide field names; map keys become kebab-case keywords and RFC 3339
// timestamps become #inst literals.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var buf bytes.Buffer
	p := ednPrinter{buf: &buf, pretty: pretty}
	p.value(x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednPrinter struct {
	buf    *bytes.Buffer
	pretty bool
}

func (p ednPrinter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		p.buf.WriteString("nil")
	case bool:
		p.buf.WriteString(strconv.FormatBool(t))
	case json.Number:
		p.buf.WriteString(t.String())
	case string:
		if isInstant(t) {
			p.buf.WriteString("#inst ")
		}
		p.buf.WriteString(strconv.Quote(t))
	case []any:
		p.collection('[', ']', len(t), depth, func(i int) {
			p.value(t[i], depth+1)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.collection('{', '}', len(keys), depth, func(i int) {
			p.buf.WriteString(Keyword(keys[i]))
			p.buf.WriteByte(' ')
			p.value(t[keys[i]], depth+1)
		})
	default:
		p.buf.WriteString("nil")
	}
}

func (p ednPrinter) collection(open, close byte, n, depth int, each func(int)) {
	p.buf.WriteByte(open)
	for i := 0; i < n; i++ {
		if i > 0 {
			if p.pretty {
				p.buf.WriteByte('\n')
				p.buf.WriteString(strings.Repeat(" ", depth+1))
			} else {
				p.buf.WriteByte(' ')
			}
		}
		each(i)
	}
	p.buf.WriteByte(close)
}

// Keyword turns a JSON field name into an EDN keyword:
// "reflectionPath" -> :reflection-path, "_hints" -> :hints.
func Keyword(s string) string {
	s = strings.TrimLeft(strings.TrimSpace(s), "_")
	var b strings.Builder
	b.WriteByte(':')
	prevLower := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}

func isInstant(s string) bool {
	if len(s) < len("2006-01-02T15:04:05Z") || s[4] != '-' || s[10] != 'T' {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}
