package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads with a human-readable rendering.
type Texter interface {
	Text() string
}

// Markdowner is implemented by payloads with a markdown rendering.
type Markdowner interface {
	Markdown() string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
// - markdown
//
// Payloads without a text/markdown rendering fall back to pretty JSON.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		if t, ok := v.(Texter); ok {
			return writeLines(w, t.Text())
		}
		return WriteJSON(w, v, true)
	case "markdown", "md":
		if m, ok := v.(Markdowner); ok {
			return writeLines(w, m.Markdown())
		}
		return WriteJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeLines(w io.Writer, s string) error {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
