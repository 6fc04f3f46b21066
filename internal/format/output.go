package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the shape of every CLI result: data, optional meta, optional hints.
type Envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Hints []string       `json:"_hints,omitempty"`

	// Text renders the human-readable form used by --format text.
	Text func(w io.Writer) error `json:"-"`
}

// Texter is implemented by values with a human-readable form.
type Texter interface {
	WriteText(w io.Writer) error
}

func (e Envelope) WriteText(w io.Writer) error {
	if e.Text != nil {
		return e.Text(w)
	}
	return WriteJSON(w, e.Data, true)
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		if t, ok := v.(Texter); ok {
			return t.WriteText(w)
		}
		return WriteJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// Output stays strict JSON. Anything about how to fetch more goes in `meta` or `_hints`.
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
