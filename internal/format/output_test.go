package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestWrite_JSONEnvelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	env := Envelope{
		Data:  map[string]any{"id": 1},
		Hints: []string{"editdesk tasks list"},
		Text:  func(w io.Writer) error { _, err := io.WriteString(w, "ignored"); return err },
	}
	if err := Write(&buf, env, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("not json: %v\n%s", err, buf.String())
	}
	if _, ok := got["data"]; !ok {
		t.Fatalf("missing data: %v", got)
	}
	if _, ok := got["meta"]; ok {
		t.Fatalf("empty meta should be omitted: %v", got)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected keys: %v", got)
	}
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	env := Envelope{Data: 1, Text: func(w io.Writer) error { _, err := fmt.Fprintln(w, "one task"); return err }}
	if err := Write(&buf, env, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "one task\n" {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, map[string]int{"n": 1}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\"n\": 1") {
		t.Fatalf("non-texter should fall back to indented JSON, got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(io.Discard, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
}
