package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-editorbind/pkg/dom"
)

// FieldState is the observable editor configuration of one bound textarea.
type FieldState struct {
	ID          string `json:"id"`
	Editor      string `json:"editor"`
	Mode        string `json:"mode"`
	LineNumbers string `json:"lineNumbers"`
	ReadOnly    string `json:"readOnly"`
	Value       string `json:"value"`
}

// MustLoadPage parses an HTML fixture into a document.
func MustLoadPage(t *testing.T, path string) *dom.Document {
	t.Helper()

	doc, err := LoadPage(path)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return doc
}

// LoadPage reads an HTML fixture without requiring testing.T.
func LoadPage(path string) (*dom.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: page path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read page: %w", err)
	}
	return dom.ParseBytes(data)
}

// FieldStates reads the data-editor attributes and text of the given ids.
// Ids missing from doc are skipped.
func FieldStates(doc dom.Finder, ids []string) []FieldState {
	out := make([]FieldState, 0, len(ids))
	for _, id := range ids {
		el, ok := doc.ElementByID(id)
		if !ok {
			continue
		}
		state := FieldState{ID: id, Value: el.Text()}
		state.Editor, _ = el.Attr("data-editor")
		state.Mode, _ = el.Attr("data-editor-mode")
		state.LineNumbers, _ = el.Attr("data-editor-line-numbers")
		state.ReadOnly, _ = el.Attr("data-editor-readonly")
		out = append(out, state)
	}
	return out
}

// MustLoadFieldStates loads a JSON golden file of field states.
func MustLoadFieldStates(t *testing.T, path string) []FieldState {
	t.Helper()

	var out []FieldState
	if err := json.Unmarshal(MustReadGolden(t, path), &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set. Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return WriteMaybeGolden(t, path, append(payload, '\n'))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
