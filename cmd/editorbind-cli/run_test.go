package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/prompt"
	"github.com/goliatone/go-editorbind/pkg/widgets/codemirror"
)

const samplePage = `<!DOCTYPE html><html><head></head><body><form>` +
	`<textarea id="id_template" name="template">&lt;p&gt;Hi&lt;/p&gt;</textarea>` +
	`<textarea id="id_notes" name="notes"></textarea>` +
	`<textarea id="id_metadata" name="metadata"></textarea>` +
	`</form></body></html>`

type fakeDriver struct {
	picked    []int
	err       error
	overwrite bool
}

func (f fakeDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return f.picked, f.err
}

func (f fakeDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return f.overwrite, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, env environment, stdin string, driver prompt.Driver) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, env, streams{
		in:  strings.NewReader(stdin),
		out: &stdout,
		err: &stderr,
	}, driver)
	return stdout.String(), stderr.String(), err
}

func parseOutput(t *testing.T, out string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

func TestRun_StdinToStdout(t *testing.T) {
	out, _, err := runCLI(t, nil, environment{}, samplePage, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	doc := parseOutput(t, out)
	tmpl, _ := doc.ElementByID("id_template")
	if got, _ := tmpl.Attr(codemirror.AttrEditor); got != codemirror.Name {
		t.Fatalf("id_template not bound")
	}
	notes, _ := doc.ElementByID("id_notes")
	if _, ok := notes.Attr(codemirror.AttrEditor); ok {
		t.Fatalf("unknown field must stay a plain textarea")
	}
}

func TestRun_FieldOverridesFromEnv(t *testing.T) {
	fields := writeFile(t, "fields.yaml", `
fields:
  - id: id_notes
    mode: jinja2
    default: "{# notes #}"
`)
	input := writeFile(t, "page.html", samplePage)
	output := filepath.Join(t.TempDir(), "out.html")

	_, _, err := runCLI(t, []string{"-input", input, "-output", output}, environment{fields: fields}, "", nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	notes, _ := parseOutput(t, string(data)).ElementByID("id_notes")
	if notes.Text() != "{# notes #}" {
		t.Fatalf("override default not applied, got %q", notes.Text())
	}
	if got, _ := notes.Attr(codemirror.AttrMode); got != "jinja2" {
		t.Fatalf("override mode not applied, got %q", got)
	}
}

func TestRun_ThemeManifest(t *testing.T) {
	manifest := writeFile(t, "theme.yaml", `
name: admin
tokens:
  editor.theme: eclipse
assets:
  prefix: /static/editor
  files:
    codemirror.script: codemirror.js
variants:
  dark:
    tokens:
      editor.theme: monokai
`)
	out, _, err := runCLI(t, []string{"-theme-manifest", manifest, "-theme-variant", "dark"}, environment{}, samplePage, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, `data-editor-theme="monokai"`) {
		t.Fatalf("variant theme missing")
	}
	if !strings.Contains(out, `src="/static/editor/codemirror.js"`) {
		t.Fatalf("manifest script asset missing")
	}
}

func TestRun_Pick(t *testing.T) {
	out, _, err := runCLI(t, []string{"-pick"}, environment{}, samplePage, fakeDriver{picked: []int{1}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	doc := parseOutput(t, out)
	tmpl, _ := doc.ElementByID("id_template")
	if _, ok := tmpl.Attr(codemirror.AttrEditor); ok {
		t.Fatalf("deselected id_template must not be bound")
	}
	meta, _ := doc.ElementByID("id_metadata")
	if _, ok := meta.Attr(codemirror.AttrEditor); !ok {
		t.Fatalf("picked id_metadata must be bound")
	}

	unchanged, _, err := runCLI(t, []string{"-pick"}, environment{}, samplePage, fakeDriver{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if unchanged != samplePage {
		t.Fatalf("empty pick should echo the page unchanged")
	}

	_, _, err = runCLI(t, []string{"-pick"}, environment{}, samplePage, fakeDriver{err: prompt.ErrAborted})
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  environment
	}{
		{name: "bad level", env: environment{logLevel: "chatty"}},
		{name: "missing input", args: []string{"-input", filepath.Join(t.TempDir(), "nope.html")}},
		{name: "missing fields file", args: []string{"-fields", filepath.Join(t.TempDir(), "nope.yaml")}},
		{name: "unknown widget", args: []string{"-widget", "ace"}},
		{name: "stray argument", args: []string{"page.html"}},
		{name: "manifest without name", args: []string{"-theme-manifest", writeFile(t, "theme.yaml", "tokens: {}\n")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tc.args, tc.env, samplePage, nil); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRun_PickConfirmsOverwrite(t *testing.T) {
	output := writeFile(t, "out.html", "keep me")
	args := []string{"-pick", "-output", output}

	_, _, err := runCLI(t, args, environment{}, samplePage, fakeDriver{picked: []int{0}})
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("declined overwrite should abort, got %v", err)
	}
	if data, _ := os.ReadFile(output); string(data) != "keep me" {
		t.Fatalf("output must be left alone, got %q", data)
	}

	if _, _, err := runCLI(t, args, environment{}, samplePage, fakeDriver{picked: []int{0}, overwrite: true}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), codemirror.BootstrapID) {
		t.Fatalf("confirmed overwrite should write the enhanced page")
	}
}
