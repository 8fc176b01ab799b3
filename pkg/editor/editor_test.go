package editor_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/editor"
	"github.com/goliatone/go-editorbind/pkg/editor/editortest"
)

func mustElement(t *testing.T, page, id string) dom.Element {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	el, ok := doc.ElementByID(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return el
}

func TestStart_DecodesExistingContent(t *testing.T) {
	el := mustElement(t, `<textarea id="id_template">&lt;p&gt;Hi&lt;/p&gt;</textarea>`, "id_template")
	factory := &editortest.Factory{}

	ed, err := editor.Start(factory, el, editor.ModeHTMLMixed, "{# default #}", false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := ed.Value(); got != "<p>Hi</p>" {
		t.Fatalf("value: want %q, got %q", "<p>Hi</p>", got)
	}

	rec, ok := factory.ByID("id_template")
	if !ok {
		t.Fatalf("expected recorded editor")
	}
	want := editor.Config{Mode: editor.ModeHTMLMixed, LineNumbers: true, ReadOnly: false}
	if rec.Config != want {
		t.Fatalf("config: want %+v, got %+v", want, rec.Config)
	}
	if rec.SetCalls != 1 {
		t.Fatalf("expected a single SetValue call, got %d", rec.SetCalls)
	}
}

func TestStart_EmptyElementUsesDefault(t *testing.T) {
	cases := []struct {
		name     string
		fallback string
		want     string
	}{
		{name: "with default", fallback: "{}", want: "{}"},
		{name: "absent default", fallback: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := mustElement(t, `<textarea id="id_test_context"></textarea>`, "id_test_context")
			ed, err := editor.Start(&editortest.Factory{}, el, editor.ModeJSON, tc.fallback, true)
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			if got := ed.Value(); got != tc.want {
				t.Fatalf("value: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStart_ReadOnlyFlagReachesWidget(t *testing.T) {
	el := mustElement(t, `<textarea id="id_metadata">{}</textarea>`, "id_metadata")
	factory := &editortest.Factory{}
	if _, err := editor.Start(factory, el, editor.ModeJSON, "", true); err != nil {
		t.Fatalf("start: %v", err)
	}
	rec, _ := factory.ByID("id_metadata")
	if !rec.Config.ReadOnly || !rec.Config.LineNumbers {
		t.Fatalf("expected read-only editor with line numbers, got %+v", rec.Config)
	}
}

func TestStart_Errors(t *testing.T) {
	el := mustElement(t, `<textarea id="id_context"></textarea>`, "id_context")

	if _, err := editor.Start(nil, el, editor.ModeJSON, "", false); !errors.Is(err, editor.ErrNoFactory) {
		t.Fatalf("expected ErrNoFactory, got %v", err)
	}
	if _, err := editor.Start(&editortest.Factory{}, nil, editor.ModeJSON, "", false); !errors.Is(err, editor.ErrNoElement) {
		t.Fatalf("expected ErrNoElement, got %v", err)
	}

	boom := errors.New("unsupported mode")
	_, err := editor.Start(&editortest.Factory{Err: boom}, el, "cobol", "", false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected widget error to be wrapped, got %v", err)
	}

	nilEditor := editor.FactoryFunc(func(dom.Element, editor.Config) (editor.Editor, error) {
		return nil, nil
	})
	if _, err := editor.Start(nilEditor, el, editor.ModeJSON, "", false); err == nil {
		t.Fatalf("expected error when widget returns no editor")
	}
}

func TestInitialContent(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		fallback string
		want     string
	}{
		{name: "empty uses default", page: `<textarea id="f"></textarea>`, fallback: "{}", want: "{}"},
		{name: "escaped json", page: `<textarea id="f">{"a": 1}</textarea>`, fallback: "{}", want: `{"a": 1}`},
		{name: "escaped entities", page: `<textarea id="f">a &amp;amp; b</textarea>`, fallback: "", want: "a &amp; b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := mustElement(t, tc.page, "f")
			if got := editor.InitialContent(el, tc.fallback); got != tc.want {
				t.Fatalf("initial content: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPageOptions_ResolveAsset(t *testing.T) {
	var empty editor.PageOptions
	if got := empty.ResolveAsset("codemirror.script", "/cm.js"); got != "/cm.js" {
		t.Fatalf("nil resolver should fall back, got %q", got)
	}
	opts := editor.PageOptions{AssetURL: func(key string) string {
		if key == "codemirror.script" {
			return "/themes/acme/cm.js"
		}
		return ""
	}}
	if got := opts.ResolveAsset("codemirror.script", "/cm.js"); got != "/themes/acme/cm.js" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := opts.ResolveAsset("codemirror.style", "/cm.css"); got != "/cm.css" {
		t.Fatalf("expected fallback for unknown key, got %q", got)
	}
}
