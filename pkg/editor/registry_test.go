package editor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-editorbind/pkg/editor"
	"github.com/goliatone/go-editorbind/pkg/editor/editortest"
)

type namedWidget struct {
	editortest.Widget
	name string
}

func (w *namedWidget) Name() string { return w.name }

func TestRegistry(t *testing.T) {
	reg := editor.NewRegistry()
	reg.MustRegister(&namedWidget{name: "codemirror"})
	reg.MustRegister(&editortest.Widget{})

	if err := reg.Register(&namedWidget{name: "codemirror"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(&namedWidget{name: ""}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil widget to fail")
	}

	if diff := cmp.Diff([]string{"codemirror", editortest.Name}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("codemirror") || reg.Has("ace") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("ace"); err == nil {
		t.Fatalf("expected missing widget error")
	}
	widget, err := reg.Get(editortest.Name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if widget.Name() != editortest.Name {
		t.Fatalf("unexpected widget %q", widget.Name())
	}
}
