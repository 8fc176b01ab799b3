package dom

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Change email kind</title></head>
<body>
<form method="post">
<textarea id="id_template" name="template">&lt;p&gt;Hi&lt;/p&gt;</textarea>
<textarea id="id_test_context" name="test_context"></textarea>
<div id="id_notes"><b>bold</b> text</div>
<input id="id_template" name="shadow">
</form>
</body>
</html>`

func TestElementByID(t *testing.T) {
	doc, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	el, ok := doc.ElementByID("id_template")
	if !ok {
		t.Fatalf("expected id_template to be found")
	}
	if el.TagName() != "textarea" {
		t.Fatalf("expected first match in document order, got <%s>", el.TagName())
	}
	if el.ID() != "id_template" {
		t.Fatalf("unexpected id %q", el.ID())
	}

	if _, ok := doc.ElementByID("id_metadata"); ok {
		t.Fatalf("expected id_metadata to be absent")
	}
	if _, ok := doc.ElementByID(""); ok {
		t.Fatalf("empty id must never match")
	}
}

func TestElement_InnerHTML(t *testing.T) {
	doc, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		id   string
		want string
	}{
		{id: "id_template", want: "&lt;p&gt;Hi&lt;/p&gt;"},
		{id: "id_test_context", want: ""},
		{id: "id_notes", want: "<b>bold</b> text"},
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			el, ok := doc.ElementByID(tc.id)
			if !ok {
				t.Fatalf("element %s not found", tc.id)
			}
			if got := el.InnerHTML(); got != tc.want {
				t.Fatalf("inner html: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestElement_SetTextIsEscapedOnRender(t *testing.T) {
	doc, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	el, _ := doc.ElementByID("id_test_context")
	el.SetText(`<p>a & b</p>`)
	el.SetAttr("data-editor-mode", "htmlmixed")

	if got := el.Text(); got != `<p>a & b</p>` {
		t.Fatalf("text: got %q", got)
	}
	if mode, ok := el.Attr("data-editor-mode"); !ok || mode != "htmlmixed" {
		t.Fatalf("attr not set: %q (ok=%v)", mode, ok)
	}

	out, err := doc.HTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "&lt;p&gt;a &amp; b&lt;/p&gt;") {
		t.Fatalf("expected escaped textarea content, got:\n%s", out)
	}
	if !strings.HasPrefix(string(out), "<!DOCTYPE html>") {
		t.Fatalf("expected doctype to survive rendering, got:\n%s", out)
	}

	el.RemoveAttr("data-editor-mode")
	if _, ok := el.Attr("data-editor-mode"); ok {
		t.Fatalf("attr should be removed")
	}
}

func TestDocument_Append(t *testing.T) {
	doc, err := ParseString(`<p id="only">fragment</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := doc.AppendHead(`<link rel="stylesheet" href="/a.css">`); err != nil {
		t.Fatalf("append head: %v", err)
	}
	if err := doc.AppendBody(`<script src="/a.js"></script>`); err != nil {
		t.Fatalf("append body: %v", err)
	}
	if err := doc.AppendBody("   "); err != nil {
		t.Fatalf("blank markup should be a no-op: %v", err)
	}

	out, err := doc.HTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<html><head><link rel="stylesheet" href="/a.css"/></head><body><p id="only">fragment</p><script src="/a.js"></script></body></html>`
	if string(out) != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, out)
	}
}

func TestParse_NilReader(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	var doc *Document
	if _, ok := doc.ElementByID("id_template"); ok {
		t.Fatalf("nil document must not resolve elements")
	}
	if _, err := doc.HTML(); err == nil {
		t.Fatalf("expected error rendering nil document")
	}
}
