package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a handle to one element of a parsed page. Handles stay valid for
// the lifetime of the Document that produced them.
type Element interface {
	ID() string
	TagName() string
	// InnerHTML returns the element children serialized as markup. Text is
	// escaped the same way a browser reports innerHTML, so a textarea holding
	// `<p>` yields `&lt;p&gt;`.
	InnerHTML() string
	Text() string
	SetText(text string)
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Finder resolves elements by their id attribute.
type Finder interface {
	ElementByID(id string) (Element, bool)
}

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

var _ Finder = (*Document)(nil)

// Parse reads a full HTML page. Fragments are accepted; the parser adds the
// missing html/head/body wrappers.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: reader is nil")
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(page []byte) (*Document, error) {
	return Parse(bytes.NewReader(page))
}

// ParseString is Parse over a string page.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// ElementByID returns the first element in document order whose id equals id.
func (d *Document) ElementByID(id string) (Element, bool) {
	if d == nil || d.doc == nil || id == "" {
		return nil, false
	}
	match := d.doc.Find("[id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		value, _ := sel.Attr("id")
		return value == id
	}).First()
	if match.Length() == 0 {
		return nil, false
	}
	return &element{sel: match}, true
}

// AppendHead appends markup as the last children of <head>.
func (d *Document) AppendHead(markup string) error {
	return d.appendTo("head", markup)
}

// AppendBody appends markup as the last children of <body>.
func (d *Document) AppendBody(markup string) error {
	return d.appendTo("body", markup)
}

func (d *Document) appendTo(selector, markup string) error {
	if d == nil || d.doc == nil {
		return errors.New("dom: document is nil")
	}
	if strings.TrimSpace(markup) == "" {
		return nil
	}
	target := d.doc.Find(selector).First()
	if target.Length() == 0 {
		return fmt.Errorf("dom: page has no <%s> element", selector)
	}
	target.AppendHtml(markup)
	return nil
}

// Render serializes the whole page, doctype included.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.doc == nil {
		return errors.New("dom: document is nil")
	}
	for _, node := range d.doc.Nodes {
		if err := html.Render(w, node); err != nil {
			return fmt.Errorf("dom: render page: %w", err)
		}
	}
	return nil
}

// HTML returns the serialized page.
func (d *Document) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type element struct {
	sel *goquery.Selection
}

func (e *element) ID() string {
	value, _ := e.sel.Attr("id")
	return value
}

func (e *element) TagName() string {
	return goquery.NodeName(e.sel)
}

func (e *element) InnerHTML() string {
	markup, err := e.sel.Html()
	if err != nil {
		return ""
	}
	return markup
}

func (e *element) Text() string {
	return e.sel.Text()
}

func (e *element) SetText(text string) {
	e.sel.SetText(text)
}

func (e *element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

func (e *element) RemoveAttr(name string) {
	e.sel.RemoveAttr(name)
}
