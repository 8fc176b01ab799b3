// Package codemirror binds CodeMirror 5 editors to page textareas on the
// server. FromTextArea records the editor configuration as data attributes and
// writes the initial value into the textarea; Finish adds the stylesheets,
// scripts and bootstrap snippet that call CodeMirror.fromTextArea in the
// browser. Because CodeMirror saves back into the same textarea on submit, the
// form keeps posting the field under its original name.
package codemirror

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/editor"
	rendertemplate "github.com/goliatone/go-editorbind/pkg/render/template"
	"github.com/goliatone/go-editorbind/pkg/render/template/gotemplate"
)

// Name is the registry name of the widget.
const Name = "codemirror"

// DefaultBaseURL is where assets are loaded from when the page does not
// resolve them.
const DefaultBaseURL = "https://cdnjs.cloudflare.com/ajax/libs/codemirror/5.65.16/"

// BootstrapID is the id of the injected bootstrap script.
const BootstrapID = "editorbind-codemirror-bootstrap"

// Data attributes written on bound textareas.
const (
	AttrEditor      = "data-editor"
	AttrMode        = "data-editor-mode"
	AttrLineNumbers = "data-editor-line-numbers"
	AttrReadOnly    = "data-editor-readonly"
	AttrTheme       = "data-editor-theme"
)

// Asset keys resolved through editor.PageOptions.AssetURL.
const (
	AssetStylesheet  = "codemirror.stylesheet"
	AssetScript      = "codemirror.script"
	assetModePrefix  = "codemirror.mode."
	assetThemePrefix = "codemirror.theme."
)

// ErrNotTextArea is returned when asked to bind anything but a <textarea>.
var ErrNotTextArea = errors.New("codemirror: element is not a textarea")

//go:embed templates/*.tmpl
var templatesFS embed.FS

// modeScripts lists the mode files each mode needs, dependencies first.
var modeScripts = map[editor.Mode][]string{
	editor.ModeHTMLMixed: {"xml", "javascript", "css", "htmlmixed"},
	editor.ModeJinja2:    {"jinja2"},
	editor.ModeJSON:      {"javascript"},
}

// TemplatesFS exposes the embedded head and body templates so callers can
// copy them as a starting point for WithTemplateRenderer.
func TemplatesFS() fs.FS {
	return templatesFS
}

// Option configures the widget.
type Option func(*Widget)

// WithBaseURL changes where default asset URLs point.
func WithBaseURL(url string) Option {
	return func(w *Widget) {
		url = strings.TrimSpace(url)
		if url == "" {
			return
		}
		if !strings.HasSuffix(url, "/") {
			url += "/"
		}
		w.baseURL = url
	}
}

// WithTheme sets the editor theme used when the page does not pick one.
func WithTheme(theme string) Option {
	return func(w *Widget) {
		w.theme = strings.TrimSpace(theme)
	}
}

// WithTemplateRenderer replaces the embedded head/body templates. The renderer
// must provide "templates/head" and "templates/body".
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(w *Widget) {
		if renderer != nil {
			w.renderer = renderer
		}
	}
}

// Widget is the CodeMirror implementation of editor.Widget.
type Widget struct {
	baseURL  string
	theme    string
	renderer rendertemplate.TemplateRenderer
}

var _ editor.Widget = (*Widget)(nil)

// New constructs the widget with the embedded templates unless a renderer is
// supplied.
func New(options ...Option) (*Widget, error) {
	w := &Widget{baseURL: DefaultBaseURL}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(templatesFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("codemirror: configure templates: %w", err)
		}
		w.renderer = engine
	}
	return w, nil
}

// Name returns Name.
func (w *Widget) Name() string {
	return Name
}

// Factory returns a factory bound to the page theme.
func (w *Widget) Factory(opts editor.PageOptions) editor.Factory {
	return &factory{theme: w.pageTheme(opts)}
}

// Finish injects stylesheets into <head> and scripts plus the bootstrap
// before </body>. Nothing is injected when no editor was bound or when the
// page already carries the bootstrap.
func (w *Widget) Finish(doc *dom.Document, opts editor.PageOptions, bound []editor.Config) error {
	if doc == nil || len(bound) == 0 {
		return nil
	}
	if _, ok := doc.ElementByID(BootstrapID); ok {
		return nil
	}

	assets := w.Assets(opts, bound)
	data := map[string]any{
		"widget":       Name,
		"bootstrap_id": BootstrapID,
		"stylesheets":  assets.Stylesheets,
		"scripts":      assets.Scripts,
	}

	head, err := w.renderer.RenderTemplate("templates/head", data)
	if err != nil {
		return fmt.Errorf("codemirror: render head assets: %w", err)
	}
	if err := doc.AppendHead(head); err != nil {
		return fmt.Errorf("codemirror: inject head assets: %w", err)
	}

	body, err := w.renderer.RenderTemplate("templates/body", data)
	if err != nil {
		return fmt.Errorf("codemirror: render bootstrap: %w", err)
	}
	if err := doc.AppendBody(body); err != nil {
		return fmt.Errorf("codemirror: inject bootstrap: %w", err)
	}
	return nil
}

// Assets lists the URLs a page needs for the bound editors.
type Assets struct {
	Stylesheets []string
	Scripts     []string
}

// Assets resolves the stylesheet and script URLs for bound, in load order and
// without duplicates.
func (w *Widget) Assets(opts editor.PageOptions, bound []editor.Config) Assets {
	out := Assets{
		Stylesheets: []string{opts.ResolveAsset(AssetStylesheet, w.baseURL+"codemirror.min.css")},
		Scripts:     []string{opts.ResolveAsset(AssetScript, w.baseURL+"codemirror.min.js")},
	}
	if theme := w.pageTheme(opts); theme != "" && theme != "default" {
		out.Stylesheets = append(out.Stylesheets,
			opts.ResolveAsset(assetThemePrefix+theme, w.baseURL+"theme/"+theme+".min.css"))
	}

	seen := make(map[string]struct{})
	for _, cfg := range bound {
		for _, mode := range modeScripts[cfg.Mode] {
			if _, ok := seen[mode]; ok {
				continue
			}
			seen[mode] = struct{}{}
			out.Scripts = append(out.Scripts,
				opts.ResolveAsset(assetModePrefix+mode, w.baseURL+"mode/"+mode+"/"+mode+".min.js"))
		}
	}
	return out
}

func (w *Widget) pageTheme(opts editor.PageOptions) string {
	if theme := strings.TrimSpace(opts.Theme); theme != "" {
		return theme
	}
	return w.theme
}

type factory struct {
	theme string
}

func (f *factory) FromTextArea(el dom.Element, cfg editor.Config) (editor.Editor, error) {
	if el == nil {
		return nil, editor.ErrNoElement
	}
	if tag := el.TagName(); tag != "textarea" {
		return nil, fmt.Errorf("%w: <%s id=%q>", ErrNotTextArea, tag, el.ID())
	}

	el.SetAttr(AttrEditor, Name)
	el.SetAttr(AttrMode, string(cfg.Mode))
	el.SetAttr(AttrLineNumbers, strconv.FormatBool(cfg.LineNumbers))
	el.SetAttr(AttrReadOnly, strconv.FormatBool(cfg.ReadOnly))
	if f.theme != "" {
		el.SetAttr(AttrTheme, f.theme)
	}
	if cfg.ReadOnly {
		el.SetAttr("readonly", "")
	}
	return &textAreaEditor{el: el}, nil
}

// textAreaEditor keeps the textarea text equal to the editor value, which is
// what fromTextArea reads on load and writes back on submit.
type textAreaEditor struct {
	el    dom.Element
	value string
}

func (e *textAreaEditor) SetValue(value string) error {
	e.value = value
	e.el.SetText(value)
	return nil
}

func (e *textAreaEditor) Value() string {
	return e.value
}
