package editor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/htmldecode"
)

// Mode selects syntax-aware behaviour in the widget. Values are passed to the
// widget untouched.
type Mode string

// Modes used by the built-in field table.
const (
	// ModeHTMLMixed highlights HTML with embedded CSS and JavaScript.
	ModeHTMLMixed Mode = "htmlmixed"
	// ModeJinja2 highlights jinja2 template syntax.
	ModeJinja2 Mode = "jinja2"
	// ModeJSON highlights JSON documents.
	ModeJSON Mode = "application/json"
)

// Config is handed to a widget when an editor is created.
type Config struct {
	Mode        Mode
	LineNumbers bool
	ReadOnly    bool
}

// Editor is a bound widget instance.
type Editor interface {
	SetValue(value string) error
	Value() string
}

// Factory binds a new editor to an existing input-capable element. The widget
// owns keeping the submitted form value in sync with the editor.
type Factory interface {
	FromTextArea(el dom.Element, cfg Config) (Editor, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(el dom.Element, cfg Config) (Editor, error)

// FromTextArea calls f.
func (f FactoryFunc) FromTextArea(el dom.Element, cfg Config) (Editor, error) {
	return f(el, cfg)
}

var (
	// ErrNoFactory is returned by Start when no widget factory is supplied.
	ErrNoFactory = errors.New("editor: factory is required")
	// ErrNoElement is returned by Start when the element handle is nil.
	ErrNoElement = errors.New("editor: element is required")
)

// Start creates an editor on el with line numbers on, then seeds it with the
// element's decoded content, or defaultContent when the element is empty.
func Start(factory Factory, el dom.Element, mode Mode, defaultContent string, readOnly bool) (Editor, error) {
	if factory == nil {
		return nil, ErrNoFactory
	}
	if el == nil {
		return nil, ErrNoElement
	}

	ed, err := factory.FromTextArea(el, Config{
		Mode:        mode,
		LineNumbers: true,
		ReadOnly:    readOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("editor: create %q: %w", el.ID(), err)
	}
	if ed == nil {
		return nil, fmt.Errorf("editor: widget returned no editor for %q", el.ID())
	}

	// Content is always applied after construction, never through Config.
	if err := ed.SetValue(InitialContent(el, defaultContent)); err != nil {
		return nil, fmt.Errorf("editor: set value %q: %w", el.ID(), err)
	}
	return ed, nil
}

// InitialContent picks the value an editor starts with: the decoded inner
// markup of el, or defaultContent when that markup is empty.
func InitialContent(el dom.Element, defaultContent string) string {
	raw := el.InnerHTML()
	if raw == "" {
		return defaultContent
	}
	return htmldecode.Decode(raw)
}
