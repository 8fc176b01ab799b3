// Package editortest provides recording widget doubles for tests that need an
// editor.Factory or editor.Widget without a real editor.
package editortest

import (
	"sync"

	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/editor"
)

// Name is the widget name reported by Widget.
const Name = "recorder"

// Editor records the configuration it was created with and its value.
type Editor struct {
	Element  dom.Element
	Config   editor.Config
	SetCalls int

	value string
}

// SetValue stores value.
func (e *Editor) SetValue(value string) error {
	e.value = value
	e.SetCalls++
	return nil
}

// Value returns the last value set.
func (e *Editor) Value() string {
	return e.value
}

// Factory records every editor it creates. Err fails every call; FailFor
// fails calls for specific element ids.
type Factory struct {
	Err     error
	FailFor map[string]error

	mu      sync.Mutex
	editors []*Editor
}

var _ editor.Factory = (*Factory)(nil)

// FromTextArea creates a recording editor unless a failure is configured.
func (f *Factory) FromTextArea(el dom.Element, cfg editor.Config) (editor.Editor, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err, ok := f.FailFor[el.ID()]; ok {
		return nil, err
	}
	ed := &Editor{Element: el, Config: cfg}

	f.mu.Lock()
	f.editors = append(f.editors, ed)
	f.mu.Unlock()
	return ed, nil
}

// Editors returns the created editors in creation order.
func (f *Factory) Editors() []*Editor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Editor(nil), f.editors...)
}

// ByID returns the editor created for the element with id.
func (f *Factory) ByID(id string) (*Editor, bool) {
	for _, ed := range f.Editors() {
		if ed.Element != nil && ed.Element.ID() == id {
			return ed, true
		}
	}
	return nil, false
}

// Widget wraps a recording Factory as an editor.Widget.
type Widget struct {
	Recorder  Factory
	FinishErr error

	mu       sync.Mutex
	pages    []editor.PageOptions
	finished [][]editor.Config
}

var _ editor.Widget = (*Widget)(nil)

// Name returns Name.
func (w *Widget) Name() string {
	return Name
}

// Factory records opts and returns the shared recorder.
func (w *Widget) Factory(opts editor.PageOptions) editor.Factory {
	w.mu.Lock()
	w.pages = append(w.pages, opts)
	w.mu.Unlock()
	return &w.Recorder
}

// Finish records the bound configs and returns FinishErr.
func (w *Widget) Finish(_ *dom.Document, _ editor.PageOptions, bound []editor.Config) error {
	w.mu.Lock()
	w.finished = append(w.finished, append([]editor.Config(nil), bound...))
	w.mu.Unlock()
	return w.FinishErr
}

// Pages returns the page options passed to Factory.
func (w *Widget) Pages() []editor.PageOptions {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]editor.PageOptions(nil), w.pages...)
}

// Finished returns the configs passed to each Finish call.
func (w *Widget) Finished() [][]editor.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([][]editor.Config(nil), w.finished...)
}
