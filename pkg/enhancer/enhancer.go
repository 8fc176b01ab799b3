// Package enhancer runs the parse, theme, bind, finish and render steps over
// one admin page. It is the single entry point the CLI and the HTTP
// middleware share.
package enhancer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-editorbind/pkg/binder"
	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/editor"
	"github.com/goliatone/go-editorbind/pkg/widgets/codemirror"
)

// Option customises an Enhancer.
type Option func(*Enhancer)

// WithRegistry supplies the widget registry. The CodeMirror widget is added
// when the registry does not already hold one under its name.
func WithRegistry(registry *editor.Registry) Option {
	return func(e *Enhancer) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithWidget registers an additional widget.
func WithWidget(widget editor.Widget) Option {
	return func(e *Enhancer) {
		if widget != nil {
			e.extraWidgets = append(e.extraWidgets, widget)
		}
	}
}

// WithDefaultWidget names the widget used when a request does not pick one.
func WithDefaultWidget(name string) Option {
	return func(e *Enhancer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			e.defaultWidget = trimmed
		}
	}
}

// WithDescriptors replaces the field table handed to the binder.
func WithDescriptors(descriptors []binder.Descriptor) Option {
	return func(e *Enhancer) {
		if descriptors != nil {
			e.descriptors = make([]binder.Descriptor, len(descriptors))
			copy(e.descriptors, descriptors)
		}
	}
}

// WithThemeSelector resolves editor theme and asset URLs through a go-theme
// selector. name and variant are used when a request leaves them empty.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(e *Enhancer) {
		e.themeSelector = selector
		e.themeName = strings.TrimSpace(name)
		e.themeVariant = strings.TrimSpace(variant)
	}
}

// WithLogger sets the logger shared with the binder.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Request describes one page to enhance.
type Request struct {
	Page []byte
	// Widget overrides the default widget name.
	Widget string
	// ThemeName and ThemeVariant override the selector defaults.
	ThemeName    string
	ThemeVariant string
	// Only limits binding to these field ids. Empty binds every known field.
	Only []string
}

// Result is the enhanced page and the ids of the fields that received an
// editor, in binding order.
type Result struct {
	HTML  []byte
	Bound []string
}

// Enhancer is safe for concurrent use; all per-page state lives inside
// Enhance.
type Enhancer struct {
	registry      *editor.Registry
	extraWidgets  []editor.Widget
	defaultWidget string
	descriptors   []binder.Descriptor
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	logger        *slog.Logger
}

// New constructs an Enhancer with the CodeMirror widget as default.
func New(options ...Option) (*Enhancer, error) {
	e := &Enhancer{
		defaultWidget: codemirror.Name,
		descriptors:   binder.DefaultDescriptors(),
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	if e.registry == nil {
		e.registry = editor.NewRegistry()
	}
	if !e.registry.Has(codemirror.Name) {
		widget, err := codemirror.New()
		if err != nil {
			return nil, fmt.Errorf("enhancer: %w", err)
		}
		if err := e.registry.Register(widget); err != nil {
			return nil, fmt.Errorf("enhancer: %w", err)
		}
	}
	for _, widget := range e.extraWidgets {
		if err := e.registry.Register(widget); err != nil {
			return nil, fmt.Errorf("enhancer: %w", err)
		}
	}
	return e, nil
}

// Descriptors returns a copy of the field table.
func (e *Enhancer) Descriptors() []binder.Descriptor {
	return append([]binder.Descriptor(nil), e.descriptors...)
}

// Present returns the descriptors whose ids exist in page, in table order.
func (e *Enhancer) Present(page []byte) ([]binder.Descriptor, error) {
	doc, err := dom.ParseBytes(page)
	if err != nil {
		return nil, fmt.Errorf("enhancer: %w", err)
	}
	var out []binder.Descriptor
	for _, d := range e.descriptors {
		if _, ok := doc.ElementByID(d.ID); ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Enhance binds editors on req.Page and returns the re-serialized page.
// Field-level bind failures do not abort the page: the Result is still
// returned together with the joined error.
func (e *Enhancer) Enhance(ctx context.Context, req Request) (Result, error) {
	if e == nil {
		return Result{}, errors.New("enhancer: enhancer is nil")
	}
	if len(bytes.TrimSpace(req.Page)) == 0 {
		return Result{}, errors.New("enhancer: page is empty")
	}

	name := strings.TrimSpace(req.Widget)
	if name == "" {
		name = e.defaultWidget
	}
	widget, err := e.registry.Get(name)
	if err != nil {
		return Result{}, fmt.Errorf("enhancer: %w", err)
	}

	doc, err := dom.ParseBytes(req.Page)
	if err != nil {
		return Result{}, fmt.Errorf("enhancer: %w", err)
	}

	opts, err := e.pageOptions(req)
	if err != nil {
		return Result{}, err
	}

	b := binder.New(widget.Factory(opts),
		binder.WithDescriptors(e.descriptors),
		binder.WithFilter(onlyFilter(req.Only)),
		binder.WithLogger(e.logger),
	)
	bindings, bindErr := b.Bind(ctx, doc)
	if bindErr != nil {
		bindErr = fmt.Errorf("enhancer: %w", bindErr)
	}

	if err := widget.Finish(doc, opts, binder.Configs(bindings)); err != nil {
		return Result{}, errors.Join(bindErr, fmt.Errorf("enhancer: finish %s: %w", name, err))
	}

	out, err := doc.HTML()
	if err != nil {
		return Result{}, errors.Join(bindErr, fmt.Errorf("enhancer: %w", err))
	}

	bound := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		bound = append(bound, binding.Descriptor.ID)
	}
	e.logger.DebugContext(ctx, "page enhanced", "widget", name, "bound", len(bound))
	return Result{HTML: out, Bound: bound}, bindErr
}

func (e *Enhancer) pageOptions(req Request) (editor.PageOptions, error) {
	if e.themeSelector == nil {
		return editor.PageOptions{}, nil
	}
	name := strings.TrimSpace(req.ThemeName)
	if name == "" {
		name = e.themeName
	}
	variant := strings.TrimSpace(req.ThemeVariant)
	if variant == "" {
		variant = e.themeVariant
	}
	selection, err := e.themeSelector.Select(name, variant)
	if err != nil {
		return editor.PageOptions{}, fmt.Errorf("enhancer: select theme %q/%q: %w", name, variant, err)
	}
	return PageOptionsFromSelection(selection), nil
}

func onlyFilter(ids []string) func(binder.Descriptor) bool {
	if len(ids) == 0 {
		return nil
	}
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[strings.TrimSpace(id)] = struct{}{}
	}
	return func(d binder.Descriptor) bool {
		_, ok := keep[d.ID]
		return ok
	}
}
