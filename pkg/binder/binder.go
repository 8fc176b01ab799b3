package binder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-editorbind/pkg/dom"
	"github.com/goliatone/go-editorbind/pkg/editor"
)

// Binding is one editor created by Bind.
type Binding struct {
	Descriptor Descriptor
	Element    dom.Element
	Editor     editor.Editor
}

// Option customises a Binder.
type Option func(*Binder)

// WithDescriptors replaces the built-in field table.
func WithDescriptors(descriptors []Descriptor) Option {
	return func(b *Binder) {
		if descriptors != nil {
			b.descriptors = make([]Descriptor, len(descriptors))
			copy(b.descriptors, descriptors)
		}
	}
}

// WithFilter limits binding to descriptors for which keep returns true.
func WithFilter(keep func(Descriptor) bool) Option {
	return func(b *Binder) {
		b.filter = keep
	}
}

// WithLogger sets the logger used for per-field debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Binder walks a descriptor table and starts one editor per field found.
type Binder struct {
	factory     editor.Factory
	descriptors []Descriptor
	filter      func(Descriptor) bool
	logger      *slog.Logger
}

// New constructs a Binder that creates editors through factory.
func New(factory editor.Factory, options ...Option) *Binder {
	b := &Binder{
		factory:     factory,
		descriptors: DefaultDescriptors(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Descriptors returns a copy of the table the binder walks.
func (b *Binder) Descriptors() []Descriptor {
	return append([]Descriptor(nil), b.descriptors...)
}

// Bind starts an editor for every descriptor whose id exists in doc. Missing
// ids are skipped. A field whose editor fails to start does not stop the
// others; failures are joined into the returned error alongside the bindings
// that succeeded.
func (b *Binder) Bind(ctx context.Context, doc dom.Finder) ([]Binding, error) {
	if b == nil {
		return nil, errors.New("binder: binder is nil")
	}
	if doc == nil {
		return nil, errors.New("binder: document is nil")
	}
	if b.factory == nil {
		return nil, fmt.Errorf("binder: %w", editor.ErrNoFactory)
	}

	var (
		bindings []Binding
		errs     []error
	)
	for _, d := range b.descriptors {
		if b.filter != nil && !b.filter(d) {
			continue
		}
		el, ok := doc.ElementByID(d.ID)
		if !ok {
			b.logger.DebugContext(ctx, "field not in page", "id", d.ID)
			continue
		}
		ed, err := editor.Start(b.factory, el, d.Mode, d.Default, d.ReadOnly)
		if err != nil {
			errs = append(errs, fmt.Errorf("binder: bind %q: %w", d.ID, err))
			continue
		}
		b.logger.DebugContext(ctx, "editor bound",
			"id", d.ID,
			"mode", string(d.Mode),
			"read_only", d.ReadOnly,
		)
		bindings = append(bindings, Binding{Descriptor: d, Element: el, Editor: ed})
	}
	return bindings, errors.Join(errs...)
}

// Bind runs the built-in field table over doc.
func Bind(ctx context.Context, doc dom.Finder, factory editor.Factory) ([]Binding, error) {
	return New(factory).Bind(ctx, doc)
}

// Configs returns the editor configs of bindings in order.
func Configs(bindings []Binding) []editor.Config {
	out := make([]editor.Config, 0, len(bindings))
	for _, binding := range bindings {
		out = append(out, editor.Config{
			Mode:        binding.Descriptor.Mode,
			LineNumbers: true,
			ReadOnly:    binding.Descriptor.ReadOnly,
		})
	}
	return out
}
