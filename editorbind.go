// Package editorbind upgrades the template, context and metadata textareas of
// rendered admin pages into code editors.
package editorbind

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-editorbind/pkg/binder"
	"github.com/goliatone/go-editorbind/pkg/enhancer"
	"github.com/goliatone/go-editorbind/pkg/htmldecode"
	"github.com/goliatone/go-editorbind/pkg/widgets/codemirror"
)

// Descriptor aliases binder.Descriptor for callers extending the field table.
type Descriptor = binder.Descriptor

// Request aliases enhancer.Request.
type Request = enhancer.Request

// Result aliases enhancer.Result.
type Result = enhancer.Result

// NewEnhancer exposes the enhancer constructor from the top-level module.
func NewEnhancer(options ...enhancer.Option) (*enhancer.Enhancer, error) {
	return enhancer.New(options...)
}

// EnhanceHTML binds the default CodeMirror editors on page and returns the
// enhanced markup. Partial results are returned together with per-field
// errors.
func EnhanceHTML(ctx context.Context, page []byte, options ...enhancer.Option) ([]byte, error) {
	enh, err := enhancer.New(options...)
	if err != nil {
		return nil, err
	}
	result, err := enh.Enhance(ctx, enhancer.Request{Page: page})
	return result.HTML, err
}

// DefaultDescriptors returns the built-in field table.
func DefaultDescriptors() []Descriptor {
	return binder.DefaultDescriptors()
}

// Decode returns the text of HTML-escaped markup.
func Decode(input string) string {
	return htmldecode.Decode(input)
}

// WithDescriptors forwards a replacement field table to the enhancer.
func WithDescriptors(descriptors []Descriptor) enhancer.Option {
	return enhancer.WithDescriptors(descriptors)
}

// EmbeddedTemplates exposes the CodeMirror asset and bootstrap templates so
// callers can reuse or extend them without importing the widget package.
func EmbeddedTemplates() fs.FS {
	return codemirror.TemplatesFS()
}
