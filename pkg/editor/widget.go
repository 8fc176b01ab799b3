package editor

import "github.com/goliatone/go-editorbind/pkg/dom"

// PageOptions carries per-page widget settings, usually derived from the
// active theme selection.
type PageOptions struct {
	// Theme names the editor colour theme. Empty keeps the widget default.
	Theme string
	// AssetURL resolves an asset key such as "codemirror.script" to a URL.
	// A nil resolver or an empty result means the widget default is used.
	AssetURL func(key string) string
}

// ResolveAsset returns the URL for key, or fallback when the page does not
// override it.
func (o PageOptions) ResolveAsset(key, fallback string) string {
	if o.AssetURL == nil {
		return fallback
	}
	if url := o.AssetURL(key); url != "" {
		return url
	}
	return fallback
}

// Widget is a named editor implementation. Factory is called once per page;
// Finish runs after binding with the configs of every editor created, so the
// widget can add the page-level assets it needs.
type Widget interface {
	Name() string
	Factory(opts PageOptions) Factory
	Finish(doc *dom.Document, opts PageOptions, bound []Config) error
}
