// Package dom wraps a parsed HTML page behind the small surface the editor
// binder needs: element lookup by id, raw inner markup, attribute and text
// mutation, and serialization back to bytes. The implementation sits on
// goquery so callers never touch *html.Node directly.
package dom
