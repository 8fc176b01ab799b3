// Package template defines the rendering seam widgets use to produce the
// markup they inject into a page. The pongo2-backed implementation lives in
// the gotemplate subpackage.
package template
