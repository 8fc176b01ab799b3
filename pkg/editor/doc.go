// Package editor defines the contract between the field binder and a rich
// editor widget, plus the bootstrap operation that creates one editor for one
// element. Widgets implement Factory; the binder only ever calls Start.
package editor
