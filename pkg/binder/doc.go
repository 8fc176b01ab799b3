// Package binder attaches editors to the admin form fields present in a page.
// The field table is fixed at build time (DefaultDescriptors) and can be
// extended or overridden from JSON/YAML files. Bind runs once per document:
// every descriptor whose id resolves to an element gets exactly one editor,
// and ids missing from the page are skipped silently.
package binder
