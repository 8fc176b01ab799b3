package binder

import "github.com/goliatone/go-editorbind/pkg/editor"

// Placeholder comments shown in empty template fields.
const (
	HTMLTemplatePlaceholder  = "{# Write here the HTML email template. Use jinja2 syntax. #}"
	PlainTemplatePlaceholder = "{# Write here the plain email template. Use jinja2 syntax. #}"
	EmptyContextPlaceholder  = "{}"
)

// Descriptor configures the editor bound to one form field. An empty Default
// means the field has no default content.
type Descriptor struct {
	ID       string      `json:"id" yaml:"id"`
	Mode     editor.Mode `json:"mode" yaml:"mode"`
	Default  string      `json:"default,omitempty" yaml:"default,omitempty"`
	ReadOnly bool        `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

var defaultDescriptors = [...]Descriptor{
	// Email kind and fragment templates.
	{ID: "id_template", Mode: editor.ModeHTMLMixed, Default: HTMLTemplatePlaceholder},
	{ID: "id_content", Mode: editor.ModeHTMLMixed, Default: HTMLTemplatePlaceholder},
	{ID: "id_plain_template", Mode: editor.ModeJinja2, Default: PlainTemplatePlaceholder},
	// Contexts and parameters edited by staff.
	{ID: "id_default_context", Mode: editor.ModeJSON},
	{ID: "id_test_context", Mode: editor.ModeJSON, Default: EmptyContextPlaceholder},
	{ID: "id_test_params", Mode: editor.ModeJSON},
	// Email entry fields are inspect-only.
	{ID: "id_context", Mode: editor.ModeJSON, ReadOnly: true},
	{ID: "id_rendered_template", Mode: editor.ModeHTMLMixed, ReadOnly: true},
	{ID: "id_rendered_plain_template", Mode: editor.ModeJinja2, ReadOnly: true},
	{ID: "id_metadata", Mode: editor.ModeJSON, ReadOnly: true},
}

// DefaultDescriptors returns a copy of the built-in field table in binding
// order.
func DefaultDescriptors() []Descriptor {
	out := make([]Descriptor, len(defaultDescriptors))
	copy(out, defaultDescriptors[:])
	return out
}

// IDs returns the ids of descriptors in order.
func IDs(descriptors []Descriptor) []string {
	ids := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		ids = append(ids, d.ID)
	}
	return ids
}

// Merge overlays overrides onto base. Entries sharing an id replace the base
// entry in place; new ids are appended in override order. Neither input is
// modified.
func Merge(base, overrides []Descriptor) []Descriptor {
	out := make([]Descriptor, len(base), len(base)+len(overrides))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, d := range out {
		if _, seen := index[d.ID]; !seen {
			index[d.ID] = i
		}
	}
	for _, d := range overrides {
		if i, ok := index[d.ID]; ok {
			out[i] = d
			continue
		}
		index[d.ID] = len(out)
		out = append(out, d)
	}
	return out
}
