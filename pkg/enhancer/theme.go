package enhancer

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-editorbind/pkg/editor"
)

// EditorThemeToken is the manifest token naming the editor colour theme.
const EditorThemeToken = "editor.theme"

// PageOptionsFromSelection maps a theme selection onto widget page options.
// Variant tokens and asset files override the base manifest; a variant asset
// prefix replaces the base prefix.
func PageOptionsFromSelection(selection *theme.Selection) editor.PageOptions {
	if selection == nil || selection.Manifest == nil {
		return editor.PageOptions{}
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	return editor.PageOptions{
		Theme: strings.TrimSpace(tokens[EditorThemeToken]),
		AssetURL: func(key string) string {
			file := strings.TrimSpace(files[key])
			if file == "" {
				return ""
			}
			return joinAssetURL(prefix, file)
		},
	}
}

// StaticTheme returns a selector that always answers with manifest, keeping
// the requested variant. It lets callers load a single manifest from disk
// without standing up a theme registry.
func StaticTheme(manifest *theme.Manifest) theme.ThemeSelector {
	return staticSelector{manifest: manifest}
}

type staticSelector struct {
	manifest *theme.Manifest
}

func (s staticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	themeName := name
	if s.manifest != nil && s.manifest.Name != "" {
		themeName = s.manifest.Name
	}
	return &theme.Selection{
		Theme:    themeName,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func joinAssetURL(prefix, file string) string {
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return file
	}
	return prefix + "/" + file
}
