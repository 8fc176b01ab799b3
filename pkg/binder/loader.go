package binder

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-editorbind/pkg/editor"
)

type fieldsFile struct {
	Fields []Descriptor `json:"fields" yaml:"fields"`
}

// LoadFile parses a JSON or YAML descriptor file from disk.
func LoadFile(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("binder: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS parses every JSON/YAML file in fsys in lexical path order and merges
// them, later files overriding earlier ones. A nil fsys yields no descriptors.
func LoadFS(fsys fs.FS) ([]Descriptor, error) {
	if fsys == nil {
		return nil, nil
	}

	var out []Descriptor
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("binder: read %s: %w", path, err)
		}
		descriptors, err := Parse(data, path)
		if err != nil {
			return err
		}
		out = Merge(out, descriptors)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Parse decodes a descriptor document shaped as {"fields": [...]}. source is
// only used in error messages.
func Parse(data []byte, source string) ([]Descriptor, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("binder: file %s is empty", source)
	}

	var doc fieldsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = fieldsFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("binder: parse %s: invalid JSON or YAML", source)
		}
	}

	seen := make(map[string]struct{}, len(doc.Fields))
	out := make([]Descriptor, 0, len(doc.Fields))
	for i, d := range doc.Fields {
		d.ID = strings.TrimSpace(d.ID)
		d.Mode = editor.Mode(strings.TrimSpace(string(d.Mode)))
		if d.ID == "" {
			return nil, fmt.Errorf("binder: file %s: field %d has an empty id", source, i)
		}
		if d.Mode == "" {
			return nil, fmt.Errorf("binder: file %s: field %q has no mode", source, d.ID)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("binder: file %s: duplicate field %q", source, d.ID)
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
