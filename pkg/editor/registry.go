package editor

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores widgets by name.
type Registry struct {
	mu      sync.RWMutex
	widgets map[string]Widget
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		widgets: make(map[string]Widget),
	}
}

// Register adds a widget under its Name(). Duplicate names return an error.
func (r *Registry) Register(widget Widget) error {
	if widget == nil {
		return fmt.Errorf("editor: widget is required")
	}
	name := widget.Name()
	if name == "" {
		return fmt.Errorf("editor: widget name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[name]; exists {
		return fmt.Errorf("editor: widget %q already registered", name)
	}
	r.widgets[name] = widget
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(widget Widget) {
	if err := r.Register(widget); err != nil {
		panic(err)
	}
}

// Get retrieves a widget by name.
func (r *Registry) Get(name string) (Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	widget, ok := r.widgets[name]
	if !ok {
		return nil, fmt.Errorf("editor: widget %q not found", name)
	}
	return widget, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.widgets))
	for name := range r.widgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a widget is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.widgets[name]
	return ok
}
