package translation

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultBackendName is used when no backend is selected by flag or config.
const DefaultBackendName = "openai"

// Registry stores the configured backends and resolves a default backend.
type Registry struct {
	backends       map[string]Backend
	defaultBackend string
}

func NewRegistry(defaultBackend string) *Registry {
	normalizedDefault := normalizeBackendName(defaultBackend)
	if normalizedDefault == "" {
		normalizedDefault = DefaultBackendName
	}

	return &Registry{
		backends:       make(map[string]Backend),
		defaultBackend: normalizedDefault,
	}
}

// Register adds one backend.
func (r *Registry) Register(backend Backend) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if backend == nil {
		return fmt.Errorf("backend is nil")
	}
	name := normalizeBackendName(backend.Name())
	if name == "" {
		return fmt.Errorf("backend name is required")
	}
	r.backends[name] = backend
	return nil
}

// Backend resolves a backend by name. Empty names use the configured
// default backend.
func (r *Registry) Backend(name string) (Backend, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if len(r.backends) == 0 {
		return nil, fmt.Errorf("no translation backends are registered")
	}

	resolvedName := normalizeBackendName(name)
	if resolvedName == "" {
		resolvedName = r.defaultBackend
	}
	backend, ok := r.backends[resolvedName]
	if ok {
		return backend, nil
	}

	return nil, fmt.Errorf("translation backend %q is not registered (available: %s)", resolvedName, strings.Join(r.BackendNames(), ", "))
}

func (r *Registry) DefaultBackend() string {
	if r == nil {
		return ""
	}
	return r.defaultBackend
}

func (r *Registry) BackendNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeBackendName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
