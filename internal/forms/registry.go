package forms

import (
	"errors"
	"fmt"
	"sync"

	"github.com/linskybing/genie-forms/internal/domain/form"
	"go.uber.org/zap"
)

var ErrFormNotFound = errors.New("form not found")

// Registry holds the known form definitions. Only enabled forms are served.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	defs    map[string]form.Definition
	enabled map[string]struct{}
	all     bool
	log     *zap.Logger
}

// NewRegistry registers the built-in forms and enables the given ids.
// An id of "*" enables every form.
func NewRegistry(enabled []string, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		defs:    make(map[string]form.Definition),
		enabled: make(map[string]struct{}),
		log:     log,
	}
	for _, id := range enabled {
		if id == "*" {
			r.all = true
			continue
		}
		r.enabled[id] = struct{}{}
	}
	for _, def := range Builtin() {
		r.put(def)
	}
	return r
}

func (r *Registry) put(def form.Definition) {
	if _, ok := r.defs[def.ID]; !ok {
		r.order = append(r.order, def.ID)
	}
	r.defs[def.ID] = def
}

// Register adds or overrides a definition after a structural check.
func (r *Registry) Register(def form.Definition) error {
	if err := def.Check(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(def)
	return nil
}

// Replace resets the registry to the built-ins overlaid with defs. Nothing
// changes when any definition fails its check.
func (r *Registry) Replace(defs []form.Definition) error {
	for i := range defs {
		if err := defs[i].Check(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.defs = make(map[string]form.Definition)
	for _, def := range Builtin() {
		r.put(def)
	}
	for _, def := range defs {
		r.put(def)
	}
	r.log.Info("form registry reloaded", zap.Int("forms", len(r.order)), zap.Int("custom", len(defs)))
	return nil
}

func (r *Registry) isEnabled(id string) bool {
	if r.all {
		return true
	}
	_, ok := r.enabled[id]
	return ok
}

// IsEnabled reports whether id is both known and enabled.
func (r *Registry) IsEnabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[id]
	return ok && r.isEnabled(id)
}

// Get returns an enabled definition.
func (r *Registry) Get(id string) (form.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok || !r.isEnabled(id) {
		return form.Definition{}, fmt.Errorf("%w: %s", ErrFormNotFound, id)
	}
	return def, nil
}

// Lookup returns any registered definition, enabled or not.
func (r *Registry) Lookup(id string) (form.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	return def, ok
}

// List returns the enabled definitions in registration order.
func (r *Registry) List() []form.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]form.Definition, 0, len(r.order))
	for _, id := range r.order {
		if r.isEnabled(id) {
			out = append(out, r.defs[id])
		}
	}
	return out
}

// All returns every registered definition in registration order.
func (r *Registry) All() []form.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]form.Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}
