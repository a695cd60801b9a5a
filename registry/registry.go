/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/querykit/schema"
	"golang.org/x/exp/slices"
)

// Registry maps model names, and optionally Go types, to schema descriptors.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]schema.Descriptor
	byType map[reflect.Type]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]schema.Descriptor),
		byType: make(map[reflect.Type]string),
	}
}

// Register adds a descriptor under its name.
// Registering the same name twice is an error.
func (r *Registry) Register(d schema.Descriptor) error {
	if !d.Valid() {
		return fmt.Errorf("registry: cannot register an invalid descriptor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[d.Name()]; exists {
		return fmt.Errorf("registry: model %q already registered", d.Name())
	}
	r.byName[d.Name()] = d
	return nil
}

// registerAll adds every descriptor, or none of them when a name is taken.
func (r *Registry) registerAll(descs []schema.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range descs {
		if _, exists := r.byName[d.Name()]; exists {
			return fmt.Errorf("registry: model %q already registered", d.Name())
		}
	}
	for _, d := range descs {
		r.byName[d.Name()] = d
	}
	return nil
}

// RegisterDefinition validates def and registers the resulting descriptor.
func (r *Registry) RegisterDefinition(def schema.Definition) (schema.Descriptor, error) {
	d, err := schema.New(def)
	if err != nil {
		return schema.Descriptor{}, err
	}
	if err := r.Register(d); err != nil {
		return schema.Descriptor{}, err
	}
	return d, nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (schema.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byName[name]
	return d, ok
}

// Lookup is like Get but returns an error naming the missing model.
func (r *Registry) Lookup(name string) (schema.Descriptor, error) {
	d, ok := r.Get(name)
	if !ok {
		return schema.Descriptor{}, fmt.Errorf("registry: no model registered as %q", name)
	}
	return d, nil
}

// Names lists the registered model names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Bind associates the Go type T with an already registered model.
func Bind[T any](r *Registry, name string) error {
	t := reflect.TypeOf((*T)(nil)).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("registry: no model registered as %q", name)
	}
	if existing, ok := r.byType[t]; ok && existing != name {
		return fmt.Errorf("registry: type %s already bound to model %q", t, existing)
	}
	r.byType[t] = name
	return nil
}

// DescriptorFor returns the descriptor bound to the Go type T, if any.
func DescriptorFor[T any](r *Registry) (schema.Descriptor, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byType[t]
	if !ok {
		return schema.Descriptor{}, false
	}
	d, ok := r.byName[name]
	return d, ok
}
