// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashengines

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// HashEngineFactory creates a fresh engine. The tree walker calls it once
// per regular file.
type HashEngineFactory func() (StreamingHashEngine, error)

// ErrUnsupported is wrapped by lookups of unknown algorithm names.
var ErrUnsupported = errors.New("unsupported hash algorithm")

// Registry maps algorithm names to engine factories. The zero value is
// ready to use and safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HashEngineFactory
}

// Add stores factory under name. Names are case-sensitive and may only be
// added once.
func (r *Registry) Add(name string, factory HashEngineFactory) error {
	switch {
	case name == "":
		return errors.New("algorithm name cannot be empty")
	case factory == nil:
		return fmt.Errorf("factory for %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[name]; dup {
		return fmt.Errorf("hash algorithm %q already registered", name)
	}
	if r.factories == nil {
		r.factories = make(map[string]HashEngineFactory)
	}
	r.factories[name] = factory
	return nil
}

// Remove deletes name from the registry.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; !ok {
		return fmt.Errorf("hash algorithm %q not registered", name)
	}
	delete(r.factories, name)
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (HashEngineFactory, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupported, name, r.Names())
	}
	return f, nil
}

// New runs the factory registered under name.
func (r *Registry) New(name string) (StreamingHashEngine, error) {
	f, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	e, err := f()
	if err != nil {
		return nil, fmt.Errorf("create %s engine: %w", name, err)
	}
	return e, nil
}

// Names lists the registered algorithms in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// defaultRegistry backs the package-level functions. Engine packages add
// themselves to it from init.
var defaultRegistry Registry

// Register adds factory to the default registry.
func Register(algorithm string, factory HashEngineFactory) error {
	return defaultRegistry.Add(algorithm, factory)
}

// MustRegister is Register for init functions; it panics on error.
func MustRegister(algorithm string, factory HashEngineFactory) {
	if err := Register(algorithm, factory); err != nil {
		panic(err)
	}
}

// Create returns a new engine from the default registry.
func Create(algorithm string) (StreamingHashEngine, error) {
	return defaultRegistry.New(algorithm)
}

// Factory returns the factory registered for algorithm.
func Factory(algorithm string) (HashEngineFactory, error) {
	return defaultRegistry.Lookup(algorithm)
}

// SupportedAlgorithms returns the registered names, sorted.
func SupportedAlgorithms() []string {
	return defaultRegistry.Names()
}

// IsSupported reports whether algorithm is registered.
func IsSupported(algorithm string) bool {
	return defaultRegistry.Has(algorithm)
}

// Unregister removes algorithm from the default registry. Tests use it to
// undo temporary registrations.
func Unregister(algorithm string) error {
	return defaultRegistry.Remove(algorithm)
}
