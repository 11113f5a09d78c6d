/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"

	"dirpx.dev/genesis/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("genesis(registry): nil reflect.Type provided")
	// ErrBadInitializer is returned when fn is not a valid initializer of t.
	ErrBadInitializer = errors.New("genesis(registry): invalid initializer")
	// ErrConflictingRegistration indicates an attempt to register a second
	// initializer with the same parameter list.
	ErrConflictingRegistration = errors.New("genesis(registry): conflicting initializer registration")
)

// defaultRegistry is the process-wide registry used when a Config carries none.
var defaultRegistry = New()

// Default returns the process-wide registry. Types usually declare their
// initializers there from init functions, the way encoding/gob types call
// gob.Register.
func Default() apis.Registry {
	return defaultRegistry
}

// Register declares fn as an initializer of t in the default registry.
func Register(t reflect.Type, fn any) error {
	return defaultRegistry.Register(t, fn)
}

// MustRegister is like Register but panics on error.
func MustRegister(t reflect.Type, fn any) {
	if err := Register(t, fn); err != nil {
		panic(err)
	}
}

// Or returns reg, or the default registry when reg is nil.
func Or(reg apis.Registry) apis.Registry {
	if reg == nil {
		return defaultRegistry
	}
	return reg
}

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{m: swiss.NewMap[reflect.Type, []apis.Initializer](16)}
}

// registry is a Registry backed by a swiss map.
// Reads vastly outnumber writes, so a RWMutex is enough.
type registry struct {
	// mu guards m and count.
	mu sync.RWMutex
	// m maps the owner type to its initializers in registration order.
	m *swiss.Map[reflect.Type, []apis.Initializer]
	// count tracks the number of registered initializers.
	count int
}

// Register declares fn as an initializer of t.
// It is idempotent for the same (type, function) pair.
func (r *registry) Register(t reflect.Type, fn any) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	init, err := apis.NewInitializer(t, fn)
	if err != nil {
		return errors.Mark(err, ErrBadInitializer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, _ := r.m.Get(t)
	for _, old := range existing {
		if !old.SameSignature(init) {
			continue
		}
		if old.Fn.Pointer() == init.Fn.Pointer() {
			return nil // idempotent re-registration
		}
		return errors.Wrapf(ErrConflictingRegistration, "%v already declared", old)
	}

	// Copy on write so snapshots handed out by Initializers stay stable.
	next := make([]apis.Initializer, len(existing), len(existing)+1)
	copy(next, existing)
	r.m.Put(t, append(next, init))
	r.count++
	return nil
}

// Initializers returns the initializers of t in registration order.
func (r *registry) Initializers(t reflect.Type) []apis.Initializer {
	if t == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	inits, _ := r.m.Get(t)
	return inits
}

// Lookup returns the first initializer of t that accepts args.
func (r *registry) Lookup(t reflect.Type, args ...any) (apis.Initializer, bool) {
	for _, init := range r.Initializers(t) {
		if init.Accepts(args...) {
			return init, true
		}
	}
	return apis.Initializer{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]apis.Entry, 0, r.count)
	r.m.Iter(func(t reflect.Type, inits []apis.Initializer) bool {
		for _, init := range inits {
			entries = append(entries, apis.Entry{Type: t, Initializer: init})
		}
		return false
	})
	return entries
}

// Count returns the number of registered initializers.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Reset clears all registered initializers.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = swiss.NewMap[reflect.Type, []apis.Initializer](16)
	r.count = 0
}
