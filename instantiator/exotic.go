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

package instantiator

import (
	"reflect"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/typology"
)

// ExoticFactory builds an instantiator outside the closed set of kinds.
type ExoticFactory func(t reflect.Type, opts ...Option) (apis.Instantiator, error)

var (
	// ErrExoticConflict is returned when a name is registered twice.
	ErrExoticConflict = errors.New("instantiator: exotic technique already registered")

	exoticMu sync.RWMutex
	exotics  = swiss.NewMap[string, ExoticFactory](8)
)

// RegisterExotic makes f available to delegating techniques under name.
func RegisterExotic(name string, f ExoticFactory) error {
	if name == "" || f == nil {
		return apis.Wrap(errors.New("exotic technique needs a name and a factory"), "instantiator")
	}
	exoticMu.Lock()
	defer exoticMu.Unlock()
	if exotics.Has(name) {
		return apis.Wrapf(ErrExoticConflict, "%q", name)
	}
	exotics.Put(name, f)
	return nil
}

// UnregisterExotic removes name. It reports whether it was registered.
func UnregisterExotic(name string) bool {
	exoticMu.Lock()
	defer exoticMu.Unlock()
	return exotics.Delete(name)
}

// Exotics returns the registered names, sorted.
func Exotics() []string {
	exoticMu.RLock()
	defer exoticMu.RUnlock()
	names := make([]string, 0, exotics.Count())
	exotics.Iter(func(name string, _ ExoticFactory) bool {
		names = append(names, name)
		return false
	})
	sort.Strings(names)
	return names
}

func lookupExotic(name string) (ExoticFactory, bool) {
	exoticMu.RLock()
	defer exoticMu.RUnlock()
	return exotics.Get(name)
}

// Delegating hands allocation to an exotic technique. It declares no
// contract of its own.
type Delegating struct {
	base
	name     string
	delegate apis.Instantiator
}

// NewDelegating builds the exotic technique named with WithExotic for t.
// It fails with apis.ErrUnsupported when no such technique is registered.
func NewDelegating(t reflect.Type, opts ...Option) (*Delegating, error) {
	b, err := newBase(KindDelegating, t)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	f, ok := lookupExotic(o.exotic)
	if !ok {
		return nil, apis.Wrapf(apis.ErrUnsupported, "no exotic technique named %q", o.exotic)
	}
	delegate, err := f(t, opts...)
	if err != nil {
		return nil, apis.Wrapf(err, "building exotic technique %q for %v", o.exotic, t)
	}
	if delegate == nil {
		return nil, apis.Wrap(errors.AssertionFailedf("exotic technique %q returned nil", o.exotic), "building exotic technique")
	}
	if delegate.Type() != t {
		return nil, apis.Wrap(errors.AssertionFailedf("exotic technique %q is bound to %v, not %v", o.exotic, delegate.Type(), t), "building exotic technique")
	}
	return &Delegating{base: b, name: o.exotic, delegate: delegate}, nil
}

// NewInstance forwards to the exotic technique.
func (d *Delegating) NewInstance(args ...any) (any, error) {
	obj, err := d.delegate.NewInstance(args...)
	if err != nil {
		return nil, apis.Wrapf(err, "exotic technique %q", d.name)
	}
	return obj, nil
}

// Typology is always typology.Unknown.
func (d *Delegating) Typology() typology.Typology {
	return typology.Unknown
}

// Name returns the exotic technique's name.
func (d *Delegating) Name() string {
	return d.name
}

var _ apis.Instantiator = (*Delegating)(nil)
