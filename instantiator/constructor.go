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

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/resolver"
)

// Constructor builds instances the normal way: the no-arg initializers of
// the ancestors run root first, then the type's own initializer chosen by
// the argument types.
type Constructor struct {
	base
	registry apis.Registry
	// chain holds the ancestors' no-arg initializers, root first.
	chain []chainLink
	args  []any
}

type chainLink struct {
	ancestor resolver.Ancestor
	init     apis.Initializer
}

// NewConstructor builds a Constructor technique for t. Arguments bound with
// WithArgs are used when NewInstance is called without any.
func NewConstructor(t reflect.Type, opts ...Option) (*Constructor, error) {
	b, err := newBase(KindConstructor, t)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	ancestry, err := resolver.Ancestry(t, o.maxDepth)
	if err != nil {
		return nil, apis.Wrapf(err, "resolving ancestry of %v", t)
	}

	var chain []chainLink
	for i := len(ancestry) - 1; i >= 1; i-- {
		init, err := noArgInitializer(o.registry, ancestry[i])
		if err != nil {
			return nil, err
		}
		if init != nil {
			chain = append(chain, chainLink{ancestor: ancestry[i], init: *init})
		}
	}
	return &Constructor{base: b, registry: o.registry, chain: chain, args: o.args}, nil
}

// NewInstance runs the initializer chain on a new *T.
func (c *Constructor) NewInstance(args ...any) (any, error) {
	if err := c.checkConcrete(); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		args = c.args
	}
	own, err := c.own(args)
	if err != nil {
		return nil, err
	}

	obj := reflect.New(c.t)
	for _, link := range c.chain {
		if err := link.init.Call(link.ancestor.Pointer(obj)); err != nil {
			return nil, apis.Wrapf(err, "initializing ancestor %v of %v", link.ancestor.Type, c.t)
		}
	}
	if own != nil {
		if err := own.Call(obj, args...); err != nil {
			return nil, apis.Wrapf(err, "initializing %v", c.t)
		}
	}
	return instance(obj)
}

// own picks the type's initializer for args. Nil means the implicit no-arg
// initializer, which leaves the zero value.
func (c *Constructor) own(args []any) (*apis.Initializer, error) {
	if len(args) == 0 {
		init, err := noArgInitializer(c.registry, resolver.Ancestor{Type: c.t})
		if err != nil {
			return nil, err
		}
		return init, nil
	}
	init, ok := c.registry.Lookup(c.t, args...)
	if !ok {
		return nil, apis.Wrapf(apis.ErrNoSuitableInitializer, "%v has no initializer accepting %d argument(s)", c.t, len(args))
	}
	return &init, nil
}

// Failing never allocates.
type Failing struct{ base }

// NewFailing builds a Failing technique for t.
func NewFailing(t reflect.Type, _ ...Option) (*Failing, error) {
	b, err := newBase(KindFailing, t)
	if err != nil {
		return nil, err
	}
	return &Failing{b}, nil
}

// NewInstance always fails with apis.ErrAlwaysFailing.
func (f *Failing) NewInstance(...any) (any, error) {
	return nil, apis.Wrapf(apis.ErrAlwaysFailing, "allocating %v", f.t)
}

var (
	_ apis.Instantiator = (*Constructor)(nil)
	_ apis.Instantiator = (*Failing)(nil)
)
