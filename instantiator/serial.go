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

	"github.com/cockroachdb/errors"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/resolver"
	uref "dirpx.dev/genesis/utils/reflect"
)

// serial allocates like native deserialization: the storage is zeroed and
// only the no-arg initializer of the first non-Serializable ancestor runs.
type serial struct {
	base
	alloc    storage
	ancestor resolver.Ancestor
	// init is nil when the ancestor has nothing to run.
	init *apis.Initializer
}

func newSerial(kind Kind, t reflect.Type, mk func(reflect.Type) storage, opts []Option) (serial, error) {
	b, err := newBase(kind, t)
	if err != nil {
		return serial{}, err
	}
	if !uref.IsSerializable(t) {
		return serial{}, apis.Wrapf(apis.ErrNotSerializable, "%v does not implement Serializable", t)
	}

	o := newOptions(opts)
	anc, err := resolver.FirstNonSerializable(t, o.maxDepth)
	if err != nil {
		return serial{}, apis.Wrapf(err, "resolving ancestry of %v", t)
	}
	init, err := noArgInitializer(o.registry, anc)
	if err != nil {
		return serial{}, errors.Mark(err, apis.ErrNotSerializable)
	}
	return serial{base: b, alloc: mk(t), ancestor: anc, init: init}, nil
}

// noArgInitializer returns the no-arg initializer of a, nil when a has no
// declared initializer at all. Declared initializers without a no-arg one
// leave nothing to call.
func noArgInitializer(reg apis.Registry, a resolver.Ancestor) (*apis.Initializer, error) {
	if a.Root {
		return nil, nil
	}
	inits := reg.Initializers(a.Type)
	if len(inits) == 0 {
		return nil, nil
	}
	for i := range inits {
		if inits[i].NoArg() {
			return &inits[i], nil
		}
	}
	return nil, apis.Wrapf(apis.ErrNoSuitableInitializer, "%v has no no-arg initializer", a.Type)
}

// NewInstance returns a new *T. Arguments are ignored.
func (s serial) NewInstance(...any) (any, error) {
	if err := s.checkConcrete(); err != nil {
		return nil, err
	}
	obj := s.alloc()
	if err := s.initAncestor(obj); err != nil {
		return nil, err
	}
	return instance(obj)
}

func (s serial) initAncestor(obj reflect.Value) error {
	if s.init == nil {
		return nil
	}
	if err := s.init.Call(s.ancestor.Pointer(obj)); err != nil {
		return apis.Wrapf(err, "initializing ancestor %v of %v", s.ancestor.Type, s.t)
	}
	return nil
}

// Ancestor returns the ancestor whose initializer runs on allocation.
func (s serial) Ancestor() resolver.Ancestor {
	return s.ancestor
}

// SerialReflect is Reflect with the serializable ancestor rule.
type SerialReflect struct{ serial }

// NewSerialReflect builds a SerialReflect technique for t.
func NewSerialReflect(t reflect.Type, opts ...Option) (*SerialReflect, error) {
	s, err := newSerial(KindSerialReflect, t, reflectStorage, opts)
	if err != nil {
		return nil, err
	}
	return &SerialReflect{s}, nil
}

// SerialMobile is Slice with the serializable ancestor rule.
type SerialMobile struct{ serial }

// NewSerialMobile builds a SerialMobile technique for t.
func NewSerialMobile(t reflect.Type, opts ...Option) (*SerialMobile, error) {
	s, err := newSerial(KindSerialMobile, t, sliceStorage, opts)
	if err != nil {
		return nil, err
	}
	return &SerialMobile{s}, nil
}

// SerialTemplate is Template with the serializable ancestor rule.
type SerialTemplate struct{ serial }

// NewSerialTemplate builds a SerialTemplate technique for t.
func NewSerialTemplate(t reflect.Type, opts ...Option) (*SerialTemplate, error) {
	s, err := newSerial(KindSerialTemplate, t, templateStorage, opts)
	if err != nil {
		return nil, err
	}
	return &SerialTemplate{s}, nil
}

// Ensure the serialization techniques implement apis.Instantiator.
var (
	_ apis.Instantiator = (*SerialReflect)(nil)
	_ apis.Instantiator = (*SerialMobile)(nil)
	_ apis.Instantiator = (*SerialStream)(nil)
	_ apis.Instantiator = (*SerialTemplate)(nil)
)
