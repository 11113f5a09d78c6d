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
)

// standard allocates zeroed storage and runs no initializer.
type standard struct {
	base
	alloc storage
}

func newStandard(kind Kind, t reflect.Type, mk func(reflect.Type) storage) (standard, error) {
	b, err := newBase(kind, t)
	if err != nil {
		return standard{}, err
	}
	return standard{base: b, alloc: mk(t)}, nil
}

// NewInstance returns a new zero *T. Arguments are ignored.
func (s standard) NewInstance(...any) (any, error) {
	if err := s.checkConcrete(); err != nil {
		return nil, err
	}
	return instance(s.alloc())
}

// Reflect allocates with reflect.New. It is the technique of the
// reference runtime.
type Reflect struct{ standard }

// NewReflect builds a Reflect technique for t.
func NewReflect(t reflect.Type, _ ...Option) (*Reflect, error) {
	s, err := newStandard(KindReflect, t, reflectStorage)
	if err != nil {
		return nil, err
	}
	return &Reflect{s}, nil
}

// Unsafe allocates through the runtime's raw allocator. It is only
// available on the gc toolchain.
type Unsafe struct{ standard }

// NewUnsafe builds an Unsafe technique for t. It fails with
// apis.ErrUnsupported where the raw allocator cannot be reached.
func NewUnsafe(t reflect.Type, _ ...Option) (*Unsafe, error) {
	if !rawAvailable {
		return nil, apis.Wrapf(apis.ErrUnsupported, "raw allocator unavailable for %v", t)
	}
	s, err := newStandard(KindUnsafe, t, rawStorage)
	if err != nil {
		return nil, err
	}
	return &Unsafe{s}, nil
}

// Slice allocates the backing array of a one-element slice. It is the
// most conservative technique for old mobile tiers.
type Slice struct{ standard }

// NewSlice builds a Slice technique for t.
func NewSlice(t reflect.Type, _ ...Option) (*Slice, error) {
	s, err := newStandard(KindSlice, t, sliceStorage)
	if err != nil {
		return nil, err
	}
	return &Slice{s}, nil
}

// Array allocates a one-element array and hands out its element.
type Array struct{ standard }

// NewArray builds an Array technique for t.
func NewArray(t reflect.Type, _ ...Option) (*Array, error) {
	s, err := newStandard(KindArray, t, arrayStorage)
	if err != nil {
		return nil, err
	}
	return &Array{s}, nil
}

// Template lays pointer-free values out in zeroed word storage.
type Template struct{ standard }

// NewTemplate builds a Template technique for t.
func NewTemplate(t reflect.Type, _ ...Option) (*Template, error) {
	s, err := newStandard(KindTemplate, t, templateStorage)
	if err != nil {
		return nil, err
	}
	return &Template{s}, nil
}

// Ensure the standard techniques implement apis.Instantiator.
var (
	_ apis.Instantiator = (*Reflect)(nil)
	_ apis.Instantiator = (*Unsafe)(nil)
	_ apis.Instantiator = (*Slice)(nil)
	_ apis.Instantiator = (*Array)(nil)
	_ apis.Instantiator = (*Template)(nil)
)
