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
	"dirpx.dev/genesis/internal/logger"
	"dirpx.dev/genesis/typology"
	uref "dirpx.dev/genesis/utils/reflect"
)

var log = logger.For("instantiator")

// New builds the technique of the given kind for t.
func New(kind Kind, t reflect.Type, opts ...Option) (apis.Instantiator, error) {
	var (
		inst apis.Instantiator
		err  error
	)
	switch kind {
	case KindReflect:
		inst, err = erase(NewReflect(t, opts...))
	case KindUnsafe:
		inst, err = erase(NewUnsafe(t, opts...))
	case KindSlice:
		inst, err = erase(NewSlice(t, opts...))
	case KindArray:
		inst, err = erase(NewArray(t, opts...))
	case KindTemplate:
		inst, err = erase(NewTemplate(t, opts...))
	case KindSerialReflect:
		inst, err = erase(NewSerialReflect(t, opts...))
	case KindSerialMobile:
		inst, err = erase(NewSerialMobile(t, opts...))
	case KindSerialStream:
		inst, err = erase(NewSerialStream(t, opts...))
	case KindSerialTemplate:
		inst, err = erase(NewSerialTemplate(t, opts...))
	case KindConstructor:
		inst, err = erase(NewConstructor(t, opts...))
	case KindFailing:
		inst, err = erase(NewFailing(t, opts...))
	case KindDelegating:
		inst, err = erase(NewDelegating(t, opts...))
	default:
		return nil, apis.Wrapf(apis.ErrUnsupported, "unknown technique %v", kind)
	}
	if err != nil {
		return nil, err
	}
	log.WithField("type", t).WithField("kind", kind).Debug("technique built")
	return inst, nil
}

// erase converts a typed technique into an apis.Instantiator without
// leaking a typed nil on error.
func erase[X apis.Instantiator](x X, err error) (apis.Instantiator, error) {
	if err != nil {
		return nil, err
	}
	return x, nil
}

// base carries what every technique knows about itself.
type base struct {
	t    reflect.Type
	kind Kind
}

func newBase(kind Kind, t reflect.Type) (base, error) {
	if err := uref.CheckInstantiable(t); err != nil {
		return base{}, apis.Wrapf(err, "building %v technique", kind)
	}
	return base{t: t, kind: kind}, nil
}

// Type returns the type the technique is bound to.
func (b base) Type() reflect.Type { return b.t }

// Kind returns the technique's kind.
func (b base) Kind() Kind { return b.kind }

// Typology returns the contract declared by the technique's kind.
func (b base) Typology() typology.Typology { return b.kind.Typology() }

// checkConcrete fails for abstract types, which have no layout to allocate.
func (b base) checkConcrete() error {
	if uref.IsAbstract(b.t) {
		return apis.Wrapf(apis.ErrAbstractType, "%v technique cannot allocate %v", b.kind, b.t)
	}
	return nil
}

// storage hands out a pointer to fresh zeroed storage for one value.
type storage func() reflect.Value

func reflectStorage(t reflect.Type) storage {
	return func() reflect.Value {
		return reflect.New(t)
	}
}

func sliceStorage(t reflect.Type) storage {
	st := reflect.SliceOf(t)
	return func() reflect.Value {
		return reflect.MakeSlice(st, 1, 1).Index(0).Addr()
	}
}

func arrayStorage(t reflect.Type) storage {
	at := reflect.ArrayOf(1, t)
	return func() reflect.Value {
		return reflect.New(at).Elem().Index(0).Addr()
	}
}

// instance converts the storage pointer into the value handed to callers.
func instance(ptr reflect.Value) (any, error) {
	if !ptr.IsValid() || ptr.IsNil() {
		return nil, apis.Wrap(errors.AssertionFailedf("storage returned no memory"), "allocating")
	}
	return ptr.Interface(), nil
}
