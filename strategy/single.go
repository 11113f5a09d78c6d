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

package strategy

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/instantiator"
)

var (
	typeType         = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	instantiatorType = reflect.TypeOf((*apis.Instantiator)(nil)).Elem()
	errorType        = reflect.TypeOf((*error)(nil)).Elem()
	optionsType      = reflect.TypeOf([]instantiator.Option(nil))
)

// Single always uses the same technique, whatever the platform.
type Single struct {
	factory reflect.Value
	// variadic factories receive opts.
	variadic  bool
	returnErr bool
	opts      []instantiator.Option
}

// Ensure Single implements apis.Strategy.
var _ apis.Strategy = (*Single)(nil)

// NewSingle returns a strategy building every technique with factory.
//
// Accepted factory shapes, with X implementing apis.Instantiator:
//
//	func(reflect.Type) X
//	func(reflect.Type) (X, error)
//	func(reflect.Type, ...instantiator.Option) (X, error)
//
// The per-kind constructors of package instantiator all fit the last shape.
// Any other value fails with apis.ErrUnsupported.
func NewSingle(factory any, opts ...instantiator.Option) (*Single, error) {
	v := reflect.ValueOf(factory)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, apis.Wrapf(apis.ErrUnsupported, "technique factory %T is not a function", factory)
	}
	ft := v.Type()

	switch {
	case ft.NumIn() == 1 && !ft.IsVariadic() && ft.In(0) == typeType:
	case ft.NumIn() == 2 && ft.IsVariadic() && ft.In(0) == typeType && ft.In(1) == optionsType:
	default:
		return nil, apis.Wrapf(apis.ErrUnsupported, "technique factory %v has an unsupported signature", ft)
	}

	switch {
	case ft.NumOut() == 1 && ft.Out(0).Implements(instantiatorType):
	case ft.NumOut() == 2 && ft.Out(0).Implements(instantiatorType) && ft.Out(1) == errorType:
	default:
		return nil, apis.Wrapf(apis.ErrUnsupported, "technique factory %v must return an apis.Instantiator", ft)
	}

	return &Single{
		factory:   v,
		variadic:  ft.IsVariadic(),
		returnErr: ft.NumOut() == 2,
		opts:      opts,
	}, nil
}

// NewSingleKind returns a strategy that always builds techniques of kind.
func NewSingleKind(kind instantiator.Kind, opts ...instantiator.Option) *Single {
	s, err := NewSingle(func(t reflect.Type, opts ...instantiator.Option) (apis.Instantiator, error) {
		return instantiator.New(kind, t, opts...)
	}, opts...)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "kind factory rejected"))
	}
	return s
}

// NewInstantiatorOf builds the technique for t with the factory.
func (s *Single) NewInstantiatorOf(t reflect.Type, args ...any) (apis.Instantiator, error) {
	var out []reflect.Value
	if s.variadic {
		opts := withArgs(s.opts, args)
		out = s.factory.CallSlice([]reflect.Value{reflect.ValueOf(&t).Elem(), reflect.ValueOf(opts)})
	} else {
		out = s.factory.Call([]reflect.Value{reflect.ValueOf(&t).Elem()})
	}

	if s.returnErr && !out[1].IsNil() {
		return nil, apis.Wrap(out[1].Interface().(error), "single strategy")
	}
	if isNil(out[0]) {
		return nil, apis.Wrap(errors.AssertionFailedf("factory returned no technique for %v", t), "single strategy")
	}
	inst := out[0].Interface().(apis.Instantiator)
	if inst.Type() != t {
		return nil, apis.Wrap(errors.AssertionFailedf("factory built a technique for %v, not %v", inst.Type(), t), "single strategy")
	}
	return inst, nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
