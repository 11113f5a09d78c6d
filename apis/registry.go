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

package apis

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Registry holds the declared initializers of types. An initializer is the
// Go stand-in for a constructor: a function taking *T first, then its
// parameters, optionally returning an error.
type Registry interface {
	// Register declares fn as an initializer of t.
	// Implementations should be idempotent for the same function; registering
	// a different function with the same parameter list is a conflict.
	Register(t reflect.Type, fn any) error
	// Initializers returns the initializers of t in registration order.
	Initializers(t reflect.Type) []Initializer
	// Lookup returns the first initializer of t that accepts args.
	Lookup(t reflect.Type, args ...any) (Initializer, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered initializers.
	Count() int
	// Reset clears all registered initializers.
	Reset()
}

// Entry is a single (type, initializer) association in a Registry snapshot.
type Entry struct {
	// Type is the owner type.
	Type reflect.Type
	// Initializer is the registered initializer.
	Initializer Initializer
}

// Initializer is a validated initializer function for Owner.
type Initializer struct {
	// Owner is the type the initializer belongs to (T, not *T).
	Owner reflect.Type
	// Params lists the parameter types after the *T receiver.
	Params []reflect.Type
	// Fn is the function itself.
	Fn reflect.Value
	// ReturnsError is set when Fn has a single error result.
	ReturnsError bool
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// NewInitializer validates fn as an initializer of t.
// Accepted shapes are func(*T, P1, ..., Pn) and func(*T, P1, ..., Pn) error.
func NewInitializer(t reflect.Type, fn any) (Initializer, error) {
	if t == nil {
		return Initializer{}, errors.New("genesis: nil owner type")
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Initializer{}, errors.Newf("genesis: initializer for %v is not a function", t)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return Initializer{}, errors.Newf("genesis: initializer %v for %v must not be variadic", ft, t)
	}
	if ft.NumIn() == 0 || ft.In(0) != reflect.PointerTo(t) {
		return Initializer{}, errors.Newf("genesis: initializer %v must take *%v as first parameter", ft, t)
	}
	returnsErr := false
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) != errorType {
			return Initializer{}, errors.Newf("genesis: initializer %v may only return error", ft)
		}
		returnsErr = true
	default:
		return Initializer{}, errors.Newf("genesis: initializer %v may only return error", ft)
	}

	params := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		params = append(params, ft.In(i))
	}
	return Initializer{Owner: t, Params: params, Fn: v, ReturnsError: returnsErr}, nil
}

// NoArg reports whether this is the no-arg initializer.
func (i Initializer) NoArg() bool {
	return len(i.Params) == 0
}

// SameSignature reports whether i and o take the same parameter list.
func (i Initializer) SameSignature(o Initializer) bool {
	if len(i.Params) != len(o.Params) {
		return false
	}
	for k := range i.Params {
		if i.Params[k] != o.Params[k] {
			return false
		}
	}
	return true
}

// Accepts reports whether args can be passed to the initializer.
// A nil argument matches any parameter whose zero value is nil.
func (i Initializer) Accepts(args ...any) bool {
	if len(args) != len(i.Params) {
		return false
	}
	for k, a := range args {
		p := i.Params[k]
		if a == nil {
			switch p.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
				continue
			default:
				return false
			}
		}
		if !reflect.TypeOf(a).AssignableTo(p) {
			return false
		}
	}
	return true
}

// Call runs the initializer on target, which must be a *Owner value.
// A panic inside the initializer is recovered and returned as an error.
func (i Initializer) Call(target reflect.Value, args ...any) (err error) {
	if !i.Accepts(args...) {
		return errors.Wrapf(ErrNoSuitableInitializer, "%v does not accept %d argument(s)", i, len(args))
	}
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, target)
	for k, a := range args {
		if a == nil {
			in = append(in, reflect.Zero(i.Params[k]))
			continue
		}
		in = append(in, reflect.ValueOf(a))
	}

	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = errors.Wrapf(rerr, "initializer of %v panicked", i.Owner)
				return
			}
			err = errors.Newf("initializer of %v panicked: %v", i.Owner, r)
		}
	}()

	out := i.Fn.Call(in)
	if i.ReturnsError && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// String formats the initializer as Owner(P1, ..., Pn).
func (i Initializer) String() string {
	s := fmt.Sprint(i.Owner) + "("
	for k, p := range i.Params {
		if k > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}
