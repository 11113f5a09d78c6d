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

package reflect

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/genesis/apis"
)

// IsPrimitive reports whether t cannot be instantiated as an object:
// nil, or a basic kind (bool, numbers, string, uintptr, unsafe.Pointer).
func IsPrimitive(t reflect.Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// IsAbstract reports whether t has no concrete layout (interface kinds).
func IsAbstract(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface
}

// CheckInstantiable returns apis.ErrInvalidType, wrapped, when t is primitive.
func CheckInstantiable(t reflect.Type) error {
	if t == nil {
		return errors.Wrap(apis.ErrInvalidType, "nil reflect.Type provided")
	}
	if IsPrimitive(t) {
		return errors.Wrapf(apis.ErrInvalidType, "primitive type %v can't be instantiated", t)
	}
	return nil
}

// IsSerializable reports whether t declares (or inherits) apis.Serializable.
func IsSerializable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Interface {
		return t.Implements(apis.SerializableType)
	}
	return reflect.PointerTo(t).Implements(apis.SerializableType)
}

// PointerFree reports whether values of t contain no pointers the garbage
// collector must see, so they can live in plain word storage.
func PointerFree(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || PointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !PointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Pointer, Slice, Map, Chan, Func, Interface, String, UnsafePointer.
		return false
	}
}
