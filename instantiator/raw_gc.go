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

//go:build gc && !tinygo

package instantiator

import (
	"reflect"
	"unsafe"
)

const rawAvailable = true

//go:linkname unsafe_New reflect.unsafe_New
func unsafe_New(rtype unsafe.Pointer) unsafe.Pointer

// rawStorage allocates zeroed memory for t straight from the runtime.
// The runtime type lives in the data word of the reflect.Type interface.
func rawStorage(t reflect.Type) storage {
	rtype := (*[2]unsafe.Pointer)(unsafe.Pointer(&t))[1]
	return func() reflect.Value {
		return reflect.NewAt(t, unsafe_New(rtype))
	}
}
