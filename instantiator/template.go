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
	"unsafe"

	uref "dirpx.dev/genesis/utils/reflect"
)

// templateStorage lays pointer-free values out in fresh word storage the
// collector never scans; make already hands the words back zeroed. Values
// holding pointers, interfaces and zero-size types fall back to reflect.New
// so the collector keeps seeing them.
func templateStorage(t reflect.Type) storage {
	if t.Kind() == reflect.Interface || t.Size() == 0 || !uref.PointerFree(t) {
		return reflectStorage(t)
	}
	words := (int(t.Size()) + 7) / 8
	return func() reflect.Value {
		buf := make([]uint64, words)
		return reflect.NewAt(t, unsafe.Pointer(&buf[0]))
	}
}
