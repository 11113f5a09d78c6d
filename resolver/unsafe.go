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

package resolver

import (
	"reflect"
	"unsafe"
)

// unsafePointer returns the address offset bytes into the value obj points to.
// Going through unsafe avoids reflect's read-only flag on unexported
// embedded fields.
func unsafePointer(obj reflect.Value, offset uintptr) unsafe.Pointer {
	return unsafe.Add(obj.UnsafePointer(), offset)
}
