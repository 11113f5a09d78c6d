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
	"reflect"
)

// Strategy picks the allocation technique for a type. It is a stateless
// policy: a pure function of (type, platform facts) that does not remember
// what it built. Caching is the engine's job.
type Strategy interface {
	// NewInstantiatorOf returns a fresh Instantiator bound to t.
	// args are optional initializer arguments; most techniques ignore them.
	NewInstantiatorOf(t reflect.Type, args ...any) (Instantiator, error)
}
