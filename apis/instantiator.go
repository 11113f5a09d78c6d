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

	"dirpx.dev/genesis/typology"
)

// Instantiator is an allocation technique bound to exactly one type.
//
// NewInstance returns a new *T (as any) for the bound type T. Calls are
// independent of each other and do not change the instantiator, so an
// Instantiator is safe for concurrent use.
type Instantiator interface {
	// NewInstance allocates a new instance. args are only honoured by
	// techniques that run declared initializers.
	NewInstance(args ...any) (any, error)
	// Type returns the type this instantiator is bound to.
	Type() reflect.Type
	// Typology returns the contract declared by the technique's kind.
	Typology() typology.Typology
}
