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

// Package instantiator holds the allocation techniques.
//
// A technique is bound to one type when it is built and from then on hands out
// fresh *T values. Techniques are grouped by the contract they keep with the
// type's declared initializers (see package typology):
//
//   - Standard techniques (Reflect, Unsafe, Slice, Array, Template) run no
//     initializer at all.
//   - Serialization techniques (SerialReflect, SerialMobile, SerialStream,
//     SerialTemplate) run only the no-arg initializer of the first ancestor
//     that is not Serializable.
//   - Constructor and Failing are not compliant and exist for fallback and
//     testing. Delegating hands the work to an exotic technique registered by
//     name and declares no contract.
//
// Every error returned by this package is marked with apis.ErrInstantiation.
package instantiator
