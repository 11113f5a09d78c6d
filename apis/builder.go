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

// Builder composes a Strategy from a Config and the platform facts.
// Implementations decide which selector policy (plain, serialization) to build.
type Builder interface {
	// BuildStrategy constructs a Strategy for cfg on the platform p.
	// reg is the registry techniques should consult; it is never nil.
	BuildStrategy(cfg Config, p Platform, reg Registry) Strategy
}
