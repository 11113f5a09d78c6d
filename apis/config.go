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

// Config carries read-only knobs for an engine and the techniques it builds.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// UseCache controls whether the engine keeps one instantiator per type.
	// If false, every lookup builds a fresh instantiator through the strategy.
	UseCache bool

	// MaxDepth limits how many embedded ancestors are walked when looking for
	// the first non-serializable ancestor or running an initializer chain.
	// Acts as a safety guard against pathological nesting.
	MaxDepth int

	// Registry holds the declared initializers consulted by serialization and
	// constructor techniques. Nil means the process-wide default registry.
	Registry Registry
}
