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

// Platform is the read-only view of the probed runtime that strategies
// consult. platform.Facts is the standard implementation.
type Platform interface {
	// IsThisRuntime reports whether the runtime name starts with prefix.
	IsThisRuntime(prefix string) bool
	// MobileAPILevel returns the constrained platform tier, 0 when not on one.
	MobileAPILevel() int
	// IsMobileReferenceBased reports whether the constrained platform is
	// itself built on the reference runtime.
	IsMobileReferenceBased() bool
	// Describe returns a human-readable summary for logs and diagnostics.
	Describe() string
}
