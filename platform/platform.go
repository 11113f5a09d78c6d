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

package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"

	"dirpx.dev/genesis/apis"
)

// Runtime name prefixes understood by IsThisRuntime.
const (
	// GC is the reference Go toolchain.
	GC = "gc"
	// Mobile is a constrained mobile platform (android, ios), tiered by API level.
	Mobile = "gomobile"
	// GCCGO is the GNU variant.
	GCCGO = "gccgo"
	// TinyGo is the constrained real-time/embedded variant.
	TinyGo = "tinygo"
)

// Facts is an immutable snapshot of the running platform.
type Facts struct {
	// Name is the runtime name, one of the constants above in practice.
	Name string
	// Vendor is the runtime vendor.
	Vendor string
	// Version is the runtime version string, e.g. "go1.25.4".
	Version string
	// SpecVersion is the language specification version, e.g. "1.25".
	SpecVersion string
	// OS and Arch are the target operating system and architecture.
	OS, Arch string
	// APILevel is the mobile API level. Zero when not on a constrained platform.
	APILevel int
	// ReferenceBased reports a mobile platform built on the reference runtime.
	ReferenceBased bool
}

// Ensure Facts implements apis.Platform.
var _ apis.Platform = Facts{}

// IsThisRuntime reports whether the probed runtime name starts with prefix.
func (f Facts) IsThisRuntime(prefix string) bool {
	return strings.HasPrefix(f.Name, prefix)
}

// MobileAPILevel returns the mobile API level, 0 when not on a mobile platform.
func (f Facts) MobileAPILevel() int {
	return f.APILevel
}

// IsMobileReferenceBased reports whether this mobile platform is itself
// built on the reference runtime. Always false off mobile platforms.
func (f Facts) IsMobileReferenceBased() bool {
	return f.APILevel != 0 && f.ReferenceBased
}

// IsAfterVersion reports whether the specification release is at least n.
//
// A single-token version ("9", "11") is that release. A dotted version whose
// major is 1 ("1.8", "1.25") uses the legacy numbering and its minor is the
// release. Any other dotted version uses its major.
func (f Facts) IsAfterVersion(n int) bool {
	release, ok := specRelease(f.SpecVersion)
	return ok && release >= n
}

// IsModular reports whether SpecVersion uses the single-token scheme.
func (f Facts) IsModular() bool {
	s := strings.TrimSpace(f.SpecVersion)
	return s != "" && !strings.Contains(s, ".")
}

// Describe returns a one-line description of the platform.
func (f Facts) Describe() string {
	desc := fmt.Sprintf("Go %s (runtime name=%q, vendor=%q, version=%s, os=%s, arch=%s",
		f.SpecVersion, f.Name, f.Vendor, f.Version, f.OS, f.Arch)
	if f.APILevel != 0 {
		desc += ", API level=" + strconv.Itoa(f.APILevel)
		if f.ReferenceBased {
			desc += ", reference based"
		}
	}
	return desc + ")"
}

func specRelease(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return 0, false
	}
	seg := v.Segments()
	if !strings.Contains(s, ".") {
		return seg[0], true
	}
	if seg[0] == 1 {
		return seg[1], true
	}
	return seg[0], true
}

// specVersionOf derives "major.minor" from a runtime version such as
// "go1.25.4", "go1.26rc1" or "devel go1.26-abcdef ...".
func specVersionOf(runtimeVersion string) string {
	for _, field := range strings.Fields(runtimeVersion) {
		if !strings.HasPrefix(field, "go") {
			continue
		}
		raw := strings.TrimPrefix(field, "go")
		if i := strings.IndexAny(raw, "-+"); i >= 0 {
			raw = raw[:i]
		}
		v, err := version.NewVersion(raw)
		if err != nil {
			continue
		}
		seg := v.Segments()
		return strconv.Itoa(seg[0]) + "." + strconv.Itoa(seg[1])
	}
	return ""
}
