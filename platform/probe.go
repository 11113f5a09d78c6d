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
	"bufio"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/internal/logger"
)

const (
	// EnvPrefix prefixes every environment override read by Probe.
	EnvPrefix = "GENESIS"
	// DefaultBuildProp is where mobile platforms publish their build properties.
	DefaultBuildProp = "/system/build.prop"
	// sdkProperty is the build property holding the API level.
	sdkProperty = "ro.build.version.sdk"
	// referenceMarker in the boot class path identifies a reference-based mobile runtime.
	referenceMarker = "core-oj.jar"
)

// ErrTierUnavailable is returned when a mobile platform's API level cannot be read.
var ErrTierUnavailable = errors.New("genesis(platform): mobile API level unavailable")

var log = logger.For("platform")

// Env lists the environment overrides. Empty values fall back to what the
// running binary reports.
type Env struct {
	RuntimeName    string `envconfig:"RUNTIME_NAME"`
	RuntimeVendor  string `envconfig:"RUNTIME_VENDOR"`
	RuntimeVersion string `envconfig:"RUNTIME_VERSION"`
	SpecVersion    string `envconfig:"SPEC_VERSION"`
	// MobileSDKInt is the fast path for the mobile API level.
	MobileSDKInt int `envconfig:"MOBILE_SDK_INT"`
	// MobileBuildProp is the legacy path: a build.prop file to read the level from.
	MobileBuildProp string `envconfig:"MOBILE_BUILD_PROP" default:"/system/build.prop"`
	// BootClassPath is also read unprefixed, as mobile platforms export it.
	BootClassPath string `envconfig:"BOOTCLASSPATH"`
}

type probeOptions struct {
	fs     afero.Fs
	env    *Env
	lookup bool
}

// Option customizes Probe.
type Option func(*probeOptions)

// WithFs sets the filesystem the legacy build.prop path is read from.
func WithFs(fs afero.Fs) Option {
	return func(o *probeOptions) {
		o.fs = fs
	}
}

// WithEnv replaces the process environment with env. Nothing is read from
// os.Getenv when this option is used.
func WithEnv(env Env) Option {
	return func(o *probeOptions) {
		o.env = &env
		o.lookup = false
	}
}

// Probe inspects the running platform and returns a fresh snapshot.
// Most callers want Current, which probes once per process.
func Probe(opts ...Option) (Facts, error) {
	o := probeOptions{fs: afero.NewOsFs(), lookup: true}
	for _, opt := range opts {
		opt(&o)
	}

	var env Env
	if o.lookup {
		if err := envconfig.Process(EnvPrefix, &env); err != nil {
			return Facts{}, apis.Wrap(err, "reading platform environment")
		}
	} else {
		env = *o.env
	}

	f := Facts{
		Name:        firstNonEmpty(env.RuntimeName, runtimeName()),
		Version:     firstNonEmpty(env.RuntimeVersion, runtime.Version()),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		SpecVersion: env.SpecVersion,
	}
	f.Vendor = firstNonEmpty(env.RuntimeVendor, vendorOf(f.Name))
	if f.SpecVersion == "" {
		f.SpecVersion = specVersionOf(f.Version)
	}

	if f.IsThisRuntime(Mobile) {
		level, err := mobileAPILevel(o.fs, env)
		if err != nil {
			return Facts{}, err
		}
		f.APILevel = level
		f.ReferenceBased = strings.Contains(strings.ToLower(env.BootClassPath), referenceMarker)
	}

	log.WithField("platform", f.Describe()).Debug("platform probed")
	return f, nil
}

var current = sync.OnceValues(func() (Facts, error) {
	return Probe()
})

// Current returns the facts of this process. They are probed on first use
// and never change afterwards; a probe failure is returned on every call.
func Current() (Facts, error) {
	return current()
}

// MustCurrent is like Current but panics on error.
func MustCurrent() Facts {
	f, err := Current()
	if err != nil {
		panic(err)
	}
	return f
}

// mobileAPILevel tries the fast path first, then the legacy build.prop
// path. It never defaults to zero: failing both is an error.
func mobileAPILevel(fs afero.Fs, env Env) (int, error) {
	if env.MobileSDKInt > 0 {
		return env.MobileSDKInt, nil
	}

	path := firstNonEmpty(env.MobileBuildProp, DefaultBuildProp)
	file, err := fs.Open(path)
	if err != nil {
		return 0, apis.Wrapf(errors.Mark(err, ErrTierUnavailable), "opening %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok || strings.TrimSpace(key) != sdkProperty {
			continue
		}
		level, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, apis.Wrapf(errors.Mark(err, ErrTierUnavailable), "parsing %s", sdkProperty)
		}
		return level, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, apis.Wrapf(errors.Mark(err, ErrTierUnavailable), "reading %s", path)
	}
	return 0, apis.Wrapf(ErrTierUnavailable, "%s not found in %s", sdkProperty, path)
}

// runtimeName maps the running binary to a runtime name.
func runtimeName() string {
	if compiler == TinyGo {
		return TinyGo
	}
	switch runtime.GOOS {
	case "android", "ios":
		return Mobile
	}
	return compiler
}

func vendorOf(name string) string {
	switch {
	case strings.HasPrefix(name, GCCGO):
		return "GNU"
	case strings.HasPrefix(name, TinyGo):
		return "TinyGo"
	case strings.HasPrefix(name, GC), strings.HasPrefix(name, Mobile):
		return "The Go Authors"
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
