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

package platform_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/platform"
)

func TestProbeEnvironmentOverrides(t *testing.T) {
	t.Setenv("GENESIS_RUNTIME_NAME", "gccgo")
	t.Setenv("GENESIS_RUNTIME_VERSION", "go1.18 gccgo (GCC) 13.2.0")
	t.Setenv("GENESIS_SPEC_VERSION", "")

	f, err := platform.Probe()
	require.NoError(t, err)
	require.Equal(t, platform.GCCGO, f.Name)
	require.Equal(t, "GNU", f.Vendor)
	require.Equal(t, "1.18", f.SpecVersion)
	require.Zero(t, f.MobileAPILevel())
}

func TestProbeMobileFastPath(t *testing.T) {
	t.Setenv("GENESIS_RUNTIME_NAME", "gomobile")
	t.Setenv("GENESIS_MOBILE_SDK_INT", "29")
	t.Setenv("BOOTCLASSPATH", "/apex/com.android.art/javalib/core-oj.jar:/system/framework/ext.jar")

	f, err := platform.Probe(platform.WithFs(afero.NewMemMapFs()))
	require.NoError(t, err)
	require.Equal(t, 29, f.MobileAPILevel())
	require.True(t, f.IsMobileReferenceBased())
	require.Equal(t, "The Go Authors", f.Vendor)
}

func TestProbeMobileLegacyPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, platform.DefaultBuildProp, []byte(
		"# begin build properties\nro.build.id=KOT49H\nro.build.version.sdk = 10\nro.product.model=Nexus\n"), 0o644))

	f, err := platform.Probe(
		platform.WithFs(fs),
		platform.WithEnv(platform.Env{RuntimeName: platform.Mobile}),
	)
	require.NoError(t, err)
	require.Equal(t, 10, f.MobileAPILevel())
	require.False(t, f.IsMobileReferenceBased())
}

func TestProbeMobileCustomBuildProp(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/vendor/build.prop", []byte("ro.build.version.sdk=17\n"), 0o644))

	f, err := platform.Probe(
		platform.WithFs(fs),
		platform.WithEnv(platform.Env{RuntimeName: platform.Mobile, MobileBuildProp: "/vendor/build.prop"}),
	)
	require.NoError(t, err)
	require.Equal(t, 17, f.MobileAPILevel())
}

func TestProbeMobileTierUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		props string
	}{
		{"missing file", ""},
		{"missing property", "ro.build.id=KOT49H\n"},
		{"garbled property", "ro.build.version.sdk=ten\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.props != "" {
				require.NoError(t, afero.WriteFile(fs, platform.DefaultBuildProp, []byte(tt.props), 0o644))
			}
			_, err := platform.Probe(
				platform.WithFs(fs),
				platform.WithEnv(platform.Env{RuntimeName: platform.Mobile}),
			)
			require.Error(t, err)
			require.True(t, errors.Is(err, platform.ErrTierUnavailable))
			require.True(t, errors.Is(err, apis.ErrInstantiation))
		})
	}
}

func TestProbeNonMobileIgnoresTier(t *testing.T) {
	f, err := platform.Probe(
		platform.WithFs(afero.NewMemMapFs()),
		platform.WithEnv(platform.Env{RuntimeName: platform.TinyGo, RuntimeVersion: "go1.22.0", BootClassPath: "core-oj.jar"}),
	)
	require.NoError(t, err)
	require.Equal(t, "TinyGo", f.Vendor)
	require.Equal(t, "1.22", f.SpecVersion)
	require.Zero(t, f.MobileAPILevel())
	require.False(t, f.IsMobileReferenceBased())
}

func TestProbeDefaults(t *testing.T) {
	f, err := platform.Probe(platform.WithEnv(platform.Env{}))
	require.NoError(t, err)
	require.NotEmpty(t, f.Name)
	require.NotEmpty(t, f.Version)
	require.NotEmpty(t, f.OS)
	require.NotEmpty(t, f.Arch)
}

func TestCurrentIsStable(t *testing.T) {
	a, errA := platform.Current()
	b, errB := platform.Current()
	require.Equal(t, errA, errB)
	require.Equal(t, a, b)
}
