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

package typology_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/genesis/typology"
)

func TestTypologyString(t *testing.T) {
	tests := []struct {
		name string
		in   typology.Typology
		want string
	}{
		{"Standard", typology.Standard, "STANDARD"},
		{"Serialization", typology.Serialization, "SERIALIZATION"},
		{"NotCompliant", typology.NotCompliant, "NOT_COMPLIANT"},
		{"Unknown", typology.Unknown, "UNKNOWN"},
		{"OutOfRange", typology.Typology(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestParseValid(t *testing.T) {
	tests := []struct {
		input string
		want  typology.Typology
	}{
		{"STANDARD", typology.Standard},
		{"standard", typology.Standard},
		{"  Serialization ", typology.Serialization},
		{"not_compliant", typology.NotCompliant},
		{"NOT-COMPLIANT", typology.NotCompliant},
		{"unknown", typology.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := typology.Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "standard1", "!!"} {
		t.Run(input, func(t *testing.T) {
			got, err := typology.Parse(input)
			require.Error(t, err)
			require.Equal(t, typology.Unknown, got)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	require.Panics(t, func() { typology.MustParse("bogus") })
	require.Equal(t, typology.Standard, typology.MustParse("standard"))
}

func TestTextRoundTrip(t *testing.T) {
	text, err := typology.Serialization.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "SERIALIZATION", string(text))

	var got typology.Typology
	require.NoError(t, got.UnmarshalText(text))
	require.Equal(t, typology.Serialization, got)

	_, err = typology.Typology(-1).MarshalText()
	require.Error(t, err)

	require.Error(t, got.UnmarshalText([]byte(" ")))
}
