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

package typology

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Typology describes the observable contract of an allocation technique.
//
// # Overview
//
// A Typology is attached to a technique's definition (its kind), never to a
// particular instance. It answers one question: "what happens to the
// declared initializers of the type when this technique allocates?"
//
// It is pure metadata. Strategies do not dispatch on it; it exists for
// documentation, introspection and for tests that check a technique's
// declared contract against what it actually does.
//
// # Values
//
//   - Standard: no initializer runs at all.
//   - Serialization: only the no-arg initializer of the first ancestor that
//     does not take part in the serializable contract runs, exactly like
//     native deserialization.
//   - NotCompliant: anything else (runs a declared initializer, always
//     fails, ...). Kept for fallback and testing.
//   - Unknown: the technique does not declare a contract.
type Typology int

const (
	// Standard marks a technique that allocates without calling any
	// initializer.
	Standard Typology = iota

	// Serialization marks a technique that follows native deserialization
	// semantics: the no-arg initializer of the first non-serializable
	// ancestor runs, nothing else does.
	Serialization

	// NotCompliant marks a technique that behaves like neither Standard nor
	// Serialization (e.g. calls the type's own initializer, fails all the
	// time).
	NotCompliant

	// Unknown is used when no contract is declared for a technique.
	Unknown
)

// String returns the canonical token of the typology.
//
// Known values map to "STANDARD", "SERIALIZATION", "NOT_COMPLIANT" and
// "UNKNOWN". Out-of-range values print as "Unknown(<n>)" and never panic,
// so corrupted values can still be logged.
func (t Typology) String() string {
	switch t {
	case Standard:
		return "STANDARD"
	case Serialization:
		return "SERIALIZATION"
	case NotCompliant:
		return "NOT_COMPLIANT"
	case Unknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Parse converts a textual token into a Typology.
//
// Parsing is case-insensitive and ignores surrounding whitespace. Both
// "NOT_COMPLIANT" and "NOT-COMPLIANT" are accepted. On error the returned
// value is Unknown and callers must not rely on it.
func Parse(s string) (Typology, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Unknown, errors.New("typology: empty typology")
	}

	switch strings.ReplaceAll(strings.ToUpper(trimmed), "-", "_") {
	case "STANDARD":
		return Standard, nil
	case "SERIALIZATION":
		return Serialization, nil
	case "NOT_COMPLIANT":
		return NotCompliant, nil
	case "UNKNOWN":
		return Unknown, nil
	default:
		return Unknown, errors.Newf("typology: unknown typology %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) Typology {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// MarshalText implements encoding.TextMarshaler.
// Out-of-range values cannot be marshaled.
func (t Typology) MarshalText() ([]byte, error) {
	switch t {
	case Standard, Serialization, NotCompliant, Unknown:
		return []byte(t.String()), nil
	default:
		return nil, errors.Newf("typology: cannot marshal unknown typology %d", int(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Typology) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = value
	return nil
}
