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

package instantiator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/typology"
)

// Kind identifies an allocation technique.
type Kind int

const (
	// KindReflect allocates with reflect.New.
	KindReflect Kind = iota
	// KindUnsafe allocates through the runtime's raw allocator.
	KindUnsafe
	// KindSlice allocates the backing array of a one-element slice.
	KindSlice
	// KindArray allocates a one-element array and hands out its element.
	KindArray
	// KindTemplate carves pointer-free values out of zeroed word storage.
	KindTemplate
	// KindSerialReflect is KindReflect plus the serializable ancestor rule.
	KindSerialReflect
	// KindSerialMobile is KindSlice plus the serializable ancestor rule.
	KindSerialMobile
	// KindSerialStream replays a class descriptor stream before allocating.
	KindSerialStream
	// KindSerialTemplate is KindTemplate plus the serializable ancestor rule.
	KindSerialTemplate
	// KindConstructor runs the full initializer chain.
	KindConstructor
	// KindFailing always fails to allocate.
	KindFailing
	// KindDelegating delegates to an exotic technique registered by name.
	KindDelegating
)

var kindNames = [...]string{
	KindReflect:        "reflect",
	KindUnsafe:         "unsafe",
	KindSlice:          "slice",
	KindArray:          "array",
	KindTemplate:       "template",
	KindSerialReflect:  "serial-reflect",
	KindSerialMobile:   "serial-mobile",
	KindSerialStream:   "serial-stream",
	KindSerialTemplate: "serial-template",
	KindConstructor:    "constructor",
	KindFailing:        "failing",
	KindDelegating:     "delegating",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// String returns the kind's token, or "Kind(<n>)" for out-of-range values.
func (k Kind) String() string {
	if k.valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Typology returns the contract declared by techniques of this kind.
func (k Kind) Typology() typology.Typology {
	switch k {
	case KindReflect, KindUnsafe, KindSlice, KindArray, KindTemplate:
		return typology.Standard
	case KindSerialReflect, KindSerialMobile, KindSerialStream, KindSerialTemplate:
		return typology.Serialization
	case KindConstructor, KindFailing:
		return typology.NotCompliant
	default:
		return typology.Unknown
	}
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind converts a token into a Kind. Matching is case-insensitive and
// "_" is accepted in place of "-".
func ParseKind(s string) (Kind, error) {
	token := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range kindNames {
		if name == token {
			return Kind(i), nil
		}
	}
	return 0, apis.Wrap(errors.Newf("unknown kind %q", s), "instantiator")
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, apis.Wrap(errors.Newf("cannot marshal unknown kind %d", int(k)), "instantiator")
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
