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

package resolver

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/genesis/config"
	uref "dirpx.dev/genesis/utils/reflect"
)

// Ancestor is a type in the embedding chain of a requested type.
type Ancestor struct {
	// Type is the ancestor type. It is nil when Root is set.
	Type reflect.Type
	// Depth is the number of embedding hops from the requested type (0 = itself).
	Depth int
	// Offset is the byte offset of the ancestor's storage inside the requested type.
	Offset uintptr
	// Root reports the implicit root past the last embedded ancestor.
	// It is never serializable and its initializer does nothing.
	Root bool
}

// Parent returns the embedded ancestor of t: the struct type embedded by
// value as t's first field. It returns false when t has none.
func Parent(t reflect.Type) (reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Struct || t.NumField() == 0 {
		return nil, false
	}
	f := t.Field(0)
	if !f.Anonymous || f.Type.Kind() != reflect.Struct {
		return nil, false
	}
	return f.Type, true
}

// Ancestry returns t followed by its embedded ancestors, nearest first.
// The implicit root is not included. It fails when the chain is longer than
// maxDepth hops; maxDepth <= 0 means config.DefaultMaxDepth.
func Ancestry(t reflect.Type, maxDepth int) ([]Ancestor, error) {
	if t == nil {
		return nil, errors.New("genesis(resolver): nil reflect.Type provided")
	}
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}

	out := []Ancestor{{Type: t}}
	var offset uintptr
	cur := t
	for {
		p, ok := Parent(cur)
		if !ok {
			return out, nil
		}
		if len(out) > maxDepth {
			return nil, errors.AssertionFailedf(
				"bad type hierarchy: %v has more than %d embedded ancestors", t, maxDepth)
		}
		offset += cur.Field(0).Offset
		out = append(out, Ancestor{Type: p, Depth: len(out), Offset: offset})
		cur = p
	}
}

// FirstNonSerializable walks the ancestry of t upward while the current type
// still declares the Serializable capability and returns the first one that
// does not. If every embedded ancestor is serializable, the implicit root is
// returned. Exhausting maxDepth is an assertion failure: well-formed types
// always bottom out at a non-participating ancestor.
func FirstNonSerializable(t reflect.Type, maxDepth int) (Ancestor, error) {
	chain, err := Ancestry(t, maxDepth)
	if err != nil {
		return Ancestor{}, err
	}
	for _, a := range chain {
		if !uref.IsSerializable(a.Type) {
			return a, nil
		}
	}
	last := chain[len(chain)-1]
	return Ancestor{Depth: last.Depth + 1, Offset: last.Offset, Root: true}, nil
}

// Pointer returns a *Ancestor.Type value aliasing the ancestor's storage
// inside obj, which must be a non-nil pointer to the requested type.
// It returns an invalid Value for the implicit root.
func (a Ancestor) Pointer(obj reflect.Value) reflect.Value {
	if a.Root {
		return reflect.Value{}
	}
	if a.Depth == 0 {
		return obj
	}
	return reflect.NewAt(a.Type, unsafePointer(obj, a.Offset))
}
