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

package strategy

import (
	"reflect"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/instantiator"
	"dirpx.dev/genesis/platform"
	uref "dirpx.dev/genesis/utils/reflect"
)

// Serializing picks the technique for the platform that follows native
// deserialization: only the first non-Serializable ancestor is initialized.
type Serializing struct{ fixed }

// Ensure Serializing implements apis.Strategy.
var _ apis.Strategy = (*Serializing)(nil)

// NewSerializing returns the serialization strategy for p.
func NewSerializing(p apis.Platform, opts ...instantiator.Option) *Serializing {
	kind := SerializingKind(p)
	log.WithField("platform", p.Describe()).WithField("kind", kind).Debug("serializing strategy selected")
	return &Serializing{fixed{kind: kind, opts: opts}}
}

// NewInstantiatorOf returns a fresh serialization technique bound to t.
// Types that do not implement apis.Serializable are rejected before any
// technique is built.
func (s *Serializing) NewInstantiatorOf(t reflect.Type, args ...any) (apis.Instantiator, error) {
	if err := uref.CheckInstantiable(t); err != nil {
		return nil, apis.Wrap(err, "serializing strategy")
	}
	if !uref.IsSerializable(t) {
		return nil, apis.Wrapf(apis.ErrNotSerializable, "%v does not implement Serializable", t)
	}
	return s.build(t, args)
}

// SerializingKind maps platform facts to a serialization technique kind.
func SerializingKind(p apis.Platform) instantiator.Kind {
	switch {
	case p.IsThisRuntime(platform.GCCGO):
		return instantiator.KindSerialStream
	case p.IsThisRuntime(platform.GC), p.IsMobileReferenceBased():
		return instantiator.KindSerialReflect
	case p.IsThisRuntime(platform.Mobile):
		return instantiator.KindSerialMobile
	case p.IsThisRuntime(platform.TinyGo):
		return instantiator.KindSerialTemplate
	default:
		return instantiator.KindSerialReflect
	}
}
