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
)

// Mobile API level thresholds of the standard technique ladder.
const (
	// SliceTierMax is the last API level served by the slice technique.
	SliceTierMax = 10
	// ArrayTierMax is the last API level served by the array technique.
	ArrayTierMax = 17
)

// Std picks the best technique for the platform that runs no initializer.
type Std struct{ fixed }

// Ensure Std implements apis.Strategy.
var _ apis.Strategy = (*Std)(nil)

// NewStd returns the standard strategy for p. opts are passed to every
// technique it builds.
func NewStd(p apis.Platform, opts ...instantiator.Option) *Std {
	kind := StdKind(p)
	log.WithField("platform", p.Describe()).WithField("kind", kind).Debug("standard strategy selected")
	return &Std{fixed{kind: kind, opts: opts}}
}

// NewInstantiatorOf returns a fresh standard technique bound to t.
func (s *Std) NewInstantiatorOf(t reflect.Type, args ...any) (apis.Instantiator, error) {
	return s.build(t, args)
}

// StdKind maps platform facts to a standard technique kind.
func StdKind(p apis.Platform) instantiator.Kind {
	switch {
	case p.IsThisRuntime(platform.GCCGO):
		return instantiator.KindArray
	case p.IsThisRuntime(platform.GC):
		return instantiator.KindReflect
	case p.IsThisRuntime(platform.Mobile):
		switch level := p.MobileAPILevel(); {
		case p.IsMobileReferenceBased():
			return instantiator.KindUnsafe
		case level <= SliceTierMax:
			return instantiator.KindSlice
		case level <= ArrayTierMax:
			return instantiator.KindArray
		default:
			return instantiator.KindTemplate
		}
	case p.IsThisRuntime(platform.TinyGo):
		return instantiator.KindTemplate
	default:
		return instantiator.KindUnsafe
	}
}
