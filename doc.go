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

// Package genesis allocates live instances of arbitrary Go types without
// running any of their declared initialization logic.
//
// The value handed back is a *T that is indistinguishable from one built
// normally: same runtime type, same layout, ready for field assignment or
// for a decoder to fill in. A second mode allocates the way native
// deserialization does: declared initializers are skipped, except for the
// nearest ancestor that does not take part in the Serializable contract.
//
// # Design
//
// genesis is assembled from small, replaceable layers:
//
//   - Registry: the declared initializers of types. Go has no
//     constructors, so a type declares them explicitly:
//
//     registry.MustRegister(reflect.TypeOf(Conn{}), func(c *Conn) { c.buf = make([]byte, 4096) })
//
//     A type without registered initializers behaves as if it had a no-arg
//     initializer that keeps the zero value.
//
//   - Instantiator: an allocation technique bound to one type (package
//     instantiator). Each technique belongs to a kind, and each kind
//     declares a typology (package typology) stating which initializers it
//     runs.
//
//   - Strategy: a stateless policy that picks the technique for a type
//     from the platform facts (package strategy). Std never runs an
//     initializer; Serializing follows native deserialization; Single
//     always uses the same technique.
//
//   - Builder: composes a Strategy from a Config, the platform facts and a
//     Registry (package builder).
//
//   - Engine: the facade. It validates the type, asks its Strategy for an
//     instantiator on first use, caches it per type and allocates.
//
// # Typical use
//
//	e, err := genesis.NewStd()
//	if err != nil {
//		return err
//	}
//	conn, err := genesis.Make[Conn](e) // zero Conn, no initializer ran
//
// For serialization frameworks:
//
//	e, err := genesis.NewSerializer(config.WithRegistry(reg))
//	obj, err := e.NewInstance(reflect.TypeOf(Record{}))
//
// # Concurrency model
//
// An Engine is safe for concurrent use. The per-type cache is a sync.Map
// filled with LoadOrStore: when two goroutines race on the first use of a
// type, both may build an instantiator but only the first one stored is
// ever returned. Instantiators are immutable once built. Platform facts are
// probed once per process.
//
// # Errors
//
// Every failure is marked with apis.ErrInstantiation and keeps its cause
// matchable with errors.Is (apis.ErrInvalidType, apis.ErrNotSerializable,
// apis.ErrAbstractType, ...). Nothing is retried and no partially
// initialized object is ever returned.
package genesis
