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

package apis

import "github.com/cockroachdb/errors"

var (
	// ErrInstantiation marks every failure raised while building or running an
	// allocation technique. Test with errors.Is; the original cause stays
	// reachable through the chain.
	ErrInstantiation = errors.New("genesis: instantiation failed")

	// ErrInvalidType is returned for nil or primitive type descriptors.
	ErrInvalidType = errors.New("genesis: type cannot be instantiated")
	// ErrInvalidStrategy is returned when an engine is built without a strategy.
	ErrInvalidStrategy = errors.New("genesis: a strategy can't be nil")
	// ErrNotSerializable is returned when serialization-compatible allocation is
	// requested for a type that does not declare the Serializable capability,
	// or whose non-serializable ancestor cannot be initialized.
	ErrNotSerializable = errors.New("genesis: not serializable")
	// ErrUnsupported is returned when a technique's low-level entry point is
	// not available on this runtime.
	ErrUnsupported = errors.New("genesis: technique unsupported on this platform")
	// ErrAbstractType is returned when allocating an interface type.
	ErrAbstractType = errors.New("genesis: cannot allocate an abstract type")
	// ErrNoSuitableInitializer is returned when no declared initializer
	// matches the requested shape.
	ErrNoSuitableInitializer = errors.New("genesis: no suitable initializer")
	// ErrAlwaysFailing is returned by the failing technique.
	ErrAlwaysFailing = errors.New("genesis: always failing")
)

// Wrap annotates err with msg and marks it as an instantiation failure.
// It returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.WrapWithDepth(1, err, msg), ErrInstantiation)
}

// Wrapf is like Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.WrapWithDepthf(1, err, format, args...), ErrInstantiation)
}

// IsInstantiationError reports whether err carries the ErrInstantiation mark.
func IsInstantiationError(err error) bool {
	return errors.Is(err, ErrInstantiation)
}
