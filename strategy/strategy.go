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
	"dirpx.dev/genesis/internal/logger"
)

var log = logger.For("strategy")

// fixed builds every instantiator with the same technique kind. The kind is
// a pure function of the platform facts, so it is chosen once.
type fixed struct {
	kind instantiator.Kind
	opts []instantiator.Option
}

// Kind returns the technique kind this strategy builds.
func (f fixed) Kind() instantiator.Kind {
	return f.kind
}

func (f fixed) build(t reflect.Type, args []any) (apis.Instantiator, error) {
	return instantiator.New(f.kind, t, withArgs(f.opts, args)...)
}

// withArgs appends a WithArgs option when args were given, without
// touching the shared opts backing array.
func withArgs(opts []instantiator.Option, args []any) []instantiator.Option {
	if len(args) == 0 {
		return opts
	}
	out := make([]instantiator.Option, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, instantiator.WithArgs(args...))
}
