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
	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/registry"
)

// Option customizes how a technique is built.
type Option func(*options)

type options struct {
	registry apis.Registry
	maxDepth int
	args     []any
	exotic   string
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.registry = registry.Or(o.registry)
	return o
}

// WithRegistry sets the registry declared initializers are looked up in.
// Nil selects the process-wide default registry.
func WithRegistry(reg apis.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithMaxDepth bounds the ancestry walk. Values <= 0 select the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithArgs binds default initializer arguments. Only the constructor
// technique uses them, when NewInstance is called without arguments.
func WithArgs(args ...any) Option {
	return func(o *options) {
		o.args = append([]any(nil), args...)
	}
}

// WithExotic names the exotic technique a delegating technique hands over to.
func WithExotic(name string) Option {
	return func(o *options) {
		o.exotic = name
	}
}
