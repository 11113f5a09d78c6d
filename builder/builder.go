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

package builder

import (
	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/instantiator"
	"dirpx.dev/genesis/registry"
	"dirpx.dev/genesis/strategy"
)

// Policy selects which family of strategies a builder composes.
type Policy int

const (
	// Standard builds strategies that run no initializer.
	Standard Policy = iota
	// Serializing builds strategies that follow native deserialization.
	Serializing
)

// New creates and returns a new apis.Builder for the given policy.
func New(policy Policy) apis.Builder {
	return &builder{policy: policy}
}

// NewStd is New(Standard).
func NewStd() apis.Builder {
	return New(Standard)
}

// NewSerializing is New(Serializing).
func NewSerializing() apis.Builder {
	return New(Serializing)
}

// builder carries nothing but its policy.
type builder struct {
	policy Policy
}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// BuildStrategy builds the strategy for p. cfg.MaxDepth and reg are handed
// to every technique the strategy builds; a nil reg selects the default
// registry.
func (b *builder) BuildStrategy(cfg apis.Config, p apis.Platform, reg apis.Registry) apis.Strategy {
	opts := []instantiator.Option{
		instantiator.WithRegistry(registry.Or(reg)),
		instantiator.WithMaxDepth(cfg.MaxDepth),
	}
	if b.policy == Serializing {
		return strategy.NewSerializing(p, opts...)
	}
	return strategy.NewStd(p, opts...)
}
