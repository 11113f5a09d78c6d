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

package config

import (
	"dirpx.dev/genesis/apis"
)

const (
	// DefaultUseCache represents the default for UseCache.
	// When true, engines keep one instantiator per type.
	DefaultUseCache = true
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 16 embedded ancestors should be sufficient for all practical purposes.
	DefaultMaxDepth = 16
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
// Registry is left nil, which means the process-wide default registry.
func DefaultConfig() apis.Config {
	return apis.Config{
		UseCache: DefaultUseCache,
		MaxDepth: DefaultMaxDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithCache sets the UseCache option.
func WithCache(use bool) Option {
	return func(c *apis.Config) {
		c.UseCache = use
	}
}

// WithMaxDepth sets the MaxDepth option.
// A negative value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithRegistry sets the initializer registry. Nil restores the default registry.
func WithRegistry(reg apis.Registry) Option {
	return func(c *apis.Config) {
		c.Registry = reg
	}
}
