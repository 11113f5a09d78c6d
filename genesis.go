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

package genesis

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/builder"
	"dirpx.dev/genesis/config"
	"dirpx.dev/genesis/instantiator"
	"dirpx.dev/genesis/internal/logger"
	"dirpx.dev/genesis/platform"
	"dirpx.dev/genesis/registry"
	uref "dirpx.dev/genesis/utils/reflect"
)

var log = logger.For("engine")

// Engine hands out instances of arbitrary types through a Strategy and
// keeps the instantiator built for each type.
type Engine struct {
	cfg      apis.Config
	strategy apis.Strategy
	// platform describes the facts the strategy was built for, if known.
	platform string
	// built is set when the strategy was composed from cfg.
	built bool

	cache sync.Map // key: reflect.Type, val: apis.Instantiator
	size  atomic.Int64
}

// New returns an engine using s. A nil strategy fails with
// apis.ErrInvalidStrategy.
//
// s is used as given: config.WithRegistry and config.WithMaxDepth only take
// effect through Build, so the dump of an engine made by New leaves MaxDepth
// out.
func New(s apis.Strategy, opts ...config.Option) (*Engine, error) {
	if s == nil {
		return nil, apis.Wrap(apis.ErrInvalidStrategy, "genesis")
	}
	return &Engine{cfg: config.NewConfig(opts...), strategy: s}, nil
}

// Build returns an engine whose strategy b builds for p. The registry is
// the one given with config.WithRegistry, or the default registry.
func Build(b apis.Builder, p apis.Platform, opts ...config.Option) (*Engine, error) {
	if b == nil || p == nil {
		return nil, apis.Wrap(apis.ErrInvalidStrategy, "genesis: builder and platform are required")
	}
	cfg := config.NewConfig(opts...)
	e, err := New(b.BuildStrategy(cfg, p, registry.Or(cfg.Registry)), opts...)
	if err != nil {
		return nil, err
	}
	e.platform = p.Describe()
	e.built = true
	return e, nil
}

// NewStd returns an engine that allocates without running any initializer,
// using the best technique for the running platform.
func NewStd(opts ...config.Option) (*Engine, error) {
	facts, err := platform.Current()
	if err != nil {
		return nil, err
	}
	return Build(builder.NewStd(), facts, opts...)
}

// NewSerializer returns an engine that allocates like native
// deserialization on the running platform.
func NewSerializer(opts ...config.Option) (*Engine, error) {
	facts, err := platform.Current()
	if err != nil {
		return nil, err
	}
	return Build(builder.NewSerializing(), facts, opts...)
}

// NewInstance returns a new *T (as any) for t. args go to this allocation
// only, for techniques that run declared initializers; they are never bound
// into the instantiator the engine keeps.
func (e *Engine) NewInstance(t reflect.Type, args ...any) (any, error) {
	inst, err := e.InstantiatorOf(t)
	if err != nil {
		return nil, err
	}
	return inst.NewInstance(args...)
}

// InstantiatorOf returns the instantiator for t. With caching on, every
// call for the same type returns the same instantiator; when two callers
// race on a type's first use, the first one stored wins and the other is
// dropped. The cache is keyed by type alone, so args are only handed to
// the strategy when caching is off.
func (e *Engine) InstantiatorOf(t reflect.Type, args ...any) (apis.Instantiator, error) {
	if err := uref.CheckInstantiable(t); err != nil {
		return nil, apis.Wrap(err, "genesis")
	}
	if !e.cfg.UseCache {
		return e.build(t, args)
	}

	if v, ok := e.cache.Load(t); ok {
		return v.(apis.Instantiator), nil
	}
	inst, err := e.build(t, nil)
	if err != nil {
		return nil, err
	}
	v, loaded := e.cache.LoadOrStore(t, inst)
	if !loaded {
		e.size.Add(1)
		log.WithField("type", t).WithField("typology", inst.Typology()).Debug("instantiator cached")
	}
	return v.(apis.Instantiator), nil
}

func (e *Engine) build(t reflect.Type, args []any) (apis.Instantiator, error) {
	inst, err := e.strategy.NewInstantiatorOf(t, args...)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, apis.Wrap(errors.AssertionFailedf("%T returned no instantiator for %v", e.strategy, t), "genesis")
	}
	if inst.Type() != t {
		return nil, apis.Wrap(errors.AssertionFailedf("%T built an instantiator of %v for %v", e.strategy, inst.Type(), t), "genesis")
	}
	return inst, nil
}

// Len returns the number of cached instantiators.
func (e *Engine) Len() int {
	return int(e.size.Load())
}

// Config returns the engine's configuration.
func (e *Engine) Config() apis.Config {
	return e.cfg
}

// Strategy returns the engine's strategy.
func (e *Engine) Strategy() apis.Strategy {
	return e.strategy
}

// String describes the engine, e.g.
// "*genesis.Engine using *strategy.Std with caching".
func (e *Engine) String() string {
	caching := "without"
	if e.cfg.UseCache {
		caching = "with"
	}
	return fmt.Sprintf("%T using %T %s caching", e, e.strategy, caching)
}

// DumpJSON writes the engine and its cached instantiators as JSON, sorted
// by type name.
func (e *Engine) DumpJSON() ([]byte, error) {
	type entry struct {
		name string
		inst apis.Instantiator
	}
	var entries []entry
	e.cache.Range(func(k, v any) bool {
		entries = append(entries, entry{name: k.(reflect.Type).String(), inst: v.(apis.Instantiator)})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	w := jwriter.NewWriter()
	obj := w.Object()
	obj.Name("Engine").String(e.String())
	if e.platform != "" {
		obj.Name("Platform").String(e.platform)
	}
	obj.Name("Caching").Bool(e.cfg.UseCache)
	if e.built {
		obj.Name("MaxDepth").Int(e.cfg.MaxDepth)
	}

	arr := obj.Name("Instantiators").Array()
	for _, en := range entries {
		item := arr.Object()
		item.Name("Type").String(en.name)
		if k, ok := en.inst.(interface{ Kind() instantiator.Kind }); ok {
			item.Name("Kind").String(k.Kind().String())
		}
		item.Name("Typology").String(en.inst.Typology().String())
		item.End()
	}
	arr.End()
	obj.End()

	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "genesis: dumping engine")
	}
	return w.Bytes(), nil
}

// Make returns a new *T allocated by e.
func Make[T any](e *Engine, args ...any) (*T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	obj, err := e.NewInstance(t, args...)
	if err != nil {
		return nil, err
	}
	p, ok := obj.(*T)
	if !ok {
		return nil, apis.Wrap(errors.AssertionFailedf("%v allocated %T", t, obj), "genesis")
	}
	return p, nil
}

// InstantiatorFor returns the instantiator e uses for T.
func InstantiatorFor[T any](e *Engine) (apis.Instantiator, error) {
	return e.InstantiatorOf(reflect.TypeOf((*T)(nil)).Elem())
}
