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

package instantiator_test

import (
	"io"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/instantiator"
	"dirpx.dev/genesis/registry"
	"dirpx.dev/genesis/typology"
)

// Base is not serializable; its no-arg initializer must run on
// serialization-compatible allocation.
type Base struct{ Val int }

// Middle is the first serializable type of the chain.
type Middle struct {
	Base
	Count int
}

func (*Middle) GenesisSerializable() {}

// Leaf inherits Serializable from Middle.
type Leaf struct {
	Middle
	Name string
}

type Plain struct {
	A int64
	B [3]uint16
}

type Refs struct {
	P *int
	S []string
	M map[string]int
}

type Orphan struct{ X int }

type AllSerial struct{ X int }

func (AllSerial) GenesisSerializable() {}

type NeedsArg struct{ X int }

type Child struct{ NeedsArg }

func (*Child) GenesisSerializable() {}

var (
	baseT   = reflect.TypeOf(Base{})
	middleT = reflect.TypeOf(Middle{})
	leafT   = reflect.TypeOf(Leaf{})
)

// tracing returns a registry whose initializers record their calls.
func tracing(t *testing.T) (apis.Registry, *[]string) {
	t.Helper()
	reg := registry.New()
	trace := &[]string{}
	require.NoError(t, reg.Register(baseT, func(b *Base) {
		*trace = append(*trace, "Base")
		b.Val = 33
	}))
	require.NoError(t, reg.Register(middleT, func(*Middle) {
		*trace = append(*trace, "Middle")
	}))
	require.NoError(t, reg.Register(leafT, func(*Leaf) {
		*trace = append(*trace, "Leaf")
	}))
	require.NoError(t, reg.Register(leafT, func(l *Leaf, name string) {
		*trace = append(*trace, "Leaf(string)")
		l.Name = name
	}))
	return reg, trace
}

func requireIs(t *testing.T, err error, targets ...error) {
	t.Helper()
	require.Error(t, err)
	for _, target := range targets {
		require.True(t, errors.Is(err, target), "%v is not %v", err, target)
	}
}

// build returns the technique or skips when the runtime cannot host it.
func build(t *testing.T, kind instantiator.Kind, typ reflect.Type, opts ...instantiator.Option) apis.Instantiator {
	t.Helper()
	inst, err := instantiator.New(kind, typ, opts...)
	if kind == instantiator.KindUnsafe && errors.Is(err, apis.ErrUnsupported) {
		t.Skip("raw allocator unavailable on this toolchain")
	}
	require.NoError(t, err)
	return inst
}

func TestTypologyMatchesBehaviour(t *testing.T) {
	for _, kind := range instantiator.Kinds() {
		if kind == instantiator.KindDelegating {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			reg, trace := tracing(t)
			inst := build(t, kind, leafT, instantiator.WithRegistry(reg))
			require.Equal(t, kind.Typology(), inst.Typology())
			require.Equal(t, leafT, inst.Type())

			obj, err := inst.NewInstance()
			if kind == instantiator.KindFailing {
				requireIs(t, err, apis.ErrAlwaysFailing, apis.ErrInstantiation)
				return
			}
			require.NoError(t, err)
			leaf, ok := obj.(*Leaf)
			require.True(t, ok, "got %T", obj)

			switch kind.Typology() {
			case typology.Standard:
				require.Empty(t, *trace)
				require.Zero(t, *leaf)
			case typology.Serialization:
				require.Equal(t, []string{"Base"}, *trace)
				require.Equal(t, 33, leaf.Val)
				require.Zero(t, leaf.Count)
			case typology.NotCompliant:
				require.Equal(t, []string{"Base", "Middle", "Leaf"}, *trace)
				require.Equal(t, 33, leaf.Val)
			}
		})
	}
}

func TestStandardTechniques(t *testing.T) {
	kinds := []instantiator.Kind{
		instantiator.KindReflect,
		instantiator.KindUnsafe,
		instantiator.KindSlice,
		instantiator.KindArray,
		instantiator.KindTemplate,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			for _, typ := range []reflect.Type{reflect.TypeOf(Plain{}), reflect.TypeOf(Refs{}), reflect.TypeOf(struct{}{})} {
				inst := build(t, kind, typ)
				a, err := inst.NewInstance()
				require.NoError(t, err)
				b, err := inst.NewInstance("ignored", 1)
				require.NoError(t, err)

				av := reflect.ValueOf(a)
				require.Equal(t, reflect.PointerTo(typ), av.Type())
				require.True(t, av.Elem().IsZero())
				if typ.Size() > 0 {
					require.NotEqual(t, av.Pointer(), reflect.ValueOf(b).Pointer())
				}
			}
		})
	}
}

func TestTemplateCopiesAreIndependent(t *testing.T) {
	plain := build(t, instantiator.KindTemplate, reflect.TypeOf(Plain{}))
	first, err := plain.NewInstance()
	require.NoError(t, err)
	require.Zero(t, reflect.ValueOf(first).Pointer()%8, "word storage must be word aligned")
	require.Equal(t, Plain{}, *first.(*Plain))
	first.(*Plain).A = 7
	first.(*Plain).B[2] = 9

	second, err := plain.NewInstance()
	require.NoError(t, err)
	require.Equal(t, Plain{}, *second.(*Plain))

	refs := build(t, instantiator.KindTemplate, reflect.TypeOf(Refs{}))
	r, err := refs.NewInstance()
	require.NoError(t, err)
	n := 3
	r.(*Refs).P = &n
	r.(*Refs).S = append(r.(*Refs).S, "x")

	again, err := refs.NewInstance()
	require.NoError(t, err)
	require.Nil(t, again.(*Refs).P)
	require.Nil(t, again.(*Refs).S)
}

func TestAbstractTypeFailsOnAllocation(t *testing.T) {
	reader := reflect.TypeOf((*io.Reader)(nil)).Elem()
	for _, kind := range []instantiator.Kind{
		instantiator.KindReflect,
		instantiator.KindSlice,
		instantiator.KindArray,
		instantiator.KindTemplate,
		instantiator.KindConstructor,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			inst := build(t, kind, reader)
			obj, err := inst.NewInstance()
			require.Nil(t, obj)
			requireIs(t, err, apis.ErrAbstractType, apis.ErrInstantiation)
		})
	}

	inst := build(t, instantiator.KindSerialReflect, apis.ExternalizableType)
	_, err := inst.NewInstance()
	requireIs(t, err, apis.ErrAbstractType)
}

func TestPrimitiveTypesAreRejected(t *testing.T) {
	for _, typ := range []reflect.Type{nil, reflect.TypeOf(0), reflect.TypeOf("")} {
		_, err := instantiator.NewReflect(typ)
		requireIs(t, err, apis.ErrInvalidType, apis.ErrInstantiation)
		_, err = instantiator.New(instantiator.KindSerialReflect, typ)
		requireIs(t, err, apis.ErrInvalidType)
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := instantiator.New(instantiator.Kind(77), leafT)
	requireIs(t, err, apis.ErrUnsupported, apis.ErrInstantiation)
}

func TestSerialRejectsNonSerializable(t *testing.T) {
	for _, kind := range []instantiator.Kind{
		instantiator.KindSerialReflect,
		instantiator.KindSerialMobile,
		instantiator.KindSerialStream,
		instantiator.KindSerialTemplate,
	} {
		_, err := instantiator.New(kind, reflect.TypeOf(Orphan{}))
		requireIs(t, err, apis.ErrNotSerializable, apis.ErrInstantiation)
	}
}

func TestSerialImplicitRoot(t *testing.T) {
	s, err := instantiator.NewSerialReflect(reflect.TypeOf(AllSerial{}), instantiator.WithRegistry(registry.New()))
	require.NoError(t, err)
	require.True(t, s.Ancestor().Root)

	obj, err := s.NewInstance()
	require.NoError(t, err)
	require.Equal(t, &AllSerial{}, obj)
}

func TestSerialAncestorWithoutNoArgInitializer(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeOf(NeedsArg{}), func(n *NeedsArg, x int) { n.X = x }))

	_, err := instantiator.NewSerialMobile(reflect.TypeOf(Child{}), instantiator.WithRegistry(reg))
	requireIs(t, err, apis.ErrNoSuitableInitializer, apis.ErrNotSerializable, apis.ErrInstantiation)
}

func TestSerialAncestorInitializerFailure(t *testing.T) {
	boom := errors.New("boom")
	reg := registry.New()
	require.NoError(t, reg.Register(baseT, func(*Base) error { return boom }))

	s, err := instantiator.NewSerialStream(leafT, instantiator.WithRegistry(reg))
	require.NoError(t, err)
	obj, err := s.NewInstance()
	require.Nil(t, obj)
	requireIs(t, err, boom, apis.ErrInstantiation)
}

func TestSerialDepthExhaustion(t *testing.T) {
	_, err := instantiator.NewSerialReflect(leafT, instantiator.WithMaxDepth(1))
	require.Error(t, err)
	require.True(t, errors.HasAssertionFailure(err))
	requireIs(t, err, apis.ErrInstantiation)
}

func TestConstructor(t *testing.T) {
	reg, trace := tracing(t)

	c, err := instantiator.NewConstructor(leafT, instantiator.WithRegistry(reg))
	require.NoError(t, err)

	obj, err := c.NewInstance("bob")
	require.NoError(t, err)
	require.Equal(t, "bob", obj.(*Leaf).Name)
	require.Equal(t, []string{"Base", "Middle", "Leaf(string)"}, *trace)

	_, err = c.NewInstance(42)
	requireIs(t, err, apis.ErrNoSuitableInitializer, apis.ErrInstantiation)

	bound, err := instantiator.NewConstructor(leafT, instantiator.WithRegistry(reg), instantiator.WithArgs("amy"))
	require.NoError(t, err)
	obj, err = bound.NewInstance()
	require.NoError(t, err)
	require.Equal(t, "amy", obj.(*Leaf).Name)
}

func TestConstructorImplicitInitializer(t *testing.T) {
	c, err := instantiator.NewConstructor(reflect.TypeOf(Orphan{}), instantiator.WithRegistry(registry.New()))
	require.NoError(t, err)
	obj, err := c.NewInstance()
	require.NoError(t, err)
	require.Equal(t, &Orphan{}, obj)
}

func TestConstructorRecoversPanics(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeOf(Orphan{}), func(*Orphan) { panic("nope") }))

	c, err := instantiator.NewConstructor(reflect.TypeOf(Orphan{}), instantiator.WithRegistry(reg))
	require.NoError(t, err)
	_, err = c.NewInstance()
	requireIs(t, err, apis.ErrInstantiation)
	require.Contains(t, err.Error(), "nope")
}

func TestConcurrentAllocation(t *testing.T) {
	reg, _ := tracing(t)
	inst := build(t, instantiator.KindSerialTemplate, reflect.TypeOf(AllSerial{}), instantiator.WithRegistry(reg))

	workers := runtime.GOMAXPROCS(0) * 4
	const perWorker = 100

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[*AllSerial]struct{}, workers*perWorker)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]*AllSerial, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				obj, err := inst.NewInstance()
				if err != nil {
					t.Errorf("NewInstance: %v", err)
					return
				}
				local = append(local, obj.(*AllSerial))
			}
			mu.Lock()
			for _, p := range local {
				seen[p] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*perWorker)
}
