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
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"dirpx.dev/genesis/apis"
	"dirpx.dev/genesis/instantiator"
	"dirpx.dev/genesis/typology"
)

func TestDelegating(t *testing.T) {
	const name = "test-slice"
	require.NoError(t, instantiator.RegisterExotic(name, func(t reflect.Type, opts ...instantiator.Option) (apis.Instantiator, error) {
		return instantiator.NewSlice(t, opts...)
	}))
	t.Cleanup(func() { instantiator.UnregisterExotic(name) })

	require.Contains(t, instantiator.Exotics(), name)

	err := instantiator.RegisterExotic(name, func(reflect.Type, ...instantiator.Option) (apis.Instantiator, error) {
		return nil, nil
	})
	requireIs(t, err, instantiator.ErrExoticConflict, apis.ErrInstantiation)

	inst, err := instantiator.New(instantiator.KindDelegating, leafT, instantiator.WithExotic(name))
	require.NoError(t, err)
	require.Equal(t, typology.Unknown, inst.Typology())
	require.Equal(t, leafT, inst.Type())

	obj, err := inst.NewInstance()
	require.NoError(t, err)
	require.IsType(t, &Leaf{}, obj)
}

func TestDelegatingUnknownName(t *testing.T) {
	_, err := instantiator.NewDelegating(leafT, instantiator.WithExotic("no-such-technique"))
	requireIs(t, err, apis.ErrUnsupported, apis.ErrInstantiation)

	_, err = instantiator.NewDelegating(leafT)
	requireIs(t, err, apis.ErrUnsupported)
}

func TestDelegatingNilDelegate(t *testing.T) {
	const name = "test-nil"
	require.NoError(t, instantiator.RegisterExotic(name, func(reflect.Type, ...instantiator.Option) (apis.Instantiator, error) {
		return nil, nil
	}))
	defer instantiator.UnregisterExotic(name)

	_, err := instantiator.NewDelegating(leafT, instantiator.WithExotic(name))
	requireIs(t, err, apis.ErrInstantiation)
}

func TestDelegatingRejectsDelegateForOtherType(t *testing.T) {
	const name = "test-middle-only"
	require.NoError(t, instantiator.RegisterExotic(name, func(_ reflect.Type, opts ...instantiator.Option) (apis.Instantiator, error) {
		return instantiator.NewReflect(middleT, opts...)
	}))
	defer instantiator.UnregisterExotic(name)

	d, err := instantiator.NewDelegating(leafT, instantiator.WithExotic(name))
	require.Nil(t, d)
	requireIs(t, err, apis.ErrInstantiation)
	require.True(t, errors.IsAssertionFailure(err), "got %v", err)

	d, err = instantiator.NewDelegating(middleT, instantiator.WithExotic(name))
	require.NoError(t, err)
	obj, err := d.NewInstance()
	require.NoError(t, err)
	require.IsType(t, &Middle{}, obj)
}

func TestRegisterExoticValidation(t *testing.T) {
	err := instantiator.RegisterExotic("", func(reflect.Type, ...instantiator.Option) (apis.Instantiator, error) {
		return nil, nil
	})
	requireIs(t, err, apis.ErrInstantiation)
	requireIs(t, instantiator.RegisterExotic("x", nil), apis.ErrInstantiation)
	require.False(t, instantiator.UnregisterExotic("never-registered"))
}
