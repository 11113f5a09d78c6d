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

import (
	"io"
	"reflect"
)

// Serializable marks a type as taking part in the state capture/restore
// contract. Declare it on the type (value or pointer receiver); embedding
// types inherit it through method promotion.
type Serializable interface {
	GenesisSerializable()
}

// Externalizable is a Serializable type that writes and reads its own state.
type Externalizable interface {
	Serializable
	WriteExternal(w io.Writer) error
	ReadExternal(r io.Reader) error
}

var (
	// SerializableType is the reflect.Type of the Serializable interface.
	SerializableType = reflect.TypeOf((*Serializable)(nil)).Elem()
	// ExternalizableType is the reflect.Type of the Externalizable interface.
	ExternalizableType = reflect.TypeOf((*Externalizable)(nil)).Elem()
)
