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
	"bytes"
	"encoding/gob"
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/genesis/apis"
)

// classDescriptor is what the stream records about the type to restore.
type classDescriptor struct {
	Name    string
	PkgPath string
	Size    uint64
}

func describe(t reflect.Type) classDescriptor {
	return classDescriptor{Name: t.String(), PkgPath: t.PkgPath(), Size: uint64(t.Size())}
}

// SerialStream encodes a class descriptor stream for its type once and
// replays it on every allocation, checking the stream still names the type
// before allocating with the serializable ancestor rule.
type SerialStream struct {
	serial
	stream []byte
}

// NewSerialStream builds a SerialStream technique for t.
func NewSerialStream(t reflect.Type, opts ...Option) (*SerialStream, error) {
	s, err := newSerial(KindSerialStream, t, reflectStorage, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(describe(t)); err != nil {
		return nil, apis.Wrapf(err, "encoding class descriptor of %v", t)
	}
	return &SerialStream{serial: s, stream: buf.Bytes()}, nil
}

// NewInstance replays the stream and returns a new *T.
func (s *SerialStream) NewInstance(...any) (any, error) {
	if err := s.checkConcrete(); err != nil {
		return nil, err
	}
	var desc classDescriptor
	if err := gob.NewDecoder(bytes.NewReader(s.stream)).Decode(&desc); err != nil {
		return nil, apis.Wrapf(err, "replaying class descriptor of %v", s.t)
	}
	if want := describe(s.t); desc != want {
		return nil, apis.Wrap(
			errors.AssertionFailedf("stream describes %s (%s), want %s (%s)", desc.Name, desc.PkgPath, want.Name, want.PkgPath),
			"replaying class descriptor")
	}
	return s.serial.NewInstance()
}
