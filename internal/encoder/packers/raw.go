// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package packers

import (
	"m4o.io/pbf/v3/internal/pb"
)

// RawPacker stores the contents uncompressed.
type RawPacker struct {
	base
}

func NewRawPacker() *RawPacker {
	p := &RawPacker{}
	p.WriteCloser = nopCloserWriter{&p.buf}

	return p
}

// SaveTo stores the contents in the raw field.  The raw size is left unset.
func (p *RawPacker) SaveTo(blob *pb.Blob) {
	blob.Raw = p.bytes()
	blob.RawSize = nil
}
