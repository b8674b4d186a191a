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
	"fmt"

	"github.com/ulikunitz/xz/lzma"

	"m4o.io/pbf/v3/internal/pb"
)

// LzmaPacker compresses the contents into the classic LZMA format.
type LzmaPacker struct {
	base
}

func NewLzmaPacker() (*LzmaPacker, error) {
	p := &LzmaPacker{}

	w, err := lzma.NewWriter(&p.buf)
	if err != nil {
		return nil, fmt.Errorf("unable to create lzma writer: %w", err)
	}

	p.WriteCloser = w

	return p, nil
}

func (p *LzmaPacker) SaveTo(blob *pb.Blob) {
	blob.LzmaData = p.bytes()
}
