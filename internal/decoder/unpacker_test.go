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

package decoder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/encoder"
	"m4o.io/pbf/v3/internal/pb"
)

func TestUnpack(t *testing.T) {
	content := bytes.Repeat([]byte("name=High Street;"), 1000)

	for _, c := range []encoder.BlobCompression{encoder.RAW, encoder.ZLIB, encoder.LZMA, encoder.LZ4, encoder.ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			blob, err := encoder.Pack(content, c)
			require.NoError(t, err)

			buf := core.NewPooledBuffer()
			defer buf.Close()

			unpacked, err := Unpack(buf, blob, core.MaxDataBlockSize)
			require.NoError(t, err)
			assert.Equal(t, content, unpacked)
		})
	}
}

func TestUnpackLimits(t *testing.T) {
	content := bytes.Repeat([]byte{'x'}, 1024)

	buf := core.NewPooledBuffer()
	defer buf.Close()

	blob, err := encoder.Pack(content, encoder.ZLIB)
	require.NoError(t, err)

	_, err = Unpack(buf, blob, 1023)
	assert.ErrorIs(t, err, core.ErrFormat)

	blob.RawSize = proto.Int32(100)
	_, err = Unpack(buf, blob, 1024)
	assert.ErrorIs(t, err, core.ErrFormat)

	blob.RawSize = nil
	unpacked, err := Unpack(buf, blob, 1024)
	require.NoError(t, err)
	assert.Len(t, unpacked, 1024)

	_, err = Unpack(buf, &pb.Blob{Raw: content}, 1000)
	assert.ErrorIs(t, err, core.ErrFormat)
}

func TestUnpackCorrupt(t *testing.T) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	_, err := Unpack(buf, &pb.Blob{ZlibData: []byte("not zlib"), RawSize: proto.Int32(8)}, core.MaxDataBlockSize)
	assert.ErrorIs(t, err, core.ErrFormat)
}

func TestUnpackUnsupported(t *testing.T) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	_, err := Unpack(buf, &pb.Blob{OBSOLETEBzip2Data: []byte("BZh")}, core.MaxDataBlockSize)
	assert.ErrorIs(t, err, core.ErrNotSupported)

	_, err = Unpack(buf, &pb.Blob{}, core.MaxDataBlockSize)
	assert.ErrorIs(t, err, core.ErrFormat)
}
