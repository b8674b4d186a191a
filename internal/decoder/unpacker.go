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
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
)

// Unpack returns the uncompressed contents of blob, which may not exceed
// limit bytes.  Compressed contents are inflated into buf.
func Unpack(buf *core.PooledBuffer, blob *pb.Blob, limit int) ([]byte, error) {
	var factory func(data []byte) (io.ReadCloser, error)

	var data []byte

	switch {
	case blob.Raw != nil:
		if len(blob.Raw) > limit {
			return nil, fmt.Errorf("%w: raw blob of %d bytes exceeds %d bytes", core.ErrFormat, len(blob.Raw), limit)
		}

		return blob.GetRaw(), nil
	case blob.ZlibData != nil:
		data = blob.GetZlibData()
		factory = func(data []byte) (io.ReadCloser, error) {
			return zlib.NewReader(bytes.NewReader(data))
		}
	case blob.LzmaData != nil:
		data = blob.GetLzmaData()
		factory = func(data []byte) (io.ReadCloser, error) {
			r, err := lzma.NewReader(bytes.NewReader(data))

			return io.NopCloser(r), err
		}
	case blob.Lz4Data != nil:
		data = blob.GetLz4Data()
		factory = func(data []byte) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(bytes.NewReader(data))), nil
		}
	case blob.ZstdData != nil:
		data = blob.GetZstdData()
		factory = func(data []byte) (io.ReadCloser, error) {
			d, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case blob.OBSOLETEBzip2Data != nil:
		return nil, fmt.Errorf("%w: bzip2 blob compression", core.ErrNotSupported)
	default:
		return nil, fmt.Errorf("%w: blob has no data", core.ErrFormat)
	}

	rawSize := int(blob.GetRawSize())
	if rawSize < 0 || rawSize > limit {
		return nil, fmt.Errorf("%w: declared raw size %d exceeds %d bytes", core.ErrFormat, rawSize, limit)
	}

	rdr, err := factory(data)
	if err != nil {
		slog.Error("unable to create unpacker", "error", err)

		return nil, fmt.Errorf("%w: unpacker factory error: %w", core.ErrFormat, err)
	}
	defer rdr.Close()

	buf.Reset()
	buf.Grow(rawSize + bytes.MinRead)

	n, err := buf.ReadFrom(io.LimitReader(rdr, int64(limit)+1))
	if err != nil {
		slog.Error("unable to unpack blob", "error", err)

		return nil, fmt.Errorf("%w: unpacker read error: %w", core.ErrFormat, err)
	}

	if n > int64(limit) {
		return nil, fmt.Errorf("%w: unpacked blob exceeds %d bytes", core.ErrFormat, limit)
	}

	if blob.RawSize != nil && n != int64(rawSize) {
		return nil, fmt.Errorf("%w: raw blob data size %d but expected %d", core.ErrFormat, n, rawSize)
	}

	return buf.Bytes(), nil
}
