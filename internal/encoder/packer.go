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

package encoder

import (
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/encoder/packers"
	"m4o.io/pbf/v3/internal/pb"
)

// BlobCompression is the compression applied to the contents of a blob.
type BlobCompression int

const (
	RAW BlobCompression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

var compressionNames = [...]string{"raw", "zlib", "lzma", "lz4", "zstd"}

func (c BlobCompression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return fmt.Sprintf("BlobCompression(%d)", int(c))
	}

	return compressionNames[c]
}

// ParseBlobCompression converts a compression name, as returned by String,
// into a BlobCompression.  "none" is accepted as a synonym of "raw".
func ParseBlobCompression(s string) (BlobCompression, error) {
	name := strings.ToLower(s)
	if name == "none" {
		return RAW, nil
	}

	for i, n := range compressionNames {
		if n == name {
			return BlobCompression(i), nil
		}
	}

	return RAW, fmt.Errorf("%w: blob compression %q", core.ErrNotSupported, s)
}

type Packer interface {
	// WriteCloser is used to write the contents of the blob to be packed.
	// Be sure to call the Close method to ensure that all the contents are
	// packed.
	io.WriteCloser

	// SaveTo will save the packed contents to the blob using the correct
	// Protobuf data field.
	SaveTo(blob *pb.Blob)
}

// Pack compresses content into a blob.  The raw size is recorded for every
// compression but RAW.
func Pack(content []byte, c BlobCompression) (*pb.Blob, error) {
	p, err := newPacker(c)
	if err != nil {
		return nil, err
	}

	if _, err = p.Write(content); err != nil {
		return nil, fmt.Errorf("could not compress message: %w", err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	blob := &pb.Blob{
		RawSize: proto.Int32(int32(len(content))),
	}

	p.SaveTo(blob)

	return blob, nil
}

func newPacker(c BlobCompression) (Packer, error) {
	switch c {
	case RAW:
		return packers.NewRawPacker(), nil
	case ZLIB:
		return packers.NewZlibPacker(), nil
	case LZMA:
		return packers.NewLzmaPacker()
	case LZ4:
		return packers.NewLz4Packer(), nil
	case ZSTD:
		return packers.NewZstdPacker()
	default:
		return nil, fmt.Errorf("%w: unknown compression type: %v", core.ErrNotSupported, c)
	}
}
