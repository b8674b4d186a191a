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
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
)

// ReadBlobHeader reads the next length prefixed BlobHeader.  It returns
// io.EOF, unwrapped, when the input ends cleanly before the next block.
func ReadBlobHeader(rdr io.Reader) (*pb.BlobHeader, error) {
	var size uint32

	if err := binary.Read(rdr, binary.BigEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("%w: error reading blob header size: %w", core.ErrFormat, err)
	}

	if size > core.MaxBlobHeaderSize {
		return nil, fmt.Errorf("%w: blob header of %d bytes exceeds %d bytes", core.ErrFormat, size, core.MaxBlobHeaderSize)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if _, err := io.CopyN(buf, rdr, int64(size)); err != nil {
		return nil, fmt.Errorf("%w: error reading blob header: %w", core.ErrFormat, unexpected(err))
	}

	header := &pb.BlobHeader{}

	if err := proto.Unmarshal(buf.Bytes(), header); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling blob header: %w", core.ErrFormat, err)
	}

	if ds := header.GetDatasize(); ds < 0 || ds > core.MaxBlobSize {
		return nil, fmt.Errorf("%w: %s blob of %d bytes exceeds %d bytes", core.ErrFormat, header.GetType(), ds, core.MaxBlobSize)
	}

	return header, nil
}

// ReadBlob reads the blob described by header.
func ReadBlob(rdr io.Reader, header *pb.BlobHeader) (*pb.Blob, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	if _, err := io.CopyN(buf, rdr, int64(header.GetDatasize())); err != nil {
		return nil, fmt.Errorf("%w: error reading blob: %w", core.ErrFormat, unexpected(err))
	}

	blob := &pb.Blob{}

	if err := proto.Unmarshal(buf.Bytes(), blob); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling blob: %w", core.ErrFormat, err)
	}

	return blob, nil
}

// ReadBlock reads the blob described by header and returns its uncompressed
// contents, stored in buf.
func ReadBlock(rdr io.Reader, header *pb.BlobHeader, buf *core.PooledBuffer) ([]byte, error) {
	blob, err := ReadBlob(rdr, header)
	if err != nil {
		return nil, err
	}

	return Unpack(buf, blob, core.MaxBlockSize(header.GetType()))
}

// SkipBlob discards the blob described by header.
func SkipBlob(rdr io.Reader, header *pb.BlobHeader) error {
	if _, err := io.CopyN(io.Discard, rdr, int64(header.GetDatasize())); err != nil {
		return fmt.Errorf("%w: error skipping %s blob: %w", core.ErrFormat, header.GetType(), unexpected(err))
	}

	return nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}
