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
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
)

// WriteBlob serializes msg, packs it with the given compression and writes
// it to w as a block of the given type.
func WriteBlob(w io.Writer, blockType string, msg proto.Message, c BlobCompression) error {
	content, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not marshal %s block: %w", blockType, err)
	}

	if limit := core.MaxBlockSize(blockType); len(content) > limit {
		return fmt.Errorf("%w: %s block of %d bytes exceeds %d bytes", core.ErrFormat, blockType, len(content), limit)
	}

	blob, err := Pack(content, c)
	if err != nil {
		return err
	}

	bb, err := proto.Marshal(blob)
	if err != nil {
		return fmt.Errorf("could not marshal blob data: %w", err)
	}

	hdr := &pb.BlobHeader{
		Type:     proto.String(blockType),
		Datasize: proto.Int32(int32(len(bb))),
	}

	hb, err := proto.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("could not marshal blob header: %w", err)
	}

	if err = binary.Write(w, binary.BigEndian, uint32(len(hb))); err != nil {
		return fmt.Errorf("could not write header size: %w", err)
	}

	if _, err = w.Write(hb); err != nil {
		return fmt.Errorf("could not write blob header: %w", err)
	}

	if _, err = w.Write(bb); err != nil {
		return fmt.Errorf("could not write blob data: %w", err)
	}

	slog.Debug("wrote block", "type", blockType, "raw", len(content), "packed", len(bb), "compression", c)

	return nil
}
