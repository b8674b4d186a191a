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

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

// WriteHeader writes the OSMHeader block describing hdr.  Optional fields are
// only written when set.
func WriteHeader(w io.Writer, hdr model.Header, compression BlobCompression) error {
	hb := &pb.HeaderBlock{
		RequiredFeatures: hdr.RequiredFeatures,
		OptionalFeatures: hdr.OptionalFeatures,
	}

	if bbox := hdr.BoundingBox; bbox != nil && !bbox.IsInitial() {
		hb.Bbox = &pb.HeaderBBox{
			Top:    proto.Int64(bbox.Top.Nanodegrees()),
			Left:   proto.Int64(bbox.Left.Nanodegrees()),
			Bottom: proto.Int64(bbox.Bottom.Nanodegrees()),
			Right:  proto.Int64(bbox.Right.Nanodegrees()),
		}
	}

	if hdr.WritingProgram != "" {
		hb.Writingprogram = proto.String(hdr.WritingProgram)
	}

	if hdr.Source != "" {
		hb.Source = proto.String(hdr.Source)
	}

	if !hdr.OsmosisReplicationTimestamp.IsZero() {
		hb.OsmosisReplicationTimestamp = proto.Int64(hdr.OsmosisReplicationTimestamp.Unix())
	}

	if hdr.OsmosisReplicationSequenceNumber != 0 {
		hb.OsmosisReplicationSequenceNumber = proto.Int64(hdr.OsmosisReplicationSequenceNumber)
	}

	if hdr.OsmosisReplicationBaseURL != "" {
		hb.OsmosisReplicationBaseUrl = proto.String(hdr.OsmosisReplicationBaseURL)
	}

	if err := WriteBlob(w, core.OSMHeaderType, hb, compression); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	return nil
}
