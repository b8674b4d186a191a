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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

// SupportedFeatures are the required features that can be decoded.
var SupportedFeatures = []string{model.FeatureSchema, model.FeatureDenseNodes}

// LoadHeader reads blocks up to and including the OSMHeader block, checks
// that all its required features are supported and returns it.  Blocks of
// unknown type preceding the header are skipped.
func LoadHeader(rdr io.Reader) (model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	for {
		h, err := ReadBlobHeader(rdr)
		if errors.Is(err, io.EOF) {
			return model.Header{}, fmt.Errorf("%w: missing %s block", core.ErrFormat, core.OSMHeaderType)
		} else if err != nil {
			return model.Header{}, err
		}

		switch h.GetType() {
		case core.OSMHeaderType:
			data, err := ReadBlock(rdr, h, buf)
			if err != nil {
				return model.Header{}, err
			}

			return parseHeaderBlock(data)
		case core.OSMDataType:
			return model.Header{}, fmt.Errorf("%w: %s block before %s block", core.ErrFormat, core.OSMDataType, core.OSMHeaderType)
		default:
			slog.Debug("skipping block", "type", h.GetType(), "size", h.GetDatasize())

			if err := SkipBlob(rdr, h); err != nil {
				return model.Header{}, err
			}
		}
	}
}

func parseHeaderBlock(data []byte) (model.Header, error) {
	hb := &pb.HeaderBlock{}
	if err := proto.Unmarshal(data, hb); err != nil {
		slog.Error("unable to unmarshal header block", "error", err)

		return model.Header{}, fmt.Errorf("%w: unable to unmarshal header block: %w", core.ErrFormat, err)
	}

	for _, feature := range hb.GetRequiredFeatures() {
		if !slices.Contains(SupportedFeatures, feature) {
			return model.Header{}, fmt.Errorf("%w: required feature %q", core.ErrNotSupported, feature)
		}
	}

	hdr := model.Header{
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
	}

	if bbox := hb.GetBbox(); bbox != nil {
		hdr.BoundingBox = &model.BoundingBox{
			Top:    model.ToDegrees(0, 1, bbox.GetTop()),
			Left:   model.ToDegrees(0, 1, bbox.GetLeft()),
			Bottom: model.ToDegrees(0, 1, bbox.GetBottom()),
			Right:  model.ToDegrees(0, 1, bbox.GetRight()),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		hdr.OsmosisReplicationTimestamp = time.Unix(hb.GetOsmosisReplicationTimestamp(), 0).UTC()
	}

	return hdr, nil
}
