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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/encoder"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

func TestLoadHeader(t *testing.T) {
	ts := time.Date(2024, 10, 28, 21, 21, 30, 0, time.UTC)
	expected := model.Header{
		BoundingBox:                      &model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437},
		RequiredFeatures:                 []string{model.FeatureSchema, model.FeatureDenseNodes},
		OptionalFeatures:                 []string{model.FeatureHasMetadata},
		WritingProgram:                   "osmium/1.14.0",
		Source:                           "test",
		OsmosisReplicationTimestamp:      ts,
		OsmosisReplicationSequenceNumber: 4221,
		OsmosisReplicationBaseURL:        "http://download.geofabrik.de/europe/united-kingdom/england/greater-london-updates",
	}

	var buf bytes.Buffer
	require.NoError(t, encoder.WriteHeader(&buf, expected, encoder.ZLIB))

	hdr, err := LoadHeader(&buf)
	require.NoError(t, err)

	assert.True(t, expected.BoundingBox.EqualWithin(hdr.BoundingBox, model.E9))
	hdr.BoundingBox = expected.BoundingBox
	assert.Equal(t, expected, hdr)
}

func TestLoadHeaderSkipsUnknownBlocks(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(frame(t, "OSMIndex", &pb.Blob{Raw: []byte("index")}))
	require.NoError(t, encoder.WriteHeader(&buf, model.Header{RequiredFeatures: []string{model.FeatureSchema}}, encoder.RAW))

	hdr, err := LoadHeader(&buf)
	require.NoError(t, err)
	assert.Nil(t, hdr.BoundingBox)
	assert.True(t, hdr.OsmosisReplicationTimestamp.IsZero())
}

func TestLoadHeaderErrors(t *testing.T) {
	dataBlock := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, encoder.WriteBlob(&buf, core.OSMDataType, &pb.PrimitiveBlock{Stringtable: &pb.StringTable{}}, encoder.RAW))

		return buf.Bytes()
	}

	unknownFeature := func() []byte {
		var buf bytes.Buffer
		hdr := model.Header{RequiredFeatures: []string{model.FeatureSchema, "HistoricalInformation"}}
		require.NoError(t, encoder.WriteHeader(&buf, hdr, encoder.RAW))

		return buf.Bytes()
	}

	testCases := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, core.ErrFormat},
		{"data first", dataBlock(), core.ErrFormat},
		{"only unknown", frame(t, "OSMIndex", &pb.Blob{Raw: []byte("index")}), core.ErrFormat},
		{"unknown feature", unknownFeature(), core.ErrNotSupported},
		{"corrupt header", frame(t, "OSMHeader", &pb.Blob{Raw: []byte{0xff, 0xff}}), core.ErrFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadHeader(bytes.NewReader(tc.data))
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
