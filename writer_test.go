// Copyright 2017-25 the original author or authors.
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

package pbf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/decoder"
	"m4o.io/pbf/v3/model"
)

var errBoom = errors.New("boom")

// failingWriter accepts budget bytes and fails afterward.
type failingWriter struct {
	budget int
	closed bool
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		return 0, errBoom
	}

	w.budget -= len(p)

	return len(p), nil
}

func (w *failingWriter) Close() error {
	w.closed = true

	return nil
}

// blockTypes lists the types of the blocks in data.
func blockTypes(t *testing.T, data []byte) []string {
	t.Helper()

	var types []string

	rdr := bytes.NewReader(data)

	for {
		h, err := decoder.ReadBlobHeader(rdr)
		if errors.Is(err, io.EOF) {
			return types
		}

		require.NoError(t, err)
		require.NoError(t, decoder.SkipBlob(rdr, h))

		types = append(types, h.GetType())
	}
}

func TestWriterHeader(t *testing.T) {
	testCases := []struct {
		name     string
		opts     []WriterOption
		required []string
		optional []string
	}{
		{"default", nil, []string{model.FeatureSchema, model.FeatureDenseNodes}, nil},
		{"sparse", []WriterOption{WithDenseNodes(false)}, []string{model.FeatureSchema}, nil},
		{"metadata", []WriterOption{WithWriteMetadata(true)}, []string{model.FeatureSchema, model.FeatureDenseNodes}, []string{model.FeatureHasMetadata}},
		{
			"optional",
			[]WriterOption{WithWriteMetadata(true), WithOptionalFeatures(model.FeatureHasMetadata, model.FeatureSortTypeID)},
			[]string{model.FeatureSchema, model.FeatureDenseNodes},
			[]string{model.FeatureHasMetadata, model.FeatureSortTypeID},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, tc.opts...)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			assert.Equal(t, []string{core.OSMHeaderType}, blockTypes(t, buf.Bytes()))

			r, err := NewReader(&buf)
			require.NoError(t, err)

			assert.Equal(t, tc.required, r.Header.RequiredFeatures)
			assert.Equal(t, tc.optional, r.Header.OptionalFeatures)
			assert.Equal(t, DefaultWritingProgram, r.Header.WritingProgram)
			assert.Equal(t, w.Header, r.Header)

			_, err = r.Read()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestWriterInvalidOptions(t *testing.T) {
	testCases := []struct {
		name string
		opt  WriterOption
	}{
		{"compression", WithCompression(BlobCompression(12))},
		{"granularity", WithGranularity(0)},
		{"date granularity", WithDateGranularity(-1)},
		{"threshold", WithBlockSizeThreshold(DefaultBlockSizeThreshold + 1)},
		{"zero threshold", WithBlockSizeThreshold(0)},
		{"max entities", WithMaxEntitiesPerBlock(-1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			_, err := NewWriter(&buf, tc.opt)
			assert.ErrorIs(t, err, ErrInvalidOption)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestWriterValidation(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithWriteMetadata(true))
	require.NoError(t, err)

	valid := model.Node{ID: 1, Info: &model.Info{Version: 1, User: "ann"}}
	require.NoError(t, w.Write(valid))

	testCases := []struct {
		name   string
		entity model.Entity
	}{
		{"nil", nil},
		{"nil node", (*model.Node)(nil)},
		{"nil way", (*model.Way)(nil)},
		{"nil relation", (*model.Relation)(nil)},
		{"no metadata", model.Way{ID: 2}},
		{"no user", &model.Relation{ID: 3, Info: &model.Info{Version: 1}}},
		{"bad member type", model.Relation{ID: 4, Info: &model.Info{User: "ann"}, Members: []model.Member{{ID: 1, Type: 3}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, w.Write(tc.entity), ErrValidation)
		})
	}

	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)

	entities := readAll(t, r)
	require.Len(t, entities, 1)
	assertEntity(t, valid, entities[0], true)
}

func TestWriterRejectsEmptyDenseTagKey(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithDenseNodes(true))
	require.NoError(t, err)

	assert.ErrorIs(t, w.Write(model.Node{ID: 1, Tags: map[string]string{"": "x"}}), ErrValidation)
	require.NoError(t, w.Write(model.Node{ID: 2, Tags: map[string]string{"a": "b"}}))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)

	entities := readAll(t, r)
	require.Len(t, entities, 1)
	assert.Equal(t, model.ID(2), entities[0].GetID())
	assert.Equal(t, map[string]string{"a": "b"}, entities[0].GetTags())
}

func TestWriterKeepsEmptySparseTagKey(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithDenseNodes(false))
	require.NoError(t, err)

	require.NoError(t, w.Write(model.Node{ID: 1, Tags: map[string]string{"": "x"}}))
	require.NoError(t, w.Write(model.Node{ID: 2, Tags: map[string]string{"a": "b"}}))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)

	entities := readAll(t, r)
	require.Len(t, entities, 2)
	assert.Equal(t, map[string]string{"": "x"}, entities[0].GetTags())
	assert.Equal(t, map[string]string{"a": "b"}, entities[1].GetTags())
}

func TestWriterEpochTimestampReadsAsZero(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithWriteMetadata(true))
	require.NoError(t, err)

	epoch := time.Unix(0, 0).UTC()
	later := time.Unix(1, 0).UTC()

	require.NoError(t, w.Write(model.Node{ID: 1, Info: &model.Info{Version: 1, User: "ann", Timestamp: epoch, Visible: true}}))
	require.NoError(t, w.Write(model.Node{ID: 2, Info: &model.Info{Version: 1, User: "ann", Timestamp: later, Visible: true}}))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf, WithReadMetadata(true))
	require.NoError(t, err)

	entities := readAll(t, r)
	require.Len(t, entities, 2)
	assert.True(t, entities[0].GetInfo().Timestamp.IsZero())
	assert.True(t, later.Equal(entities[1].GetInfo().Timestamp))
}

func TestWriterWithoutMetadataAcceptsBareEntities(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf)
	require.NoError(t, err)

	assert.NoError(t, w.Write(model.Way{ID: 2}))
	assert.NoError(t, w.Write(&model.Relation{ID: 3, Info: &model.Info{Version: 1}}))
	assert.NoError(t, w.Close())
}

func TestWriterThresholdFlush(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithBlockSizeThreshold(4096))
	require.NoError(t, err)

	headerSize := buf.Len()

	written := 0
	for ; written < 10_000 && buf.Len() == headerSize; written++ {
		tags := map[string]string{"name": fmt.Sprintf("node %d", written)}
		require.NoError(t, w.Write(model.Node{ID: model.ID(written + 1), Lat: 1, Lon: 1, Tags: tags}))
	}

	assert.Greater(t, buf.Len(), headerSize)
	assert.Less(t, written, 10_000)
	assert.Zero(t, w.nodes.Len())

	require.NoError(t, w.Write(model.Node{ID: model.ID(written + 1)}))
	require.NoError(t, w.Close())

	assert.Equal(t, []string{core.OSMHeaderType, core.OSMDataType, core.OSMDataType}, blockTypes(t, buf.Bytes()))

	r, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Len(t, readAll(t, r), written+1)
}

func TestWriterFlushesBuffersIndependently(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithMaxEntitiesPerBlock(3))
	require.NoError(t, err)

	require.NoError(t, w.Write(model.Way{ID: 100, NodeIDs: []model.ID{1, 2}}))

	for i := 1; i <= 7; i++ {
		require.NoError(t, w.Write(model.Node{ID: model.ID(i)}))
	}

	assert.Equal(t, 1, w.nodes.Len())
	assert.Equal(t, 1, w.ways.Len())

	require.NoError(t, w.Close())

	types := blockTypes(t, buf.Bytes())
	assert.Len(t, types, 5)

	r, err := NewReader(&buf)
	require.NoError(t, err)

	var ids []model.ID
	for _, e := range readAll(t, r) {
		ids = append(ids, e.GetID())
	}

	assert.Equal(t, []model.ID{1, 2, 3, 4, 5, 6, 7, 100}, ids)
}

func TestWriterFlushEmpty(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf)
	require.NoError(t, err)

	size := buf.Len()

	require.NoError(t, w.Flush())
	assert.Equal(t, size, buf.Len())
}

func TestWriterSinkFailure(t *testing.T) {
	_, err := NewWriter(&failingWriter{})
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, ErrFormat)

	var buf bytes.Buffer

	w, err := NewWriter(&buf)
	require.NoError(t, err)

	fw := &failingWriter{}
	w.wrtr = fw

	require.NoError(t, w.Write(model.Node{ID: 1}))
	assert.ErrorIs(t, w.Flush(), errBoom)
	assert.Equal(t, 1, w.nodes.Len())
}

func TestWriterClose(t *testing.T) {
	fw := &failingWriter{budget: 1 << 20}

	w, err := NewWriter(fw)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.False(t, fw.closed)

	assert.ErrorIs(t, w.Write(model.Node{ID: 1}), ErrClosed)
	assert.ErrorIs(t, w.Flush(), ErrClosed)
}

func TestCreateWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.osm.pbf")

	w, err := CreateWriter(path, WithCompression(ZSTD))
	require.NoError(t, err)

	require.NoError(t, w.Write(model.Node{ID: 1, Lat: 2, Lon: 3}))
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	r, err := OpenReader(path)
	require.NoError(t, err)

	assert.Len(t, readAll(t, r), 1)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = CreateWriter(filepath.Join(t.TempDir(), "missing", "out.osm.pbf"))
	assert.Error(t, err)
}
