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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/encoder"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

// encode writes entities with the default options and returns the stream.
func encode(t *testing.T, entities ...model.Entity) []byte {
	t.Helper()

	var buf bytes.Buffer

	w, err := NewWriter(&buf)
	require.NoError(t, err)

	for _, e := range entities {
		require.NoError(t, w.Write(e))
	}

	require.NoError(t, w.Close())

	return buf.Bytes()
}

func rawBlock(t *testing.T, blockType string, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	bb, err := proto.Marshal(&pb.Blob{Raw: content})
	require.NoError(t, err)

	hb, err := proto.Marshal(&pb.BlobHeader{Type: proto.String(blockType), Datasize: proto.Int32(int32(len(bb)))})
	require.NoError(t, err)

	buf.Write([]byte{0, 0, 0, byte(len(hb))})
	buf.Write(hb)
	buf.Write(bb)

	return buf.Bytes()
}

func TestReaderEOF(t *testing.T) {
	r, err := NewReader(bytes.NewReader(encode(t, model.Node{ID: 1})))
	require.NoError(t, err)

	e, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, model.ID(1), e.GetID())

	for range 3 {
		e, err = r.Read()
		assert.Nil(t, e)
		assert.Equal(t, io.EOF, err)
	}
}

func TestReaderHeaderNegotiation(t *testing.T) {
	var dataFirst bytes.Buffer
	require.NoError(t, encoder.WriteBlob(&dataFirst, core.OSMDataType, &pb.PrimitiveBlock{Stringtable: &pb.StringTable{}}, encoder.ZLIB))

	var unknownFeature bytes.Buffer
	require.NoError(t, encoder.WriteHeader(&unknownFeature, model.Header{RequiredFeatures: []string{model.FeatureSchema, "LocationsOnWays"}}, encoder.ZLIB))

	testCases := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"missing header", nil, ErrFormat},
		{"data first", dataFirst.Bytes(), ErrFormat},
		{"unknown required feature", unknownFeature.Bytes(), ErrNotSupported},
		{"garbage", []byte{0, 0, 0, 3, 1, 2, 3}, ErrFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(bytes.NewReader(tc.data))
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestReaderSkipsUnknownBlocks(t *testing.T) {
	stream := encode(t, model.Node{ID: 1}, model.Way{ID: 2})

	// an index block between the header and the data
	hdrLen := len(encode(t))
	data := append([]byte{}, stream[:hdrLen]...)
	data = append(data, rawBlock(t, "OSMIndex", []byte("index"))...)
	data = append(data, stream[hdrLen:]...)

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	entities := readAll(t, r)
	require.Len(t, entities, 2)
	assert.Equal(t, model.WAY, entities[1].Type())
}

func TestReaderStickyError(t *testing.T) {
	stream := encode(t, model.Node{ID: 1}, model.Way{ID: 2})

	r, err := NewReader(bytes.NewReader(stream[:len(stream)-3]))
	require.NoError(t, err)

	_, err = r.Read()
	require.NoError(t, err)

	_, err = r.Read()
	assert.ErrorIs(t, err, ErrFormat)

	_, err2 := r.Read()
	assert.Equal(t, err, err2)
}

func TestReaderCorruptBlock(t *testing.T) {
	data := append(encode(t), rawBlock(t, core.OSMDataType, []byte{0xff, 0xff, 0xff})...)

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	var n int

	for _, err := range r.All() {
		n++

		assert.ErrorIs(t, err, ErrFormat)
	}

	assert.Equal(t, 1, n)
}

func TestReaderWithoutMetadata(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, WithWriteMetadata(true))
	require.NoError(t, err)
	require.NoError(t, w.Write(model.Node{ID: 1, Info: &model.Info{Version: 2, User: "ann", Visible: true}}))
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), WithReadMetadata(false))
	require.NoError(t, err)

	e, err := r.Read()
	require.NoError(t, err)
	assert.Nil(t, e.GetInfo())

	r, err = NewReader(bytes.NewReader(buf.Bytes()), WithInputBufferSize(0))
	require.NoError(t, err)

	e, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, &model.Info{Version: 2, User: "ann", Visible: true}, e.GetInfo())
	assert.True(t, r.Header.HasOptionalFeature(model.FeatureHasMetadata))
}

func TestReaderAllStopsEarly(t *testing.T) {
	r, err := NewReader(bytes.NewReader(encode(t, model.Node{ID: 1}, model.Node{ID: 2}, model.Node{ID: 3})))
	require.NoError(t, err)

	for e, err := range r.All() {
		require.NoError(t, err)
		assert.Equal(t, model.ID(1), e.GetID())

		break
	}

	e, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, model.ID(2), e.GetID())
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true

	return nil
}

func TestReaderClose(t *testing.T) {
	src := &trackingReader{Reader: bytes.NewReader(encode(t, model.Node{ID: 1}))}

	r, err := NewReader(src)
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.False(t, src.closed)

	_, err = r.Read()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenReader(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenReader(filepath.Join(dir, "missing.osm.pbf"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(dir, "bad.osm.pbf")
	require.NoError(t, os.WriteFile(path, []byte("not a pbf file"), 0o600))

	_, err = OpenReader(path)
	assert.ErrorIs(t, err, ErrFormat)
}
