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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/encoder"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

func marshal(t *testing.T, blk *pb.PrimitiveBlock) []byte {
	t.Helper()

	data, err := proto.Marshal(blk)
	require.NoError(t, err)

	return data
}

func TestParseDenseNodes(t *testing.T) {
	ts := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	nodes := []model.Node{
		{ID: 1, Lat: 51.5, Lon: -0.1, Tags: map[string]string{"amenity": "cafe"}, Info: &model.Info{Version: 1, UID: 3, User: "ann", Changeset: 8, Timestamp: ts, Visible: true}},
		{ID: 3, Lat: 51.25, Lon: 0.1, Info: &model.Info{Version: 4, UID: 5, User: "bob", Changeset: 9, Timestamp: ts.Add(time.Hour), Visible: false}},
		{ID: 2, Lat: -33.75, Lon: 151.25, Tags: map[string]string{"name": "Opera", "tourism": "attraction"}, Info: &model.Info{Version: 2, UID: 3, User: "ann", Visible: true}},
	}

	b := encoder.NewBuffer[model.Node](true)
	for _, n := range nodes {
		b.Add(n)
	}

	data := marshal(t, encoder.NodesBlock(b, encoder.DefaultBlockSettings()))

	t.Run("with metadata", func(t *testing.T) {
		entities, err := ParsePrimitiveBlock(data, true)
		require.NoError(t, err)
		require.Len(t, entities, len(nodes))

		for i, e := range entities {
			n, ok := e.(*model.Node)
			require.True(t, ok)

			assert.Equal(t, nodes[i].ID, n.ID)
			assert.Equal(t, nodes[i].Tags, n.Tags)
			assert.Equal(t, nodes[i].Info, n.Info)
			assert.True(t, nodes[i].Lat.EqualWithin(n.Lat, model.E7))
			assert.True(t, nodes[i].Lon.EqualWithin(n.Lon, model.E7))
		}
	})

	t.Run("without metadata", func(t *testing.T) {
		entities, err := ParsePrimitiveBlock(data, false)
		require.NoError(t, err)

		for _, e := range entities {
			assert.Nil(t, e.GetInfo())
		}
	})
}

func TestParseSparseNodesWaysRelations(t *testing.T) {
	s := encoder.DefaultBlockSettings()
	s.DenseNodes = false
	s.Granularity = 1000
	s.LatOffset = 1_000_000_000

	nodes := encoder.NewBuffer[model.Node](false)
	nodes.Add(model.Node{ID: 7, Lat: 12.5, Lon: 3, Tags: map[string]string{"a": "b"}})

	ways := encoder.NewBuffer[model.Way](false)
	ways.Add(model.Way{ID: 9, NodeIDs: []model.ID{7, 8, 7}})

	relations := encoder.NewBuffer[model.Relation](false)
	relations.Add(model.Relation{ID: 11, Members: []model.Member{{ID: 9, Type: model.WAY, Role: "outer"}, {ID: 7, Type: model.NODE}}})

	blk := encoder.NodesBlock(nodes, s)

	entities, err := ParsePrimitiveBlock(marshal(t, blk), true)
	require.NoError(t, err)
	assert.Equal(t, []model.Entity{&model.Node{ID: 7, Lat: 12.5, Lon: 3, Tags: map[string]string{"a": "b"}}}, entities)

	entities, err = ParsePrimitiveBlock(marshal(t, encoder.WaysBlock(ways, s)), true)
	require.NoError(t, err)
	assert.Equal(t, []model.Entity{&model.Way{ID: 9, NodeIDs: []model.ID{7, 8, 7}}}, entities)

	entities, err = ParsePrimitiveBlock(marshal(t, encoder.RelationsBlock(relations, s)), true)
	require.NoError(t, err)
	assert.Equal(t, []model.Entity{&model.Relation{ID: 11, Members: []model.Member{{ID: 9, Type: model.WAY, Role: "outer"}, {ID: 7, Type: model.NODE}}}}, entities)
}

func TestParseGroupOrder(t *testing.T) {
	blk := &pb.PrimitiveBlock{
		Stringtable: &pb.StringTable{S: [][]byte{{}}},
		Primitivegroup: []*pb.PrimitiveGroup{
			{
				Ways:  []*pb.Way{{Id: proto.Int64(3)}},
				Nodes: []*pb.Node{{Id: proto.Int64(2), Lat: proto.Int64(0), Lon: proto.Int64(0)}},
				Dense: &pb.DenseNodes{Id: []int64{1}, Lat: []int64{0}, Lon: []int64{0}},
			},
			{
				Relations: []*pb.Relation{{Id: proto.Int64(4)}},
			},
		},
	}

	entities, err := ParsePrimitiveBlock(marshal(t, blk), false)
	require.NoError(t, err)
	require.Len(t, entities, 4)

	for i, expected := range []model.EntityType{model.NODE, model.NODE, model.WAY, model.RELATION} {
		assert.Equal(t, expected, entities[i].Type())
		assert.Equal(t, model.ID(i+1), entities[i].GetID())
	}
}

func TestParseDenseVisibleDefault(t *testing.T) {
	blk := &pb.PrimitiveBlock{
		Stringtable: &pb.StringTable{S: [][]byte{{}, []byte("ann")}},
		Primitivegroup: []*pb.PrimitiveGroup{{
			Dense: &pb.DenseNodes{
				Id:  []int64{1, 1},
				Lat: []int64{0, 0},
				Lon: []int64{0, 0},
				Denseinfo: &pb.DenseInfo{
					Version: []int32{1, 1},
					UserSid: []int32{1, 0},
					Visible: []bool{false},
				},
			},
		}},
	}

	entities, err := ParsePrimitiveBlock(marshal(t, blk), true)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.False(t, entities[0].GetInfo().Visible)
	assert.True(t, entities[1].GetInfo().Visible)
	assert.Equal(t, "ann", entities[1].GetInfo().User)
	assert.True(t, entities[1].GetInfo().Timestamp.IsZero())
}

func TestParseSparseVisibleDefault(t *testing.T) {
	blk := &pb.PrimitiveBlock{
		Stringtable: &pb.StringTable{S: [][]byte{{}}},
		Primitivegroup: []*pb.PrimitiveGroup{{
			Ways: []*pb.Way{{Id: proto.Int64(1), Info: &pb.Info{Version: proto.Int32(3)}}},
		}},
	}

	entities, err := ParsePrimitiveBlock(marshal(t, blk), true)
	require.NoError(t, err)

	assert.Equal(t, &model.Info{Version: 3, Visible: true}, entities[0].GetInfo())
}

func TestParseErrors(t *testing.T) {
	table := &pb.StringTable{S: [][]byte{{}, []byte("k")}}

	testCases := []struct {
		name string
		pg   *pb.PrimitiveGroup
	}{
		{"bad key index", &pb.PrimitiveGroup{Ways: []*pb.Way{{Id: proto.Int64(1), Keys: []uint32{2}, Vals: []uint32{1}}}}},
		{"bad value index", &pb.PrimitiveGroup{Nodes: []*pb.Node{{Id: proto.Int64(1), Lat: proto.Int64(0), Lon: proto.Int64(0), Keys: []uint32{1}, Vals: []uint32{5}}}}},
		{"keys without values", &pb.PrimitiveGroup{Ways: []*pb.Way{{Id: proto.Int64(1), Keys: []uint32{1}}}}},
		{"bad role index", &pb.PrimitiveGroup{Relations: []*pb.Relation{{
			Id: proto.Int64(1), Memids: []int64{1}, Types: []pb.Relation_MemberType{pb.Relation_WAY}, RolesSid: []int32{9},
		}}}},
		{"unknown member type", &pb.PrimitiveGroup{Relations: []*pb.Relation{{
			Id: proto.Int64(1), Memids: []int64{1}, Types: []pb.Relation_MemberType{7}, RolesSid: []int32{0},
		}}}},
		{"short member types", &pb.PrimitiveGroup{Relations: []*pb.Relation{{
			Id: proto.Int64(1), Memids: []int64{1, 2}, Types: []pb.Relation_MemberType{pb.Relation_WAY}, RolesSid: []int32{0, 0},
		}}}},
		{"short dense lats", &pb.PrimitiveGroup{Dense: &pb.DenseNodes{Id: []int64{1, 1}, Lat: []int64{0}, Lon: []int64{0, 0}}}},
		{"unterminated dense tags", &pb.PrimitiveGroup{Dense: &pb.DenseNodes{Id: []int64{1, 1}, Lat: []int64{0, 0}, Lon: []int64{0, 0}, KeysVals: []int32{1, 1, 0}}}},
		{"bad dense tag index", &pb.PrimitiveGroup{Dense: &pb.DenseNodes{Id: []int64{1}, Lat: []int64{0}, Lon: []int64{0}, KeysVals: []int32{1, 3, 0}}}},
		{"short dense info", &pb.PrimitiveGroup{Dense: &pb.DenseNodes{
			Id: []int64{1, 1}, Lat: []int64{0, 0}, Lon: []int64{0, 0}, Denseinfo: &pb.DenseInfo{Version: []int32{1}},
		}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blk := &pb.PrimitiveBlock{Stringtable: table, Primitivegroup: []*pb.PrimitiveGroup{tc.pg}}

			_, err := ParsePrimitiveBlock(marshal(t, blk), true)
			assert.ErrorIs(t, err, core.ErrFormat)
		})
	}

	_, err := ParsePrimitiveBlock([]byte{0xff}, true)
	assert.ErrorIs(t, err, core.ErrFormat)
}
