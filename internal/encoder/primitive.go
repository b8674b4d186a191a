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
	"math"
	"time"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

const (
	DefaultDateGranularity = 1000
	DefaultGranularity     = 100

	// EntityLimit is the max number of entities in a pb.PrimitiveBlock
	// written by certain programs (e.g. osmosis 0.38).
	EntityLimit = 8000
)

// BlockSettings controls how coordinates, timestamps and nodes are stored
// in a primitive block.
type BlockSettings struct {
	Granularity     int32
	LatOffset       int64
	LonOffset       int64
	DateGranularity int32
	DenseNodes      bool
}

// DefaultBlockSettings returns the settings used by most writers.
func DefaultBlockSettings() BlockSettings {
	return BlockSettings{
		Granularity:     DefaultGranularity,
		DateGranularity: DefaultDateGranularity,
		DenseNodes:      true,
	}
}

// NodesBlock assembles the buffered nodes into a primitive block, either as
// dense nodes or as one message per node.
func NodesBlock(b *Buffer[model.Node], s BlockSettings) *pb.PrimitiveBlock {
	pg := &pb.PrimitiveGroup{}

	if s.DenseNodes {
		pg.Dense = s.denseNodes(b)
	} else {
		pg.Nodes = s.nodes(b)
	}

	return s.block(b.Strings(), pg)
}

// WaysBlock assembles the buffered ways into a primitive block.
func WaysBlock(b *Buffer[model.Way], s BlockSettings) *pb.PrimitiveBlock {
	table := b.Strings()
	ways := make([]*pb.Way, len(b.Entities()))

	for i, w := range b.Entities() {
		var enc core.DeltaEncoder[int64]

		refs := make([]int64, len(w.NodeIDs))
		for j, r := range w.NodeIDs {
			refs[j] = enc.Encode(int64(r))
		}

		keys, vals := tagIndices(w.Tags, table)

		ways[i] = &pb.Way{
			Id:   proto.Int64(int64(w.ID)),
			Keys: keys,
			Vals: vals,
			Refs: refs,
		}

		if b.Metadata() {
			ways[i].Info = s.info(w.Info, table)
		}
	}

	return s.block(table, &pb.PrimitiveGroup{Ways: ways})
}

// RelationsBlock assembles the buffered relations into a primitive block.
func RelationsBlock(b *Buffer[model.Relation], s BlockSettings) *pb.PrimitiveBlock {
	table := b.Strings()
	relations := make([]*pb.Relation, len(b.Entities()))

	for i, r := range b.Entities() {
		var enc core.DeltaEncoder[int64]

		memids := make([]int64, len(r.Members))
		roles := make([]int32, len(r.Members))
		types := make([]pb.Relation_MemberType, len(r.Members))

		for j, m := range r.Members {
			memids[j] = enc.Encode(int64(m.ID))
			roles[j] = table.Intern(m.Role)
			types[j] = pb.Relation_MemberType(m.Type)
		}

		keys, vals := tagIndices(r.Tags, table)

		relations[i] = &pb.Relation{
			Id:       proto.Int64(int64(r.ID)),
			Keys:     keys,
			Vals:     vals,
			RolesSid: roles,
			Memids:   memids,
			Types:    types,
		}

		if b.Metadata() {
			relations[i].Info = s.info(r.Info, table)
		}
	}

	return s.block(table, &pb.PrimitiveGroup{Relations: relations})
}

func (s BlockSettings) block(table *core.StringTable, pg *pb.PrimitiveGroup) *pb.PrimitiveBlock {
	return &pb.PrimitiveBlock{
		Stringtable:     &pb.StringTable{S: table.Materialize()},
		Primitivegroup:  []*pb.PrimitiveGroup{pg},
		Granularity:     proto.Int32(s.Granularity),
		LatOffset:       proto.Int64(s.LatOffset),
		LonOffset:       proto.Int64(s.LonOffset),
		DateGranularity: proto.Int32(s.DateGranularity),
	}
}

func (s BlockSettings) nodes(b *Buffer[model.Node]) []*pb.Node {
	table := b.Strings()
	nodes := make([]*pb.Node, len(b.Entities()))

	for i, n := range b.Entities() {
		keys, vals := tagIndices(n.Tags, table)

		nodes[i] = &pb.Node{
			Id:   proto.Int64(int64(n.ID)),
			Keys: keys,
			Vals: vals,
			Lat:  proto.Int64(model.ToCoordinate(s.LatOffset, s.Granularity, n.Lat)),
			Lon:  proto.Int64(model.ToCoordinate(s.LonOffset, s.Granularity, n.Lon)),
		}

		if b.Metadata() {
			nodes[i].Info = s.info(n.Info, table)
		}
	}

	return nodes
}

func (s BlockSettings) denseNodes(b *Buffer[model.Node]) *pb.DenseNodes {
	table := b.Strings()
	nodes := b.Entities()

	dn := &pb.DenseNodes{
		Id:  make([]int64, len(nodes)),
		Lat: make([]int64, len(nodes)),
		Lon: make([]int64, len(nodes)),
	}

	var id, lat, lon core.DeltaEncoder[int64]

	for i, n := range nodes {
		dn.Id[i] = id.Encode(int64(n.ID))
		dn.Lat[i] = lat.Encode(model.ToCoordinate(s.LatOffset, s.Granularity, n.Lat))
		dn.Lon[i] = lon.Encode(model.ToCoordinate(s.LonOffset, s.Granularity, n.Lon))

		for _, k := range sortedKeys(n.Tags) {
			dn.KeysVals = append(dn.KeysVals, table.Intern(k), table.Intern(n.Tags[k]))
		}

		// every node is terminated, tagged or not
		dn.KeysVals = append(dn.KeysVals, 0)
	}

	if b.Metadata() {
		dn.Denseinfo = s.denseInfo(nodes, table)
	}

	return dn
}

func (s BlockSettings) denseInfo(nodes []model.Node, table *core.StringTable) *pb.DenseInfo {
	di := &pb.DenseInfo{
		Version:   make([]int32, len(nodes)),
		Timestamp: make([]int64, len(nodes)),
		Changeset: make([]int64, len(nodes)),
		Uid:       make([]int32, len(nodes)),
		UserSid:   make([]int32, len(nodes)),
	}

	var timestamp, changeset core.DeltaEncoder[int64]

	var uid, userSid core.DeltaEncoder[int32]

	visible := make([]bool, len(nodes))
	hidden := false

	for i, n := range nodes {
		info := infoOf(n.Info)

		di.Version[i] = info.Version
		di.Timestamp[i] = timestamp.Encode(s.timestamp(info.Timestamp))
		di.Changeset[i] = changeset.Encode(info.Changeset)
		di.Uid[i] = uid.Encode(int32(info.UID))
		di.UserSid[i] = userSid.Encode(table.Intern(info.User))

		visible[i] = info.Visible
		hidden = hidden || !info.Visible
	}

	// readers assume visible when the array is absent
	if hidden {
		di.Visible = visible
	}

	return di
}

func (s BlockSettings) info(i *model.Info, table *core.StringTable) *pb.Info {
	info := infoOf(i)

	pi := &pb.Info{
		Version: proto.Int32(info.Version),
		Visible: proto.Bool(info.Visible),
	}

	if !info.Timestamp.IsZero() {
		pi.Timestamp = proto.Int64(s.timestamp(info.Timestamp))
	}

	if info.Changeset != 0 {
		pi.Changeset = proto.Int64(info.Changeset)
	}

	if info.UID != 0 {
		pi.Uid = proto.Int32(int32(info.UID))
	}

	if info.User != "" {
		pi.UserSid = proto.Uint32(uint32(table.Intern(info.User)))
	}

	return pi
}

// timestamp converts t into date granularity units, zero meaning absent.
func (s BlockSettings) timestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return int64(math.Round(float64(t.UnixMilli()) / float64(s.DateGranularity)))
}

func infoOf(i *model.Info) *model.Info {
	if i == nil {
		return &model.Info{}
	}

	return i
}

func tagIndices(tags map[string]string, table *core.StringTable) (keys []uint32, vals []uint32) {
	for _, k := range sortedKeys(tags) {
		keys = append(keys, uint32(table.Intern(k)))
		vals = append(vals, uint32(table.Intern(tags[k])))
	}

	return keys, vals
}
