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
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

// ParsePrimitiveBlock decodes the entities of an OSMData block.  Within each
// group, dense nodes come first followed by nodes, ways and relations.
// Entity metadata is only decoded when metadata is set.
func ParsePrimitiveBlock(data []byte, metadata bool) ([]model.Entity, error) {
	blk := &pb.PrimitiveBlock{}
	if err := proto.Unmarshal(data, blk); err != nil {
		slog.Error("unable to unmarshal primitive block", "error", err)

		return nil, fmt.Errorf("%w: unable to unmarshal primitive block: %w", core.ErrFormat, err)
	}

	c := newBlockContext(blk, metadata)

	var entities []model.Entity

	for _, pg := range blk.GetPrimitivegroup() {
		var err error

		if entities, err = c.decodeDenseNodes(entities, pg.GetDense()); err != nil {
			return nil, err
		}

		if entities, err = c.decodeNodes(entities, pg.GetNodes()); err != nil {
			return nil, err
		}

		if entities, err = c.decodeWays(entities, pg.GetWays()); err != nil {
			return nil, err
		}

		if entities, err = c.decodeRelations(entities, pg.GetRelations()); err != nil {
			return nil, err
		}
	}

	return entities, nil
}

type blockContext struct {
	strings         core.Strings
	granularity     int32
	latOffset       int64
	lonOffset       int64
	dateGranularity int32
	metadata        bool
}

func newBlockContext(blk *pb.PrimitiveBlock, metadata bool) *blockContext {
	return &blockContext{
		strings:         core.NewStrings(blk.GetStringtable().GetS()),
		granularity:     blk.GetGranularity(),
		latOffset:       blk.GetLatOffset(),
		lonOffset:       blk.GetLonOffset(),
		dateGranularity: blk.GetDateGranularity(),
		metadata:        metadata,
	}
}

func (c *blockContext) decodeNodes(entities []model.Entity, nodes []*pb.Node) ([]model.Entity, error) {
	for _, node := range nodes {
		tags, err := c.decodeTags(node.GetKeys(), node.GetVals())
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", node.GetId(), err)
		}

		info, err := c.decodeInfo(node.GetInfo())
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", node.GetId(), err)
		}

		entities = append(entities, &model.Node{
			ID:   model.ID(node.GetId()),
			Tags: tags,
			Info: info,
			Lat:  model.ToDegrees(c.latOffset, c.granularity, node.GetLat()),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, node.GetLon()),
		})
	}

	return entities, nil
}

func (c *blockContext) decodeDenseNodes(entities []model.Entity, nodes *pb.DenseNodes) ([]model.Entity, error) {
	ids := nodes.GetId()
	lats := nodes.GetLat()
	lons := nodes.GetLon()

	if len(lats) != len(ids) || len(lons) != len(ids) {
		return nil, fmt.Errorf("%w: dense nodes have %d ids, %d lats and %d lons", core.ErrFormat, len(ids), len(lats), len(lons))
	}

	tic := c.newTagsContext(nodes.GetKeysVals())

	var dic *denseInfoContext

	if c.metadata && nodes.GetDenseinfo() != nil {
		var err error
		if dic, err = c.newDenseInfoContext(nodes.GetDenseinfo(), len(ids)); err != nil {
			return nil, err
		}
	}

	var id, lat, lon core.DeltaDecoder[int64]

	for i := range ids {
		n := &model.Node{
			ID:  model.ID(id.Decode(ids[i])),
			Lat: model.ToDegrees(c.latOffset, c.granularity, lat.Decode(lats[i])),
			Lon: model.ToDegrees(c.lonOffset, c.granularity, lon.Decode(lons[i])),
		}

		tags, err := tic.decodeTags()
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}

		n.Tags = tags

		if dic != nil {
			if n.Info, err = dic.decodeInfo(i); err != nil {
				return nil, fmt.Errorf("node %d: %w", n.ID, err)
			}
		}

		entities = append(entities, n)
	}

	return entities, nil
}

func (c *blockContext) decodeWays(entities []model.Entity, ways []*pb.Way) ([]model.Entity, error) {
	for _, way := range ways {
		var nodeIDs []model.ID

		if refs := way.GetRefs(); len(refs) > 0 {
			nodeIDs = make([]model.ID, len(refs))

			var ref core.DeltaDecoder[int64]

			for j, delta := range refs {
				nodeIDs[j] = model.ID(ref.Decode(delta))
			}
		}

		tags, err := c.decodeTags(way.GetKeys(), way.GetVals())
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", way.GetId(), err)
		}

		info, err := c.decodeInfo(way.GetInfo())
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", way.GetId(), err)
		}

		entities = append(entities, &model.Way{
			ID:      model.ID(way.GetId()),
			Tags:    tags,
			Info:    info,
			NodeIDs: nodeIDs,
		})
	}

	return entities, nil
}

func (c *blockContext) decodeRelations(entities []model.Entity, relations []*pb.Relation) ([]model.Entity, error) {
	for _, relation := range relations {
		tags, err := c.decodeTags(relation.GetKeys(), relation.GetVals())
		if err != nil {
			return nil, fmt.Errorf("relation %d: %w", relation.GetId(), err)
		}

		info, err := c.decodeInfo(relation.GetInfo())
		if err != nil {
			return nil, fmt.Errorf("relation %d: %w", relation.GetId(), err)
		}

		members, err := c.decodeMembers(relation)
		if err != nil {
			return nil, fmt.Errorf("relation %d: %w", relation.GetId(), err)
		}

		entities = append(entities, &model.Relation{
			ID:      model.ID(relation.GetId()),
			Tags:    tags,
			Info:    info,
			Members: members,
		})
	}

	return entities, nil
}

func (c *blockContext) decodeMembers(relation *pb.Relation) ([]model.Member, error) {
	memids := relation.GetMemids()
	memtypes := relation.GetTypes()
	memroles := relation.GetRolesSid()

	if len(memtypes) != len(memids) || len(memroles) != len(memids) {
		return nil, fmt.Errorf("%w: %d member ids, %d types and %d roles", core.ErrFormat, len(memids), len(memtypes), len(memroles))
	}

	if len(memids) == 0 {
		return nil, nil
	}

	members := make([]model.Member, len(memids))

	var memid core.DeltaDecoder[int64]

	for i := range memids {
		t, err := decodeMemberType(memtypes[i])
		if err != nil {
			return nil, err
		}

		role, err := c.strings.Resolve(int64(memroles[i]))
		if err != nil {
			return nil, err
		}

		members[i] = model.Member{
			ID:   model.ID(memid.Decode(memids[i])),
			Type: t,
			Role: role,
		}
	}

	return members, nil
}

// decodeTags returns nil when there are no tags.
func (c *blockContext) decodeTags(keyIDs, valIDs []uint32) (map[string]string, error) {
	if len(keyIDs) != len(valIDs) {
		return nil, fmt.Errorf("%w: %d keys but %d values", core.ErrFormat, len(keyIDs), len(valIDs))
	}

	if len(keyIDs) == 0 {
		return nil, nil
	}

	tags := make(map[string]string, len(keyIDs))

	for i, keyID := range keyIDs {
		k, err := c.strings.Resolve(int64(keyID))
		if err != nil {
			return nil, err
		}

		v, err := c.strings.Resolve(int64(valIDs[i]))
		if err != nil {
			return nil, err
		}

		tags[k] = v
	}

	return tags, nil
}

func (c *blockContext) decodeInfo(info *pb.Info) (*model.Info, error) {
	if !c.metadata || info == nil {
		return nil, nil
	}

	user, err := c.strings.Resolve(int64(info.GetUserSid()))
	if err != nil {
		return nil, err
	}

	i := &model.Info{
		Version:   info.GetVersion(),
		Timestamp: toTimestamp(c.dateGranularity, info.GetTimestamp()),
		Changeset: info.GetChangeset(),
		UID:       model.UID(info.GetUid()),
		User:      user,
		Visible:   true,
	}

	if info.Visible != nil {
		i.Visible = info.GetVisible()
	}

	return i, nil
}

type denseInfoContext struct {
	timestamp core.DeltaDecoder[int64]
	changeset core.DeltaDecoder[int64]
	uid       core.DeltaDecoder[int32]
	userSid   core.DeltaDecoder[int32]

	dateGranularity int32
	strings         core.Strings
	versions        []int32
	uids            []int32
	timestamps      []int64
	changesets      []int64
	userSids        []int32
	visibilities    []bool
}

func (c *blockContext) newDenseInfoContext(di *pb.DenseInfo, n int) (*denseInfoContext, error) {
	dic := &denseInfoContext{
		dateGranularity: c.dateGranularity,
		strings:         c.strings,
		versions:        di.GetVersion(),
		uids:            di.GetUid(),
		timestamps:      di.GetTimestamp(),
		changesets:      di.GetChangeset(),
		userSids:        di.GetUserSid(),
		visibilities:    di.GetVisible(),
	}

	for _, l := range []int{len(dic.versions), len(dic.uids), len(dic.timestamps), len(dic.changesets), len(dic.userSids)} {
		if l != 0 && l != n {
			return nil, fmt.Errorf("%w: dense info has %d entries for %d nodes", core.ErrFormat, l, n)
		}
	}

	return dic, nil
}

func (dic *denseInfoContext) decodeInfo(i int) (*model.Info, error) {
	info := &model.Info{
		Version:   at(dic.versions, i),
		UID:       model.UID(dic.uid.Decode(at(dic.uids, i))),
		Timestamp: toTimestamp(dic.dateGranularity, dic.timestamp.Decode(at(dic.timestamps, i))),
		Changeset: dic.changeset.Decode(at(dic.changesets, i)),
		Visible:   true,
	}

	user, err := dic.strings.Resolve(int64(dic.userSid.Decode(at(dic.userSids, i))))
	if err != nil {
		return nil, err
	}

	info.User = user

	// a missing or short array means visible
	if i < len(dic.visibilities) {
		info.Visible = dic.visibilities[i]
	}

	return info, nil
}

type tagsContext struct {
	strings core.Strings
	i       int
	keyVals []int32
}

func (c *blockContext) newTagsContext(keyVals []int32) *tagsContext {
	return &tagsContext{strings: c.strings, keyVals: keyVals}
}

// decodeTags decodes the tags of the next dense node, a run of key value
// pairs terminated by 0.
func (tic *tagsContext) decodeTags() (map[string]string, error) {
	if len(tic.keyVals) == 0 {
		return nil, nil
	}

	var tags map[string]string

	i := tic.i

	for {
		if i >= len(tic.keyVals) {
			return nil, fmt.Errorf("%w: unterminated dense tags", core.ErrFormat)
		}

		if tic.keyVals[i] == 0 {
			break
		}

		if i+1 >= len(tic.keyVals) {
			return nil, fmt.Errorf("%w: dense tag key without value", core.ErrFormat)
		}

		k, err := tic.strings.Resolve(int64(tic.keyVals[i]))
		if err != nil {
			return nil, err
		}

		v, err := tic.strings.Resolve(int64(tic.keyVals[i+1]))
		if err != nil {
			return nil, err
		}

		if tags == nil {
			tags = make(map[string]string)
		}

		tags[k] = v
		i += 2
	}

	tic.i = i + 1

	return tags, nil
}

func decodeMemberType(mt pb.Relation_MemberType) (model.EntityType, error) {
	switch mt {
	case pb.Relation_NODE:
		return model.NODE, nil
	case pb.Relation_WAY:
		return model.WAY, nil
	case pb.Relation_RELATION:
		return model.RELATION, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized member type %d", core.ErrFormat, mt)
	}
}

// toTimestamp converts date granularity units into a time, zero meaning
// absent.
func toTimestamp(granularity int32, timestamp int64) time.Time {
	if timestamp == 0 {
		return time.Time{}
	}

	return time.UnixMilli(timestamp * int64(granularity)).UTC()
}

func at[T any](values []T, i int) T {
	var zero T
	if i < len(values) {
		return values[i]
	}

	return zero
}
