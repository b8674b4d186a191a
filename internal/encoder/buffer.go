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
	"slices"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/model"
)

// Estimated serialized costs, in bytes, of the parts of an entity.  They are
// generous so that the estimate stays above the actual block size.
const (
	tagCost      = 8
	nodeCost     = 26
	wayCost      = 16
	refCost      = 10
	relationCost = 16
	memberCost   = 16
	infoCost     = 28
)

// Buffer accumulates the entities of a single type until they are assembled
// into a primitive block.  Every string the block will reference is interned
// as the entity is added.
type Buffer[T model.Entity] struct {
	entities []T
	strings  *core.StringTable
	estimate int
	metadata bool
}

// NewBuffer returns an empty buffer.  When metadata is set, user names are
// interned and the entity metadata is accounted for.
func NewBuffer[T model.Entity](metadata bool) *Buffer[T] {
	return &Buffer[T]{
		strings:  core.NewStringTable(),
		metadata: metadata,
	}
}

// Add appends e to the buffer.
func (b *Buffer[T]) Add(e T) {
	b.entities = append(b.entities, e)

	tags := e.GetTags()
	for _, k := range sortedKeys(tags) {
		b.strings.Intern(k)
		b.strings.Intern(tags[k])
	}

	b.estimate += len(tags) * tagCost

	switch v := any(e).(type) {
	case model.Node:
		b.estimate += nodeCost
	case model.Way:
		b.estimate += wayCost + len(v.NodeIDs)*refCost
	case model.Relation:
		b.estimate += relationCost + len(v.Members)*memberCost

		for _, m := range v.Members {
			b.strings.Intern(m.Role)
		}
	}

	if b.metadata {
		b.estimate += infoCost

		if info := e.GetInfo(); info != nil {
			b.strings.Intern(info.User)
		}
	}
}

// EstimatedMaxSize returns an upper bound of the size of the block that
// would be assembled from the buffer.
func (b *Buffer[T]) EstimatedMaxSize() int {
	return b.estimate + b.strings.EstimatedSize()
}

// Len returns the number of buffered entities.
func (b *Buffer[T]) Len() int {
	return len(b.entities)
}

// Entities returns the buffered entities in insertion order.
func (b *Buffer[T]) Entities() []T {
	return b.entities
}

// Strings returns the string table of the buffered entities.
func (b *Buffer[T]) Strings() *core.StringTable {
	return b.strings
}

// Metadata reports whether entity metadata is buffered.
func (b *Buffer[T]) Metadata() bool {
	return b.metadata
}

// Clear empties the buffer and its string table.
func (b *Buffer[T]) Clear() {
	clear(b.entities)
	b.entities = b.entities[:0]
	b.strings.Reset()
	b.estimate = 0
}

func sortedKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
