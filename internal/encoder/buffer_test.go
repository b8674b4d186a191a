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
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/pbf/v3/model"
)

func TestBufferAdd(t *testing.T) {
	b := NewBuffer[model.Relation](true)
	empty := b.EstimatedMaxSize()

	b.Add(model.Relation{
		ID:      1,
		Tags:    map[string]string{"type": "multipolygon"},
		Info:    &model.Info{User: "ann"},
		Members: []model.Member{{ID: 2, Type: model.WAY, Role: "outer"}},
	})

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 5, b.Strings().Len())
	assert.Equal(t, int32(3), b.Strings().Intern("outer"))
	assert.Equal(t, int32(4), b.Strings().Intern("ann"))

	entities := empty + tagCost + relationCost + memberCost + infoCost
	strings := len("type") + len("multipolygon") + len("outer") + len("ann") + 4*3
	assert.Equal(t, entities+strings, b.EstimatedMaxSize())
}

func TestBufferWithoutMetadata(t *testing.T) {
	b := NewBuffer[model.Way](false)
	b.Add(model.Way{ID: 1, NodeIDs: []model.ID{1, 2, 3}, Info: &model.Info{User: "ann"}})

	assert.Equal(t, 1, b.Strings().Len())
	assert.Equal(t, wayCost+3*refCost+b.Strings().EstimatedSize(), b.EstimatedMaxSize())
}

func TestBufferIsIndependent(t *testing.T) {
	nodes := NewBuffer[model.Node](false)
	ways := NewBuffer[model.Way](false)

	nodes.Add(model.Node{ID: 1, Tags: map[string]string{"a": "b"}})
	ways.Add(model.Way{ID: 1, Tags: map[string]string{"c": "d"}})

	assert.Equal(t, int32(1), nodes.Strings().Intern("a"))
	assert.Equal(t, int32(1), ways.Strings().Intern("c"))
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer[model.Node](false)
	initial := b.EstimatedMaxSize()

	b.Add(model.Node{ID: 1, Tags: map[string]string{"a": "b"}})
	b.Add(model.Node{ID: 2})
	assert.Equal(t, []model.ID{1, 2}, []model.ID{b.Entities()[0].ID, b.Entities()[1].ID})

	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Entities())
	assert.Equal(t, 1, b.Strings().Len())
	assert.Equal(t, initial, b.EstimatedMaxSize())
}
