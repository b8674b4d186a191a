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

// Package model contains the shared model for OpenStreetMap PBF readers and
// writers.
package model

//go:generate stringer -type=EntityType

import (
	"time"
)

// ID is the primary key of an entity.
type ID int64

// UID is the primary key for a user.
type UID int32

// Info is the metadata common to Node, Way, and Relation entities.  The zero
// value of Changeset, UID and User means that the field is absent.
//
// A zero timestamp is encoded as absent, so a Timestamp at the Unix epoch, or
// within half a date granularity of it, reads back as the zero time.
type Info struct {
	Version   int32
	UID       UID
	Timestamp time.Time
	Changeset int64
	User      string
	Visible   bool
}

// EntityType is the discriminant of the Entity variants.
type EntityType int32

const (
	// NODE denotes a Node.
	NODE EntityType = iota

	// WAY denotes a Way.
	WAY

	// RELATION denotes a Relation.
	RELATION
)

// Entity is one of Node, Way or Relation, either by value or by pointer.
// The set of variants is closed; switch on Type, or on the concrete type,
// to tell them apart.
type Entity interface {
	isEntity() // prevents extensions

	Type() EntityType

	GetID() ID

	GetTags() map[string]string

	GetInfo() *Info
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	ID   ID
	Tags map[string]string
	Info *Info
	Lat  Degrees
	Lon  Degrees
}

var _ Entity = Node{}

func (n Node) isEntity() {}

func (n Node) Type() EntityType { return NODE }

func (n Node) GetID() ID { return n.ID }

func (n Node) GetTags() map[string]string { return n.Tags }

func (n Node) GetInfo() *Info { return n.Info }

// Way is an ordered list of between 2 and 2,000 nodes that define a polyline.
type Way struct {
	ID      ID
	Tags    map[string]string
	Info    *Info
	NodeIDs []ID
}

var _ Entity = Way{}

func (w Way) isEntity() {}

func (w Way) Type() EntityType { return WAY }

func (w Way) GetID() ID { return w.ID }

func (w Way) GetTags() map[string]string { return w.Tags }

func (w Way) GetInfo() *Info { return w.Info }

// Member is a reference from a relation to another entity, qualified by the
// role it plays in the relation.
type Member struct {
	ID   ID
	Type EntityType
	Role string
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more data entities (nodes, ways, and/or other relations).
type Relation struct {
	ID      ID
	Tags    map[string]string
	Info    *Info
	Members []Member
}

var _ Entity = Relation{}

func (r Relation) isEntity() {}

func (r Relation) Type() EntityType { return RELATION }

func (r Relation) GetID() ID { return r.ID }

func (r Relation) GetTags() map[string]string { return r.Tags }

func (r Relation) GetInfo() *Info { return r.Info }
