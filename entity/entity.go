// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entity implements the tagged-union Entity type and its ordered
// store. An Entity is a geometric object expressed as a function of
// parameters and of other entities; the variant is carried explicitly in
// Kind rather than via an "entity with optional fields" shape, per the
// design note in spec.md §9.
package entity

import (
	"sort"

	"github.com/opencad/kernel/hdl"
)

// Kind enumerates every entity variant the core materializes. This is the
// full fifteen-kind list from original_source/sketch.h's EntityBase::Type,
// recovered in SPEC_FULL.md's data-model expansion -- spec.md's distillation
// only gestures at "15+ entity kinds".
type Kind int

const (
	PointIn3D Kind = iota
	PointInWorkplane
	PointTransformed
	NormalIn3D
	NormalInWorkplane
	NormalTransformed
	Distance
	Workplane
	LineSegment
	Cubic
	CubicPeriodic
	Circle
	ArcOfCircle
	Face
	TextOrigin
)

// String names a Kind for logging and the persisted file format.
func (k Kind) String() string {
	names := [...]string{
		"PointIn3D", "PointInWorkplane", "PointTransformed",
		"NormalIn3D", "NormalInWorkplane", "NormalTransformed",
		"Distance", "Workplane", "LineSegment", "Cubic", "CubicPeriodic",
		"Circle", "ArcOfCircle", "Face", "TextOrigin",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// Entity is a geometric object: a tagged union over Kind, referencing 0-4
// param handles, 0-4 point handles, one normal, one distance, one
// workplane, and naming its owning group and originating request.
type Entity struct {
	Handle  hdl.Entity
	Kind    Kind
	Group   hdl.Group
	Request hdl.Request

	// references into other stores; which fields are meaningful depends
	// on Kind, exactly as spec.md's data model describes.
	Params    [4]hdl.Param  // e.g. quaternion components, point-in-plane uv, distance magnitude
	Points    [4]hdl.Entity // endpoints / control points, depending on Kind
	Normal    hdl.Entity
	DistanceE hdl.Entity
	Workplane hdl.Entity

	// extra scalar data not itself a Param: e.g. text string, font id.
	Str string
}

// NumPointParams returns how many Params the entity's kind carries: 2 for
// a point-on-workplane (its in-plane coordinates), 3 for a 3-D point, 4
// for a normal's unit quaternion, 1 for a distance, and 0 for every other
// kind.
func (e *Entity) NumPointParams() int {
	switch e.Kind {
	case PointInWorkplane:
		return 2
	case PointIn3D:
		return 3
	case NormalIn3D, NormalInWorkplane, NormalTransformed:
		return 4 // unit quaternion
	case Distance:
		return 1
	}
	return 0
}

// IsPoint reports whether this entity is one of the three point flavors.
func (e *Entity) IsPoint() bool {
	switch e.Kind {
	case PointIn3D, PointInWorkplane, PointTransformed:
		return true
	}
	return false
}

// IsNormal reports whether this entity is one of the three normal flavors.
func (e *Entity) IsNormal() bool {
	switch e.Kind {
	case NormalIn3D, NormalInWorkplane, NormalTransformed:
		return true
	}
	return false
}

// Store is an ordered handle-keyed container of Entity, with the same
// sorted-slice-plus-map shape as param.Store.
type Store struct {
	byHandle map[hdl.Entity]*Entity
	order    []hdl.Entity
}

// NewStore allocates an empty Store.
func NewStore() *Store {
	return &Store{byHandle: make(map[hdl.Entity]*Entity)}
}

// Add inserts e, replacing any existing Entity with the same handle.
func (s *Store) Add(e *Entity) {
	if _, exists := s.byHandle[e.Handle]; !exists {
		i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= e.Handle })
		s.order = append(s.order, 0)
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = e.Handle
	}
	s.byHandle[e.Handle] = e
}

// Get returns the Entity with the given handle, or nil if absent. Per the
// invariant in spec.md §3, a live entity only ever references handles that
// resolve via Get in the current regeneration or the immediately
// preceding group's output.
func (s *Store) Get(h hdl.Entity) *Entity {
	return s.byHandle[h]
}

// Len returns the number of entities in the store.
func (s *Store) Len() int { return len(s.order) }

// Ordered returns every Entity in ascending handle order.
func (s *Store) Ordered() []*Entity {
	out := make([]*Entity, len(s.order))
	for i, h := range s.order {
		out[i] = s.byHandle[h]
	}
	return out
}

// ByGroup returns every entity owned by the given group, in handle order.
func (s *Store) ByGroup(g hdl.Group) []*Entity {
	var out []*Entity
	for _, h := range s.order {
		if e := s.byHandle[h]; e.Group == g {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes the Entity with the given handle.
func (s *Store) Remove(h hdl.Entity) {
	if _, ok := s.byHandle[h]; !ok {
		return
	}
	delete(s.byHandle, h)
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= h })
	if i < len(s.order) && s.order[i] == h {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}
