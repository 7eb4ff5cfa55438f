// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package request implements the Request: the user-facing creation record
// ("a line segment", "a circle") that the entity generator expands into
// concrete Param/Entity rows each time its owning group regenerates.
package request

import (
	"sort"

	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
)

// Kind mirrors the subset of entity.Kind a user can directly request;
// composite entities (Workplane's normal, a transformed copy's points)
// are never requested directly, only generated.
type Kind int

const (
	RequestPointIn3D Kind = iota
	RequestPointInWorkplane
	RequestNormalIn3D
	RequestNormalInWorkplane
	RequestDistance
	RequestLineSegment
	RequestCubic
	RequestCubicPeriodic
	RequestCircle
	RequestArcOfCircle
	RequestWorkplane
	RequestFace
)

// Request is the creation record of one piece of user geometry.
type Request struct {
	Handle    hdl.Request
	Kind      Kind
	Group     hdl.Group
	Workplane hdl.Entity // hdl.None if free in 3D

	// initial numeric guesses for the entity's params, in the fixed order
	// its Kind's entity.Kind counterpart expects (e.g. x,y,z for a 3-D
	// point; qw,qx,qy,qz for a normal).
	InitialValues []float64

	// point-entity handles this request's entity refers to, e.g. a line
	// segment's two endpoints, a circle's center -- populated once those
	// points are themselves generated (in declaration order, earlier
	// requests first, per the invariant that a request may only reference
	// strictly earlier requests within the same group).
	Points []hdl.Entity

	Str string // text-origin string, if applicable
}

// Store is an ordered handle-keyed container of Request.
type Store struct {
	byHandle map[hdl.Request]*Request
	order    []hdl.Request
}

// NewStore allocates an empty Store.
func NewStore() *Store { return &Store{byHandle: make(map[hdl.Request]*Request)} }

// Add inserts r, replacing any existing Request with the same handle.
func (s *Store) Add(r *Request) {
	if _, exists := s.byHandle[r.Handle]; !exists {
		i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= r.Handle })
		s.order = append(s.order, 0)
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = r.Handle
	}
	s.byHandle[r.Handle] = r
}

// Get returns the Request with the given handle, or nil if absent.
func (s *Store) Get(h hdl.Request) *Request { return s.byHandle[h] }

// Ordered returns every Request in ascending handle order.
func (s *Store) Ordered() []*Request {
	out := make([]*Request, len(s.order))
	for i, h := range s.order {
		out[i] = s.byHandle[h]
	}
	return out
}

// Len returns the number of requests in the store.
func (s *Store) Len() int { return len(s.order) }

// entityKindFor maps a request Kind to the entity.Kind its generated
// entity carries.
func entityKindFor(k Kind) entity.Kind {
	switch k {
	case RequestPointIn3D:
		return entity.PointIn3D
	case RequestPointInWorkplane:
		return entity.PointInWorkplane
	case RequestNormalIn3D:
		return entity.NormalIn3D
	case RequestNormalInWorkplane:
		return entity.NormalInWorkplane
	case RequestDistance:
		return entity.Distance
	case RequestLineSegment:
		return entity.LineSegment
	case RequestCubic:
		return entity.Cubic
	case RequestCubicPeriodic:
		return entity.CubicPeriodic
	case RequestCircle:
		return entity.Circle
	case RequestArcOfCircle:
		return entity.ArcOfCircle
	case RequestWorkplane:
		return entity.Workplane
	case RequestFace:
		return entity.Face
	}
	diag.Invariant(false, "request: unhandled Kind %v", k)
	return 0
}

// Generate materializes r's entity (and, for point/normal kinds, its
// backing params) into es/ps, seeding new params at the request's
// InitialValues. The entity handle is derived from r.Handle per the
// owner-packed-bits layout in the hdl package: an entity generated by
// request r always has owner r and a fixed local index (0, since each
// request generates exactly one top-level entity).
func Generate(r *Request, es *entity.Store, ps *param.Store) hdl.Entity {
	if r.Kind == RequestWorkplane {
		return generateWorkplane(r, es, ps)
	}

	eh := hdl.NewEntity(r.Handle, 0)
	ek := entityKindFor(r.Kind)

	e := &entity.Entity{
		Handle:    eh,
		Kind:      ek,
		Group:     r.Group,
		Request:   r.Handle,
		Workplane: r.Workplane,
		Str:       r.Str,
	}

	n := e.NumPointParams()
	for i := 0; i < n && i < 4; i++ {
		ph := hdl.NewParam(r.Handle, i)
		v := 0.0
		if i < len(r.InitialValues) {
			v = r.InitialValues[i]
		}
		ps.Add(&param.Param{Handle: ph, Value: v})
		e.Params[i] = ph
	}

	copy(e.Points[:], r.Points)
	es.Add(e)
	return eh
}

// generateWorkplane handles RequestWorkplane specially: unlike every other
// kind, a workplane's entity.Entity is not self-contained -- its basis
// comes from a backing NormalIn3D entity (constraint.WorkplaneBasis reads
// wp.Normal) and its origin from a backing PointIn3D entity (wp.Points[0]),
// so one request here expands into three entities sharing its owner bits:
// local index 0 is the workplane itself (the handle callers reference),
// 1 is its origin point, 2 is its orientation normal. InitialValues is the
// concatenation ox,oy,oz,qw,qx,qy,qz; an omitted quaternion defaults to the
// identity qw=1.
func generateWorkplane(r *Request, es *entity.Store, ps *param.Store) hdl.Entity {
	wpH := hdl.NewEntity(r.Handle, 0)
	originH := hdl.NewEntity(r.Handle, 1)
	normalH := hdl.NewEntity(r.Handle, 2)

	origin := &entity.Entity{Handle: originH, Kind: entity.PointIn3D, Group: r.Group, Request: r.Handle}
	for i := 0; i < 3; i++ {
		ph := hdl.NewParam(r.Handle, i)
		v := 0.0
		if i < len(r.InitialValues) {
			v = r.InitialValues[i]
		}
		ps.Add(&param.Param{Handle: ph, Value: v})
		origin.Params[i] = ph
	}
	es.Add(origin)

	normal := &entity.Entity{Handle: normalH, Kind: entity.NormalIn3D, Group: r.Group, Request: r.Handle}
	for i := 0; i < 4; i++ {
		ph := hdl.NewParam(r.Handle, 3+i)
		v := 0.0
		if 3+i < len(r.InitialValues) {
			v = r.InitialValues[3+i]
		} else if i == 0 {
			v = 1
		}
		ps.Add(&param.Param{Handle: ph, Value: v})
		normal.Params[i] = ph
	}
	es.Add(normal)

	wp := &entity.Entity{
		Handle:  wpH,
		Kind:    entity.Workplane,
		Group:   r.Group,
		Request: r.Handle,
		Normal:  normalH,
		Str:     r.Str,
	}
	wp.Points[0] = originH
	es.Add(wp)
	return wpH
}
