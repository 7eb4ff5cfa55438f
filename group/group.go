// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package group implements the Group: the regenerator's unit of work. A
// Group names a list of Requests plus, for transform-kind groups, the
// predef data (translate/rotate/scale amount and repetition count) that
// turns one generating group's entities into N transformed copies.
package group

import (
	"sort"

	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/mesh"
	"github.com/opencad/kernel/poly"
	"github.com/opencad/kernel/request"
	"github.com/opencad/kernel/shell"
)

// Kind distinguishes a plain sketch-in-workplane group from the
// transform-copy groups spec.md §3 names.
type Kind int

const (
	Sketch Kind = iota
	Extrude
	Lathe
	TranslateCopies
	RotateCopies
)

// Predef carries the transform-group parameters: how many copies, and the
// translate/rotate/scale amount applied between consecutive copies.
type Predef struct {
	Copies         int
	Translate      [3]float64
	RotateAxis     [3]float64
	RotateAngleDeg float64
	ScaleFactor    float64
}

// Group is one node of the regeneration DAG.
type Group struct {
	Handle      hdl.Group
	Name        string
	Kind        Kind
	Predecessor hdl.Group // hdl.None if this is the first group
	Predef      Predef
	Workplane   hdl.Entity // hdl.None if this group is not itself workplane-bearing

	Requests []hdl.Request

	Dirty bool // true until the next successful Regenerate pass validates it

	// Polygon is the 2-D sketch profile assembled from this group's own
	// line/arc/circle entities, in workplane-local (u,v) coordinates.
	// Only meaningful for a Sketch-kind group drawn on a workplane.
	Polygon *poly.SPolygon

	// Mesh and Shell are this group's own faceted/B-rep contribution: the
	// extrusion or revolve skeleton for Extrude/Lathe, or the transformed
	// duplicate set for TranslateCopies/RotateCopies. RunningMesh and
	// RunningShell are the cumulative solid through this group, the
	// "mesh/shell = build(solved entities, predecessor mesh/shell,
	// operation)" data flow spec.md §2 describes.
	Mesh  mesh.Mesh
	Shell *shell.Shell

	RunningMesh  mesh.Mesh
	RunningShell *shell.Shell
}

// Store is an ordered handle-keyed container of Group, same shape as
// param.Store and entity.Store.
type Store struct {
	byHandle map[hdl.Group]*Group
	order    []hdl.Group
}

// NewStore allocates an empty Store.
func NewStore() *Store { return &Store{byHandle: make(map[hdl.Group]*Group)} }

// Add inserts g, replacing any existing Group with the same handle.
func (s *Store) Add(g *Group) {
	if _, exists := s.byHandle[g.Handle]; !exists {
		i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= g.Handle })
		s.order = append(s.order, 0)
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = g.Handle
	}
	s.byHandle[g.Handle] = g
}

// Get returns the Group with the given handle, or nil if absent.
func (s *Store) Get(h hdl.Group) *Group { return s.byHandle[h] }

// Ordered returns every Group in ascending handle order -- NOT necessarily
// a valid regeneration order; regen.Order computes that from the
// predecessor DAG.
func (s *Store) Ordered() []*Group {
	out := make([]*Group, len(s.order))
	for i, h := range s.order {
		out[i] = s.byHandle[h]
	}
	return out
}

// Len returns the number of groups in the store.
func (s *Store) Len() int { return len(s.order) }

// RequestsOf returns the Request store entries owned by this Group, in
// the order g.Requests lists them.
func RequestsOf(rs *request.Store, g *Group) []*request.Request {
	out := make([]*request.Request, 0, len(g.Requests))
	for _, h := range g.Requests {
		out = append(out, rs.Get(h))
	}
	return out
}
