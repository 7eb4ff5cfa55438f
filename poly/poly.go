// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poly implements the 2-D polygon engine of spec.md §4.7:
// SEdgeList, SPolygon, and SBsp2, including the two redesign flags
// recorded in spec.md §9.
package poly

import (
	"math"

	"github.com/opencad/kernel/curve"
)

// Edge is one oriented 2-D segment of an SEdgeList, carried as a 3-D
// point pair so the same type serves both workplane-local (z ignored)
// and already-projected callers.
type Edge struct {
	A, B curve.Vec3
}

// SEdgeList is an unordered bag of edges, the intermediate form produced
// while walking a sketch's line/arc/curve entities before they are
// assembled into closed contours.
type SEdgeList struct {
	Edges []Edge
}

// intersection records where two edges cross, used by CopyBreaking.
type intersection struct {
	edgeIdx int
	t       float64
	at      curve.Vec3
}

// CopyBreaking returns a new SEdgeList where every edge has been split at
// every point it crosses another edge in the list, so the result contains
// no interior crossings. Per spec.md §9 Open Question (a) and
// SPEC_FULL.md's redesign note, the per-edge intersection buffer is a
// dynamically growing slice, not a fixed-size array -- an edge crossed by
// an arbitrary number of others is never silently truncated.
func (el *SEdgeList) CopyBreaking() SEdgeList {
	hits := make([][]intersection, len(el.Edges))
	for i := range el.Edges {
		hits[i] = nil // grows via append below, unbounded
	}

	for i := 0; i < len(el.Edges); i++ {
		for j := i + 1; j < len(el.Edges); j++ {
			if t1, t2, at, ok := segIntersect(el.Edges[i], el.Edges[j]); ok {
				hits[i] = append(hits[i], intersection{edgeIdx: j, t: t1, at: at})
				hits[j] = append(hits[j], intersection{edgeIdx: i, t: t2, at: at})
			}
		}
	}

	var out SEdgeList
	for i, e := range el.Edges {
		splits := hits[i]
		// sort by parameter t along the edge (simple insertion sort: split
		// counts are small in practice)
		for a := 1; a < len(splits); a++ {
			v := splits[a]
			b := a - 1
			for b >= 0 && splits[b].t > v.t {
				splits[b+1] = splits[b]
				b--
			}
			splits[b+1] = v
		}
		prev := e.A
		for _, s := range splits {
			if s.t <= 0 || s.t >= 1 {
				continue
			}
			out.Edges = append(out.Edges, Edge{A: prev, B: s.at})
			prev = s.at
		}
		out.Edges = append(out.Edges, Edge{A: prev, B: e.B})
	}
	return out
}

// segIntersect computes the intersection of two 2-D segments (z ignored),
// returning the parameter along each and the intersection point.
func segIntersect(a, b Edge) (t1, t2 float64, at curve.Vec3, ok bool) {
	d1x, d1y := a.B.X-a.A.X, a.B.Y-a.A.Y
	d2x, d2y := b.B.X-b.A.X, b.B.Y-b.A.Y
	denom := d1x*d2y - d1y*d2x
	if math.Abs(denom) < 1e-15 {
		return 0, 0, curve.Vec3{}, false
	}
	ex, ey := b.A.X-a.A.X, b.A.Y-a.A.Y
	t1 = (ex*d2y - ey*d2x) / denom
	t2 = (ex*d1y - ey*d1x) / denom
	if t1 < 0 || t1 > 1 || t2 < 0 || t2 > 1 {
		return 0, 0, curve.Vec3{}, false
	}
	at = curve.Vec3{X: a.A.X + t1*d1x, Y: a.A.Y + t1*d1y}
	return t1, t2, at, true
}

// CullDuplicates removes edges that coincide (in either direction) with
// an earlier edge in the list, within tol.
func (el *SEdgeList) CullDuplicates(tol float64) {
	var out []Edge
	for _, e := range el.Edges {
		dup := false
		for _, o := range out {
			if (e.A.DistanceTo(o.A) < tol && e.B.DistanceTo(o.B) < tol) ||
				(e.A.DistanceTo(o.B) < tol && e.B.DistanceTo(o.A) < tol) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	el.Edges = out
}

// CullForBoolean removes edges that lie strictly inside the other shell's
// volume/area (keep is the predicate the caller supplies -- true means
// "on the boundary of the result, keep it").
func (el *SEdgeList) CullForBoolean(keep func(Edge) bool) {
	var out []Edge
	for _, e := range el.Edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	el.Edges = out
}

// AnyEdgeCrossings reports whether any two edges in the list cross at a
// point interior to both (used to validate that CopyBreaking's output, or
// a user-drawn sketch, is free of unresolved crossings).
func (el *SEdgeList) AnyEdgeCrossings() bool {
	for i := 0; i < len(el.Edges); i++ {
		for j := i + 1; j < len(el.Edges); j++ {
			if t1, t2, _, ok := segIntersect(el.Edges[i], el.Edges[j]); ok {
				if t1 > 1e-9 && t1 < 1-1e-9 && t2 > 1e-9 && t2 < 1-1e-9 {
					return true
				}
			}
		}
	}
	return false
}

// AssemblePolygon walks el's edges end-to-end into one or more closed
// SPolygon contours, matching endpoints within tol. Edges that cannot be
// chained into a closed loop are reported via the returned bool (false
// means an open contour was found).
func (el *SEdgeList) AssemblePolygon(tol float64) (SPolygon, bool) {
	remaining := append([]Edge{}, el.Edges...)
	var poly SPolygon

	for len(remaining) > 0 {
		contour := []curve.Vec3{remaining[0].A, remaining[0].B}
		remaining = remaining[1:]
		closed := false
		for !closed && len(remaining) > 0 {
			last := contour[len(contour)-1]
			found := -1
			flip := false
			for i, e := range remaining {
				if e.A.DistanceTo(last) < tol {
					found, flip = i, false
					break
				}
				if e.B.DistanceTo(last) < tol {
					found, flip = i, true
					break
				}
			}
			if found < 0 {
				return poly, false // open contour
			}
			next := remaining[found].B
			if flip {
				next = remaining[found].A
			}
			contour = append(contour, next)
			remaining = append(remaining[:found], remaining[found+1:]...)
			if contour[len(contour)-1].DistanceTo(contour[0]) < tol {
				closed = true
			}
		}
		if !closed {
			return poly, false
		}
		poly.Contours = append(poly.Contours, contour[:len(contour)-1])
	}
	return poly, true
}
