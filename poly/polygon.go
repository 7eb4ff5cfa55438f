// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"math"

	"github.com/opencad/kernel/curve"
)

// SPolygon is one or more closed 2-D contours (the outer boundary plus
// any islands/holes), as produced by SEdgeList.AssemblePolygon.
type SPolygon struct {
	Contours [][]curve.Vec3
}

// perturbEpsilon is the fixed offset ContainsPoint nudges the test point
// by before running the parity test. Per spec.md §9 Open Question (c),
// this makes "point exactly on an edge" a stable decision instead of an
// accidental one that depends on floating-point rounding of the raw ray
// cast: the point counts as inside or outside according to which side of
// that edge the fixed nudge lands on (on an axis-aligned square, inside on
// its left edge and outside on its right edge).
const perturbEpsilon = 1e-9

// ContainsPoint reports whether p lies inside the polygon (outer contour
// minus any islands), using a parity (even-odd) ray cast. The point is
// first perturbed by perturbEpsilon along a fixed direction (1, pi/7300 —
// an irrational-enough slope that it will not be parallel to any axis-
// aligned or otherwise "nice" edge in practice) so a point falling exactly
// on an edge gets a stable, documented answer rather than one that flips
// with rounding.
func (p SPolygon) ContainsPoint(pt curve.Vec3) bool {
	dir := curve.Vec3{X: 1, Y: math.Pi / 7300}
	test := pt.Add(dir.Scale(perturbEpsilon))

	inside := false
	for _, contour := range p.Contours {
		if contourContains(contour, test) {
			inside = !inside
		}
	}
	return inside
}

// contourContains runs the standard even-odd ray-cast test against one
// closed contour (cast along +X from the test point).
func contourContains(contour []curve.Vec3, pt curve.Vec3) bool {
	n := len(contour)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := contour[i], contour[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xCross := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// signedArea returns twice the signed area of a contour (positive for
// counter-clockwise).
func signedArea(contour []curve.Vec3) float64 {
	var sum float64
	n := len(contour)
	for i := 0; i < n; i++ {
		a := contour[i]
		b := contour[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// FixContourDirections normalizes every contour's winding so the outermost
// is counter-clockwise and every island/hole inside it is clockwise,
// matching the orientation convention TriangulateInto's ear-clip relies on.
func (p *SPolygon) FixContourDirections() {
	if len(p.Contours) == 0 {
		return
	}
	outerIdx := 0
	outerArea := math.Abs(signedArea(p.Contours[0]))
	for i, c := range p.Contours {
		if a := math.Abs(signedArea(c)); a > outerArea {
			outerArea, outerIdx = a, i
		}
	}
	for i := range p.Contours {
		area := signedArea(p.Contours[i])
		wantCCW := i == outerIdx
		if (area > 0) != wantCCW {
			reverse(p.Contours[i])
		}
	}
}

func reverse(pts []curve.Vec3) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// TriangulateInto ear-clips p (after FixContourDirections has been called)
// into triangles appended to dst. Islands are bridged into the outer
// contour by connecting each island's first vertex to the outer
// contour's vertex nearest it with a zero-width seam, the standard technique
// for reducing a polygon-with-holes to a single simple polygon an ear-clip
// can consume.
func (p SPolygon) TriangulateInto(dst *[]curve.Vec3) {
	if len(p.Contours) == 0 {
		return
	}
	merged := append([]curve.Vec3{}, p.Contours[0]...)
	for _, island := range p.Contours[1:] {
		merged = bridgeIsland(merged, island)
	}
	earClip(merged, dst)
}

// bridgeIsland splices island into outer via a seam from the island's
// first vertex to the nearest vertex of outer (the tie-break rule: ties
// broken by lowest outer-vertex index, so the result is deterministic).
func bridgeIsland(outer, island []curve.Vec3) []curve.Vec3 {
	if len(island) == 0 {
		return outer
	}
	bestI, bestD := 0, math.Inf(1)
	for i, v := range outer {
		if d := v.DistanceTo(island[0]); d < bestD {
			bestD, bestI = d, i
		}
	}
	var out []curve.Vec3
	out = append(out, outer[:bestI+1]...)
	out = append(out, island...)
	out = append(out, island[0], outer[bestI])
	out = append(out, outer[bestI+1:]...)
	return out
}

// earClip triangulates a simple (possibly non-convex) polygon by
// repeatedly clipping a convex, empty "ear" vertex.
func earClip(poly []curve.Vec3, dst *[]curve.Vec3) {
	idx := make([]int, len(poly))
	for i := range idx {
		idx[i] = i
	}
	for len(idx) > 3 {
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if isEar(poly, idx, prev, cur, next) {
				*dst = append(*dst, poly[prev], poly[cur], poly[next])
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
		}
		if !clipped {
			break // degenerate input; stop rather than loop forever
		}
	}
	if len(idx) == 3 {
		*dst = append(*dst, poly[idx[0]], poly[idx[1]], poly[idx[2]])
	}
}

func isEar(poly []curve.Vec3, idx []int, prev, cur, next int) bool {
	a, b, c := poly[prev], poly[cur], poly[next]
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross <= 0 {
		return false // reflex vertex, not an ear under CCW convention
	}
	for _, i := range idx {
		if i == prev || i == cur || i == next {
			continue
		}
		if pointInTriangle(poly[i], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c curve.Vec3) bool {
	d1 := cross2(p, a, b)
	d2 := cross2(p, b, c)
	d3 := cross2(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross2(p, a, b curve.Vec3) float64 {
	return (a.X-p.X)*(b.Y-p.Y) - (a.Y-p.Y)*(b.X-p.X)
}
