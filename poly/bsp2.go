// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import "github.com/opencad/kernel/curve"

// SBsp2 is a binary space partition over 2-D edges, used to classify an
// edge against an accumulated boundary (inside/outside/coincident) during
// CullForBoolean without an O(n^2) edge-vs-edge scan.
type SBsp2 struct {
	Edge       Edge
	Pos, Neg   *SBsp2
	Coincident []Edge
}

// BuildSBsp2 partitions edges into a balanced-ish BSP by repeatedly
// splitting on the first remaining edge's line.
func BuildSBsp2(edges []Edge) *SBsp2 {
	if len(edges) == 0 {
		return nil
	}
	root := &SBsp2{Edge: edges[0]}
	var pos, neg []Edge
	for _, e := range edges[1:] {
		side := classifyEdge(root.Edge, e)
		switch side {
		case 0:
			root.Coincident = append(root.Coincident, e)
		case 1:
			pos = append(pos, e)
		case -1:
			neg = append(neg, e)
		default:
			// straddles the splitting line: split it and file each half
			mid := midpointSplit(e)
			pos = append(pos, mid[0])
			neg = append(neg, mid[1])
		}
	}
	root.Pos = BuildSBsp2(pos)
	root.Neg = BuildSBsp2(neg)
	return root
}

// classifyEdge returns 1 if e lies on the positive side of line's
// supporting line, -1 if negative, 0 if coincident, 2 if it straddles.
func classifyEdge(line, e Edge) int {
	nx, ny := -(line.B.Y - line.A.Y), line.B.X-line.A.X
	da := nx*(e.A.X-line.A.X) + ny*(e.A.Y-line.A.Y)
	db := nx*(e.B.X-line.A.X) + ny*(e.B.Y-line.A.Y)
	const tol = 1e-9
	aPos, aNeg := da > tol, da < -tol
	bPos, bNeg := db > tol, db < -tol
	switch {
	case !aPos && !aNeg && !bPos && !bNeg:
		return 0
	case (aPos || !aNeg) && (bPos || !bNeg) && !aNeg && !bNeg:
		return 1
	case !aPos && !bPos:
		return -1
	}
	return 2
}

func midpointSplit(e Edge) [2]Edge {
	mid := e.A.Add(e.B).Scale(0.5)
	return [2]Edge{{A: e.A, B: mid}, {B: e.B, A: mid}}
}

// PointSide reports which side of the BSP's accumulated partition pt
// falls on: 1 for positive, -1 for negative, 0 if the tree is empty.
func (t *SBsp2) PointSide(pt curve.Vec3) int {
	if t == nil {
		return 0
	}
	nx, ny := -(t.Edge.B.Y - t.Edge.A.Y), t.Edge.B.X-t.Edge.A.X
	d := nx*(pt.X-t.Edge.A.X) + ny*(pt.Y-t.Edge.A.Y)
	if d > 0 {
		if t.Pos != nil {
			return t.Pos.PointSide(pt)
		}
		return 1
	}
	if t.Neg != nil {
		return t.Neg.PointSide(pt)
	}
	return -1
}
