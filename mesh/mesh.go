// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the faceted triangle-mesh representation of
// spec.md §4.9: a triangle soup, an SBsp3 classifier, and the
// watertightness checks every export pass runs. No boolean operation on
// meshes is provided.
package mesh

import (
	"math"

	"github.com/opencad/kernel/curve"
	"github.com/opencad/kernel/diag"
)

// Triangle is three CCW-wound vertices (the winding determines the
// outward normal via Normal()).
type Triangle struct {
	A, B, C curve.Vec3
}

// Normal returns the triangle's outward unit normal from its winding.
func (t Triangle) Normal() curve.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalized()
}

// Degenerate reports whether t has near-zero area: the length of its edge
// cross product (twice its area) is below tol.
func (t Triangle) Degenerate(tol float64) bool {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	return n.Norm() < tol
}

// Mesh is a triangle soup with no explicit shared-vertex topology; naked
// and self-intersecting edges are recovered on demand via KdNodeEdges.
type Mesh struct {
	Tris []Triangle
}

// Transform applies fn to every vertex, returning a new Mesh.
func (m Mesh) Transform(fn func(curve.Vec3) curve.Vec3) Mesh {
	out := Mesh{Tris: make([]Triangle, len(m.Tris))}
	for i, t := range m.Tris {
		out.Tris[i] = Triangle{A: fn(t.A), B: fn(t.B), C: fn(t.C)}
	}
	return out
}

// BBox returns the axis-aligned bounding box (lo, hi) of the mesh.
func (m Mesh) BBox() (lo, hi curve.Vec3) {
	if len(m.Tris) == 0 {
		return
	}
	lo = m.Tris[0].A
	hi = m.Tris[0].A
	for _, t := range m.Tris {
		for _, v := range [3]curve.Vec3{t.A, t.B, t.C} {
			lo = minVec(lo, v)
			hi = maxVec(hi, v)
		}
	}
	return
}

func minVec(a, b curve.Vec3) curve.Vec3 {
	return curve.Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}
func maxVec(a, b curve.Vec3) curve.Vec3 {
	return curve.Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// CullDegenerate drops triangles whose area falls below tol.
func (m *Mesh) CullDegenerate(tol float64) {
	var out []Triangle
	for _, t := range m.Tris {
		if !t.Degenerate(tol) {
			out = append(out, t)
		}
	}
	m.Tris = out
}

// SignedVolume returns the mesh's signed volume via the divergence
// theorem (sum of signed tetrahedra from the origin to each triangle);
// negative indicates inward-facing (reversed) winding.
func (m Mesh) SignedVolume() float64 {
	var v float64
	for _, t := range m.Tris {
		v += t.A.Dot(t.B.Cross(t.C)) / 6
	}
	return v
}

// CenterOfMass returns the volume-weighted centroid, valid for a closed,
// consistently-wound mesh.
func (m Mesh) CenterOfMass() curve.Vec3 {
	var cx, cy, cz, vol float64
	for _, t := range m.Tris {
		tetVol := t.A.Dot(t.B.Cross(t.C)) / 6
		cx += tetVol * (t.A.X + t.B.X + t.C.X) / 4
		cy += tetVol * (t.A.Y + t.B.Y + t.C.Y) / 4
		cz += tetVol * (t.A.Z + t.B.Z + t.C.Z) / 4
		vol += tetVol
	}
	if vol == 0 {
		return curve.Vec3{}
	}
	return curve.Vec3{X: cx / vol, Y: cy / vol, Z: cz / vol}
}

// PerVertexNormals returns, for each triangle vertex (in flattened A,B,C
// per-triangle order matching m.Tris), the normalized sum of the unit
// normals of every triangle sharing that position within tol -- used to smooth-
// shade a faceted export without a shared-topology mesh structure.
func (m Mesh) PerVertexNormals(tol float64) []curve.Vec3 {
	out := make([]curve.Vec3, 0, len(m.Tris)*3)
	verts := make([]curve.Vec3, 0, len(m.Tris)*3)
	for _, t := range m.Tris {
		verts = append(verts, t.A, t.B, t.C)
	}
	for _, v := range verts {
		var sum curve.Vec3
		for _, t := range m.Tris {
			for _, tv := range [3]curve.Vec3{t.A, t.B, t.C} {
				if tv.DistanceTo(v) < tol {
					sum = sum.Add(t.Normal())
					break
				}
			}
		}
		out = append(out, sum.Normalized())
	}
	return out
}

// CheckWatertight runs the naked/self-intersecting edge audit every export
// pass performs before writing a solid body, returning a typed diagnosis
// instead of silently emitting a broken mesh.
func CheckWatertight(m Mesh, tol float64) diag.Result {
	kd := BuildKdNodeEdges(m, tol)
	if naked := kd.NakedEdges(); len(naked) > 0 {
		return diag.Errorf(diag.MeshHasNakedEdges, "mesh has %d naked edges", len(naked))
	}
	if inter := kd.SelfIntersectingEdges(); len(inter) > 0 {
		return diag.Errorf(diag.MeshSelfIntersects, "mesh has %d self-intersecting edges", len(inter))
	}
	return diag.OK
}
