// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/opencad/kernel/curve"

// edgeKey is an undirected, tolerance-quantized edge identity used to
// bucket triangle edges without needing shared-vertex topology.
type edgeKey struct {
	ax, ay, az, bx, by, bz int64
}

func quantize(v float64, tol float64) int64 {
	return int64(v / tol)
}

func makeEdgeKey(a, b curve.Vec3, tol float64) edgeKey {
	ka := [3]int64{quantize(a.X, tol), quantize(a.Y, tol), quantize(a.Z, tol)}
	kb := [3]int64{quantize(b.X, tol), quantize(b.Y, tol), quantize(b.Z, tol)}
	if ka[0] > kb[0] || (ka[0] == kb[0] && ka[1] > kb[1]) || (ka[0] == kb[0] && ka[1] == kb[1] && ka[2] > kb[2]) {
		ka, kb = kb, ka
	}
	return edgeKey{ka[0], ka[1], ka[2], kb[0], kb[1], kb[2]}
}

// KdNodeEdges indexes a mesh's edges by quantized endpoint coordinates
// (a flat bucket map stands in for a true kd-tree node, which the corpus
// never needed at this mesh size) so naked and self-intersecting edges
// can be enumerated without an O(n^2) edge-pair scan.
type KdNodeEdges struct {
	buckets map[edgeKey][]int // edgeKey -> owning triangle indices
	mesh    Mesh
	tol     float64
}

// BuildKdNodeEdges indexes every triangle edge of m.
func BuildKdNodeEdges(m Mesh, tol float64) *KdNodeEdges {
	kd := &KdNodeEdges{buckets: make(map[edgeKey][]int), mesh: m, tol: tol}
	for i, t := range m.Tris {
		for _, e := range [3][2]curve.Vec3{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			k := makeEdgeKey(e[0], e[1], tol)
			kd.buckets[k] = append(kd.buckets[k], i)
		}
	}
	return kd
}

// NakedEdges returns the indices of triangles that own an edge shared by
// no other triangle -- a boundary that should not exist in a closed solid.
func (kd *KdNodeEdges) NakedEdges() []int {
	var out []int
	for _, owners := range kd.buckets {
		if len(owners) == 1 {
			out = append(out, owners[0])
		}
	}
	return out
}

// SelfIntersectingEdges returns the indices of triangles whose edge is
// shared by more than two triangles, which can only happen if the mesh
// is non-manifold or two faces overlap rather than abut.
func (kd *KdNodeEdges) SelfIntersectingEdges() []int {
	var out []int
	for _, owners := range kd.buckets {
		if len(owners) > 2 {
			out = append(out, owners...)
		}
	}
	return out
}
