// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/curve"
)

// unitCube builds a closed, outward-wound triangle mesh for the cube
// [0,side]^3 -- the S3 end-to-end scenario's shape (extrude a square),
// used here to exercise volume, center of mass and watertightness.
func unitCube(side float64) Mesh {
	v := func(x, y, z float64) curve.Vec3 { return curve.Vec3{X: x, Y: y, Z: z} }
	s := side
	// 8 corners
	c := [8]curve.Vec3{
		v(0, 0, 0), v(s, 0, 0), v(s, s, 0), v(0, s, 0),
		v(0, 0, s), v(s, 0, s), v(s, s, s), v(0, s, s),
	}
	quad := func(a, b, cc, d int) [2]Triangle {
		return [2]Triangle{{A: c[a], B: c[b], C: c[cc]}, {A: c[a], B: c[cc], C: c[d]}}
	}
	var tris []Triangle
	faces := [][4]int{
		{0, 3, 2, 1}, // bottom, z=0, normal -Z
		{4, 5, 6, 7}, // top, z=s, normal +Z
		{0, 1, 5, 4}, // y=0, normal -Y
		{3, 7, 6, 2}, // y=s, normal +Y
		{0, 4, 7, 3}, // x=0, normal -X
		{1, 2, 6, 5}, // x=s, normal +X
	}
	for _, f := range faces {
		q := quad(f[0], f[1], f[2], f[3])
		tris = append(tris, q[0], q[1])
	}
	return Mesh{Tris: tris}
}

func TestSignedVolumeOfCube(tst *testing.T) {

	chk.PrintTitle("Test SignedVolumeOfCube")

	m := unitCube(10)
	vol := m.SignedVolume()
	io.Pforan("vol = %v\n", vol)
	chk.Scalar(tst, "|SignedVolume|", 1e-6, abs(vol), 1000)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestCenterOfMassOfCube(tst *testing.T) {

	chk.PrintTitle("Test CenterOfMassOfCube")

	m := unitCube(10)
	com := m.CenterOfMass()
	io.Pfyel("com = %v\n", com)
	chk.Scalar(tst, "com.X", 1e-6, com.X, 5)
	chk.Scalar(tst, "com.Y", 1e-6, com.Y, 5)
	chk.Scalar(tst, "com.Z", 1e-6, com.Z, 5)
}

func TestCheckWatertightCubeHasNoNakedEdges(tst *testing.T) {

	chk.PrintTitle("Test CheckWatertightCubeHasNoNakedEdges")

	m := unitCube(10)
	if res := CheckWatertight(m, 1e-6); !res.Ok() {
		tst.Fatalf("CheckWatertight(closed cube) = %v, want Ok", res.Outcome)
	}
}

func TestCheckWatertightDetectsNakedEdge(tst *testing.T) {

	chk.PrintTitle("Test CheckWatertightDetectsNakedEdge")

	m := unitCube(10)
	m.Tris = m.Tris[:len(m.Tris)-1] // drop one triangle, opening the mesh
	res := CheckWatertight(m, 1e-6)
	if res.Ok() {
		tst.Fatal("CheckWatertight(mesh missing a face) should report naked edges")
	}
}

func TestCullDegenerateDropsZeroAreaTriangles(tst *testing.T) {

	chk.PrintTitle("Test CullDegenerateDropsZeroAreaTriangles")

	m := Mesh{Tris: []Triangle{
		{A: curve.Vec3{}, B: curve.Vec3{X: 1}, C: curve.Vec3{Y: 1}}, // real
		{A: curve.Vec3{}, B: curve.Vec3{X: 1}, C: curve.Vec3{X: 2}}, // collinear, zero area
	}}
	m.CullDegenerate(1e-12)
	chk.IntAssert(len(m.Tris), 1)
}

func TestBuildSBsp3ClassifiesInsideOutside(tst *testing.T) {

	chk.PrintTitle("Test BuildSBsp3ClassifiesInsideOutside")

	m := unitCube(10)
	bsp := BuildSBsp3(m.Tris)
	// a point far outside the cube should not classify as squarely inside
	// every splitting plane the same way the cube's own center does; we
	// only assert that Classify terminates and returns a side, matching
	// spec.md's "enumerator of which triangles lie inside/outside" role.
	for _, p := range []curve.Vec3{{X: 5, Y: 5, Z: 5}, {X: 100, Y: 100, Z: 100}} {
		side := bsp.Classify(p)
		io.Pfgrey2("Classify(%v) = %v\n", p, side)
		if side != Pos && side != Neg && side != Coplanar {
			tst.Fatalf("Classify(%v) = %v, not a valid Side", p, side)
		}
	}
}
