// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"

	"github.com/opencad/kernel/curve"
)

// flatPlane builds a degree-1x1 patch spanning the unit square in the
// z=0 plane, with unit weights (a polynomial, non-rational bilinear patch).
func flatPlane() SSurface {
	var s SSurface
	s.DegU, s.DegV = 1, 1
	s.Ctrl[0][0] = curve.Vec3{X: 0, Y: 0, Z: 0}
	s.Ctrl[1][0] = curve.Vec3{X: 10, Y: 0, Z: 0}
	s.Ctrl[0][1] = curve.Vec3{X: 0, Y: 10, Z: 0}
	s.Ctrl[1][1] = curve.Vec3{X: 10, Y: 10, Z: 0}
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			s.Weight[i][j] = 1
		}
	}
	return s
}

// bowl builds a degree-2x2 rational patch with non-uniform weights, so its
// tangents are genuinely curved rather than bilinear -- the patch
// DebugCheckDerivs exercises, since a flat/polynomial patch makes the
// analytic-vs-numeric gap too trivial to be interesting.
func bowl() SSurface {
	var s SSurface
	s.DegU, s.DegV = 2, 2
	for i := 0; i <= 2; i++ {
		for j := 0; j <= 2; j++ {
			s.Ctrl[i][j] = curve.Vec3{X: float64(i) * 5, Y: float64(j) * 5, Z: float64(i*i + j*j)}
			s.Weight[i][j] = 1
		}
	}
	s.Weight[1][1] = 2.5
	return s
}

func TestPointAtCorners(tst *testing.T) {

	chk.PrintTitle("Test PointAtCorners")

	s := flatPlane()
	if got := s.PointAt(0, 0); got != (curve.Vec3{}) {
		tst.Fatalf("PointAt(0,0) = %v, want origin", got)
	}
	want := curve.Vec3{X: 10, Y: 10, Z: 0}
	got := s.PointAt(1, 1)
	io.Pforan("PointAt(1,1) = %v\n", got)
	chk.Scalar(tst, "PointAt(1,1).dist", 1e-9, got.DistanceTo(want), 0)
}

func TestPointAtCenterOfFlatPlane(tst *testing.T) {

	chk.PrintTitle("Test PointAtCenterOfFlatPlane")

	s := flatPlane()
	want := curve.Vec3{X: 5, Y: 5, Z: 0}
	got := s.PointAt(0.5, 0.5)
	chk.Scalar(tst, "PointAt(0.5,0.5).dist", 1e-9, got.DistanceTo(want), 0)
}

func TestNormalAtFlatPlaneIsZAxis(tst *testing.T) {

	chk.PrintTitle("Test NormalAtFlatPlaneIsZAxis")

	s := flatPlane()
	n := s.NormalAt(0.5, 0.5)
	io.Pfyel("n = %v\n", n)
	chk.Scalar(tst, "|n.Z|", 1e-9, math.Abs(n.Z), 1)
}

func TestIsExtrusionDetectsLinearSweep(tst *testing.T) {

	chk.PrintTitle("Test IsExtrusionDetectsLinearSweep")

	s := flatPlane()
	dir, ok := s.IsExtrusion(1e-9)
	if !ok {
		tst.Fatal("flat plane built as a ruled sweep should report IsExtrusion")
	}
	want := curve.Vec3{X: 0, Y: 10, Z: 0}
	chk.Scalar(tst, "IsExtrusion direction", 1e-9, dir.Sub(want).Norm(), 0)
}

func TestCoincidentWithPlane(tst *testing.T) {

	chk.PrintTitle("Test CoincidentWithPlane")

	s := flatPlane()
	if !s.CoincidentWithPlane(curve.Vec3{}, curve.Vec3{Z: 1}, 1e-9) {
		tst.Fatal("flat xy patch should be coincident with the z=0 plane")
	}
	if s.CoincidentWithPlane(curve.Vec3{}, curve.Vec3{X: 1}, 1e-9) {
		tst.Fatal("flat xy patch should not be coincident with the x=0 plane")
	}
}

func TestCoincidentWithSelf(tst *testing.T) {

	chk.PrintTitle("Test CoincidentWithSelf")

	s := flatPlane()
	if !s.CoincidentWith(s, 1e-9) {
		tst.Fatal("a surface should be coincident with itself")
	}
}

func TestClosestPointToOnFlatPlane(tst *testing.T) {

	chk.PrintTitle("Test ClosestPointToOnFlatPlane")

	s := flatPlane()
	u, v := s.ClosestPointTo(curve.Vec3{X: 5, Y: 5, Z: 3})
	got := s.PointAt(u, v)
	want := curve.Vec3{X: 5, Y: 5, Z: 0}
	io.Pforan("projected = %v\n", got)
	chk.Scalar(tst, "ClosestPointTo.dist", 1e-6, got.DistanceTo(want), 0)
}

func TestTriangulateIntoGridCount(tst *testing.T) {

	chk.PrintTitle("Test TriangulateIntoGridCount")

	s := flatPlane()
	var tris []curve.Vec3
	s.TriangulateInto(&tris, 4, 4)
	chk.IntAssert(len(tris), 4*4*6)
}

// TestDebugCheckDerivsMatchesCentralDifference mirrors shp's shape-function
// derivative cross-check: TangentsAt's analytic partials must agree with a
// central-difference estimate to within the step-size-limited truncation
// error, on a genuinely curved rational patch.
func TestDebugCheckDerivsMatchesCentralDifference(tst *testing.T) {

	chk.PrintTitle("Test DebugCheckDerivsMatchesCentralDifference")

	s := bowl()
	u, v, h := 0.4, 0.6, 1e-3
	du, dv := s.TangentsAt(u, v)

	fdU, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return s.PointAt(x, v).X
	}, u, h)
	if err != nil {
		tst.Fatalf("DerivCentral(du) failed: %v", err)
	}
	fdV, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return s.PointAt(u, x).X
	}, v, h)
	if err != nil {
		tst.Fatalf("DerivCentral(dv) failed: %v", err)
	}

	errU, errV := s.DebugCheckDerivs(u, v, h)
	io.Pfgrey2("dP/du.X = %v (num %v), dP/dv.X = %v (num %v)\n", du.X, fdU, dv.X, fdV)
	chk.AnaNum(tst, "dP/du.X", 1e-6, du.X, fdU, chk.Verbose)
	chk.AnaNum(tst, "dP/dv.X", 1e-6, dv.X, fdV, chk.Verbose)
	chk.Scalar(tst, "DebugCheckDerivs errU", 1e-9, errU, math.Abs(fdU-du.X))
	chk.Scalar(tst, "DebugCheckDerivs errV", 1e-9, errV, math.Abs(fdV-dv.X))
}
