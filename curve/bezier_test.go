// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func vecvals(v Vec3) []float64 { return []float64{v.X, v.Y, v.Z} }

func TestLinePointAtEndpoints(tst *testing.T) {

	chk.PrintTitle("Test LinePointAtEndpoints")

	p0 := Vec3{X: 0, Y: 0, Z: 0}
	p1 := Vec3{X: 10, Y: 0, Z: 0}
	l := Line(p0, p1)

	io.Pforan("l.PointAt(0) = %v\n", l.PointAt(0))
	chk.Vector(tst, "PointAt(0)", 1e-15, vecvals(l.PointAt(0)), vecvals(p0))
	chk.Vector(tst, "PointAt(1)", 1e-15, vecvals(l.PointAt(1)), vecvals(p1))

	mid := l.PointAt(0.5)
	io.Pfyel("mid = %v\n", mid)
	chk.Scalar(tst, "mid.X", 1e-9, mid.X, 5)
	chk.Scalar(tst, "mid.Y", 1e-9, mid.Y, 0)
}

func TestLineMakePWLIsTwoPoints(tst *testing.T) {

	chk.PrintTitle("Test LineMakePWLIsTwoPoints")

	l := Line(Vec3{X: 0}, Vec3{X: 10})
	pwl := l.MakePWL(0.1)
	chk.IntAssert(len(pwl), 2)
}

func TestCircleArcEndpointsAndRadius(tst *testing.T) {

	chk.PrintTitle("Test CircleArcEndpointsAndRadius")

	center := Vec3{}
	u := Vec3{X: 1}
	v := Vec3{Y: 1}
	radius := 10.0
	arc := CircleArc(center, u, v, radius, 0, math.Pi/2)

	p0 := arc.PointAt(0)
	p2 := arc.PointAt(1)
	io.Pforan("p0 = %v, p2 = %v\n", p0, p2)
	chk.Scalar(tst, "|p0 - (r,0,0)|", 1e-9, p0.DistanceTo(Vec3{X: radius}), 0)
	chk.Scalar(tst, "|p2 - (0,r,0)|", 1e-9, p2.DistanceTo(Vec3{Y: radius}), 0)
	chk.Scalar(tst, "|p0-center|", 1e-9, p0.DistanceTo(center), radius)

	// the true midpoint of a 90-degree arc lies at radius from center too.
	mid := arc.PointAt(0.5)
	chk.Scalar(tst, "|mid-center|", 1e-6, mid.DistanceTo(center), radius)
}

func TestMakePWLRefinesUnderTighterTolerance(tst *testing.T) {

	chk.PrintTitle("Test MakePWLRefinesUnderTighterTolerance")

	arc := CircleArc(Vec3{}, Vec3{X: 1}, Vec3{Y: 1}, 10, 0, math.Pi/2)

	coarse := arc.MakePWL(1.0)
	fine := arc.MakePWL(0.01)
	io.Pfyel("coarse=%d fine=%d\n", len(coarse), len(fine))
	if len(fine) <= len(coarse) {
		tst.Fatalf("finer chord tolerance should need more segments: coarse=%d fine=%d",
			len(coarse), len(fine))
	}
}

func TestMakePWLEndpointsMatchCurve(tst *testing.T) {

	chk.PrintTitle("Test MakePWLEndpointsMatchCurve")

	arc := CircleArc(Vec3{}, Vec3{X: 1}, Vec3{Y: 1}, 10, 0, math.Pi/2)
	pwl := arc.MakePWL(0.1)
	chk.Scalar(tst, "first point drift", 1e-9, pwl[0].DistanceTo(arc.PointAt(0)), 0)
	chk.Scalar(tst, "last point drift", 1e-9, pwl[len(pwl)-1].DistanceTo(arc.PointAt(1)), 0)
}

func TestIsRational(tst *testing.T) {

	chk.PrintTitle("Test IsRational")

	l := Line(Vec3{}, Vec3{X: 1})
	if l.IsRational() {
		tst.Fatal("a plain line should not be rational")
	}
	arc := CircleArc(Vec3{}, Vec3{X: 1}, Vec3{Y: 1}, 10, 0, math.Pi/2)
	if !arc.IsRational() {
		tst.Fatal("a circular arc's middle weight should not be 1, so it is rational")
	}
}

func TestIsInPlane(tst *testing.T) {

	chk.PrintTitle("Test IsInPlane")

	l := Line(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 10, Y: 10, Z: 0})
	if !l.IsInPlane(Vec3{}, Vec3{Z: 1}, 1e-9) {
		tst.Fatal("line in the z=0 plane should satisfy IsInPlane with normal +Z")
	}
	if l.IsInPlane(Vec3{}, Vec3{X: 1}, 1e-9) {
		tst.Fatal("line in the z=0 plane should not satisfy IsInPlane with normal +X")
	}
}
