// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/curve"
	"github.com/opencad/kernel/surface"
)

// planeFace builds a single flat square face in the given z plane, with
// unit weights, facing +Z.
func planeFace(z float64) Face {
	var s surface.SSurface
	s.DegU, s.DegV = 1, 1
	s.Ctrl[0][0] = curve.Vec3{X: 0, Y: 0, Z: z}
	s.Ctrl[1][0] = curve.Vec3{X: 10, Y: 0, Z: z}
	s.Ctrl[0][1] = curve.Vec3{X: 0, Y: 10, Z: z}
	s.Ctrl[1][1] = curve.Vec3{X: 10, Y: 10, Z: z}
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			s.Weight[i][j] = 1
		}
	}
	return Face{
		Surf: s,
		Boundaries: [][]curve.Vec3{{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		}},
	}
}

func TestBooleanUnionOfDisjointShellsKeepsBothFaces(tst *testing.T) {

	chk.PrintTitle("Test BooleanUnionOfDisjointShellsKeepsBothFaces")

	a := &Shell{Faces: []Face{planeFace(0)}}
	b := &Shell{Faces: []Face{planeFace(20)}}

	out, res := Boolean(a, b, Union, 50)
	if !res.Ok() {
		tst.Fatalf("Boolean(Union) failed: %s", res.Message)
	}
	io.Pforan("union faces = %d\n", len(out.Faces))
	if len(out.Faces) == 0 {
		tst.Fatal("Boolean(Union) of two disjoint faces should not produce an empty shell")
	}
}

func TestMergeCoincidentDropsDuplicateFace(tst *testing.T) {

	chk.PrintTitle("Test MergeCoincidentDropsDuplicateFace")

	f := planeFace(0)
	s := &Shell{Faces: []Face{f, f}}
	s.mergeCoincident(1e-7)
	chk.IntAssert(len(s.Faces), 1)
}

func TestPlanePlaneIntersectionOfPerpendicularPlanes(tst *testing.T) {

	chk.PrintTitle("Test PlanePlaneIntersectionOfPerpendicularPlanes")

	pts, res := planePlaneIntersection(curve.Vec3{}, curve.Vec3{Z: 1}, curve.Vec3{}, curve.Vec3{X: 1})
	if !res.Ok() {
		tst.Fatalf("planePlaneIntersection failed: %s", res.Message)
	}
	io.Pfyel("pts = %v\n", pts)
	chk.IntAssert(len(pts), 2)
}

func TestPlanePlaneIntersectionOfParallelPlanesIsEmpty(tst *testing.T) {

	chk.PrintTitle("Test PlanePlaneIntersectionOfParallelPlanesIsEmpty")

	pts, res := planePlaneIntersection(curve.Vec3{Z: 0}, curve.Vec3{Z: 1}, curve.Vec3{Z: 5}, curve.Vec3{Z: 1})
	if !res.Ok() {
		tst.Fatalf("planePlaneIntersection failed: %s", res.Message)
	}
	if pts != nil {
		tst.Fatalf("planePlaneIntersection(parallel planes) = %v, want nil", pts)
	}
}

func TestClassifyEdgeOnBoundary(tst *testing.T) {

	chk.PrintTitle("Test ClassifyEdgeOnBoundary")

	s := &Shell{Faces: []Face{planeFace(0)}}
	p := curve.Vec3{X: 0, Y: 0, Z: 0}
	if got := ClassifyEdge(p, s, 1e-6); got != EdgeOnBoundary {
		tst.Fatalf("ClassifyEdge(on surface) = %v, want EdgeOnBoundary", got)
	}
}
