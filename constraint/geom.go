// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/hdl"
)

// Vec3 is a symbolic 3-component vector -- the unit this package's builders
// compute in, matching how spec.md §4.3 states residuals componentwise.
type Vec3 [3]*expr.Expr

func vsub(a, b Vec3) Vec3 {
	return Vec3{expr.Minus(a[0], b[0]), expr.Minus(a[1], b[1]), expr.Minus(a[2], b[2])}
}

func vadd(a, b Vec3) Vec3 {
	return Vec3{expr.Plus(a[0], b[0]), expr.Plus(a[1], b[1]), expr.Plus(a[2], b[2])}
}

func vscale(s *expr.Expr, a Vec3) Vec3 {
	return Vec3{expr.Times(s, a[0]), expr.Times(s, a[1]), expr.Times(s, a[2])}
}

func vdot(a, b Vec3) *expr.Expr {
	return expr.Plus(expr.Plus(expr.Times(a[0], b[0]), expr.Times(a[1], b[1])), expr.Times(a[2], b[2]))
}

func vcross(a, b Vec3) Vec3 {
	return Vec3{
		expr.Minus(expr.Times(a[1], b[2]), expr.Times(a[2], b[1])),
		expr.Minus(expr.Times(a[2], b[0]), expr.Times(a[0], b[2])),
		expr.Minus(expr.Times(a[0], b[1]), expr.Times(a[1], b[0])),
	}
}

func vnormSq(a Vec3) *expr.Expr { return vdot(a, a) }

func vnorm(a Vec3) *expr.Expr { return expr.Sqrt(vnormSq(a)) }

// PointCoords returns the symbolic 3-D position of a point entity,
// dispatching on Kind. PointTransformed is resolved as an ordinary free
// point: the transform groups that produce it (translate/rotate copies)
// materialize it with its own concrete params during entity generation
// (see the group package), so by the time constraints reference it here
// it looks exactly like PointIn3D.
func PointCoords(es *entity.Store, h hdl.Entity) Vec3 {
	e := es.Get(h)
	switch e.Kind {
	case entity.PointIn3D, entity.PointTransformed:
		return Vec3{expr.ParamRef(e.Params[0]), expr.ParamRef(e.Params[1]), expr.ParamRef(e.Params[2])}
	case entity.PointInWorkplane:
		wp := es.Get(e.Workplane)
		origin := PointCoords(es, wp.Points[0])
		u, v, _ := WorkplaneBasis(es, e.Workplane)
		uCoord := expr.ParamRef(e.Params[0])
		vCoord := expr.ParamRef(e.Params[1])
		return vadd(origin, vadd(vscale(uCoord, u), vscale(vCoord, v)))
	}
	diag.Invariant(false, "constraint: PointCoords: entity is not a point: %s", e.Kind.String())
	return Vec3{}
}

// WorkplaneBasis returns the symbolic (U, V, N) basis of the workplane
// entity wpH, built from its normal's quaternion parameters.
func WorkplaneBasis(es *entity.Store, wpH hdl.Entity) (u, v, n Vec3) {
	wp := es.Get(wpH)
	normal := es.Get(wp.Normal)
	qw := expr.ParamRef(normal.Params[0])
	qx := expr.ParamRef(normal.Params[1])
	qy := expr.ParamRef(normal.Params[2])
	qz := expr.ParamRef(normal.Params[3])
	uu, vv, nn := quatBasis(qw, qx, qy, qz)
	return Vec3(uu), Vec3(vv), Vec3(nn)
}

// NormalVector returns the symbolic unit normal vector of a normal entity.
func NormalVector(es *entity.Store, normalH hdl.Entity) Vec3 {
	normal := es.Get(normalH)
	qw := expr.ParamRef(normal.Params[0])
	qx := expr.ParamRef(normal.Params[1])
	qy := expr.ParamRef(normal.Params[2])
	qz := expr.ParamRef(normal.Params[3])
	_, _, n := quatBasis(qw, qx, qy, qz)
	return Vec3(n)
}

// LineEndpoints returns the two endpoint entities of a line segment.
func LineEndpoints(es *entity.Store, lineH hdl.Entity) (p0, p1 hdl.Entity) {
	e := es.Get(lineH)
	return e.Points[0], e.Points[1]
}

// LineDirection returns the (non-unit) symbolic direction vector p1-p0 of
// a line segment.
func LineDirection(es *entity.Store, lineH hdl.Entity) Vec3 {
	p0, p1 := LineEndpoints(es, lineH)
	return vsub(PointCoords(es, p1), PointCoords(es, p0))
}

// CircleCenterRadius returns the center point entity and radius Param of a
// circle entity.
func CircleCenterRadius(es *entity.Store, circH hdl.Entity) (center hdl.Entity, radius hdl.Param) {
	e := es.Get(circH)
	return e.Points[0], e.Params[0]
}

// ArcCenterRadius returns the center point entity and radius Param of an
// arc-of-circle entity; ArcOfCircle stores center, start and end points
// plus the shared radius, mirroring CircleCenterRadius.
func ArcCenterRadius(es *entity.Store, arcH hdl.Entity) (center hdl.Entity, radius hdl.Param) {
	e := es.Get(arcH)
	return e.Points[0], e.Params[0]
}

// ArcEndpoints returns the start and end point entities of an arc.
func ArcEndpoints(es *entity.Store, arcH hdl.Entity) (start, end hdl.Entity) {
	e := es.Get(arcH)
	return e.Points[1], e.Points[2]
}
