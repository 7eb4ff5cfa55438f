// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/hdl"
)

func init() {
	Register(AtMidpoint, buildAtMidpoint)
	Register(Symmetric, buildSymmetric)
	Register(SymmetricHoriz, buildSymmetricHoriz)
	Register(SymmetricVert, buildSymmetricVert)
	Register(SymmetricLine, buildSymmetricLine)
}

// buildAtMidpoint forces a point to be the midpoint of a line segment.
func buildAtMidpoint(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	p0, p1 := LineEndpoints(es, c.Entities[0])
	mid := vscale(expr.Const(0.5), vadd(PointCoords(es, p0), PointCoords(es, p1)))
	eqs := Equations{expr.Minus(p[0], mid[0]), expr.Minus(p[1], mid[1])}
	if !c.InWorkplane() {
		eqs = append(eqs, expr.Minus(p[2], mid[2]))
	}
	return eqs
}

// buildSymmetric forces two points to be reflections of each other about
// a plane (referenced through c.Entities[0], a workplane or face): the
// midpoint lies on the plane, and the segment joining the points is
// parallel to the plane's normal.
func buildSymmetric(es *entity.Store, c *Constraint) Equations {
	a := PointCoords(es, c.Points[0])
	b := PointCoords(es, c.Points[1])
	plane := es.Get(c.Entities[0])
	origin := PointCoords(es, plane.Points[0])
	n := NormalVector(es, plane.Normal)

	mid := vscale(expr.Const(0.5), vadd(a, b))
	onPlane := vdot(vsub(mid, origin), n)

	diff := vsub(a, b)
	cr := vcross(diff, n)
	return Equations{onPlane, cr[0], cr[1], cr[2]}
}

// buildSymmetricHoriz forces two points, both in the same workplane, to
// be mirror images about that plane's U axis: equal U, opposite V.
func buildSymmetricHoriz(es *entity.Store, c *Constraint) Equations {
	a := PointCoords(es, c.Points[0])
	b := PointCoords(es, c.Points[1])
	origin := workplaneOrigin(es, c.Workplane)
	u, v, _ := WorkplaneBasis(es, c.Workplane)
	ra, rb := vsub(a, origin), vsub(b, origin)
	return Equations{
		expr.Minus(vdot(ra, u), vdot(rb, u)),
		expr.Plus(vdot(ra, v), vdot(rb, v)),
	}
}

// buildSymmetricVert is buildSymmetricHoriz's V-axis counterpart: equal V,
// opposite U.
func buildSymmetricVert(es *entity.Store, c *Constraint) Equations {
	a := PointCoords(es, c.Points[0])
	b := PointCoords(es, c.Points[1])
	origin := workplaneOrigin(es, c.Workplane)
	u, v, _ := WorkplaneBasis(es, c.Workplane)
	ra, rb := vsub(a, origin), vsub(b, origin)
	return Equations{
		expr.Plus(vdot(ra, u), vdot(rb, u)),
		expr.Minus(vdot(ra, v), vdot(rb, v)),
	}
}

// buildSymmetricLine forces two points, in the same workplane, to be
// mirror images about an arbitrary line in that plane.
func buildSymmetricLine(es *entity.Store, c *Constraint) Equations {
	a := PointCoords(es, c.Points[0])
	b := PointCoords(es, c.Points[1])
	p0, _ := LineEndpoints(es, c.Entities[0])
	dir := LineDirection(es, c.Entities[0])
	base := PointCoords(es, p0)

	mid := vscale(expr.Const(0.5), vadd(a, b))
	_, _, n := WorkplaneBasis(es, c.Workplane)
	perp := vcross(n, dir) // in-plane vector perpendicular to the line

	midOnLine := vdot(vsub(mid, base), perp)
	diff := vsub(a, b)
	diffPerp := vdot(diff, dir)
	return Equations{midOnLine, diffPerp}
}

// workplaneOrigin returns the symbolic position of a workplane's origin
// point.
func workplaneOrigin(es *entity.Store, wpH hdl.Entity) Vec3 {
	wp := es.Get(wpH)
	return PointCoords(es, wp.Points[0])
}
