// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
)

func init() {
	Register(PointsCoincident, buildPointsCoincident)
	Register(PtInPlane, buildPtInPlane)
	Register(PtOnLine, buildPtOnLine)
	Register(PtOnCircle, buildPtOnCircle)
	Register(PtOnFace, buildPtOnFace)
}

// buildPointsCoincident equates the two points' coordinates componentwise.
// In a workplane this is 2 equations (the points already live on the same
// plane by construction); free in 3D it is 3.
func buildPointsCoincident(es *entity.Store, c *Constraint) Equations {
	a := PointCoords(es, c.Points[0])
	b := PointCoords(es, c.Points[1])
	eqs := Equations{expr.Minus(a[0], b[0]), expr.Minus(a[1], b[1])}
	if !c.InWorkplane() {
		eqs = append(eqs, expr.Minus(a[2], b[2]))
	}
	return eqs
}

// buildPtInPlane forces the point onto the given plane (a workplane or
// face-bearing entity referenced through c.Entities[0]): the signed
// distance from the plane's origin, along its normal, is zero.
func buildPtInPlane(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	planeH := c.Entities[0]
	plane := es.Get(planeH)
	origin := PointCoords(es, plane.Points[0])
	n := NormalVector(es, plane.Normal)
	return Equations{vdot(vsub(p, origin), n)}
}

// buildPtOnLine forces the point onto the infinite line through the
// referenced line segment: the vector point-to-p0 is parallel to the
// line's direction, expressed via a vanishing cross product. In a
// workplane that collapses to the single scalar z-component of the cross
// product; free in 3D all three components must vanish, but two are
// independent (cross of parallel 3-vectors has rank <= 1), so only the
// two components orthogonal to the dominant axis are emitted is overkill
// here -- emit all three and let the solver's rank-revealing elimination
// discard the redundant one.
func buildPtOnLine(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	p0, _ := LineEndpoints(es, c.Entities[0])
	dir := LineDirection(es, c.Entities[0])
	rel := vsub(p, PointCoords(es, p0))
	cr := vcross(dir, rel)
	if c.InWorkplane() {
		return Equations{cr[2]}
	}
	return Equations{cr[0], cr[1], cr[2]}
}

// buildPtOnCircle forces the point to lie at radius distance from the
// circle's (or arc's) center.
func buildPtOnCircle(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	center, radius := CircleCenterRadius(es, c.Entities[0])
	rel := vsub(p, PointCoords(es, center))
	return Equations{expr.Minus(vnorm(rel), expr.ParamRef(radius))}
}

// buildPtOnFace forces the point onto a 3-D face's supporting plane,
// mirroring buildPtInPlane but referencing a Face entity (whose first
// point and normal describe its supporting plane) rather than a
// workplane.
func buildPtOnFace(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	face := es.Get(c.Entities[0])
	origin := PointCoords(es, face.Points[0])
	n := NormalVector(es, face.Normal)
	return Equations{vdot(vsub(p, origin), n)}
}
