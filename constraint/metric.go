// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
)

func init() {
	Register(PtPtDistance, buildPtPtDistance)
	Register(PtPlaneDistance, buildPtPlaneDistance)
	Register(PtLineDistance, buildPtLineDistance)
	Register(PtFaceDistance, buildPtFaceDistance)
	Register(EqualLengthLines, buildEqualLengthLines)
	Register(EqualLineArcLen, buildEqualLineArcLen)
	Register(LengthRatio, buildLengthRatio)
	Register(EqLenPtLineD, buildEqLenPtLineD)
	Register(EqPtLnDistances, buildEqPtLnDistances)
	Register(EqualRadius, buildEqualRadius)
	Register(Diameter, buildDiameter)
	Register(Radius, buildRadius)
}

// signedPlaneDistance returns the signed distance from p to the plane
// through origin with unit normal n.
func signedPlaneDistance(p, origin, n Vec3) *expr.Expr {
	return vdot(vsub(p, origin), n)
}

// buildPtPtDistance is spec.md's canonical example: |p1-p0| - valA = 0.
func buildPtPtDistance(es *entity.Store, c *Constraint) Equations {
	a := PointCoords(es, c.Points[0])
	b := PointCoords(es, c.Points[1])
	d := vnorm(vsub(a, b))
	if c.Other {
		d = expr.Negate(d)
	}
	return Equations{expr.Minus(d, expr.Const(c.ValA))}
}

// buildPtPlaneDistance enforces a signed distance from point to plane.
func buildPtPlaneDistance(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	plane := es.Get(c.Entities[0])
	origin := PointCoords(es, plane.Points[0])
	n := NormalVector(es, plane.Normal)
	d := signedPlaneDistance(p, origin, n)
	if c.Other {
		d = expr.Negate(d)
	}
	return Equations{expr.Minus(d, expr.Const(c.ValA))}
}

// buildPtLineDistance enforces the unsigned perpendicular distance from a
// point to an (infinite) line: |dir x (p-p0)| = valA * |dir|.
// Multiplying through by |dir| avoids a division inside the residual.
func buildPtLineDistance(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	p0, _ := LineEndpoints(es, c.Entities[0])
	dir := LineDirection(es, c.Entities[0])
	rel := vsub(p, PointCoords(es, p0))
	cr := vcross(dir, rel)
	lhs := vnorm(cr)
	rhs := expr.Times(expr.Const(c.ValA), vnorm(dir))
	if c.Other {
		lhs = expr.Negate(lhs)
	}
	return Equations{expr.Minus(lhs, rhs)}
}

// buildPtFaceDistance is the 3-D face analogue of buildPtPlaneDistance.
func buildPtFaceDistance(es *entity.Store, c *Constraint) Equations {
	p := PointCoords(es, c.Points[0])
	face := es.Get(c.Entities[0])
	origin := PointCoords(es, face.Points[0])
	n := NormalVector(es, face.Normal)
	d := signedPlaneDistance(p, origin, n)
	if c.Other {
		d = expr.Negate(d)
	}
	return Equations{expr.Minus(d, expr.Const(c.ValA))}
}

// buildEqualLengthLines equates the lengths of two line segments.
func buildEqualLengthLines(es *entity.Store, c *Constraint) Equations {
	la := vnorm(LineDirection(es, c.Entities[0]))
	lb := vnorm(LineDirection(es, c.Entities[1]))
	return Equations{expr.Minus(la, lb)}
}

// buildEqualLineArcLen equates a line segment's length with the straight
// chord between an arc's endpoints. It does not use the length along the
// arc (radius times subtended angle), and the arc's radius is not used.
func buildEqualLineArcLen(es *entity.Store, c *Constraint) Equations {
	lineLen := vnorm(LineDirection(es, c.Entities[0]))
	arcStart, arcEnd := ArcEndpoints(es, c.Entities[1])
	center, radius := ArcCenterRadius(es, c.Entities[1])
	cen := PointCoords(es, center)
	s := vsub(PointCoords(es, arcStart), cen)
	e := vsub(PointCoords(es, arcEnd), cen)
	// the residual compares the line with the chord, not with the arc length
	chord := vnorm(vsub(s, e))
	_ = radius
	return Equations{expr.Minus(lineLen, chord)}
}

// buildLengthRatio enforces lenA / lenB = valA, cleared of the division.
func buildLengthRatio(es *entity.Store, c *Constraint) Equations {
	la := vnorm(LineDirection(es, c.Entities[0]))
	lb := vnorm(LineDirection(es, c.Entities[1]))
	return Equations{expr.Minus(la, expr.Times(expr.Const(c.ValA), lb))}
}

// buildEqLenPtLineD equates a line segment's length to a point-to-line
// distance.
func buildEqLenPtLineD(es *entity.Store, c *Constraint) Equations {
	lineLen := vnorm(LineDirection(es, c.Entities[0]))
	p := PointCoords(es, c.Points[0])
	refP0, _ := LineEndpoints(es, c.Entities[1])
	dir := LineDirection(es, c.Entities[1])
	rel := vsub(p, PointCoords(es, refP0))
	dist := expr.Div(vnorm(vcross(dir, rel)), vnorm(dir))
	return Equations{expr.Minus(lineLen, dist)}
}

// buildEqPtLnDistances equates two point-to-line distances.
func buildEqPtLnDistances(es *entity.Store, c *Constraint) Equations {
	p0 := PointCoords(es, c.Points[0])
	lp0, _ := LineEndpoints(es, c.Entities[0])
	dir0 := LineDirection(es, c.Entities[0])
	dist0 := expr.Div(vnorm(vcross(dir0, vsub(p0, PointCoords(es, lp0)))), vnorm(dir0))

	p1 := PointCoords(es, c.Points[1])
	lp1, _ := LineEndpoints(es, c.Entities[1])
	dir1 := LineDirection(es, c.Entities[1])
	dist1 := expr.Div(vnorm(vcross(dir1, vsub(p1, PointCoords(es, lp1)))), vnorm(dir1))

	if c.Other {
		dist1 = expr.Negate(dist1)
	}
	return Equations{expr.Minus(dist0, dist1)}
}

// buildEqualRadius equates two circles'/arcs' radii.
func buildEqualRadius(es *entity.Store, c *Constraint) Equations {
	_, ra := CircleCenterRadius(es, c.Entities[0])
	_, rb := CircleCenterRadius(es, c.Entities[1])
	return Equations{expr.Minus(expr.ParamRef(ra), expr.ParamRef(rb))}
}

// buildDiameter fixes a circle's diameter (2*radius) to valA.
func buildDiameter(es *entity.Store, c *Constraint) Equations {
	_, r := CircleCenterRadius(es, c.Entities[0])
	return Equations{expr.Minus(expr.Times(expr.Const(2), expr.ParamRef(r)), expr.Const(c.ValA))}
}

// buildRadius fixes a circle's radius directly to valA -- the [NEW]
// variant recovered from original_source/constraint.cpp alongside
// Diameter, since dimensioning a circle by radius rather than diameter is
// the more common case in practice and the distilled spec only names
// Diameter.
func buildRadius(es *entity.Store, c *Constraint) Equations {
	_, r := CircleCenterRadius(es, c.Entities[0])
	return Equations{expr.Minus(expr.ParamRef(r), expr.Const(c.ValA))}
}
