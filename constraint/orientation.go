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
	Register(ArcLineTangent, buildArcLineTangent)
	Register(CubicLineTangent, buildCubicLineTangent)
	Register(CurveCurveTangent, buildCurveCurveTangent)
	Register(SameOrientation, buildSameOrientation)
}

// buildArcLineTangent forces a line segment sharing an endpoint with an
// arc to be perpendicular to the radius at that endpoint -- the
// tangency condition for a circle.
func buildArcLineTangent(es *entity.Store, c *Constraint) Equations {
	arcStart, arcEnd := ArcEndpoints(es, c.Entities[0])
	center, _ := ArcCenterRadius(es, c.Entities[0])
	cen := PointCoords(es, center)

	sharedH := arcStart
	if c.Other {
		sharedH = arcEnd
	}
	radial := vsub(PointCoords(es, sharedH), cen)
	lineDir := LineDirection(es, c.Entities[1])
	return Equations{vdot(radial, lineDir)}
}

// buildCubicLineTangent forces a line to be parallel to a cubic's
// tangent at its shared endpoint. The cubic's endpoint tangent direction
// is the vector from its first to second control point (or third to
// fourth, at the far end), the standard Bezier endpoint-tangent identity.
func buildCubicLineTangent(es *entity.Store, c *Constraint) Equations {
	cubic := es.Get(c.Entities[0])
	var p0, p1 hdl.Entity
	if c.Other {
		p0, p1 = cubic.Points[3], cubic.Points[2]
	} else {
		p0, p1 = cubic.Points[0], cubic.Points[1]
	}
	tangent := vsub(PointCoords(es, p1), PointCoords(es, p0))
	lineDir := LineDirection(es, c.Entities[1])
	cr := vcross(tangent, lineDir)
	if c.InWorkplane() {
		return Equations{cr[2]}
	}
	return Equations{cr[0], cr[1], cr[2]}
}

// buildCurveCurveTangent forces two cubics sharing an endpoint to have
// parallel tangent directions there, the smooth-join condition.
func buildCurveCurveTangent(es *entity.Store, c *Constraint) Equations {
	a := es.Get(c.Entities[0])
	b := es.Get(c.Entities[1])
	var a0, a1, b0, b1 hdl.Entity
	if c.Other {
		a0, a1 = a.Points[3], a.Points[2]
	} else {
		a0, a1 = a.Points[0], a.Points[1]
	}
	b0, b1 = b.Points[0], b.Points[1]
	ta := vsub(PointCoords(es, a1), PointCoords(es, a0))
	tb := vsub(PointCoords(es, b1), PointCoords(es, b0))
	cr := vcross(ta, tb)
	if c.InWorkplane() {
		return Equations{cr[2]}
	}
	return Equations{cr[0], cr[1], cr[2]}
}

// buildSameOrientation equates two normal entities' N (normal) axes
// componentwise. Rotation about the shared normal axis is not constrained,
// and Other is not consulted.
func buildSameOrientation(es *entity.Store, c *Constraint) Equations {
	ua := NormalVector(es, c.Entities[0])
	ub := NormalVector(es, c.Entities[1])
	return Equations{
		expr.Minus(ua[0], ub[0]),
		expr.Minus(ua[1], ub[1]),
		expr.Minus(ua[2], ub[2]),
	}
}
