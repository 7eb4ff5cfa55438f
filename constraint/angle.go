// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
)

func init() {
	Register(EqualAngle, buildEqualAngle)
	Register(Angle, buildAngle)
	Register(Parallel, buildParallel)
	Register(Perpendicular, buildPerpendicular)
	Register(Horizontal, buildHorizontal)
	Register(Vertical, buildVertical)
}

// cosAngleResidual builds dot(a,b) - cos(theta)*|a|*|b| = 0, the
// division-free form of "the angle between directions a and b is theta".
// This is the same trick buildLengthRatio uses to avoid a quotient in the
// residual: multiply both sides by the product of the norms instead of
// normalizing first.
func cosAngleResidual(a, b Vec3, cosTheta *expr.Expr) *expr.Expr {
	lhs := vdot(a, b)
	rhs := expr.Times(cosTheta, expr.Times(vnorm(a), vnorm(b)))
	return expr.Minus(lhs, rhs)
}

// buildEqualAngle equates the angle between two line pairs: angle(A,B) ==
// angle(C,D). Expressed by equating the two division-free cosine
// products directly (no explicit cos needed since neither angle is a
// literal parameter).
func buildEqualAngle(es *entity.Store, c *Constraint) Equations {
	a := LineDirection(es, c.Entities[0])
	b := LineDirection(es, c.Entities[1])
	cd := LineDirection(es, c.Entities[2])
	d := LineDirection(es, c.Entities[3])
	lhs := expr.Times(vdot(a, b), expr.Times(vnorm(cd), vnorm(d)))
	rhs := expr.Times(vdot(cd, d), expr.Times(vnorm(a), vnorm(b)))
	if c.Other {
		rhs = expr.Negate(rhs)
	}
	return Equations{expr.Minus(lhs, rhs)}
}

// buildAngle fixes the angle between two lines to a literal, valA degrees.
func buildAngle(es *entity.Store, c *Constraint) Equations {
	a := LineDirection(es, c.Entities[0])
	b := LineDirection(es, c.Entities[1])
	cosTheta := expr.Const(math.Cos(c.ValA * math.Pi / 180))
	if c.Other {
		cosTheta = expr.Const(-math.Cos(c.ValA * math.Pi / 180))
	}
	return Equations{cosAngleResidual(a, b, cosTheta)}
}

// buildParallel forces two line directions' cross product to vanish.
func buildParallel(es *entity.Store, c *Constraint) Equations {
	a := LineDirection(es, c.Entities[0])
	b := LineDirection(es, c.Entities[1])
	cr := vcross(a, b)
	if c.InWorkplane() {
		return Equations{cr[2]}
	}
	return Equations{cr[0], cr[1], cr[2]}
}

// buildPerpendicular forces two line directions' dot product to vanish.
func buildPerpendicular(es *entity.Store, c *Constraint) Equations {
	a := LineDirection(es, c.Entities[0])
	b := LineDirection(es, c.Entities[1])
	return Equations{vdot(a, b)}
}

// buildHorizontal forces a line's direction to have zero V-component in
// its workplane (its projection onto the plane's V basis vector is zero).
func buildHorizontal(es *entity.Store, c *Constraint) Equations {
	dir := LineDirection(es, c.Entities[0])
	_, v, _ := WorkplaneBasis(es, c.Workplane)
	return Equations{vdot(dir, v)}
}

// buildVertical is Horizontal's U-axis counterpart.
func buildVertical(es *entity.Store, c *Constraint) Equations {
	dir := LineDirection(es, c.Entities[0])
	u, _, _ := WorkplaneBasis(es, c.Workplane)
	return Equations{vdot(dir, u)}
}
