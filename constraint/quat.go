// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/hdl"
)

// quatBasis builds the symbolic (U, V, N) orthonormal basis induced by a
// unit quaternion (qw,qx,qy,qz), using the standard quaternion-to-rotation-
// matrix columns. This is polynomial in the quaternion's four parameters,
// so it composes directly with expr's Times/Plus/Minus -- PartialWrt then
// differentiates the basis exactly, which is what lets PT_ON_LINE,
// PT_IN_PLANE and friends carry an exact Jacobian through a workplane's
// orientation instead of only through its origin.
func quatBasis(qw, qx, qy, qz *expr.Expr) (u, v, n [3]*expr.Expr) {
	two := expr.Const(2)
	one := expr.Const(1)

	xx := expr.Times(qx, qx)
	yy := expr.Times(qy, qy)
	zz := expr.Times(qz, qz)
	xy := expr.Times(qx, qy)
	xz := expr.Times(qx, qz)
	yz := expr.Times(qy, qz)
	wx := expr.Times(qw, qx)
	wy := expr.Times(qw, qy)
	wz := expr.Times(qw, qz)

	u[0] = expr.Minus(one, expr.Times(two, expr.Plus(yy, zz)))
	u[1] = expr.Times(two, expr.Plus(xy, wz))
	u[2] = expr.Times(two, expr.Minus(xz, wy))

	v[0] = expr.Times(two, expr.Minus(xy, wz))
	v[1] = expr.Minus(one, expr.Times(two, expr.Plus(xx, zz)))
	v[2] = expr.Times(two, expr.Plus(yz, wx))

	n[0] = expr.Times(two, expr.Plus(xz, wy))
	n[1] = expr.Times(two, expr.Minus(yz, wx))
	n[2] = expr.Minus(one, expr.Times(two, expr.Plus(xx, yy)))

	return
}

// quatUnitResidual builds the implicit ||q||^2 - 1 = 0 equation every
// quaternion-valued normal must satisfy, per spec.md §3's invariant.
func quatUnitResidual(qw, qx, qy, qz *expr.Expr) *expr.Expr {
	sum := expr.Plus(expr.Plus(expr.Square(qw), expr.Square(qx)), expr.Plus(expr.Square(qy), expr.Square(qz)))
	return expr.Minus(sum, expr.Const(1))
}

// NormalUnitResidual builds the implicit unit-quaternion equation for one
// normal entity, for the regenerator to append to a group's equation set
// alongside its ordinary constraint residuals: "the set of equations from
// the active group plus implicit quaternion-unit-length equations for
// every normal" of spec.md §4.4.
func NormalUnitResidual(es *entity.Store, normalH hdl.Entity) *expr.Expr {
	normal := es.Get(normalH)
	qw := expr.ParamRef(normal.Params[0])
	qx := expr.ParamRef(normal.Params[1])
	qy := expr.ParamRef(normal.Params[2])
	qz := expr.ParamRef(normal.Params[3])
	return quatUnitResidual(qw, qx, qy, qz)
}
