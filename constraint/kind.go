// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements the catalog of spec.md §4.3: each
// Constraint lowers to one or more scalar residual expr.Expr equations.
// Builders are registered by Kind using the same registry-of-allocators
// idiom as msolid.GetModel/msolid.allocators in the teacher repo (there:
// model name -> constitutive-model allocator; here: constraint Kind ->
// residual-equation builder), one family of Kinds per file.
package constraint

import "github.com/opencad/kernel/hdl"

// Kind enumerates every constraint in spec.md's catalog table.
type Kind int

const (
	PointsCoincident Kind = iota
	PtPtDistance
	PtPlaneDistance
	PtLineDistance
	PtFaceDistance
	PtInPlane
	PtOnLine
	PtOnFace
	PtOnCircle
	EqualLengthLines
	EqualLineArcLen
	LengthRatio
	EqLenPtLineD
	EqPtLnDistances
	EqualAngle
	EqualRadius
	Diameter
	Radius // [NEW]: recovered radius-dimension variant, see SPEC_FULL.md §4.3
	Angle
	Parallel
	Perpendicular
	ArcLineTangent
	CubicLineTangent
	CurveCurveTangent
	Horizontal
	Vertical
	AtMidpoint
	Symmetric
	SymmetricHoriz
	SymmetricVert
	SymmetricLine
	SameOrientation
	WhereDragged
)

var kindNames = [...]string{
	"PointsCoincident", "PtPtDistance", "PtPlaneDistance", "PtLineDistance",
	"PtFaceDistance", "PtInPlane", "PtOnLine", "PtOnFace", "PtOnCircle",
	"EqualLengthLines", "EqualLineArcLen", "LengthRatio", "EqLenPtLineD",
	"EqPtLnDistances", "EqualAngle", "EqualRadius", "Diameter", "Radius",
	"Angle", "Parallel", "Perpendicular", "ArcLineTangent",
	"CubicLineTangent", "CurveCurveTangent", "Horizontal", "Vertical",
	"AtMidpoint", "Symmetric", "SymmetricHoriz", "SymmetricVert",
	"SymmetricLine", "SameOrientation", "WhereDragged",
}

// String names a Kind for logging and the persisted file format.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Constraint is a tagged union over the catalog, referencing up to 3
// points, up to 4 entities, one workplane, one or two scalar values, and
// display offset, exactly as spec.md §3 describes.
type Constraint struct {
	Handle    hdl.Cons
	Kind      Kind
	Group     hdl.Group
	Points    [3]hdl.Entity
	Entities  [4]hdl.Entity
	Workplane hdl.Entity // hdl.None => free in 3D
	ValA      float64
	ValB      float64
	Other     bool // flips sign, used by Angle
	Reference bool // measures, does not enforce; valA is rewritten after solve
	Offset    [2]float64
}

// InWorkplane reports whether this constraint is expressed in a 2-D
// sketch plane (as opposed to free in 3-D).
func (c *Constraint) InWorkplane() bool { return c.Workplane != hdl.Entity(0) }
