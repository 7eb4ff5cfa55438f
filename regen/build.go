// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regen

import (
	"math"

	"github.com/opencad/kernel/constraint"
	"github.com/opencad/kernel/curve"
	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/group"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
	"github.com/opencad/kernel/poly"
	"github.com/opencad/kernel/shell"
	"github.com/opencad/kernel/surface"
)

// buildGroupGeometry is the group-kind dispatch point of the regenerator's
// step-3 geometry build: every group first gets its own 2-D sketch
// profile assembled from whatever line/arc/circle entities it owns, then
// Extrude/Lathe/TranslateCopies/RotateCopies groups fold that profile (or
// their predecessor's running shell) into the group's own B-rep
// contribution and the cumulative RunningShell/RunningMesh a later group
// builds on. A plain sketch group simply carries its predecessor's
// running shell/mesh forward unchanged.
func buildGroupGeometry(gs *group.Store, es *entity.Store, ps *param.Store, g, pred *group.Group, opts Options) diag.Result {
	if dres := buildSketchPolygon(es, ps, g, opts); !dres.Ok() {
		return dres
	}

	var predShell *shell.Shell
	if pred != nil {
		predShell = pred.RunningShell
	}
	if predShell == nil {
		predShell = &shell.Shell{}
	}

	switch g.Kind {
	case group.Extrude:
		return buildExtrude(es, ps, g, pred, predShell, opts)
	case group.Lathe:
		return buildLathe(es, ps, g, pred, predShell, opts)
	case group.TranslateCopies, group.RotateCopies:
		return buildCopies(g, predShell, opts)
	default:
		g.RunningShell = predShell
		if pred != nil {
			g.RunningMesh = pred.RunningMesh
		}
		return diag.OK
	}
}

// buildSketchPolygon assembles g.Polygon from the line/arc/circle entities
// g owns, in workplane-local (u,v) coordinates -- a PointInWorkplane
// entity's two params ARE its local coordinates directly, so no symbolic
// workplane-basis evaluation is needed for in-plane sketch geometry.
// Circles and arcs are linearized with curve.CirclePWL/ArcPWL's exact
// segment-count formula before being handed to the same edge-breaking and
// contour-assembly pipeline a polygon built from straight line segments
// uses. A group that owns no such entities (every transform-kind group,
// typically) gets an empty Polygon rather than an error.
func buildSketchPolygon(es *entity.Store, ps *param.Store, g *group.Group, opts Options) diag.Result {
	val := valueOf(ps)
	var el poly.SEdgeList

	for _, e := range es.ByGroup(g.Handle) {
		switch e.Kind {
		case entity.LineSegment:
			a := uvOf(es, val, e.Points[0])
			b := uvOf(es, val, e.Points[1])
			el.Edges = append(el.Edges, poly.Edge{A: a, B: b})

		case entity.Circle:
			center := uvOf(es, val, e.Points[0])
			radius := val(e.Params[0])
			pts := curve.CirclePWL(center, curve.Vec3{X: 1}, curve.Vec3{Y: 1}, radius, opts.ChordTol)
			for i := range pts {
				j := (i + 1) % len(pts)
				el.Edges = append(el.Edges, poly.Edge{A: pts[i], B: pts[j]})
			}

		case entity.ArcOfCircle:
			center := uvOf(es, val, e.Points[0])
			start := uvOf(es, val, e.Points[1])
			end := uvOf(es, val, e.Points[2])
			radius := val(e.Params[0])
			startAngle := math.Atan2(start.Y-center.Y, start.X-center.X)
			endAngle := math.Atan2(end.Y-center.Y, end.X-center.X)
			pts := curve.ArcPWL(center, curve.Vec3{X: 1}, curve.Vec3{Y: 1}, radius, startAngle, endAngle, opts.ChordTol)
			for i := 0; i+1 < len(pts); i++ {
				el.Edges = append(el.Edges, poly.Edge{A: pts[i], B: pts[i+1]})
			}
		}
	}

	if len(el.Edges) == 0 {
		g.Polygon = &poly.SPolygon{}
		return diag.OK
	}

	broken := el.CopyBreaking()
	broken.CullDuplicates(opts.SnapTol)
	p, ok := broken.AssemblePolygon(opts.SnapTol)
	if !ok {
		return diag.Errorf(diag.OpenContour, "group %08x's sketch entities do not close into a polygon", uint32(g.Handle))
	}
	p.FixContourDirections()
	g.Polygon = &p
	return diag.OK
}

// uvOf returns the workplane-local (u,v) coordinates of a PointInWorkplane
// entity, or the origin for any other point kind (a sketch's line/arc/
// circle endpoints are always PointInWorkplane in practice).
func uvOf(es *entity.Store, val expr.ValueOf, h hdl.Entity) curve.Vec3 {
	e := es.Get(h)
	if e == nil || e.Kind != entity.PointInWorkplane {
		return curve.Vec3{}
	}
	return curve.Vec3{X: val(e.Params[0]), Y: val(e.Params[1])}
}

// workplaneFrame numerically evaluates a workplane entity's origin and
// (u, v, n) basis -- the symbolic constraint.PointCoords/WorkplaneBasis
// expression trees evaluated componentwise through the current parameter
// values, giving concrete placement data for mapping a 2-D sketch profile
// into 3-D world space.
func workplaneFrame(es *entity.Store, ps *param.Store, wpH hdl.Entity) (origin, u, v, n curve.Vec3) {
	val := valueOf(ps)
	wp := es.Get(wpH)
	o := constraint.PointCoords(es, wp.Points[0])
	uu, vv, nn := constraint.WorkplaneBasis(es, wpH)
	return evalVec3(o, val), evalVec3(uu, val), evalVec3(vv, val), evalVec3(nn, val)
}

func evalVec3(vec constraint.Vec3, val expr.ValueOf) curve.Vec3 {
	return curve.Vec3{X: vec[0].Eval(val), Y: vec[1].Eval(val), Z: vec[2].Eval(val)}
}

// contoursBBox returns the axis-aligned (X,Y) bounding box of every point
// across every contour -- used to place a planar cap face's bilinear
// surface so its unit-square parameter domain covers the whole profile.
func contoursBBox(contours [][]curve.Vec3) (lo, hi curve.Vec3) {
	first := true
	for _, c := range contours {
		for _, p := range c {
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			if p.X < lo.X {
				lo.X = p.X
			}
			if p.Y < lo.Y {
				lo.Y = p.Y
			}
			if p.X > hi.X {
				hi.X = p.X
			}
			if p.Y > hi.Y {
				hi.Y = p.Y
			}
		}
	}
	return
}

// planarCapFace builds a bilinear SSurface whose unit-square parameter
// domain spans contours' bounding box, placed in world space by place,
// trimmed by contours normalized into that same unit square -- the cap
// face an extrude's two ends, or a lathe's two open ends, are built from.
func planarCapFace(contours [][]curve.Vec3, place func(curve.Vec3) curve.Vec3) shell.Face {
	lo, hi := contoursBBox(contours)
	uRange, vRange := hi.X-lo.X, hi.Y-lo.Y
	if uRange == 0 {
		uRange = 1
	}
	if vRange == 0 {
		vRange = 1
	}
	normalize := func(p curve.Vec3) curve.Vec3 {
		return curve.Vec3{X: (p.X - lo.X) / uRange, Y: (p.Y - lo.Y) / vRange}
	}

	surf := surface.SSurface{DegU: 1, DegV: 1}
	surf.Weight = [4][4]float64{{1, 1}, {1, 1}}
	surf.Ctrl[0][0] = place(curve.Vec3{X: lo.X, Y: lo.Y})
	surf.Ctrl[1][0] = place(curve.Vec3{X: hi.X, Y: lo.Y})
	surf.Ctrl[0][1] = place(curve.Vec3{X: lo.X, Y: hi.Y})
	surf.Ctrl[1][1] = place(curve.Vec3{X: hi.X, Y: hi.Y})

	boundaries := make([][]curve.Vec3, len(contours))
	for i, c := range contours {
		b := make([]curve.Vec3, len(c))
		for j, p := range c {
			b[j] = normalize(p)
		}
		boundaries[i] = b
	}
	return shell.Face{Surf: surf, Boundaries: boundaries}
}

// buildExtrude folds the predecessor group's sketch profile into a solid:
// a bottom cap at the predecessor workplane, a top cap offset by the
// group's Predef.Translate (read as a world-space extrude vector, not a
// workplane-local offset -- the same field TranslateCopies reads as a
// world-space step, kept consistent across both group kinds), and one
// bilinear ruled side face per profile edge. The new shell is unioned
// into the predecessor's running shell.
func buildExtrude(es *entity.Store, ps *param.Store, g, pred *group.Group, predShell *shell.Shell, opts Options) diag.Result {
	if pred == nil || pred.Polygon == nil || len(pred.Polygon.Contours) == 0 {
		return diag.Errorf(diag.OpenContour, "extrude group %08x has no predecessor profile to extrude", uint32(g.Handle))
	}
	if pred.Workplane.IsNone() {
		return diag.Errorf(diag.OpenContour, "extrude group %08x's predecessor is not drawn on a workplane", uint32(g.Handle))
	}

	origin, u, v, _ := workplaneFrame(es, ps, pred.Workplane)
	at := func(uv curve.Vec3) curve.Vec3 {
		return origin.Add(u.Scale(uv.X)).Add(v.Scale(uv.Y))
	}
	extrudeVec := curve.Vec3{X: g.Predef.Translate[0], Y: g.Predef.Translate[1], Z: g.Predef.Translate[2]}

	bottom := planarCapFace(pred.Polygon.Contours, at)
	top := bottom.TransformedBy(func(p curve.Vec3) curve.Vec3 { return p.Add(extrudeVec) })

	faces := []shell.Face{bottom, top}
	unitQuad := [][]curve.Vec3{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}
	for _, c := range pred.Polygon.Contours {
		n := len(c)
		for i := 0; i < n; i++ {
			a := at(c[i])
			b := at(c[(i+1)%n])
			side := surface.SSurface{DegU: 1, DegV: 1}
			side.Weight = [4][4]float64{{1, 1}, {1, 1}}
			side.Ctrl[0][0] = a
			side.Ctrl[1][0] = b
			side.Ctrl[0][1] = a.Add(extrudeVec)
			side.Ctrl[1][1] = b.Add(extrudeVec)
			faces = append(faces, shell.Face{Surf: side, Boundaries: unitQuad})
		}
	}

	g.Shell = &shell.Shell{Faces: faces}
	g.Mesh = g.Shell.Triangulate()

	merged, dres := shell.Boolean(predShell, g.Shell, shell.Union, opts.MaxSegments)
	if !dres.Ok() {
		return dres
	}
	g.RunningShell = merged
	g.RunningMesh = merged.Triangulate()
	return diag.OK
}

// rodrigues rotates p about the given axis (through the world origin, a
// documented scope simplification -- neither Lathe nor the copy-pattern
// groups carry a separate axis-origin field) by angle radians, via the
// standard Rodrigues rotation formula.
func rodrigues(axis curve.Vec3, angle float64, p curve.Vec3) curve.Vec3 {
	axis = axis.Normalized()
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	return p.Scale(cosA).
		Add(axis.Cross(p).Scale(sinA)).
		Add(axis.Scale(axis.Dot(p) * (1 - cosA)))
}

// buildLathe revolves the predecessor group's outer sketch contour about
// Predef.RotateAxis through the world origin, by Predef.RotateAngleDeg (a
// full 360 if unset), as a faceted ribbon of bilinear ruled quads between
// successive angular rings -- not an exact single-patch NURBS circular
// surface, since a tensor-product patch of degree <=3 cannot represent a
// full circle in one rational patch. End caps are only added for a
// partial (non-360-degree) revolve, matching the "closed solid" shape a
// full revolve already has without them.
func buildLathe(es *entity.Store, ps *param.Store, g, pred *group.Group, predShell *shell.Shell, opts Options) diag.Result {
	if pred == nil || pred.Polygon == nil || len(pred.Polygon.Contours) == 0 {
		return diag.Errorf(diag.OpenContour, "lathe group %08x has no predecessor profile to revolve", uint32(g.Handle))
	}
	if pred.Workplane.IsNone() {
		return diag.Errorf(diag.OpenContour, "lathe group %08x's predecessor is not drawn on a workplane", uint32(g.Handle))
	}

	origin, u, v, _ := workplaneFrame(es, ps, pred.Workplane)
	at := func(uv curve.Vec3) curve.Vec3 {
		return origin.Add(u.Scale(uv.X)).Add(v.Scale(uv.Y))
	}

	axis := curve.Vec3{X: g.Predef.RotateAxis[0], Y: g.Predef.RotateAxis[1], Z: g.Predef.RotateAxis[2]}
	if axis.Norm() == 0 {
		axis = curve.Vec3{Z: 1}
	}
	angleDeg := g.Predef.RotateAngleDeg
	if angleDeg == 0 {
		angleDeg = 360
	}
	totalAngle := angleDeg * math.Pi / 180
	full := math.Abs(angleDeg-360) < 1e-9

	profile := pred.Polygon.Contours[0]
	n := len(profile)
	worldProfile := make([]curve.Vec3, n)
	for i, p := range profile {
		worldProfile[i] = at(p)
	}

	steps := opts.MaxSegments
	if steps < 3 {
		steps = 3
	}
	rings := make([][]curve.Vec3, steps+1)
	for s := 0; s <= steps; s++ {
		theta := totalAngle * float64(s) / float64(steps)
		ring := make([]curve.Vec3, n)
		for i, p := range worldProfile {
			ring[i] = rodrigues(axis, theta, p)
		}
		rings[s] = ring
	}

	var faces []shell.Face
	unitQuad := [][]curve.Vec3{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}
	for s := 0; s < steps; s++ {
		r0, r1 := rings[s], rings[s+1]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if !full && j == 0 {
				continue // open profile: the last vertex does not bridge back to the first
			}
			side := surface.SSurface{DegU: 1, DegV: 1}
			side.Weight = [4][4]float64{{1, 1}, {1, 1}}
			side.Ctrl[0][0] = r0[i]
			side.Ctrl[1][0] = r0[j]
			side.Ctrl[0][1] = r1[i]
			side.Ctrl[1][1] = r1[j]
			faces = append(faces, shell.Face{Surf: side, Boundaries: unitQuad})
		}
	}

	if !full {
		profileContours := [][]curve.Vec3{profile}
		capLo := planarCapFace(profileContours, func(p curve.Vec3) curve.Vec3 { return rodrigues(axis, 0, at(p)) })
		capHi := planarCapFace(profileContours, func(p curve.Vec3) curve.Vec3 { return rodrigues(axis, totalAngle, at(p)) })
		faces = append(faces, capLo, capHi)
	}

	g.Shell = &shell.Shell{Faces: faces}
	g.Mesh = g.Shell.Triangulate()

	merged, dres := shell.Boolean(predShell, g.Shell, shell.Union, opts.MaxSegments)
	if !dres.Ok() {
		return dres
	}
	g.RunningShell = merged
	g.RunningMesh = merged.Triangulate()
	return diag.OK
}

// buildCopies duplicates the predecessor's running shell Predef.Copies
// times (the original plus Copies-1 transformed duplicates), unioning
// each duplicate in turn -- translated by Predef.Translate*c for
// TranslateCopies, or rotated by Predef.RotateAngleDeg*c about
// Predef.RotateAxis through the world origin for RotateCopies. This is a
// deliberate scope simplification: it does not materialize new
// PointTransformed entities for the copies, so downstream constraints
// cannot yet reference an individual copy's geometry, only the group's
// resulting solid.
func buildCopies(g *group.Group, predShell *shell.Shell, opts Options) diag.Result {
	n := g.Predef.Copies
	if n < 1 {
		n = 1
	}

	axis := curve.Vec3{X: g.Predef.RotateAxis[0], Y: g.Predef.RotateAxis[1], Z: g.Predef.RotateAxis[2]}
	if axis.Norm() == 0 {
		axis = curve.Vec3{Z: 1}
	}

	result := predShell
	for c := 1; c < n; c++ {
		var xf *shell.Shell
		switch g.Kind {
		case group.TranslateCopies:
			d := curve.Vec3{
				X: g.Predef.Translate[0] * float64(c),
				Y: g.Predef.Translate[1] * float64(c),
				Z: g.Predef.Translate[2] * float64(c),
			}
			xf = predShell.TransformedBy(func(p curve.Vec3) curve.Vec3 { return p.Add(d) })
		case group.RotateCopies:
			theta := g.Predef.RotateAngleDeg * float64(c) * math.Pi / 180
			xf = predShell.TransformedBy(func(p curve.Vec3) curve.Vec3 { return rodrigues(axis, theta, p) })
		}
		merged, dres := shell.Boolean(result, xf, shell.Union, opts.MaxSegments)
		if !dres.Ok() {
			return dres
		}
		result = merged
	}

	g.Shell = result
	g.Mesh = result.Triangulate()
	g.RunningShell = result
	g.RunningMesh = result.Triangulate()
	return diag.OK
}
