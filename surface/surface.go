// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface implements the tensor-product rational Bezier surface
// algebra of spec.md §4.6, degree m x n up to 3x3.
package surface

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/opencad/kernel/curve"
)

// SSurface is a tensor-product rational Bezier patch: DegU+1 by DegV+1
// control points, each with a homogeneous weight.
type SSurface struct {
	DegU, DegV int
	Ctrl       [4][4]curve.Vec3
	Weight     [4][4]float64
}

func bernstein(deg int, t float64) [4]float64 {
	u := 1 - t
	switch deg {
	case 1:
		return [4]float64{u, t, 0, 0}
	case 2:
		return [4]float64{u * u, 2 * u * t, t * t, 0}
	case 3:
		return [4]float64{u * u * u, 3 * u * u * t, 3 * u * t * t, t * t * t}
	}
	return [4]float64{1, 0, 0, 0}
}

func bernsteinDeriv(deg int, t float64) [4]float64 {
	u := 1 - t
	switch deg {
	case 1:
		return [4]float64{-1, 1, 0, 0}
	case 2:
		return [4]float64{-2 * u, 2*u - 2*t, 2 * t, 0}
	case 3:
		return [4]float64{-3 * u * u, 3*u*u - 6*u*t, 6*u*t - 3*t*t, 3 * t * t}
	}
	return [4]float64{0, 0, 0, 0}
}

// PointAt evaluates the rational surface at (u,v) in [0,1]^2.
func (s SSurface) PointAt(u, v float64) curve.Vec3 {
	bu := bernstein(s.DegU, u)
	bv := bernstein(s.DegV, v)
	var num curve.Vec3
	var den float64
	for i := 0; i <= s.DegU; i++ {
		for j := 0; j <= s.DegV; j++ {
			w := bu[i] * bv[j] * s.Weight[i][j]
			num = num.Add(s.Ctrl[i][j].Scale(w))
			den += w
		}
	}
	if den == 0 {
		return curve.Vec3{}
	}
	return num.Scale(1 / den)
}

// TangentsAt returns the partial derivatives dP/du and dP/dv at (u,v), via
// the quotient rule over the homogeneous numerator/denominator exactly as
// curve.SBezier.TangentAt does in one fewer dimension.
func (s SSurface) TangentsAt(u, v float64) (du, dv curve.Vec3) {
	bu := bernstein(s.DegU, u)
	bv := bernstein(s.DegV, v)
	dbu := bernsteinDeriv(s.DegU, u)
	dbv := bernsteinDeriv(s.DegV, v)

	var num, numDu, numDv curve.Vec3
	var den, denDu, denDv float64
	for i := 0; i <= s.DegU; i++ {
		for j := 0; j <= s.DegV; j++ {
			w := s.Weight[i][j]
			num = num.Add(s.Ctrl[i][j].Scale(bu[i] * bv[j] * w))
			numDu = numDu.Add(s.Ctrl[i][j].Scale(dbu[i] * bv[j] * w))
			numDv = numDv.Add(s.Ctrl[i][j].Scale(bu[i] * dbv[j] * w))
			den += bu[i] * bv[j] * w
			denDu += dbu[i] * bv[j] * w
			denDv += bu[i] * dbv[j] * w
		}
	}
	if den == 0 {
		return curve.Vec3{}, curve.Vec3{}
	}
	den2 := den * den
	du = numDu.Scale(den).Sub(num.Scale(denDu)).Scale(1 / den2)
	dv = numDv.Scale(den).Sub(num.Scale(denDv)).Scale(1 / den2)
	return du, dv
}

// NormalAt returns the unit surface normal at (u,v), the normalized cross
// product of its two tangent directions.
func (s SSurface) NormalAt(u, v float64) curve.Vec3 {
	du, dv := s.TangentsAt(u, v)
	return du.Cross(dv).Normalized()
}

// ClosestPointTo finds (u,v) minimizing |PointAt(u,v)-p| via coarse
// sampling then Newton/gradient-descent refinement, capped at 15
// iterations per spec.md §4.6.
func (s SSurface) ClosestPointTo(p curve.Vec3) (u, v float64) {
	const samples = 8
	bestU, bestV, bestD := 0.0, 0.0, math.Inf(1)
	for i := 0; i <= samples; i++ {
		for j := 0; j <= samples; j++ {
			uu := float64(i) / samples
			vv := float64(j) / samples
			d := s.PointAt(uu, vv).DistanceTo(p)
			if d < bestD {
				bestD, bestU, bestV = d, uu, vv
			}
		}
	}

	u, v = bestU, bestV
	for it := 0; it < 15; it++ {
		pt := s.PointAt(u, v)
		du, dv := s.TangentsAt(u, v)
		diff := pt.Sub(p)
		gu := diff.Dot(du)
		gv := diff.Dot(dv)
		huu := du.Dot(du)
		hvv := dv.Dot(dv)
		if huu == 0 || hvv == 0 {
			break
		}
		su := gu / huu
		sv := gv / hvv
		u = clamp01(u - su)
		v = clamp01(v - sv)
		if math.Abs(su) < 1e-12 && math.Abs(sv) < 1e-12 {
			break
		}
	}
	return u, v
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// IsExtrusion reports whether this surface is a linear sweep of one curve
// (its iso-u or iso-v boundary) along a fixed direction: every control
// point column differs from the first by the same translation.
func (s SSurface) IsExtrusion(tol float64) (dir curve.Vec3, ok bool) {
	dir = s.Ctrl[0][s.DegV].Sub(s.Ctrl[0][0])
	for i := 0; i <= s.DegU; i++ {
		d := s.Ctrl[i][s.DegV].Sub(s.Ctrl[i][0])
		if d.Sub(dir).Norm() > tol {
			return curve.Vec3{}, false
		}
	}
	return dir, true
}

// IsCylinder reports whether this surface is an extrusion whose iso-v=0
// boundary is circular, combining IsExtrusion with curve.SBezier.IsCircle
// on the boundary curve.
func (s SSurface) IsCylinder(tol float64) bool {
	_, isExt := s.IsExtrusion(tol)
	if !isExt {
		return false
	}
	boundary := curve.SBezier{Deg: s.DegU}
	for i := 0; i <= s.DegU; i++ {
		boundary.Ctrl[i] = s.Ctrl[i][0]
		boundary.Weight[i] = s.Weight[i][0]
	}
	return boundary.IsCircle(tol)
}

// CoincidentWithPlane reports whether every control point lies within
// tol of the plane through origin with unit normal n.
func (s SSurface) CoincidentWithPlane(origin, n curve.Vec3, tol float64) bool {
	for i := 0; i <= s.DegU; i++ {
		for j := 0; j <= s.DegV; j++ {
			if math.Abs(s.Ctrl[i][j].Sub(origin).Dot(n)) > tol {
				return false
			}
		}
	}
	return true
}

// CoincidentWith reports whether s and other share every control point
// and weight within tol -- used to detect and merge duplicate faces
// during a shell boolean.
func (s SSurface) CoincidentWith(other SSurface, tol float64) bool {
	if s.DegU != other.DegU || s.DegV != other.DegV {
		return false
	}
	for i := 0; i <= s.DegU; i++ {
		for j := 0; j <= s.DegV; j++ {
			if s.Ctrl[i][j].DistanceTo(other.Ctrl[i][j]) > tol {
				return false
			}
			if math.Abs(s.Weight[i][j]-other.Weight[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// TriangulateInto appends a regular (sampleU+1)x(sampleV+1) grid of
// triangles approximating s into the destination slice, the simplest
// member of the chord-tolerance-aware strategy spec.md §4.6 describes --
// callers needing adaptive refinement subdivide further themselves.
func (s SSurface) TriangulateInto(dst *[]curve.Vec3, sampleU, sampleV int) {
	grid := make([][]curve.Vec3, sampleU+1)
	for i := 0; i <= sampleU; i++ {
		grid[i] = make([]curve.Vec3, sampleV+1)
		for j := 0; j <= sampleV; j++ {
			grid[i][j] = s.PointAt(float64(i)/float64(sampleU), float64(j)/float64(sampleV))
		}
	}
	for i := 0; i < sampleU; i++ {
		for j := 0; j < sampleV; j++ {
			a, b, c, d := grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]
			*dst = append(*dst, a, b, c, a, c, d)
		}
	}
}

// TransformedBy maps every control point through fn, leaving weights
// unchanged, mirroring curve.SBezier.TransformedBy one dimension up --
// used to place an extrude/lathe/pattern group's faces in world space and
// to duplicate a shell for a translate/rotate copies group.
func (s SSurface) TransformedBy(fn func(curve.Vec3) curve.Vec3) SSurface {
	out := s
	for i := 0; i <= s.DegU; i++ {
		for j := 0; j <= s.DegV; j++ {
			out.Ctrl[i][j] = fn(s.Ctrl[i][j])
		}
	}
	return out
}

// DebugCheckDerivs cross-checks TangentsAt's analytic partials against a
// central-difference estimate from gosl/num, mirroring the
// num.DerivCentral / chk.AnaNum validation pattern shp's shape-function
// tests use. Returns the absolute discrepancies of the X components of
// dP/du and dP/dv.
func (s SSurface) DebugCheckDerivs(u, v, h float64) (errU, errV float64) {
	du, dv := s.TangentsAt(u, v)
	fdU, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return s.PointAt(x, v).X
	}, u, h)
	fdV, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return s.PointAt(u, x).X
	}, v, h)
	errU = math.Abs(fdU - du.X)
	errV = math.Abs(fdV - dv.X)
	return
}
