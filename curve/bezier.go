// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import "math"

// SBezier is a rational Bezier curve of degree 0-3: Deg+1 control points
// each carrying a homogeneous weight (Weight[i] == 1 for every i makes it
// a plain polynomial Bezier).
type SBezier struct {
	Deg    int
	Ctrl   [4]Vec3
	Weight [4]float64
}

// Line builds a degree-1 (non-rational) SBezier from p0 to p1.
func Line(p0, p1 Vec3) SBezier {
	return SBezier{Deg: 1, Ctrl: [4]Vec3{p0, p1}, Weight: [4]float64{1, 1}}
}

// CircleArc builds the exact rational-quadratic SBezier representation of
// a circular arc of the given radius about center, spanning from
// startAngle to endAngle radians (< pi), in the plane with basis (u, v).
// This is the standard "weight = cos(half-angle)" construction used to
// represent a circular arc exactly with a single rational quadratic.
func CircleArc(center Vec3, u, v Vec3, radius, startAngle, endAngle float64) SBezier {
	half := (endAngle - startAngle) / 2
	w1 := math.Cos(half)
	pointAt := func(theta float64) Vec3 {
		return center.Add(u.Scale(radius * math.Cos(theta))).Add(v.Scale(radius * math.Sin(theta)))
	}
	p0 := pointAt(startAngle)
	p2 := pointAt(endAngle)
	mid := pointAt(startAngle + half)
	// the middle control point lies on the line through the arc's midpoint
	// and the center, at distance radius/cos(half) from center.
	dir := mid.Sub(center).Normalized()
	p1 := center.Add(dir.Scale(radius / w1))
	return SBezier{Deg: 2, Ctrl: [4]Vec3{p0, p1, p2}, Weight: [4]float64{1, w1, 1}}
}

// CirclePWL returns the vertices of the piecewise-linear approximation of
// a full circle of the given radius about center, in the plane with basis
// (u, v), using the closed-form segment count
// ceil(pi*sqrt(2*radius/chordTol)). With n equal-angle segments each chord
// deviates from the circle by radius*(1-cos(pi/n)), which this count keeps
// to about a quarter of chordTol.
func CirclePWL(center, u, v Vec3, radius, chordTol float64) []Vec3 {
	if chordTol <= 0 {
		chordTol = 1e-4
	}
	n := int(math.Ceil(math.Pi * math.Sqrt(2*radius/chordTol)))
	if n < 3 {
		n = 3
	}
	pts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = center.Add(u.Scale(radius * math.Cos(theta))).Add(v.Scale(radius * math.Sin(theta)))
	}
	return pts
}

// ArcPWL returns the vertices of the piecewise-linear approximation of a
// circular arc spanning startAngle to endAngle radians (either direction),
// at the same per-radian segment density CirclePWL uses for a full circle,
// scaled down to the arc's angular fraction of a full turn.
func ArcPWL(center, u, v Vec3, radius, startAngle, endAngle, chordTol float64) []Vec3 {
	if chordTol <= 0 {
		chordTol = 1e-4
	}
	full := math.Ceil(math.Pi * math.Sqrt(2*radius/chordTol))
	span := endAngle - startAngle
	n := int(math.Ceil(full * math.Abs(span) / (2 * math.Pi)))
	if n < 1 {
		n = 1
	}
	pts := make([]Vec3, n+1)
	for i := 0; i <= n; i++ {
		theta := startAngle + span*float64(i)/float64(n)
		pts[i] = center.Add(u.Scale(radius * math.Cos(theta))).Add(v.Scale(radius * math.Sin(theta)))
	}
	return pts
}

// bernstein returns the Deg-degree Bernstein basis values at parameter t.
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

// bernsteinDeriv returns d/dt of the Deg-degree Bernstein basis at t.
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

// PointAt evaluates the rational curve at parameter t in [0,1].
func (c SBezier) PointAt(t float64) Vec3 {
	b := bernstein(c.Deg, t)
	var num Vec3
	var den float64
	for i := 0; i <= c.Deg; i++ {
		wb := b[i] * c.Weight[i]
		num = num.Add(c.Ctrl[i].Scale(wb))
		den += wb
	}
	if den == 0 {
		return Vec3{}
	}
	return num.Scale(1 / den)
}

// TangentAt returns the (non-unit) derivative of the rational curve at t,
// via the quotient rule applied to the homogeneous numerator/denominator.
func (c SBezier) TangentAt(t float64) Vec3 {
	b := bernstein(c.Deg, t)
	db := bernsteinDeriv(c.Deg, t)
	var num, dnum Vec3
	var den, dden float64
	for i := 0; i <= c.Deg; i++ {
		w := c.Weight[i]
		num = num.Add(c.Ctrl[i].Scale(b[i] * w))
		dnum = dnum.Add(c.Ctrl[i].Scale(db[i] * w))
		den += b[i] * w
		dden += db[i] * w
	}
	if den == 0 {
		return Vec3{}
	}
	// d/dt (num/den) = (dnum*den - num*dden) / den^2
	return dnum.Scale(den).Sub(num.Scale(dden)).Scale(1 / (den * den))
}

// SplitAt de Casteljau-splits the curve at parameter t into two curves of
// the same degree, covering [0,t] and [t,1] respectively. Only the
// non-rational control-point recursion is implemented directly; weights
// split along the same homogeneous recursion (the de Casteljau algorithm
// is affine-invariant in homogeneous coordinates, so splitting the
// weighted control points and splitting the plain weights in parallel
// reproduces the same curve).
func (c SBezier) SplitAt(t float64) (left, right SBezier) {
	n := c.Deg
	var hp [4]Vec3 // homogeneous: Ctrl[i]*Weight[i]
	var hw [4]float64
	for i := 0; i <= n; i++ {
		hp[i] = c.Ctrl[i].Scale(c.Weight[i])
		hw[i] = c.Weight[i]
	}

	var leftP, rightP [4]Vec3
	var leftW, rightW [4]float64
	leftP[0], leftW[0] = hp[0], hw[0]
	rightP[n], rightW[n] = hp[n], hw[n]

	pts := hp
	ws := hw
	for k := 1; k <= n; k++ {
		for i := 0; i <= n-k; i++ {
			pts[i] = pts[i].Scale(1 - t).Add(pts[i+1].Scale(t))
			ws[i] = ws[i]*(1-t) + ws[i+1]*t
		}
		leftP[k], leftW[k] = pts[0], ws[0]
		rightP[n-k], rightW[n-k] = pts[n-k], ws[n-k]
	}

	left = SBezier{Deg: n}
	right = SBezier{Deg: n}
	for i := 0; i <= n; i++ {
		if leftW[i] != 0 {
			left.Ctrl[i] = leftP[i].Scale(1 / leftW[i])
		}
		left.Weight[i] = leftW[i]
		if rightW[i] != 0 {
			right.Ctrl[i] = rightP[i].Scale(1 / rightW[i])
		}
		right.Weight[i] = rightW[i]
	}
	return left, right
}

// ClosestPointTo finds the parameter t minimizing |PointAt(t) - p|,
// via a coarse uniform sample followed by Newton refinement on the
// derivative of the squared distance, capped at 15 iterations per
// spec.md §4.6.
func (c SBezier) ClosestPointTo(p Vec3) float64 {
	const samples = 16
	bestT, bestD := 0.0, math.Inf(1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		d := c.PointAt(t).DistanceTo(p)
		if d < bestD {
			bestD, bestT = d, t
		}
	}

	t := bestT
	for it := 0; it < 15; it++ {
		pt := c.PointAt(t)
		tan := c.TangentAt(t)
		diff := pt.Sub(p)
		g := diff.Dot(tan) // d/dt of 0.5*|diff|^2
		gn := tan.Dot(tan) // Gauss-Newton approximation of the Hessian
		if gn == 0 {
			break
		}
		step := g / gn
		t -= step
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		if math.Abs(step) < 1e-12 {
			break
		}
	}
	return t
}

// MakePWL recursively splits c at its midpoint until every segment's
// control polygon deviates from its chord by less than tol, then returns
// the resulting polyline vertices in order -- the recursive mid-split
// chord-tolerance algorithm of spec.md §4.6.
func (c SBezier) MakePWL(tol float64) []Vec3 {
	if c.chordError() <= tol || c.Deg <= 1 {
		return []Vec3{c.Ctrl[0], c.Ctrl[c.Deg]}
	}
	left, right := c.SplitAt(0.5)
	lp := left.MakePWL(tol)
	rp := right.MakePWL(tol)
	return append(lp[:len(lp)-1], rp...)
}

// chordError estimates the maximum distance from the control polygon to
// the chord between endpoints -- a cheap, conservative stand-in for the
// true max curve-to-chord deviation, sufficient to drive MakePWL's
// termination test.
func (c SBezier) chordError() float64 {
	p0, p1 := c.Ctrl[0], c.Ctrl[c.Deg]
	chord := p1.Sub(p0)
	chordLen := chord.Norm()
	if chordLen == 0 {
		var max float64
		for i := 1; i < c.Deg; i++ {
			if d := c.Ctrl[i].DistanceTo(p0); d > max {
				max = d
			}
		}
		return max
	}
	dir := chord.Scale(1 / chordLen)
	var max float64
	for i := 1; i < c.Deg; i++ {
		rel := c.Ctrl[i].Sub(p0)
		perp := rel.Sub(dir.Scale(rel.Dot(dir)))
		if d := perp.Norm(); d > max {
			max = d
		}
	}
	return max
}

// IsCircle reports whether c is the rational-quadratic representation of
// a circular arc: Ctrl[1] is equidistant from Ctrl[0] and Ctrl[2], and the
// middle weight (normalized by the end weights) matches cos(half the arc
// angle) within tol.
func (c SBezier) IsCircle(tol float64) bool {
	if c.Deg != 2 {
		return false
	}
	l0 := c.Ctrl[0].Sub(c.Ctrl[1])
	l2 := c.Ctrl[2].Sub(c.Ctrl[1])
	n0, n2 := l0.Norm(), l2.Norm()
	if n0 == 0 || math.Abs(n0-n2) >= tol {
		return false
	}
	// the legs meet at Ctrl[1] at pi minus the arc angle, so cos(half the
	// arc angle) is sin(half the angle between them)
	legAngle := math.Acos(math.Max(-1, math.Min(1, l0.Dot(l2)/(n0*n2))))
	w := c.Weight[1] / math.Sqrt(c.Weight[0]*c.Weight[2])
	return math.Abs(w-math.Sin(legAngle/2)) < tol
}

// center returns the circumcenter of the three control points.
func (c SBezier) center() Vec3 {
	// circumcenter of the three control points, a reasonable proxy for
	// the true arc center when the curve is in fact circular.
	a, b, cc := c.Ctrl[0], c.Ctrl[1], c.Ctrl[2]
	ab := b.Sub(a)
	ac := cc.Sub(a)
	abSq := ab.Dot(ab)
	acSq := ac.Dot(ac)
	cross := ab.Cross(ac)
	denom := 2 * cross.Dot(cross)
	if denom == 0 {
		return a
	}
	numer := cross.Cross(ab.Scale(acSq)).Sub(cross.Cross(ac.Scale(abSq)))
	return a.Add(numer.Scale(1 / denom))
}

// IsInPlane reports whether every control point lies within tol of the
// plane through origin with unit normal n.
func (c SBezier) IsInPlane(origin, n Vec3, tol float64) bool {
	for i := 0; i <= c.Deg; i++ {
		d := c.Ctrl[i].Sub(origin).Dot(n)
		if math.Abs(d) > tol {
			return false
		}
	}
	return true
}

// IsRational reports whether any weight differs from 1 (beyond float
// noise).
func (c SBezier) IsRational() bool {
	for i := 0; i <= c.Deg; i++ {
		if math.Abs(c.Weight[i]-1) > 1e-12 {
			return true
		}
	}
	return false
}

// TransformedBy maps every control point through fn, leaving weights
// unchanged -- used by TransformedBy for rigid and affine transforms
// alike (fn carries whatever transform the caller wants applied).
func (c SBezier) TransformedBy(fn func(Vec3) Vec3) SBezier {
	out := c
	for i := 0; i <= c.Deg; i++ {
		out.Ctrl[i] = fn(c.Ctrl[i])
	}
	return out
}
