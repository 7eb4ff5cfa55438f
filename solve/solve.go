// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solve implements the constraint solver of spec.md §4.4: a
// Newton iteration over the free parameters of a param.Store driven by
// the residuals of a set of expr.Expr equations. The six steps --
// substitution, known-propagation, Jacobian assembly, rank-revealing
// elimination, iteration, writeback -- follow fem/solver.go's
// run_iterations loop in shape, reusing github.com/cpmech/gosl/la for the
// dense linear algebra it already brings in.
package solve

import (
	"github.com/cpmech/gosl/la"

	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
)

// Options tunes the Newton loop; zero value gives the defaults spec.md
// §4.4 names.
type Options struct {
	MaxIterations int     // default 50, mirrors Sim.Solver.NmaxIt
	ConvergeTol   float64 // largest |residual| below which the loop stops
	ReportDOF     bool    // if true, skip iteration and just report DOF
}

func (o Options) withDefaults() Options {
	if o.MaxIterations == 0 {
		o.MaxIterations = 50
	}
	if o.ConvergeTol == 0 {
		o.ConvergeTol = 1e-10
	}
	return o
}

// Result is the typed outcome of a Solve call.
type Result struct {
	Diag       diag.Result
	Iterations int
	DOF        int // free parameters remaining after known-propagation
}

// Solve drives ps's free, non-substituted parameters to a simultaneous
// zero of eqs, mutating ps.Value in place. Parameters already marked
// Known (fixed by a prior group) or SubstitutedBy (unified with another
// parameter by a PointsCoincident-style constraint) do not appear as
// independent unknowns.
//
// Before the Newton loop runs, preprocess performs the two algebraic
// passes of spec.md §4.4 steps 1-2: a substitution pass that unifies
// p_i=p_j pairs (coincidence-style residuals) by aliasing the higher
// handle to the lower one via SubstitutedBy, and a known-propagation
// pass that pins p=c residuals by setting Known and Value directly. Both
// passes repeat to a fixed point, since resolving one pair can reduce a
// neighboring equation to the same shape, and each consumed equation is
// dropped from the set the Jacobian assembly below ever sees.
func Solve(ps *param.Store, eqs []*expr.Expr, opts Options) Result {
	opts = opts.withDefaults()
	defer func() {
		for _, p := range ps.Ordered() {
			rep := p
			for rep.SubstitutedBy != 0 {
				rep = ps.Get(rep.SubstitutedBy)
			}
			p.Value = rep.Value
		}
	}()

	eqs = preprocess(ps, eqs)
	unknowns := freeUnknowns(ps)
	if opts.ReportDOF {
		return Result{Diag: diag.OK, DOF: len(unknowns)}
	}
	if len(eqs) == 0 {
		return Result{Diag: diag.OK, DOF: len(unknowns)}
	}
	if len(unknowns) == 0 {
		// equations left over with no free parameter: unsatisfied ones mean
		// the sketch is over-constrained by fixed values alone, satisfied
		// ones are redundant.
		if maxResidual(eqs, valueOf(ps)) > opts.ConvergeTol {
			return Result{Diag: diag.Errorf(diag.TooManyUnknowns,
				"no free parameters but %d equations remain unsatisfied", len(eqs))}
		}
		return Result{Diag: diag.Errorf(diag.Redundant,
			"%d equations remain with no free parameter left to satisfy them", len(eqs))}
	}

	index := make(map[hdl.Param]int, len(unknowns))
	for i, h := range unknowns {
		index[h] = i
	}

	n := len(unknowns)
	m := len(eqs)
	jac := la.MatAlloc(m, n)
	fb := make([]float64, m)
	dx := make([]float64, n)

	it := 0
	for ; it < opts.MaxIterations; it++ {
		v := valueOf(ps)

		for i, e := range eqs {
			fb[i] = -e.Eval(v)
		}
		largFb := la.VecLargest(fb, 1)
		if largFb < opts.ConvergeTol {
			break
		}

		la.MatFill(jac, 0)
		for i, e := range eqs {
			for _, h := range e.Params() {
				j, ok := index[h]
				if !ok {
					continue // Known or substituted: not a column of this Jacobian
				}
				d := e.PartialWrt(h).FoldConstants()
				jac[i][j] = d.Eval(v)
			}
		}

		rank, res := rankReveal(jac, fb, dx)
		if !res.Ok() {
			return Result{Diag: res, Iterations: it, DOF: n}
		}
		if rank < n {
			return Result{Diag: diag.Errorf(diag.Redundant,
				"Jacobian rank %d below %d unknowns: constraints are redundant or conflicting", rank, n),
				Iterations: it, DOF: n}
		}

		for j, h := range unknowns {
			p := ps.Get(h)
			p.Value += dx[j]
		}
	}

	if it >= opts.MaxIterations {
		return Result{Diag: diag.Errorf(diag.DidNotConverge,
			"Newton iteration did not converge within %d iterations", opts.MaxIterations),
			Iterations: it, DOF: n}
	}
	return Result{Diag: diag.OK, Iterations: it, DOF: n}
}

// preprocess repeatedly scans eqs for the two residual shapes the
// substitution and known-propagation passes recognize, folding in each
// round's discoveries before looking for more: a pair of constraints
// that only becomes a p=c residual once an earlier round substitutes a
// p_i=p_j pair into it must not be missed.
func preprocess(ps *param.Store, eqs []*expr.Expr) []*expr.Expr {
	remaining := make([]*expr.Expr, len(eqs))
	for i, e := range eqs {
		remaining[i] = e.FoldConstants()
	}

	for {
		progressed := false
		kept := remaining[:0:0]
		for _, e := range remaining {
			if h, c, ok := asParamConst(e); ok {
				p := ps.Get(h)
				if p != nil && !p.Known && p.SubstitutedBy == 0 {
					p.Known = true
					p.Value = c
					progressed = true
					continue
				}
			}
			if lo, hi, ok := asParamParam(e); ok {
				plo, phi := ps.Get(lo), ps.Get(hi)
				if plo != nil && phi != nil && !phi.Known && phi.SubstitutedBy == 0 {
					phi.SubstitutedBy = lo
					progressed = true
					continue
				}
			}
			kept = append(kept, e)
		}
		remaining = kept
		if !progressed {
			break
		}
		for i, e := range remaining {
			remaining[i] = applySubstitutions(ps, e).FoldConstants()
		}
	}
	return remaining
}

// asParamConst reports whether e is exactly "param - const" or
// "const - param", the shape a dimension pinned to a fixed value takes
// once FoldConstants has run.
func asParamConst(e *expr.Expr) (h hdl.Param, c float64, ok bool) {
	if e.Op != expr.OpMinus {
		return 0, 0, false
	}
	if e.A.Op == expr.OpParam && e.B.Op == expr.OpConst {
		return e.A.Param, e.B.Const, true
	}
	if e.A.Op == expr.OpConst && e.B.Op == expr.OpParam {
		return e.B.Param, e.A.Const, true
	}
	return 0, 0, false
}

// asParamParam reports whether e is exactly "param - param" for two
// distinct handles, the shape buildPointsCoincident emits componentwise.
// lo is the smaller handle, chosen as the unification's representative so
// the choice is deterministic regardless of which operand appeared first.
func asParamParam(e *expr.Expr) (lo, hi hdl.Param, ok bool) {
	if e.Op != expr.OpMinus || e.A.Op != expr.OpParam || e.B.Op != expr.OpParam {
		return 0, 0, false
	}
	a, b := e.A.Param, e.B.Param
	if a == b {
		return 0, 0, false
	}
	if a < b {
		return a, b, true
	}
	return b, a, true
}

// applySubstitutions rewrites every reference to a SubstitutedBy param in
// e with a reference to its ultimate representative, so the Jacobian
// assembly below differentiates with respect to the representative's
// column instead of silently dropping the dependency.
func applySubstitutions(ps *param.Store, e *expr.Expr) *expr.Expr {
	for _, p := range ps.Ordered() {
		if p.SubstitutedBy == 0 {
			continue
		}
		rep := p.Handle
		seen := p
		for seen.SubstitutedBy != 0 {
			seen = ps.Get(seen.SubstitutedBy)
			rep = seen.Handle
		}
		e = e.Substitute(p.Handle, expr.ParamRef(rep))
	}
	return e
}

// freeUnknowns returns, in ascending handle order, every parameter that
// is neither Known nor SubstitutedBy another parameter.
func freeUnknowns(ps *param.Store) []hdl.Param {
	var out []hdl.Param
	for _, p := range ps.Ordered() {
		if p.Known || p.SubstitutedBy != 0 {
			continue
		}
		out = append(out, p.Handle)
	}
	return out
}

func valueOf(ps *param.Store) expr.ValueOf {
	return func(h hdl.Param) float64 {
		p := ps.Get(h)
		if p.SubstitutedBy != 0 {
			p = ps.Get(p.SubstitutedBy)
		}
		return p.Value
	}
}

func maxResidual(eqs []*expr.Expr, v expr.ValueOf) float64 {
	var max float64
	for _, e := range eqs {
		r := e.Eval(v)
		if r < 0 {
			r = -r
		}
		if r > max {
			max = r
		}
	}
	return max
}
