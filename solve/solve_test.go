// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
)

func TestSolveFullyDeterminedLinearSystem(tst *testing.T) {

	chk.PrintTitle("Test SolveFullyDeterminedLinearSystem")

	ps := param.NewStore()
	px, py := hdl.Param(1), hdl.Param(2)
	ps.Add(&param.Param{Handle: px, Value: 0})
	ps.Add(&param.Param{Handle: py, Value: 0})

	// x - 3 = 0, y - 4 = 0: independent, fully determined.
	eqs := []*expr.Expr{
		expr.Minus(expr.ParamRef(px), expr.Const(3)),
		expr.Minus(expr.ParamRef(py), expr.Const(4)),
	}

	res := Solve(ps, eqs, Options{})
	if !res.Diag.Ok() {
		tst.Fatalf("Solve() failed: %s", res.Diag.Message)
	}
	io.Pforan("x=%v y=%v\n", ps.Get(px).Value, ps.Get(py).Value)
	chk.Scalar(tst, "x", 1e-9, ps.Get(px).Value, 3)
	chk.Scalar(tst, "y", 1e-9, ps.Get(py).Value, 4)
}

func TestSolveKnownParamIsExcludedFromUnknowns(tst *testing.T) {

	chk.PrintTitle("Test SolveKnownParamIsExcludedFromUnknowns")

	ps := param.NewStore()
	px, py := hdl.Param(1), hdl.Param(2)
	ps.Add(&param.Param{Handle: px, Value: 3, Known: true})
	ps.Add(&param.Param{Handle: py, Value: 0})

	// x + y - 7 = 0, with x held known at 3: only y is free, should land on 4.
	eqs := []*expr.Expr{
		expr.Minus(expr.Plus(expr.ParamRef(px), expr.ParamRef(py)), expr.Const(7)),
	}

	res := Solve(ps, eqs, Options{})
	if !res.Diag.Ok() {
		tst.Fatalf("Solve() failed: %s", res.Diag.Message)
	}
	chk.IntAssert(res.DOF, 1)
	io.Pfyel("y=%v\n", ps.Get(py).Value)
	chk.Scalar(tst, "y", 1e-9, ps.Get(py).Value, 4)
	if ps.Get(px).Value != 3 {
		tst.Fatal("Solve() must not move a Known parameter")
	}
}

func TestSolveRedundantEquationsReportsRedundant(tst *testing.T) {

	chk.PrintTitle("Test SolveRedundantEquationsReportsRedundant")

	ps := param.NewStore()
	px := hdl.Param(1)
	ps.Add(&param.Param{Handle: px, Value: 0})

	// two identical equations pinning the same single unknown: consistent
	// but redundant. Known-propagation consumes one and pins x, leaving the
	// other with no free parameter, which the solver reports as redundant.
	eqs := []*expr.Expr{
		expr.Minus(expr.ParamRef(px), expr.Const(3)),
		expr.Minus(expr.ParamRef(px), expr.Const(3)),
	}

	res := Solve(ps, eqs, Options{})
	if res.Diag.Ok() {
		tst.Fatal("Solve() with a duplicated equation should not report Ok for a rank-deficient Jacobian")
	}
}

func TestSolveReportDOFSkipsIteration(tst *testing.T) {

	chk.PrintTitle("Test SolveReportDOFSkipsIteration")

	ps := param.NewStore()
	px := hdl.Param(1)
	ps.Add(&param.Param{Handle: px, Value: 42})

	res := Solve(ps, nil, Options{ReportDOF: true})
	if !res.Diag.Ok() {
		tst.Fatalf("Solve(ReportDOF) failed: %s", res.Diag.Message)
	}
	chk.IntAssert(res.DOF, 1)
	if ps.Get(px).Value != 42 {
		tst.Fatal("Solve(ReportDOF) must not mutate parameter values")
	}
}

func TestSolveNoFreeUnknownsWithUnsatisfiedEquationFails(tst *testing.T) {

	chk.PrintTitle("Test SolveNoFreeUnknownsWithUnsatisfiedEquationFails")

	ps := param.NewStore()
	px := hdl.Param(1)
	ps.Add(&param.Param{Handle: px, Value: 0, Known: true})

	eqs := []*expr.Expr{expr.Minus(expr.ParamRef(px), expr.Const(3))}
	res := Solve(ps, eqs, Options{})
	if res.Diag.Ok() {
		tst.Fatal("Solve() with only Known parameters but an unsatisfied equation should fail")
	}
	if res.Diag.Outcome != diag.TooManyUnknowns {
		tst.Fatalf("Solve() outcome = %v, want TooManyUnknowns", res.Diag.Outcome)
	}
}
