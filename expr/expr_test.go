// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"

	"github.com/opencad/kernel/hdl"
)

func constVals(vals map[hdl.Param]float64) ValueOf {
	return func(h hdl.Param) float64 { return vals[h] }
}

func TestEvalBasicArithmetic(tst *testing.T) {

	chk.PrintTitle("Test EvalBasicArithmetic")

	px := hdl.Param(1)
	v := constVals(map[hdl.Param]float64{px: 3})

	e := Plus(Times(ParamRef(px), Const(2)), Const(1)) // 2x + 1
	io.Pforan("2x+1 @ x=3 = %v\n", e.Eval(v))
	chk.Scalar(tst, "2x+1 @ x=3", 1e-15, e.Eval(v), 7)
}

func TestPartialWrtPolynomial(tst *testing.T) {

	chk.PrintTitle("Test PartialWrtPolynomial")

	px := hdl.Param(1)
	x0 := 5.0
	v := constVals(map[hdl.Param]float64{px: x0})

	// analytical: d/dx (x^2) = 2x, evaluated at x=5.
	e := Square(ParamRef(px))
	d := e.PartialWrt(px).FoldConstants()
	ana := d.Eval(v)

	// numerical: central difference of e itself, same pattern as
	// shp's shape-function-derivative cross-check.
	num_, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return e.Eval(constVals(map[hdl.Param]float64{px: x}))
	}, x0, 1e-3)
	if err != nil {
		tst.Fatalf("DerivCentral failed: %v", err)
	}
	io.Pfgrey2("d(x^2)/dx @ x=5 = %v (num: %v)\n", ana, num_)
	chk.AnaNum(tst, "d(x^2)/dx", 1e-9, ana, num_, chk.Verbose)
}

func TestPartialWrtUnrelatedParamIsZero(tst *testing.T) {

	chk.PrintTitle("Test PartialWrtUnrelatedParamIsZero")

	px := hdl.Param(1)
	py := hdl.Param(2)
	e := Plus(ParamRef(px), Const(3))
	d := e.PartialWrt(py).FoldConstants()
	chk.Scalar(tst, "PartialWrt(unrelated)", 1e-15, d.Eval(constVals(nil)), 0)
}

func TestFoldConstantsSimplifiesPureSubtree(tst *testing.T) {

	chk.PrintTitle("Test FoldConstantsSimplifiesPureSubtree")

	e := Plus(Const(2), Const(3))
	folded := e.FoldConstants()
	if folded.Op != OpConst || folded.Const != 5 {
		tst.Fatalf("FoldConstants() = %+v, want Const(5)", folded)
	}
}

func TestFoldConstantsIdentityCollapse(tst *testing.T) {

	chk.PrintTitle("Test FoldConstantsIdentityCollapse")

	px := hdl.Param(1)
	e := Times(ParamRef(px), Const(1))
	folded := e.FoldConstants()
	if folded.Op != OpParam || folded.Param != px {
		tst.Fatalf("FoldConstants(x*1) = %+v, want bare ParamRef(x)", folded)
	}
}

func TestSubstitute(tst *testing.T) {

	chk.PrintTitle("Test Substitute")

	px := hdl.Param(1)
	py := hdl.Param(2)
	e := Plus(ParamRef(px), Const(1))
	out := e.Substitute(px, ParamRef(py))
	chk.Scalar(tst, "Substitute result", 1e-15, out.Eval(constVals(map[hdl.Param]float64{py: 9})), 10)
}

func TestParamsCollectsDistinctHandlesInOrder(tst *testing.T) {

	chk.PrintTitle("Test ParamsCollectsDistinctHandlesInOrder")

	px := hdl.Param(1)
	py := hdl.Param(2)
	e := Plus(Times(ParamRef(px), ParamRef(py)), ParamRef(px))
	got := e.Params()
	if len(got) != 2 || got[0] != px || got[1] != py {
		tst.Fatalf("Params() = %v, want [%v %v]", got, px, py)
	}
}

func TestAsinOutOfDomainPropagatesNaN(tst *testing.T) {

	chk.PrintTitle("Test AsinOutOfDomainPropagatesNaN")

	e := Asin(Const(2))
	if got := e.Eval(constVals(nil)); !math.IsNaN(got) {
		tst.Fatalf("Asin(2) = %v, want NaN", got)
	}
}

func TestParseInfixExpression(tst *testing.T) {

	chk.PrintTitle("Test ParseInfixExpression")

	resolve := func(name string) (hdl.Param, bool) {
		if name == "x" {
			return hdl.Param(1), true
		}
		return 0, false
	}
	e, res := Parse("2*x + 1", resolve)
	if !res.Ok() {
		tst.Fatalf("Parse() failed: %s", res.Message)
	}
	v := constVals(map[hdl.Param]float64{hdl.Param(1): 4})
	chk.Scalar(tst, "Eval(parsed)", 1e-15, e.Eval(v), 9)
}

func TestParseUnknownIdentifierFails(tst *testing.T) {

	chk.PrintTitle("Test ParseUnknownIdentifierFails")

	resolve := func(name string) (hdl.Param, bool) { return 0, false }
	_, res := Parse("y + 1", resolve)
	if res.Ok() {
		tst.Fatal("Parse() with unresolved identifier should fail")
	}
}
