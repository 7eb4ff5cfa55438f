// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
)

// pointIn3D registers a free 3-D point entity (and its backing params) at
// the given coordinates into es/ps, returning its handle.
func pointIn3D(es *entity.Store, ps *param.Store, eh hdl.Entity, x, y, z float64) hdl.Entity {
	var params [3]hdl.Param
	vals := [3]float64{x, y, z}
	for i := 0; i < 3; i++ {
		ph := hdl.NewParam(hdl.Request(eh.Owner()), i)
		ps.Add(&param.Param{Handle: ph, Value: vals[i]})
		params[i] = ph
	}
	es.Add(&entity.Entity{Handle: eh, Kind: entity.PointIn3D, Params: [4]hdl.Param{params[0], params[1], params[2]}})
	return eh
}

func valueOf(ps *param.Store) expr.ValueOf {
	return func(h hdl.Param) float64 { return ps.Get(h).Value }
}

func TestBuildPointsCoincidentIn3D(tst *testing.T) {

	chk.PrintTitle("Test BuildPointsCoincidentIn3D")

	es := entity.NewStore()
	ps := param.NewStore()
	a := pointIn3D(es, ps, hdl.NewEntity(1, 0), 1, 2, 3)
	b := pointIn3D(es, ps, hdl.NewEntity(2, 0), 1, 2, 3)

	c := &Constraint{Kind: PointsCoincident, Points: [3]hdl.Entity{a, b}}
	eqs := Build(es, c)
	chk.IntAssert(len(eqs), 3)
	for i, e := range eqs {
		got := e.Eval(valueOf(ps))
		io.Pforan("residual %d = %v\n", i, got)
		chk.Scalar(tst, io.Sf("residual %d", i), 1e-12, got, 0)
	}
}

func TestBuildPtPtDistance(tst *testing.T) {

	chk.PrintTitle("Test BuildPtPtDistance")

	es := entity.NewStore()
	ps := param.NewStore()
	a := pointIn3D(es, ps, hdl.NewEntity(1, 0), 0, 0, 0)
	b := pointIn3D(es, ps, hdl.NewEntity(2, 0), 3, 4, 0)

	c := &Constraint{Kind: PtPtDistance, Points: [3]hdl.Entity{a, b}, ValA: 5}
	eqs := Build(es, c)
	chk.IntAssert(len(eqs), 1)
	got := eqs[0].Eval(valueOf(ps))
	io.Pfyel("residual = %v\n", got)
	chk.Scalar(tst, "PtPtDistance(3-4-5, valA=5)", 1e-9, got, 0)
}

func TestBuildDiameterAndRadiusAgree(tst *testing.T) {

	chk.PrintTitle("Test BuildDiameterAndRadiusAgree")

	es := entity.NewStore()
	ps := param.NewStore()
	center := pointIn3D(es, ps, hdl.NewEntity(1, 0), 0, 0, 0)
	rh := hdl.NewParam(9, 0)
	ps.Add(&param.Param{Handle: rh, Value: 5})
	circ := hdl.NewEntity(3, 0)
	es.Add(&entity.Entity{Handle: circ, Kind: entity.Circle, Points: [4]hdl.Entity{center}, Params: [4]hdl.Param{rh}})

	diam := &Constraint{Kind: Diameter, Entities: [4]hdl.Entity{circ}, ValA: 10}
	eqs := Build(es, diam)
	chk.Scalar(tst, "Diameter(valA=10, r=5)", 1e-12, eqs[0].Eval(valueOf(ps)), 0)

	rad := &Constraint{Kind: Radius, Entities: [4]hdl.Entity{circ}, ValA: 5}
	eqs = Build(es, rad)
	chk.Scalar(tst, "Radius(valA=5, r=5)", 1e-12, eqs[0].Eval(valueOf(ps)), 0)
}

func TestWhereDraggedProducesNoEquations(tst *testing.T) {

	chk.PrintTitle("Test WhereDraggedProducesNoEquations")

	es := entity.NewStore()
	c := &Constraint{Kind: WhereDragged}
	eqs := Build(es, c)
	if eqs != nil {
		tst.Fatalf("WhereDragged produced equations %v, want none", eqs)
	}
}

func TestBuildPanicsOnUnregisteredKind(tst *testing.T) {

	chk.PrintTitle("Test BuildPanicsOnUnregisteredKind")

	defer func() {
		if recover() == nil {
			tst.Fatal("Build() with an unregistered Kind should panic")
		}
	}()
	Build(entity.NewStore(), &Constraint{Kind: Kind(999)})
}
