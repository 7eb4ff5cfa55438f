// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regen

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/constraint"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/group"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
	"github.com/opencad/kernel/request"
)

// twoFreePointsCoincident builds one group owning two free 3-D points at
// different initial positions, plus a PointsCoincident constraint between
// them -- the smallest scenario that exercises request generation, the
// constraint catalog, and the solver together.
func twoFreePointsCoincident() (*group.Store, *request.Store, *entity.Store, *param.Store, []*constraint.Constraint) {
	gs := group.NewStore()
	rs := request.NewStore()
	es := entity.NewStore()
	ps := param.NewStore()

	g := &group.Group{Handle: hdl.Group(1), Kind: group.Sketch}
	r0 := &request.Request{Handle: hdl.Request(1), Kind: request.RequestPointIn3D, Group: g.Handle,
		InitialValues: []float64{0, 0, 0}}
	r1 := &request.Request{Handle: hdl.Request(2), Kind: request.RequestPointIn3D, Group: g.Handle,
		InitialValues: []float64{5, 5, 5}}
	g.Requests = []hdl.Request{r0.Handle, r1.Handle}

	gs.Add(g)
	rs.Add(r0)
	rs.Add(r1)

	p0 := hdl.NewEntity(r0.Handle, 0)
	p1 := hdl.NewEntity(r1.Handle, 0)
	c := &constraint.Constraint{
		Handle: hdl.Cons(1),
		Kind:   constraint.PointsCoincident,
		Group:  g.Handle,
		Points: [3]hdl.Entity{p0, p1},
	}
	return gs, rs, es, ps, []*constraint.Constraint{c}
}

func TestRegenerateSolvesPointsCoincident(tst *testing.T) {

	chk.PrintTitle("Test RegenerateSolvesPointsCoincident")

	gs, rs, es, ps, cs := twoFreePointsCoincident()

	res := Regenerate(gs, rs, es, ps, cs)
	if !res.Diag.Ok() {
		tst.Fatalf("Regenerate() failed: %s", res.Diag.Message)
	}

	r0 := rs.Get(hdl.Request(1))
	r1 := rs.Get(hdl.Request(2))
	e0 := es.Get(hdl.NewEntity(r0.Handle, 0))
	e1 := es.Get(hdl.NewEntity(r1.Handle, 0))

	for i := 0; i < 3; i++ {
		v0 := ps.Get(e0.Params[i]).Value
		v1 := ps.Get(e1.Params[i]).Value
		io.Pforan("component %d: v0=%v v1=%v\n", i, v0, v1)
		chk.Scalar(tst, io.Sf("coincident component %d", i), 1e-6, v0, v1)
	}
}

func TestRegenerateDetectsCyclicGroups(tst *testing.T) {

	chk.PrintTitle("Test RegenerateDetectsCyclicGroups")

	gs := group.NewStore()
	rs := request.NewStore()
	es := entity.NewStore()
	ps := param.NewStore()

	g1 := &group.Group{Handle: hdl.Group(1), Kind: group.Sketch, Predecessor: hdl.Group(2)}
	g2 := &group.Group{Handle: hdl.Group(2), Kind: group.Sketch, Predecessor: hdl.Group(1)}
	gs.Add(g1)
	gs.Add(g2)

	res := Regenerate(gs, rs, es, ps, nil)
	if res.Diag.Ok() {
		tst.Fatal("Regenerate() with a cyclic group predecessor chain should fail")
	}
}

func TestRegeneratePrunesOrphanedParams(tst *testing.T) {

	chk.PrintTitle("Test RegeneratePrunesOrphanedParams")

	gs, rs, es, ps, cs := twoFreePointsCoincident()
	Regenerate(gs, rs, es, ps, cs)
	before := ps.Len()
	if before == 0 {
		tst.Fatal("first Regenerate() should have created parameters")
	}

	// remove the second request entirely: its backing params should be
	// pruned as orphans on the next pass.
	g := gs.Get(hdl.Group(1))
	g.Requests = g.Requests[:1]

	res := Regenerate(gs, rs, es, ps, nil)
	io.Pfyel("after pruning: outcome=%v params=%d (was %d)\n", res.Diag.Outcome, ps.Len(), before)
	if res.Diag.Outcome.String() != "OrphansRemoved" {
		tst.Fatalf("Regenerate() after dropping a request = %v, want OrphansRemoved", res.Diag.Outcome)
	}
	if ps.Len() >= before {
		tst.Fatalf("Regenerate() left %d params, want fewer than %d after pruning", ps.Len(), before)
	}
}
