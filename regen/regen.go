// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regen implements the regenerator: the six-step pipeline of
// spec.md §4.5 that turns the current set of groups/requests/constraints
// into a consistent set of solved parameter values. Group ordering and
// cycle detection are delegated to katalvlaran/lvlath's graph algorithms
// rather than a hand-rolled topological sort, exactly as SPEC_FULL.md §4.5
// directs.
package regen

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/opencad/kernel/constraint"
	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
	"github.com/opencad/kernel/group"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/param"
	"github.com/opencad/kernel/request"
	"github.com/opencad/kernel/solve"
)

// Result is the aggregate diagnostic outcome of one Regenerate pass: one
// Result per group plus the overall outcome.
type Result struct {
	Diag     diag.Result
	PerGroup map[hdl.Group]diag.Result
}

// orphanTag marks params not reached by this pass's generation step, so a
// single RemoveTagged sweep at the end prunes everything that belonged to
// a group or request no longer present -- the tag-and-sweep idiom
// fem/domain.go uses for Cid2active, generalized to params.
const orphanTag = -1

// Options tunes a Regenerate pass: the tolerances the §4.5 step-3
// geometry build (polygon assembly, PWL chording, surface marching) runs
// under, and the cooperative-cancellation hook of spec.md §5.
type Options struct {
	Cancel      func() bool
	ChordTol    float64
	SnapTol     float64
	MaxSegments int
}

func (o Options) withDefaults() Options {
	if o.ChordTol == 0 {
		o.ChordTol = 0.1
	}
	if o.SnapTol == 0 {
		o.SnapTol = 1e-4
	}
	if o.MaxSegments == 0 {
		o.MaxSegments = 50
	}
	return o
}

// Regenerate drives the full pipeline with default options -- the shape
// every existing caller and test uses when cancellation and non-default
// tolerances are not in play.
func Regenerate(gs *group.Store, rs *request.Store, es *entity.Store, ps *param.Store, cs []*constraint.Constraint) Result {
	return RegenerateWithOptions(gs, rs, es, ps, cs, Options{})
}

// RegenerateWithOptions drives the full pipeline: order groups via the
// predecessor DAG, then for each group in order seed+generate its
// entities, build and solve its non-reference constraint equations plus
// the implicit quaternion-unit equations every normal entity carries,
// build that group's 2-D polygon or 3-D mesh/shell contribution per its
// Kind, update reference-constraint valA from the solved geometry, and
// finally prune orphaned parameters left over from deleted groups/
// requests. Between groups it polls opts.Cancel, aborting cooperatively
// with diag.Cancelled rather than running the remaining groups.
func RegenerateWithOptions(gs *group.Store, rs *request.Store, es *entity.Store, ps *param.Store, cs []*constraint.Constraint, opts Options) Result {
	opts = opts.withDefaults()
	res := Result{Diag: diag.OK, PerGroup: make(map[hdl.Group]diag.Result)}

	order, dres := groupOrder(gs)
	if !dres.Ok() {
		res.Diag = dres
		return res
	}

	ps.TagAll(orphanTag)
	ps.ResetScratch()

	for _, g := range order {
		if opts.Cancel != nil && opts.Cancel() {
			res.Diag = diag.Errorf(diag.Cancelled, "regeneration cancelled before group %08x", uint32(g.Handle))
			return res
		}

		prevValues := snapshotValues(ps)

		owned := make(map[hdl.Request]bool, len(g.Requests))
		for _, rh := range g.Requests {
			r := rs.Get(rh)
			request.Generate(r, es, ps)
			owned[rh] = true
		}
		restoreValues(ps, prevValues)
		for _, p := range ps.Ordered() {
			if p.Tag == orphanTag && owned[p.Handle.Owner()] {
				p.Tag = 0
			}
		}

		groupCons := consForGroup(cs, g.Handle)
		var eqs []*expr.Expr
		for _, c := range groupCons {
			if c.Reference {
				continue // measures, does not enforce; updated after solving below
			}
			eqs = append(eqs, constraint.Build(es, c)...)
		}
		for _, e := range es.ByGroup(g.Handle) {
			if e.IsNormal() {
				eqs = append(eqs, constraint.NormalUnitResidual(es, e.Handle))
			}
		}

		sr := solve.Solve(ps, eqs, solve.Options{})
		res.PerGroup[g.Handle] = sr.Diag
		if !sr.Diag.Ok() {
			restoreValues(ps, prevValues)
			g.Dirty = true
			if res.Diag.Ok() {
				res.Diag = sr.Diag
			}
			continue
		}

		for _, c := range groupCons {
			if c.Reference {
				updateReferenceValue(es, ps, c)
			}
		}

		markGroupParamsKnown(ps, g)

		pred := gs.Get(g.Predecessor)
		br := buildGroupGeometry(gs, es, ps, g, pred, opts)
		if !br.Ok() {
			res.PerGroup[g.Handle] = br
			g.Dirty = true
			if res.Diag.Ok() {
				res.Diag = br
			}
			continue
		}
		g.Dirty = false
	}

	removed := ps.RemoveTagged(orphanTag)
	if removed > 0 && res.Diag.Ok() {
		r := diag.Errorf(diag.OrphansRemoved, "removed %d orphaned parameters", removed)
		r.Removed = removed
		res.Diag = r
	}

	return res
}

func snapshotValues(ps *param.Store) map[hdl.Param]float64 {
	m := make(map[hdl.Param]float64, ps.Len())
	for _, p := range ps.Ordered() {
		m[p.Handle] = p.Value
	}
	return m
}

func restoreValues(ps *param.Store, prev map[hdl.Param]float64) {
	for _, p := range ps.Ordered() {
		if v, ok := prev[p.Handle]; ok {
			p.Value = v
		}
	}
}

// markGroupParamsKnown fixes every parameter this group just generated and
// solved, so later groups' Solve calls treat them as constants instead of
// extra unknowns with no equation of their own: spec.md §4.4's
// known-propagation applies across groups, not only within one group's own
// equation set, since an earlier group is never re-solved once the active
// group moves past it.
func markGroupParamsKnown(ps *param.Store, g *group.Group) {
	owned := make(map[hdl.Request]bool, len(g.Requests))
	for _, rh := range g.Requests {
		owned[rh] = true
	}
	for _, p := range ps.Ordered() {
		if owned[p.Handle.Owner()] {
			p.Known = true
		}
	}
}

func consForGroup(cs []*constraint.Constraint, g hdl.Group) []*constraint.Constraint {
	var out []*constraint.Constraint
	for _, c := range cs {
		if c.Group == g {
			out = append(out, c)
		}
	}
	return out
}

// updateReferenceValue rewrites a point-to-point reference constraint's
// ValA to the measured distance after solving, per spec.md's "reference
// constraints measure, they do not enforce" invariant. Only PtPtDistance
// is handled: it's the only reference-dimension kind the catalog
// currently exposes as a measurement rather than an enforcement.
func updateReferenceValue(es *entity.Store, ps *param.Store, c *constraint.Constraint) {
	if c.Kind != constraint.PtPtDistance {
		return
	}
	v := valueOf(ps)
	a := constraint.PointCoords(es, c.Points[0])
	b := constraint.PointCoords(es, c.Points[1])
	var sum float64
	for i := 0; i < 3; i++ {
		d := a[i].Eval(v) - b[i].Eval(v)
		sum += d * d
	}
	c.ValA = math.Sqrt(sum)
}

func valueOf(ps *param.Store) expr.ValueOf {
	return func(h hdl.Param) float64 {
		p := ps.Get(h)
		if p == nil {
			return 0
		}
		if p.SubstitutedBy != 0 {
			p = ps.Get(p.SubstitutedBy)
		}
		return p.Value
	}
}

// groupOrder builds a core.Graph from gs's predecessor edges and runs a
// DFS from a synthetic root to both order the groups and detect cycles:
// any group not reached from root (because it sits on a cycle, or its
// claimed predecessor doesn't exist) is reported as diag.ErrCyclicGroups.
func groupOrder(gs *group.Store) ([]*group.Group, diag.Result) {
	g := core.NewGraph(true, false)
	const root = "__root__"
	g.AddVertex(&core.Vertex{ID: root})

	for _, gr := range gs.Ordered() {
		g.AddVertex(&core.Vertex{ID: vid(gr.Handle)})
	}
	for _, gr := range gs.Ordered() {
		if gr.Predecessor.IsNone() {
			g.AddEdge(root, vid(gr.Handle), 1)
		} else {
			g.AddEdge(vid(gr.Predecessor), vid(gr.Handle), 1)
		}
	}

	dres, err := algorithms.DFS(g, root, nil)
	if err != nil {
		return nil, diag.Errorf(diag.ErrCyclicGroups, "group DAG traversal failed: %v", err)
	}

	byID := make(map[string]*group.Group, gs.Len())
	for _, gr := range gs.Ordered() {
		byID[vid(gr.Handle)] = gr
	}

	var out []*group.Group
	for _, v := range dres.Order {
		if v.ID == root {
			continue
		}
		out = append(out, byID[v.ID])
	}
	if len(out) != gs.Len() {
		return nil, diag.Errorf(diag.ErrCyclicGroups,
			"group DAG has a cycle: only %d of %d groups reachable from root", len(out), gs.Len())
	}
	return out, diag.OK
}

func vid(h hdl.Group) string { return fmt.Sprintf("g%08x", uint32(h)) }
