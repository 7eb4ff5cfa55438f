// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel wires the four stores and the tolerances that the rest
// of the repository operates on into a single Context value, instead of
// the package-level `global` struct fem/solver.go uses: spec.md's design
// notes call for no package-level mutable state so that more than one
// sketch can be held in memory (e.g. by a future multi-document host)
// without them fighting over the same globals.
package kernel

import (
	"github.com/opencad/kernel/constraint"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/group"
	"github.com/opencad/kernel/param"
	"github.com/opencad/kernel/regen"
	"github.com/opencad/kernel/request"
	"github.com/opencad/kernel/units"
)

// Tolerances bundles the numeric tolerances spec.md §3 names: the chord
// tolerance piecewise-linearization is held to, the snap tolerance polygon
// assembly uses, and the segment budget lathe and boolean use.
type Tolerances struct {
	ChordTol    float64
	SnapTol     float64
	MaxSegments int
}

// DefaultTolerances are the values spec.md §3 names as the working
// defaults.
func DefaultTolerances() Tolerances {
	return Tolerances{ChordTol: 2.0, SnapTol: 1e-4, MaxSegments: 10}
}

// Context is the top-level handle to one sketch's worth of mutable state:
// every store the regenerator and solver touch, plus the tolerances and
// the cooperative-cancellation hook of spec.md §5.
type Context struct {
	Groups      *group.Store
	Requests    *request.Store
	Entities    *entity.Store
	Params      *param.Store
	Constraints []*constraint.Constraint

	Tol   Tolerances
	Units units.System

	// CanCancel, if non-nil, is polled by Regenerate between groups;
	// returning true aborts cooperatively
	// rather than the core spawning or killing a goroutine itself.
	CanCancel func() bool
}

// NewContext allocates an empty Context with default tolerances.
func NewContext() *Context {
	return &Context{
		Groups:   group.NewStore(),
		Requests: request.NewStore(),
		Entities: entity.NewStore(),
		Params:   param.NewStore(),
		Tol:      DefaultTolerances(),
		Units:    units.MM,
	}
}

// Regenerate runs the full regeneration pipeline over this Context's
// stores, per spec.md §4.5, polling CanCancel between groups via
// cancelled so a long regeneration can be aborted cooperatively.
func (c *Context) Regenerate() regen.Result {
	return regen.RegenerateWithOptions(c.Groups, c.Requests, c.Entities, c.Params, c.Constraints, regen.Options{
		Cancel:      c.cancelled,
		ChordTol:    c.Tol.ChordTol,
		SnapTol:     c.Tol.SnapTol,
		MaxSegments: c.Tol.MaxSegments,
	})
}

// cancelled reports whether the caller asked to abort, consulting
// CanCancel if one was installed.
func (c *Context) cancelled() bool {
	return c.CanCancel != nil && c.CanCancel()
}
