// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/expr"
)

// Equations is what a builder produces: zero or more scalar residual
// equations that must all evaluate to zero at a solution, exactly as
// spec.md §4.3 states each constraint's contribution to the system.
type Equations []*expr.Expr

// BuilderFunc lowers one Constraint to its residual equations, given the
// entity store it may need to dereference Points/Entities/Workplane
// through. This mirrors msolid.allocators' map[string]AllocatorFunc shape,
// keyed by Kind instead of by model name.
type BuilderFunc func(es *entity.Store, c *Constraint) Equations

var builders = map[Kind]BuilderFunc{}

// Register adds (or replaces) the builder for a Kind. Called from each
// family file's init, so the catalog is fully populated before Build is
// ever invoked.
func Register(k Kind, fn BuilderFunc) {
	builders[k] = fn
}

// Build lowers c to its residual equations using the registered builder
// for c.Kind. A Kind with no builder is a programming error -- every
// member of the Kind enum must be registered by some family file -- so
// this panics rather than returning a diag.Result.
func Build(es *entity.Store, c *Constraint) Equations {
	fn, ok := builders[c.Kind]
	diag.Invariant(ok, "constraint: no builder registered for %s", c.Kind.String())
	return fn(es, c)
}
