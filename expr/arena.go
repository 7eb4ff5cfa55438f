// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "github.com/opencad/kernel/hdl"

// Arena tracks the Expr nodes built through it. Nothing in Arena needs
// explicit freeing. The regenerator does not use an Arena: it builds its
// equations with the package-level constructors and leaves them to the
// garbage collector.
type Arena struct {
	nodes []*Expr
}

// NewArena allocates a fresh, empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// track registers an already-built node with the arena so Len can report
// how many nodes were built through it; construction itself doesn't go through the
// arena (Go's garbage collector owns the memory either way), but every
// helper below is the arena-scoped entry point callers should use while
// building per-pass equations.
func (a *Arena) track(e *Expr) *Expr {
	a.nodes = append(a.nodes, e)
	return e
}

// Const builds a constant leaf tracked by this arena.
func (a *Arena) Const(v float64) *Expr { return a.track(Const(v)) }

// ParamRef builds a parameter-reference leaf tracked by this arena.
func (a *Arena) ParamRef(h hdl.Param) *Expr { return a.track(ParamRef(h)) }

// Reset drops every tracked node reference, freeing the arena for reuse
// (or simply letting it be garbage collected if discarded).
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
}

// Len reports how many nodes have been tracked since the last Reset.
func (a *Arena) Len() int { return len(a.nodes) }
