// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements the symbolic arithmetic tree over parameter
// handles used to lower constraints into residual equations: evaluation,
// partial differentiation, constant folding and substitution. Trees are
// small immutable values that can be deep-copied with Clone.
package expr

import (
	"math"

	"github.com/opencad/kernel/hdl"
)

// Op names a node operator.
type Op int

const (
	OpConst Op = iota
	OpParam
	OpPlus
	OpMinus
	OpTimes
	OpDiv
	OpNegate
	OpSqrt
	OpSquare
	OpSin
	OpCos
	OpAsin
	OpAcos
	OpPi
)

// Expr is an immutable node in the expression tree. Binary nodes use A, B;
// unary nodes use A only.
type Expr struct {
	Op    Op
	Const float64
	Param hdl.Param
	A, B  *Expr
}

// ValueOf holds the function used to resolve a parameter handle to its
// current value; evaluation is otherwise pure.
type ValueOf func(hdl.Param) float64

// Const builds a constant leaf.
func Const(v float64) *Expr { return &Expr{Op: OpConst, Const: v} }

// ParamRef builds a parameter-reference leaf.
func ParamRef(h hdl.Param) *Expr { return &Expr{Op: OpParam, Param: h} }

// PiConst is the builtin π leaf, produced by Parse for the identifier pi.
var PiConst = &Expr{Op: OpPi}

func bin(op Op, a, b *Expr) *Expr { return &Expr{Op: op, A: a, B: b} }
func un(op Op, a *Expr) *Expr     { return &Expr{Op: op, A: a} }

func Plus(a, b *Expr) *Expr  { return bin(OpPlus, a, b) }
func Minus(a, b *Expr) *Expr { return bin(OpMinus, a, b) }
func Times(a, b *Expr) *Expr { return bin(OpTimes, a, b) }
func Div(a, b *Expr) *Expr   { return bin(OpDiv, a, b) }
func Negate(a *Expr) *Expr   { return un(OpNegate, a) }
func Sqrt(a *Expr) *Expr     { return un(OpSqrt, a) }
func Square(a *Expr) *Expr   { return un(OpSquare, a) }
func Sin(a *Expr) *Expr      { return un(OpSin, a) }
func Cos(a *Expr) *Expr      { return un(OpCos, a) }
func Asin(a *Expr) *Expr     { return un(OpAsin, a) }
func Acos(a *Expr) *Expr     { return un(OpAcos, a) }

// Sum builds a left-folded sum of one or more terms.
func Sum(terms ...*Expr) *Expr {
	if len(terms) == 0 {
		return Const(0)
	}
	out := terms[0]
	for _, t := range terms[1:] {
		out = Plus(out, t)
	}
	return out
}

// Eval evaluates the tree given a parameter value lookup. Out-of-domain
// inverse trig (|x|>1 for Asin/Acos) propagates NaN, per spec.md §4.1.
func (e *Expr) Eval(v ValueOf) float64 {
	switch e.Op {
	case OpConst:
		return e.Const
	case OpParam:
		return v(e.Param)
	case OpPi:
		return math.Pi
	case OpPlus:
		return e.A.Eval(v) + e.B.Eval(v)
	case OpMinus:
		return e.A.Eval(v) - e.B.Eval(v)
	case OpTimes:
		return e.A.Eval(v) * e.B.Eval(v)
	case OpDiv:
		return e.A.Eval(v) / e.B.Eval(v)
	case OpNegate:
		return -e.A.Eval(v)
	case OpSqrt:
		return math.Sqrt(e.A.Eval(v))
	case OpSquare:
		x := e.A.Eval(v)
		return x * x
	case OpSin:
		return math.Sin(e.A.Eval(v))
	case OpCos:
		return math.Cos(e.A.Eval(v))
	case OpAsin:
		return math.Asin(e.A.Eval(v))
	case OpAcos:
		return math.Acos(e.A.Eval(v))
	}
	return math.NaN()
}

// PartialWrt returns the symbolic derivative of e with respect to h.
func (e *Expr) PartialWrt(h hdl.Param) *Expr {
	switch e.Op {
	case OpConst, OpPi:
		return Const(0)
	case OpParam:
		if e.Param == h {
			return Const(1)
		}
		return Const(0)
	case OpPlus:
		return Plus(e.A.PartialWrt(h), e.B.PartialWrt(h))
	case OpMinus:
		return Minus(e.A.PartialWrt(h), e.B.PartialWrt(h))
	case OpTimes:
		// d(ab) = a'b + ab'
		return Plus(Times(e.A.PartialWrt(h), e.B), Times(e.A, e.B.PartialWrt(h)))
	case OpDiv:
		// d(a/b) = (a'b - ab') / b^2
		num := Minus(Times(e.A.PartialWrt(h), e.B), Times(e.A, e.B.PartialWrt(h)))
		return Div(num, Square(e.B))
	case OpNegate:
		return Negate(e.A.PartialWrt(h))
	case OpSqrt:
		// d(sqrt(a)) = a' / (2 sqrt(a))
		return Div(e.A.PartialWrt(h), Times(Const(2), Sqrt(e.A)))
	case OpSquare:
		// d(a^2) = 2 a a'
		return Times(Const(2), Times(e.A, e.A.PartialWrt(h)))
	case OpSin:
		return Times(Cos(e.A), e.A.PartialWrt(h))
	case OpCos:
		return Negate(Times(Sin(e.A), e.A.PartialWrt(h)))
	case OpAsin:
		// d(asin(a)) = a' / sqrt(1-a^2)
		return Div(e.A.PartialWrt(h), Sqrt(Minus(Const(1), Square(e.A))))
	case OpAcos:
		return Negate(Div(e.A.PartialWrt(h), Sqrt(Minus(Const(1), Square(e.A)))))
	}
	return Const(0)
}

// FoldConstants returns a semantically identical, simplified tree: pure
// constant subtrees are evaluated away, and the algebraic identities
// x+0, x*1, x*0, x-0 are collapsed.
func (e *Expr) FoldConstants() *Expr {
	if e.Op == OpConst || e.Op == OpParam || e.Op == OpPi {
		return e
	}
	if e.A != nil {
		e = e.withA(e.A.FoldConstants())
	}
	if e.B != nil {
		e = e.withB(e.B.FoldConstants())
	}
	isConst := func(x *Expr) (float64, bool) {
		if x.Op == OpConst {
			return x.Const, true
		}
		return 0, false
	}
	switch e.Op {
	case OpPlus:
		if a, ok := isConst(e.A); ok && a == 0 {
			return e.B
		}
		if b, ok := isConst(e.B); ok && b == 0 {
			return e.A
		}
	case OpMinus:
		if b, ok := isConst(e.B); ok && b == 0 {
			return e.A
		}
	case OpTimes:
		if a, ok := isConst(e.A); ok {
			if a == 0 {
				return Const(0)
			}
			if a == 1 {
				return e.B
			}
		}
		if b, ok := isConst(e.B); ok {
			if b == 0 {
				return Const(0)
			}
			if b == 1 {
				return e.A
			}
		}
	case OpDiv:
		if b, ok := isConst(e.B); ok && b == 1 {
			return e.A
		}
	}
	if e.A != nil && (e.B == nil || e.B.Op == OpConst) {
		a, aok := isConst(e.A)
		b, bok := float64(0), e.B == nil
		if e.B != nil {
			b, bok = isConst(e.B)
		}
		if aok && bok {
			return Const(e.evalConst(a, b))
		}
	}
	return e
}

func (e *Expr) evalConst(a, b float64) float64 {
	switch e.Op {
	case OpPlus:
		return a + b
	case OpMinus:
		return a - b
	case OpTimes:
		return a * b
	case OpDiv:
		return a / b
	case OpNegate:
		return -a
	case OpSqrt:
		return math.Sqrt(a)
	case OpSquare:
		return a * a
	case OpSin:
		return math.Sin(a)
	case OpCos:
		return math.Cos(a)
	case OpAsin:
		return math.Asin(a)
	case OpAcos:
		return math.Acos(a)
	}
	return math.NaN()
}

func (e *Expr) withA(a *Expr) *Expr {
	c := *e
	c.A = a
	return &c
}

func (e *Expr) withB(b *Expr) *Expr {
	c := *e
	c.B = b
	return &c
}

// Substitute replaces every reference to handle `from` with replacement,
// used when the solver proves two parameters equal.
func (e *Expr) Substitute(from hdl.Param, replacement *Expr) *Expr {
	switch e.Op {
	case OpConst, OpPi:
		return e
	case OpParam:
		if e.Param == from {
			return replacement
		}
		return e
	}
	out := &Expr{Op: e.Op, Const: e.Const, Param: e.Param}
	if e.A != nil {
		out.A = e.A.Substitute(from, replacement)
	}
	if e.B != nil {
		out.B = e.B.Substitute(from, replacement)
	}
	return out
}

// Clone deep-copies e.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	out := &Expr{Op: e.Op, Const: e.Const, Param: e.Param}
	out.A = e.A.Clone()
	out.B = e.B.Clone()
	return out
}

// Params collects every distinct parameter handle referenced by e, in the
// order first encountered.
func (e *Expr) Params() []hdl.Param {
	seen := make(map[hdl.Param]bool)
	var out []hdl.Param
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n == nil {
			return
		}
		if n.Op == OpParam && !seen[n.Param] {
			seen[n.Param] = true
			out = append(out, n.Param)
		}
		walk(n.A)
		walk(n.B)
	}
	walk(e)
	return out
}
