// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/hdl"
)

// ResolveName maps a parsed identifier to the Param handle it refers to;
// used so Parse never needs to know how names map to handles (the caller
// supplies the symbol table).
type ResolveName func(name string) (hdl.Param, bool)

// Parse reads an infix expression with binary operators "+ - * / ^" and
// unary "- sqrt sin cos asin acos", per spec.md §4.1; "=" is not an
// operator, and the tokenizer drops it like any unrecognized character.
// Identifiers resolve to
// parameter references via resolve. On malformed input, Parse returns
// diag.BadNumberOrExpression instead of panicking.
func Parse(text string, resolve ResolveName) (*Expr, diag.Result) {
	p := &parser{toks: tokenize(text), resolve: resolve}
	e, res := p.parseExpr()
	if !res.Ok() {
		return nil, res
	}
	if p.pos != len(p.toks) {
		return nil, diag.Errorf(diag.BadNumberOrExpression, "unexpected trailing input in %q", text)
	}
	return e, diag.OK
}

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func tokenize(s string) []token {
	var toks []token
	r := []rune(s)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case strings.ContainsRune("+-*/^", c):
			toks = append(toks, token{tokOp, string(c)})
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(r) && (unicode.IsDigit(r[j]) || r[j] == '.' || r[j] == 'e' || r[j] == 'E' ||
				((r[j] == '+' || r[j] == '-') && j > i && (r[j-1] == 'e' || r[j-1] == 'E'))) {
				j++
			}
			toks = append(toks, token{tokNum, string(r[i:j])})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(r) && (unicode.IsLetter(r[j]) || unicode.IsDigit(r[j]) || r[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(r[i:j])})
			i = j
		default:
			i++ // ignore unrecognized characters rather than hard-fail tokenizing
		}
	}
	return toks
}

type parser struct {
	toks    []token
	pos     int
	resolve ResolveName
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseExpr() (*Expr, diag.Result) {
	return p.parseAddSub()
}

func (p *parser) parseAddSub() (*Expr, diag.Result) {
	left, res := p.parseMulDiv()
	if !res.Ok() {
		return nil, res
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "+" && t.text != "-") {
			break
		}
		p.pos++
		right, res := p.parseMulDiv()
		if !res.Ok() {
			return nil, res
		}
		if t.text == "+" {
			left = Plus(left, right)
		} else {
			left = Minus(left, right)
		}
	}
	return left, diag.OK
}

func (p *parser) parseMulDiv() (*Expr, diag.Result) {
	left, res := p.parsePow()
	if !res.Ok() {
		return nil, res
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "*" && t.text != "/") {
			break
		}
		p.pos++
		right, res := p.parsePow()
		if !res.Ok() {
			return nil, res
		}
		if t.text == "*" {
			left = Times(left, right)
		} else {
			left = Div(left, right)
		}
	}
	return left, diag.OK
}

func (p *parser) parsePow() (*Expr, diag.Result) {
	left, res := p.parseUnary()
	if !res.Ok() {
		return nil, res
	}
	if t, ok := p.peek(); ok && t.kind == tokOp && t.text == "^" {
		p.pos++
		right, res := p.parsePow() // right-associative
		if !res.Ok() {
			return nil, res
		}
		// x^2 keeps the dedicated Square node; any other constant
		// non-negative integer exponent expands into repeated
		// multiplication; every other exponent is rejected.
		if right.Op == OpConst && right.Const == 2 {
			return Square(left), diag.OK
		}
		if right.Op == OpConst && right.Const >= 0 && right.Const <= 64 && right.Const == float64(int(right.Const)) {
			out := Const(1)
			for i := 0; i < int(right.Const); i++ {
				out = Times(out, left)
			}
			return out, diag.OK
		}
		return nil, diag.Errorf(diag.BadNumberOrExpression, "exponent must be a constant non-negative integer")
	}
	return left, diag.OK
}

func (p *parser) parseUnary() (*Expr, diag.Result) {
	if t, ok := p.peek(); ok && t.kind == tokOp && t.text == "-" {
		p.pos++
		a, res := p.parseUnary()
		if !res.Ok() {
			return nil, res
		}
		return Negate(a), diag.OK
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (*Expr, diag.Result) {
	t, ok := p.peek()
	if !ok {
		return nil, diag.Errorf(diag.BadNumberOrExpression, "unexpected end of expression")
	}
	switch t.kind {
	case tokNum:
		p.pos++
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, diag.Errorf(diag.BadNumberOrExpression, "bad number %q", t.text)
		}
		return Const(v), diag.OK
	case tokLParen:
		p.pos++
		e, res := p.parseExpr()
		if !res.Ok() {
			return nil, res
		}
		if t, ok := p.peek(); !ok || t.kind != tokRParen {
			return nil, diag.Errorf(diag.BadNumberOrExpression, "missing closing parenthesis")
		}
		p.pos++
		return e, diag.OK
	case tokIdent:
		p.pos++
		switch strings.ToLower(t.text) {
		case "sqrt":
			return p.parseCall(Sqrt)
		case "sin":
			return p.parseCall(Sin)
		case "cos":
			return p.parseCall(Cos)
		case "asin":
			return p.parseCall(Asin)
		case "acos":
			return p.parseCall(Acos)
		case "pi":
			return PiConst, diag.OK
		}
		if p.resolve == nil {
			return nil, diag.Errorf(diag.BadNumberOrExpression, "no symbol table for identifier %q", t.text)
		}
		h, ok := p.resolve(t.text)
		if !ok {
			return nil, diag.Errorf(diag.BadNumberOrExpression, "unknown identifier %q", t.text)
		}
		return ParamRef(h), diag.OK
	}
	return nil, diag.Errorf(diag.BadNumberOrExpression, "unexpected token %q", t.text)
}

func (p *parser) parseCall(fn func(*Expr) *Expr) (*Expr, diag.Result) {
	if t, ok := p.peek(); !ok || t.kind != tokLParen {
		return nil, diag.Errorf(diag.BadNumberOrExpression, "expected '(' after function name")
	}
	p.pos++
	a, res := p.parseExpr()
	if !res.Ok() {
		return nil, res
	}
	if t, ok := p.peek(); !ok || t.kind != tokRParen {
		return nil, diag.Errorf(diag.BadNumberOrExpression, "missing closing parenthesis")
	}
	p.pos++
	return fn(a), diag.OK
}
