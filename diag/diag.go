// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the typed outcome taxonomy shared by every public
// entry point of the kernel: solver outcomes, regeneration outcomes,
// boolean/shell outcomes, parse outcomes and file-load outcomes. Nothing in
// this package panics except Invariant, reserved for states that cannot
// happen.
package diag

import (
	"github.com/cpmech/gosl/chk"

	"github.com/opencad/kernel/hdl"
)

// Outcome identifies which typed result a Result carries.
type Outcome int

const (
	// Okay indicates success; every other outcome is a diagnosed failure.
	Okay Outcome = iota

	// solver outcomes
	DidNotConverge
	Singular
	Redundant
	TooManyUnknowns

	// regeneration outcomes
	OrphansRemoved
	ErrCyclicGroups
	Cancelled

	// boolean / shell outcomes
	BooleanFailed
	OpenContour
	MeshSelfIntersects
	MeshHasNakedEdges

	// parse outcomes
	BadNumberOrExpression

	// file load outcomes
	IoError
	BadMagic
	UnknownMarker
	TruncatedRecord
)

// String names an Outcome for logging.
func (o Outcome) String() string {
	switch o {
	case Okay:
		return "Okay"
	case DidNotConverge:
		return "DidNotConverge"
	case Singular:
		return "Singular"
	case Redundant:
		return "Redundant"
	case TooManyUnknowns:
		return "TooManyUnknowns"
	case OrphansRemoved:
		return "OrphansRemoved"
	case ErrCyclicGroups:
		return "ErrCyclicGroups"
	case Cancelled:
		return "Cancelled"
	case BooleanFailed:
		return "BooleanFailed"
	case OpenContour:
		return "OpenContour"
	case MeshSelfIntersects:
		return "MeshSelfIntersects"
	case MeshHasNakedEdges:
		return "MeshHasNakedEdges"
	case BadNumberOrExpression:
		return "BadNumberOrExpression"
	case IoError:
		return "IoError"
	case BadMagic:
		return "BadMagic"
	case UnknownMarker:
		return "UnknownMarker"
	case TruncatedRecord:
		return "TruncatedRecord"
	}
	return "Unknown"
}

// Result is the return value of every public kernel entry point that can
// fail in a diagnosable way. Ok() must be checked before reading any
// subsystem-specific output the call produced.
type Result struct {
	Outcome    Outcome     // which case this is
	Message    string      // human-readable detail
	BadCons    []hdl.Cons  // offending constraint handles (Singular/Redundant)
	FreeParams []hdl.Param // parameters that would remain free (under-determined)
	Edges      []int       // offending edge indices (OpenContour/naked/self-inter)
	Removed    int         // count of orphans removed (OrphansRemoved)
}

// Ok reports whether the outcome is Okay.
func (r Result) Ok() bool { return r.Outcome == Okay }

// OK is the zero-value success result.
var OK = Result{Outcome: Okay}

// Errorf builds a failing Result carrying a formatted message under the
// given outcome.
func Errorf(o Outcome, format string, args ...interface{}) Result {
	return Result{Outcome: o, Message: chk.Err(format, args...).Error()}
}

// Invariant aborts with a diagnostic when cond is false. Reserved for
// "cannot happen" states; never used for ordinary data errors.
func Invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		chk.Panic(format, args...)
	}
}
