// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hdl

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func TestParamOwnerRoundTrip(tst *testing.T) {

	chk.PrintTitle("Test ParamOwnerRoundTrip")

	r := Request(7)
	for local := 0; local < 4; local++ {
		p := NewParam(r, local)
		io.Pforan("p = %v owner=%v local=%d\n", p, p.Owner(), p.Local())
		if got := p.Owner(); got != r {
			tst.Fatalf("Owner() = %v, want %v", got, r)
		}
		chk.IntAssert(p.Local(), local)
	}
}

func TestEntityOwnerRoundTrip(tst *testing.T) {

	chk.PrintTitle("Test EntityOwnerRoundTrip")

	r := Request(12)
	e := NewEntity(r, 2)
	if got := e.Owner(); got != r {
		tst.Fatalf("Owner() = %v, want %v", got, r)
	}
	chk.IntAssert(e.Local(), 2)
}

func TestIsNone(tst *testing.T) {

	chk.PrintTitle("Test IsNone")

	if !Group(None).IsNone() {
		tst.Fatal("zero Group should be None")
	}
	if Group(1).IsNone() {
		tst.Fatal("non-zero Group should not be None")
	}
	if !Param(0).IsNone() || !Entity(0).IsNone() || !Request(0).IsNone() || !Cons(0).IsNone() {
		tst.Fatal("zero handles of every kind should be None")
	}
}

func TestStringIsHex8(tst *testing.T) {

	chk.PrintTitle("Test StringIsHex8")

	if got := Group(0xdeadbeef).String(); got != "deadbeef" {
		tst.Fatalf("String() = %q, want %q", got, "deadbeef")
	}
	if got := Param(1).String(); got != "00000001" {
		tst.Fatalf("String() = %q, want %q", got, "00000001")
	}
}
