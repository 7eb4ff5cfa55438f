// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/request"
)

func TestStoreOrderedAscending(tst *testing.T) {

	chk.PrintTitle("Test StoreOrderedAscending")

	s := NewStore()
	s.Add(&Group{Handle: hdl.Group(5)})
	s.Add(&Group{Handle: hdl.Group(1)})
	ordered := s.Ordered()
	io.Pforan("ordered = %v\n", ordered)
	if len(ordered) != 2 || ordered[0].Handle != hdl.Group(1) || ordered[1].Handle != hdl.Group(5) {
		tst.Fatalf("Ordered() = %v, want ascending [1,5]", ordered)
	}
}

func TestRequestsOf(tst *testing.T) {

	chk.PrintTitle("Test RequestsOf")

	rs := request.NewStore()
	r1 := &request.Request{Handle: hdl.Request(1)}
	r2 := &request.Request{Handle: hdl.Request(2)}
	rs.Add(r1)
	rs.Add(r2)

	g := &Group{Handle: hdl.Group(1), Requests: []hdl.Request{hdl.Request(2), hdl.Request(1)}}
	out := RequestsOf(rs, g)
	if len(out) != 2 || out[0] != r2 || out[1] != r1 {
		tst.Fatalf("RequestsOf() = %v, want [r2, r1] in g.Requests order", out)
	}
}

func TestAddReplacesExistingHandle(tst *testing.T) {

	chk.PrintTitle("Test AddReplacesExistingHandle")

	s := NewStore()
	s.Add(&Group{Handle: hdl.Group(1), Name: "first"})
	s.Add(&Group{Handle: hdl.Group(1), Name: "second"})
	chk.IntAssert(s.Len(), 1)
	if s.Get(hdl.Group(1)).Name != "second" {
		tst.Fatal("Add() with an existing handle should replace the stored value")
	}
}
