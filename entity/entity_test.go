// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/hdl"
)

func TestIsPointAndIsNormal(tst *testing.T) {

	chk.PrintTitle("Test IsPointAndIsNormal")

	cases := []struct {
		k               Kind
		isPoint, isNorm bool
	}{
		{PointIn3D, true, false},
		{PointInWorkplane, true, false},
		{PointTransformed, true, false},
		{NormalIn3D, false, true},
		{LineSegment, false, false},
	}
	for _, c := range cases {
		e := &Entity{Kind: c.k}
		io.Pforan("%v: IsPoint=%v IsNormal=%v\n", c.k, e.IsPoint(), e.IsNormal())
		if got := e.IsPoint(); got != c.isPoint {
			tst.Fatalf("%v.IsPoint() = %v, want %v", c.k, got, c.isPoint)
		}
		if got := e.IsNormal(); got != c.isNorm {
			tst.Fatalf("%v.IsNormal() = %v, want %v", c.k, got, c.isNorm)
		}
	}
}

func TestNumPointParams(tst *testing.T) {

	chk.PrintTitle("Test NumPointParams")

	cases := []struct {
		k    Kind
		want int
	}{
		{PointInWorkplane, 2},
		{PointIn3D, 3},
		{NormalIn3D, 4},
		{Distance, 1},
		{LineSegment, 0},
	}
	for _, c := range cases {
		e := &Entity{Kind: c.k}
		got := e.NumPointParams()
		io.Pfyel("%v.NumPointParams() = %d\n", c.k, got)
		chk.IntAssert(got, c.want)
	}
}

func TestByGroupFiltersOwnership(tst *testing.T) {

	chk.PrintTitle("Test ByGroupFiltersOwnership")

	s := NewStore()
	s.Add(&Entity{Handle: hdl.NewEntity(1, 0), Group: hdl.Group(1)})
	s.Add(&Entity{Handle: hdl.NewEntity(2, 0), Group: hdl.Group(2)})
	s.Add(&Entity{Handle: hdl.NewEntity(3, 0), Group: hdl.Group(1)})

	out := s.ByGroup(hdl.Group(1))
	chk.IntAssert(len(out), 2)
}

func TestKindStringUnknown(tst *testing.T) {

	chk.PrintTitle("Test KindStringUnknown")

	if got := Kind(999).String(); got != "Unknown" {
		tst.Fatalf("Kind(999).String() = %q, want Unknown", got)
	}
	if got := PointIn3D.String(); got != "PointIn3D" {
		tst.Fatalf("PointIn3D.String() = %q, want PointIn3D", got)
	}
}
