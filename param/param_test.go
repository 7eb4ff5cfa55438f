// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/hdl"
)

func TestStoreAddGetOrdered(tst *testing.T) {

	chk.PrintTitle("Test StoreAddGetOrdered")

	s := NewStore()
	s.Add(&Param{Handle: hdl.Param(3), Value: 1})
	s.Add(&Param{Handle: hdl.Param(1), Value: 2})
	s.Add(&Param{Handle: hdl.Param(2), Value: 3})

	chk.IntAssert(s.Len(), 3)
	ordered := s.Ordered()
	io.Pforan("ordered = %v\n", ordered)
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Handle >= ordered[i].Handle {
			tst.Fatalf("Ordered() not ascending: %v", ordered)
		}
	}
}

func TestStoreRemove(tst *testing.T) {

	chk.PrintTitle("Test StoreRemove")

	s := NewStore()
	s.Add(&Param{Handle: hdl.Param(1)})
	s.Remove(hdl.Param(1))
	if s.Get(hdl.Param(1)) != nil {
		tst.Fatal("Remove() should drop the parameter")
	}
	chk.IntAssert(s.Len(), 0)
}

func TestMustGetPanicsOnMissingHandle(tst *testing.T) {

	chk.PrintTitle("Test MustGetPanicsOnMissingHandle")

	defer func() {
		if recover() == nil {
			tst.Fatal("MustGet() on a missing handle should panic")
		}
	}()
	NewStore().MustGet(hdl.Param(42))
}

func TestTagAllAndRemoveTagged(tst *testing.T) {

	chk.PrintTitle("Test TagAllAndRemoveTagged")

	s := NewStore()
	s.Add(&Param{Handle: hdl.Param(1)})
	s.Add(&Param{Handle: hdl.Param(2)})
	s.TagAll(-1)
	s.Get(hdl.Param(1)).Tag = 0 // simulate param(1) reached during generation

	removed := s.RemoveTagged(-1)
	chk.IntAssert(removed, 1)
	if s.Get(hdl.Param(1)) == nil || s.Get(hdl.Param(2)) != nil {
		tst.Fatal("RemoveTagged() should keep only the untagged parameter")
	}
}

func TestResetScratch(tst *testing.T) {

	chk.PrintTitle("Test ResetScratch")

	s := NewStore()
	s.Add(&Param{Handle: hdl.Param(1), Known: true, Free: true, SubstitutedBy: hdl.Param(2)})
	s.ResetScratch()
	p := s.Get(hdl.Param(1))
	if p.Known || p.Free || p.SubstitutedBy != 0 {
		tst.Fatalf("ResetScratch() left %+v, want all scratch fields cleared", p)
	}
}

func TestSeedFromCopiesValuesNotScratch(tst *testing.T) {

	chk.PrintTitle("Test SeedFromCopiesValuesNotScratch")

	prev := NewStore()
	prev.Add(&Param{Handle: hdl.Param(1), Value: 7, Known: true})

	cur := NewStore()
	cur.Add(&Param{Handle: hdl.Param(1), Value: 0})
	cur.SeedFrom(prev)

	p := cur.Get(hdl.Param(1))
	chk.Scalar(tst, "seeded value", 1e-15, p.Value, 7)
	if p.Known {
		tst.Fatal("SeedFrom() must not copy scratch fields like Known")
	}
}
