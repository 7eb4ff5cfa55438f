// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package units

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func TestToMMInch(tst *testing.T) {

	chk.PrintTitle("Test ToMMInch")

	io.Pforan("ToMM(1, Inch) = %v\n", ToMM(1, Inch))
	chk.Scalar(tst, "ToMM(1in)", 1e-12, ToMM(1, Inch), 25.4)
	chk.Scalar(tst, "ToMM(10mm)", 1e-12, ToMM(10, MM), 10)
}

func TestFromMMRoundTrip(tst *testing.T) {

	chk.PrintTitle("Test FromMMRoundTrip")

	v := 50.8
	got := FromMM(v, Inch)
	io.Pfyel("FromMM(50.8mm, Inch) = %v\n", got)
	chk.Scalar(tst, "FromMM(50.8mm, Inch)", 1e-12, got, 2)
	back := ToMM(got, Inch)
	chk.Scalar(tst, "round trip", 1e-12, back, v)
}

func TestParseUnknownDefaultsToMM(tst *testing.T) {

	chk.PrintTitle("Test ParseUnknownDefaultsToMM")

	sys, ok := Parse("bogus")
	if ok {
		tst.Fatal("Parse(bogus) should report !ok")
	}
	if sys != MM {
		tst.Fatalf("Parse(bogus) system = %v, want MM", sys)
	}
}

func TestParseKnownSystems(tst *testing.T) {

	chk.PrintTitle("Test ParseKnownSystems")

	if sys, ok := Parse("inch"); !ok || sys != Inch {
		tst.Fatalf("Parse(inch) = (%v, %v), want (Inch, true)", sys, ok)
	}
	if sys, ok := Parse("mm"); !ok || sys != MM {
		tst.Fatalf("Parse(mm) = (%v, %v), want (MM, true)", sys, ok)
	}
}

func TestStringNames(tst *testing.T) {

	chk.PrintTitle("Test StringNames")

	if MM.String() != "mm" {
		tst.Fatalf("MM.String() = %q", MM.String())
	}
	if Inch.String() != "inch" {
		tst.Fatalf("Inch.String() = %q", Inch.String())
	}
}
