// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/utl"

	"github.com/opencad/kernel/fileio"
)

const version = "solveheadless v1"

func main() {
	defer func() {
		if err := recover(); err != nil {
			utl.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		utl.Panic("Please provide a subcommand. Ex.: solveheadless load part.slvs\n")
	}

	switch args[0] {
	case "version":
		utl.PfWhite("%s\n", version)
	case "load":
		if len(args) < 2 {
			utl.Panic("Please provide a filename. Ex.: solveheadless load part.slvs\n")
		}
		cmdLoad(args[1])
	default:
		utl.Panic("Unknown subcommand %q. Known: load, version\n", args[0])
	}
}

// cmdLoad reads a persisted document, regenerates every group, writes the
// regenerated state back to path, and reports the outcome, mirroring
// fem.Start/fem.Run's load-then-solve-then-save shape in headless form.
func cmdLoad(path string) {
	doc, res := fileio.ReadFile(path)
	if !res.Ok() {
		utl.PfRed("load failed: %s: %s\n", res.Outcome, res.Message)
		os.Exit(1)
	}

	ctx := doc.Context()
	result := ctx.Regenerate()
	if !result.Diag.Ok() {
		utl.PfRed("regeneration failed: %s: %s\n", result.Diag.Outcome, result.Diag.Message)
		os.Exit(1)
	}

	if wres := fileio.WriteFile(path, doc); !wres.Ok() {
		utl.PfRed("save failed: %s: %s\n", wres.Outcome, wres.Message)
		os.Exit(1)
	}

	utl.PfWhite("loaded %s: %d groups, %d params, %d constraints\n",
		path, ctx.Groups.Len(), ctx.Params.Len(), len(ctx.Constraints))
	for g, r := range result.PerGroup {
		if !r.Ok() {
			utl.PfRed("  group %08x: %s\n", uint32(g), r.Outcome)
		}
	}
	utl.PfGreen("ok\n")
}
