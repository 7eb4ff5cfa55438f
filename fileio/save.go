// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileio

import (
	"fmt"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/constraint"
	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/group"
	"github.com/opencad/kernel/param"
	"github.com/opencad/kernel/request"
)

// Save renders doc in the persisted text format, writing each record's
// fields in the fixed order below. A group's predef fields are written
// only for the group kinds that use them (scale only when non-zero), and
// a constraint's display Offset is not written. Entities are never
// written: they are always rebuilt by Regenerate from the saved requests.
func Save(doc *Document) string {
	var b strings.Builder
	b.WriteString(magic)
	b.WriteByte('\n')

	for _, g := range doc.Groups.Ordered() {
		saveGroup(&b, g)
	}
	for _, p := range doc.Params.Ordered() {
		saveParam(&b, p)
	}
	for _, r := range doc.Requests.Ordered() {
		saveRequest(&b, r)
	}
	for _, c := range doc.Constraints {
		saveConstraint(&b, c)
	}
	return b.String()
}

func saveGroup(b *strings.Builder, g *group.Group) {
	fmt.Fprintf(b, "h=%s\n", g.Handle.String())
	fmt.Fprintf(b, "type=%d\n", int(g.Kind))
	fmt.Fprintf(b, "name=%s\n", g.Name)
	fmt.Fprintf(b, "predecessor=%s\n", g.Predecessor.String())
	fmt.Fprintf(b, "workplane=%s\n", g.Workplane.String())
	if g.Kind == group.TranslateCopies || g.Kind == group.RotateCopies {
		fmt.Fprintf(b, "copies=%d\n", g.Predef.Copies)
	}
	if g.Kind == group.Extrude || g.Kind == group.TranslateCopies {
		fmt.Fprintf(b, "translateX=%.20f\n", g.Predef.Translate[0])
		fmt.Fprintf(b, "translateY=%.20f\n", g.Predef.Translate[1])
		fmt.Fprintf(b, "translateZ=%.20f\n", g.Predef.Translate[2])
	}
	if g.Kind == group.Lathe || g.Kind == group.RotateCopies {
		fmt.Fprintf(b, "rotAxisX=%.20f\n", g.Predef.RotateAxis[0])
		fmt.Fprintf(b, "rotAxisY=%.20f\n", g.Predef.RotateAxis[1])
		fmt.Fprintf(b, "rotAxisZ=%.20f\n", g.Predef.RotateAxis[2])
		fmt.Fprintf(b, "rotAngle=%.20f\n", g.Predef.RotateAngleDeg)
	}
	if g.Predef.ScaleFactor != 0 {
		fmt.Fprintf(b, "scale=%.20f\n", g.Predef.ScaleFactor)
	}
	b.WriteString("AddGroup\n")
}

func saveParam(b *strings.Builder, p *param.Param) {
	fmt.Fprintf(b, "h=%s\n", p.Handle.String())
	fmt.Fprintf(b, "val=%.20f\n", p.Value)
	b.WriteString("AddParam\n")
}

func saveRequest(b *strings.Builder, r *request.Request) {
	fmt.Fprintf(b, "h=%s\n", r.Handle.String())
	fmt.Fprintf(b, "type=%d\n", int(r.Kind))
	fmt.Fprintf(b, "group=%s\n", r.Group.String())
	fmt.Fprintf(b, "workplane=%s\n", r.Workplane.String())
	if r.Str != "" {
		fmt.Fprintf(b, "str=%s\n", r.Str)
	}
	b.WriteString("AddRequest\n")
}

func saveConstraint(b *strings.Builder, c *constraint.Constraint) {
	fmt.Fprintf(b, "h=%s\n", c.Handle.String())
	fmt.Fprintf(b, "type=%d\n", int(c.Kind))
	fmt.Fprintf(b, "group=%s\n", c.Group.String())
	fmt.Fprintf(b, "workplane=%s\n", c.Workplane.String())
	fmt.Fprintf(b, "valA=%.20f\n", c.ValA)
	fmt.Fprintf(b, "valB=%.20f\n", c.ValB)
	fmt.Fprintf(b, "other=%d\n", boolBit(c.Other))
	fmt.Fprintf(b, "reference=%d\n", boolBit(c.Reference))
	for i, pt := range c.Points {
		if !pt.IsNone() {
			fmt.Fprintf(b, "pt%d=%s\n", i, pt.String())
		}
	}
	for i, e := range c.Entities {
		if !e.IsNone() {
			fmt.Fprintf(b, "ent%d=%s\n", i, e.String())
		}
	}
	b.WriteString("AddConstraint\n")
}

func boolBit(v bool) int {
	if v {
		return 1
	}
	return 0
}

// WriteFile saves doc to path, logging failures through gosl/io exactly as
// the teacher's Mesh/MatDb String()-then-write pattern does.
func WriteFile(path string, doc *Document) diag.Result {
	text := Save(doc)
	dir, fn := splitPath(path)
	io.WriteFileSD(dir, fn, text)
	return diag.OK
}

func splitPath(path string) (dir, fn string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ".", path
	}
	return path[:i], path[i+1:]
}
