// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileio implements Load/Save for the persisted line-oriented
// text format of spec.md §6: a fixed magic header, key=value records,
// and marker lines that commit the accumulated record into a table. This
// is a sibling idiom to inp.ReadSim's JSON driver -- read whole file,
// decode into accumulator state, log failures with gosl/io -- but the
// record/field mechanism itself is hand-written since the persisted
// format is explicitly not JSON.
package fileio

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/opencad/kernel/constraint"
	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/entity"
	"github.com/opencad/kernel/group"
	"github.com/opencad/kernel/hdl"
	"github.com/opencad/kernel/kernel"
	"github.com/opencad/kernel/param"
	"github.com/opencad/kernel/request"
	"github.com/opencad/kernel/units"
)

// magic is the fixed header every persisted file must open with.
const magic = "±„Õ“▒▓│┤SolveSpaceREVa"

// Document is the in-memory result of Load: the three persisted tables
// (groups, params, requests) plus constraints. Entities are never loaded
// directly -- record kind 'e' is skipped on load, per spec.md §6, since
// Regenerate rebuilds them from requests.
type Document struct {
	Units       units.System
	Groups      *group.Store
	Params      *param.Store
	Requests    *request.Store
	Constraints []*constraint.Constraint
}

// Context builds a kernel.Context from the loaded tables, with a fresh
// empty entity store -- entities are never persisted, so the caller must
// run Regenerate before reading any entity/geometry state.
func (doc *Document) Context() *kernel.Context {
	return &kernel.Context{
		Groups:      doc.Groups,
		Requests:    doc.Requests,
		Entities:    entity.NewStore(),
		Params:      doc.Params,
		Constraints: doc.Constraints,
		Tol:         kernel.DefaultTolerances(),
		Units:       doc.Units,
	}
}

// Load parses text in the persisted format, returning the tables it
// accumulates or a diagnosed failure.
func Load(text string) (*Document, diag.Result) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != magic {
		return nil, diag.Errorf(diag.BadMagic, "missing or wrong magic header")
	}

	doc := &Document{
		Units:    units.MM,
		Groups:   group.NewStore(),
		Params:   param.NewStore(),
		Requests: request.NewStore(),
	}

	rec := make(map[string]string)
	for _, raw := range lines[1:] {
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			continue
		}
		if eq := strings.IndexByte(line, '='); eq >= 0 && !isMarker(line) {
			rec[line[:eq]] = line[eq+1:]
			continue
		}
		switch line {
		case "AddGroup":
			if res := commitGroup(doc, rec); !res.Ok() {
				return nil, res
			}
		case "AddParam":
			if res := commitParam(doc, rec); !res.Ok() {
				return nil, res
			}
		case "AddRequest":
			if res := commitRequest(doc, rec); !res.Ok() {
				return nil, res
			}
		case "AddEntity":
			// entities are regenerated, never loaded; drop the record.
		case "AddConstraint":
			if res := commitConstraint(doc, rec); !res.Ok() {
				return nil, res
			}
		default:
			return nil, diag.Errorf(diag.UnknownMarker, "unknown marker line %q", line)
		}
		rec = make(map[string]string)
	}
	return doc, diag.OK
}

func isMarker(line string) bool {
	switch line {
	case "AddGroup", "AddParam", "AddRequest", "AddEntity", "AddConstraint":
		return true
	}
	return false
}

func fieldHex(rec map[string]string, key string) (uint32, bool) {
	v, ok := rec[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func fieldFloat(rec map[string]string, key string) (float64, bool) {
	v, ok := rec[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func fieldBool(rec map[string]string, key string) bool {
	return rec[key] == "1"
}

func fieldInt(rec map[string]string, key string) (int, bool) {
	v, ok := rec[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func commitGroup(doc *Document, rec map[string]string) diag.Result {
	hx, ok := fieldHex(rec, "h")
	if !ok {
		return diag.Errorf(diag.TruncatedRecord, "AddGroup record missing handle field h")
	}
	kind, _ := fieldInt(rec, "type")
	predHx, _ := fieldHex(rec, "predecessor")
	wpHx, _ := fieldHex(rec, "workplane")
	copies, _ := fieldInt(rec, "copies")
	rotAngle, _ := fieldFloat(rec, "rotAngle")
	scale, _ := fieldFloat(rec, "scale")
	g := &group.Group{
		Handle:      hdl.Group(hx),
		Name:        rec["name"],
		Kind:        group.Kind(kind),
		Predecessor: hdl.Group(predHx),
		Workplane:   hdl.Entity(wpHx),
		Predef: group.Predef{
			Copies:         copies,
			RotateAngleDeg: rotAngle,
			ScaleFactor:    scale,
		},
	}
	for i, key := range [3]string{"translateX", "translateY", "translateZ"} {
		if v, ok := fieldFloat(rec, key); ok {
			g.Predef.Translate[i] = v
		}
	}
	for i, key := range [3]string{"rotAxisX", "rotAxisY", "rotAxisZ"} {
		if v, ok := fieldFloat(rec, key); ok {
			g.Predef.RotateAxis[i] = v
		}
	}
	doc.Groups.Add(g)
	return diag.OK
}

func commitParam(doc *Document, rec map[string]string) diag.Result {
	hx, ok := fieldHex(rec, "h")
	if !ok {
		return diag.Errorf(diag.TruncatedRecord, "AddParam record missing handle field h")
	}
	v, ok := fieldFloat(rec, "val")
	if !ok {
		return diag.Errorf(diag.TruncatedRecord, "AddParam record missing value field val")
	}
	doc.Params.Add(&param.Param{Handle: hdl.Param(hx), Value: v})
	return diag.OK
}

func commitRequest(doc *Document, rec map[string]string) diag.Result {
	hx, ok := fieldHex(rec, "h")
	if !ok {
		return diag.Errorf(diag.TruncatedRecord, "AddRequest record missing handle field h")
	}
	kind, _ := fieldInt(rec, "type")
	groupHx, _ := fieldHex(rec, "group")
	wpHx, _ := fieldHex(rec, "workplane")
	r := &request.Request{
		Handle:    hdl.Request(hx),
		Kind:      request.Kind(kind),
		Group:     hdl.Group(groupHx),
		Workplane: hdl.Entity(wpHx),
		Str:       rec["str"],
	}
	doc.Requests.Add(r)
	if g := doc.Groups.Get(r.Group); g != nil {
		g.Requests = append(g.Requests, r.Handle)
	}
	return diag.OK
}

func commitConstraint(doc *Document, rec map[string]string) diag.Result {
	hx, ok := fieldHex(rec, "h")
	if !ok {
		return diag.Errorf(diag.TruncatedRecord, "AddConstraint record missing handle field h")
	}
	kind, _ := fieldInt(rec, "type")
	groupHx, _ := fieldHex(rec, "group")
	wpHx, _ := fieldHex(rec, "workplane")
	valA, _ := fieldFloat(rec, "valA")
	valB, _ := fieldFloat(rec, "valB")

	c := &constraint.Constraint{
		Handle:    hdl.Cons(hx),
		Kind:      constraint.Kind(kind),
		Group:     hdl.Group(groupHx),
		Workplane: hdl.Entity(wpHx),
		ValA:      valA,
		ValB:      valB,
		Other:     fieldBool(rec, "other"),
		Reference: fieldBool(rec, "reference"),
	}
	for i := 0; i < 3; i++ {
		if hx, ok := fieldHex(rec, "pt"+strconv.Itoa(i)); ok {
			c.Points[i] = hdl.Entity(hx)
		}
	}
	for i := 0; i < 4; i++ {
		if hx, ok := fieldHex(rec, "ent"+strconv.Itoa(i)); ok {
			c.Entities[i] = hdl.Entity(hx)
		}
	}
	doc.Constraints = append(doc.Constraints, c)
	return diag.OK
}

// ReadFile reads and parses a persisted file from disk, logging failures
// through gosl/io exactly as inp.ReadSim does.
func ReadFile(path string) (*Document, diag.Result) {
	b, err := io.ReadFile(path)
	if err != nil {
		io.PfRed("fileio: cannot read %s\n%v\n", path, err)
		return nil, diag.Errorf(diag.IoError, "cannot read %s: %v", path, err)
	}
	return Load(string(b))
}
