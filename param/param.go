// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param implements the Param store: an ordered, handle-keyed
// container of scalar unknowns. The store's shape mirrors inp.Mesh's
// handle-keyed vertex/cell tables in the teacher repo (sorted-slice +
// binary search instead of a bare map, so ordered scans are O(n) and
// lookups are O(log n)).
package param

import (
	"sort"

	"github.com/opencad/kernel/diag"
	"github.com/opencad/kernel/hdl"
)

// Param is a single scalar unknown the solver may choose.
type Param struct {
	Handle        hdl.Param
	Value         float64
	Known         bool      // scratch: fixed by known-propagation, reset each solve
	Free          bool      // scratch: left free (under-determined), reset each solve
	SubstitutedBy hdl.Param // scratch: 0 if not substituted away
	Tag           int       // scratch: used by RemoveTagged sweeps
}

// Store is an ordered map from handle to *Param.
type Store struct {
	byHandle map[hdl.Param]*Param
	order    []hdl.Param // kept sorted
}

// NewStore allocates an empty Store.
func NewStore() *Store {
	return &Store{byHandle: make(map[hdl.Param]*Param)}
}

// Add inserts p, replacing any existing Param with the same handle.
func (s *Store) Add(p *Param) {
	if _, exists := s.byHandle[p.Handle]; !exists {
		i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= p.Handle })
		s.order = append(s.order, 0)
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = p.Handle
	}
	s.byHandle[p.Handle] = p
}

// Get returns the Param with the given handle, or nil if absent.
func (s *Store) Get(h hdl.Param) *Param {
	return s.byHandle[h]
}

// MustGet returns the Param with the given handle, or panics: used only
// where the caller has already validated the handle resolves (e.g. while
// evaluating an equation whose parameters were just enumerated from this
// same store).
func (s *Store) MustGet(h hdl.Param) *Param {
	p, ok := s.byHandle[h]
	diag.Invariant(ok, "param: handle not found: %s", h.String())
	return p
}

// Len returns the number of parameters in the store.
func (s *Store) Len() int { return len(s.order) }

// Ordered returns every Param in ascending handle order -- the ordering
// the solver relies on to be independent of insertion history.
func (s *Store) Ordered() []*Param {
	out := make([]*Param, len(s.order))
	for i, h := range s.order {
		out[i] = s.byHandle[h]
	}
	return out
}

// Remove deletes the Param with the given handle.
func (s *Store) Remove(h hdl.Param) {
	if _, ok := s.byHandle[h]; !ok {
		return
	}
	delete(s.byHandle, h)
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= h })
	if i < len(s.order) && s.order[i] == h {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// TagAll sets the scratch Tag field on every parameter; used before a
// remove-tagged sweep.
func (s *Store) TagAll(tag int) {
	for _, p := range s.byHandle {
		p.Tag = tag
	}
}

// RemoveTagged deletes every Param whose Tag equals tag, mirroring the
// teacher's tag-and-sweep liveness idiom (fem/domain.go's Cid2active).
func (s *Store) RemoveTagged(tag int) (removed int) {
	for _, h := range append([]hdl.Param{}, s.order...) {
		if s.byHandle[h].Tag == tag {
			s.Remove(h)
			removed++
		}
	}
	return
}

// ResetScratch clears Known/Free/SubstitutedBy on every parameter; called
// by the regenerator once at the start of every pass.
func (s *Store) ResetScratch() {
	for _, p := range s.byHandle {
		p.Known = false
		p.Free = false
		p.SubstitutedBy = 0
	}
}

// SeedFrom copies values (not scratch fields) from prev into this store for
// every handle present in both. The regenerator performs the same seeding
// per group from its own snapshot of the previous values.
func (s *Store) SeedFrom(prev *Store) {
	for _, h := range s.order {
		if old := prev.Get(h); old != nil {
			s.byHandle[h].Value = old.Value
		}
	}
}
