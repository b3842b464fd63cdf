/*
 * remap.go, part of goprep.
 *
 * Copyright 2023 Raul Mera <rmeraaATacademicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package prep

import (
	"sort"
	"strconv"
)

//TerMarkers flags, per atom and in post-reorder positions, the physical
//first and last atoms of every terminal-bound residue group. Only atoms
//whose rule both sits at a group boundary and carries the terminal flag are
//marked; boundary atoms of non-terminal residues are not segment boundaries.
type TerMarkers struct {
	Beg []bool
	End []bool
}

//Remap rewrites the residue and atom names of every atom governed by a rule
//in table, then reorders the whole structure so that, within each residue
//instance, governed atoms sit at the position their rule dictates. Atoms not
//governed by any rule keep their names and their relative order. The
//permutation is built from the stable key (sequence id, rule order) and
//applied through Reorder, so it is checked to be a bijection. Remap returns
//the terminal markers of the reordered structure.
//If no atom of S is governed by table, S is left untouched and the returned
//markers are all false.
func Remap(S *Structure, table RuleTable) (*TerMarkers, error) {
	n := S.Len()
	seq := SequenceIDs(S)
	rules := make([]*Rule, n)
	governed := 0
	for i := 0; i < n; i++ {
		//lookups use the legacy names for every atom, so a replacement can
		//never shadow a later legacy match.
		if r := table.Rule(S.MolName[i], S.Name[i]); r != nil {
			rules[i] = r
			governed++
		}
	}
	m := &TerMarkers{Beg: make([]bool, n), End: make([]bool, n)}
	if governed == 0 {
		return m, nil
	}
	//the secondary sort key: the rule's position for governed atoms, the
	//original offset within the residue group for the rest.
	key := make([]int, n)
	offset := 0
	for i := 0; i < n; i++ {
		if i > 0 && seq[i] != seq[i-1] {
			offset = 0
		}
		if rules[i] != nil {
			key[i] = rules[i].Order
		} else {
			key[i] = offset
		}
		offset++
	}
	begter := make([]bool, n)
	endter := make([]bool, n)
	for i, r := range rules {
		if r == nil {
			continue
		}
		S.MolName[i] = r.MolName
		S.Name[i] = r.Name
		if r.Order == 0 && r.Ter {
			begter[i] = true
		}
		if r.Order == r.NAtoms-1 && r.Ter {
			endter[i] = true
		}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if seq[idx[a]] != seq[idx[b]] {
			return seq[idx[a]] < seq[idx[b]]
		}
		return key[idx[a]] < key[idx[b]]
	})
	perm := make([]int, n)
	for dst, s := range idx {
		perm[s] = dst
	}
	if err := S.Reorder(perm); err != nil {
		return nil, errDecorate(err, "Remap")
	}
	for i := 0; i < n; i++ {
		m.Beg[perm[i]] = begter[i]
		m.End[perm[i]] = endter[i]
	}
	return m, nil
}

//Resegment splits a remapped structure into segments: every run of atoms
//between a begin-terminal marker and the next end-terminal marker becomes one
//segment, labeled prefix plus a 1-based sequential number, and its residues
//are renumbered with a fresh sequence-id scan over the residue-name changes
//inside the run. The label space holds 999 segments; more terminal-bound
//groups than that is a capacity error.
func Resegment(S *Structure, m *TerMarkers, prefix string) error {
	begs := make([]int, 0)
	ends := make([]int, 0)
	for i := 0; i < S.Len(); i++ {
		if m.Beg[i] {
			begs = append(begs, i)
		}
		if m.End[i] {
			ends = append(ends, i)
		}
	}
	if len(begs) != len(ends) {
		return Error{"Unbalanced terminal markers", Validation, "", []string{"Resegment"}, true}
	}
	if len(begs) > 999 {
		return Error{SegmentsExhausted, Capacity, "", []string{"Resegment"}, true}
	}
	for i := range begs {
		run := make([]int, 0, ends[i]-begs[i]+1)
		names := make([]string, 0, ends[i]-begs[i]+1)
		for j := begs[i]; j <= ends[i]; j++ {
			run = append(run, j)
			names = append(names, S.MolName[j])
		}
		ids := sequenceStrings(names)
		for k, j := range run {
			S.MolID[j] = ids[k]
		}
		S.SetSegIDs(prefix+strconv.Itoa(i+1), run)
	}
	return nil
}
