/*
 * structure.go, part of goprep.
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
	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/mat"
)

//Structure is a record-of-arrays representation of a molecular system.
//Every exported slice holds one element per atom, in the same order as the
//rows of Coords. It is the unit of work of the preparation pipeline: each
//stage takes ownership of a Structure, mutates it in place, and hands it to
//the next stage.
type Structure struct {
	Name      []string
	MolName   []string
	MolID     []int
	Insertion []string
	Chain     []string
	SegID     []string
	Symbol    []string
	Tag       []int //scratch space for grouping ids. Not preserved across stages.
	Coords    *v3.Matrix
	Bonds     [][2]int //explicit bonds, as pairs of atom indexes.
}

//NewStructure returns a Structure with room for n atoms, all fields zero-valued.
func NewStructure(n int) *Structure {
	S := new(Structure)
	S.Name = make([]string, n)
	S.MolName = make([]string, n)
	S.MolID = make([]int, n)
	S.Insertion = make([]string, n)
	S.Chain = make([]string, n)
	S.SegID = make([]string, n)
	S.Symbol = make([]string, n)
	S.Tag = make([]int, n)
	S.Coords = v3.Zeros(n)
	S.Bonds = make([][2]int, 0)
	return S
}

//StructureFromMolecule builds a Structure from the given frame of a gochem
//molecule. The PDB format read by gochem carries no segment identifiers, so
//segids are seeded from the chain identifiers; insertion codes are left empty.
func StructureFromMolecule(mol *chem.Molecule, frame int) (*Structure, error) {
	if mol == nil {
		return nil, Error{NilStructure, Validation, "", []string{"StructureFromMolecule"}, true}
	}
	S := NewStructure(mol.Len())
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		S.Name[i] = a.Name
		S.MolName[i] = a.MolName
		S.MolID[i] = a.MolID
		S.Chain[i] = a.Chain
		S.SegID[i] = a.Chain
		S.Symbol[i] = a.Symbol
	}
	S.Coords.Copy(mol.Coords[frame])
	return S, nil
}

//SetCoordsDense replaces the coordinates with the contents of the given
//gonum matrix, which must have 3 columns and one row per atom.
func (S *Structure) SetCoordsDense(d *mat.Dense) error {
	r, _ := d.Dims()
	if r != S.Len() {
		return Error{WrongLength, Validation, "", []string{"SetCoordsDense"}, true}
	}
	S.Coords = v3.Dense2Matrix(d)
	return nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Name)
}

//Check verifies that every per-atom array has one element per atom.
func (S *Structure) Check() error {
	n := S.Len()
	ok := len(S.MolName) == n && len(S.MolID) == n && len(S.Insertion) == n &&
		len(S.Chain) == n && len(S.SegID) == n && len(S.Symbol) == n &&
		len(S.Tag) == n && S.Coords.NVecs() == n
	if !ok {
		return Error{WrongLength, Validation, "", []string{"Check"}, true}
	}
	return nil
}

//Select returns the indexes, in ascending order, of the atoms for which
//pred returns true.
func (S *Structure) Select(pred func(i int) bool) []int {
	sel := make([]int, 0, 8)
	for i := 0; i < S.Len(); i++ {
		if pred(i) {
			sel = append(sel, i)
		}
	}
	return sel
}

//SetNames sets the atom name of every atom in sel to name.
func (S *Structure) SetNames(name string, sel []int) {
	for _, i := range sel {
		S.Name[i] = name
	}
}

//SetMolNames sets the residue name of every atom in sel to name.
func (S *Structure) SetMolNames(name string, sel []int) {
	for _, i := range sel {
		S.MolName[i] = name
	}
}

//SetMolIDs sets the residue id of every atom in sel to id.
func (S *Structure) SetMolIDs(id int, sel []int) {
	for _, i := range sel {
		S.MolID[i] = id
	}
}

//SetSegIDs sets the segment id of every atom in sel to segid.
func (S *Structure) SetSegIDs(segid string, sel []int) {
	for _, i := range sel {
		S.SegID[i] = segid
	}
}

//SetTags sets the scratch tag of every atom in sel to tag.
func (S *Structure) SetTags(tag int, sel []int) {
	for _, i := range sel {
		S.Tag[i] = tag
	}
}

//AddBond records an explicit bond between atoms i and j.
func (S *Structure) AddBond(i, j int) {
	S.Bonds = append(S.Bonds, [2]int{i, j})
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	N := NewStructure(S.Len())
	copy(N.Name, S.Name)
	copy(N.MolName, S.MolName)
	copy(N.MolID, S.MolID)
	copy(N.Insertion, S.Insertion)
	copy(N.Chain, S.Chain)
	copy(N.SegID, S.SegID)
	copy(N.Symbol, S.Symbol)
	copy(N.Tag, S.Tag)
	N.Coords.Copy(S.Coords)
	N.Bonds = append(N.Bonds, S.Bonds...)
	return N
}

//Remove deletes the atoms with the given indexes, compacting every per-atom
//array. Bonds involving a removed atom are dropped; the remaining bonds are
//renumbered to the compacted indexes. Remove and Reorder are the only
//operations that change the shape of a Structure.
func (S *Structure) Remove(indexes []int) {
	if len(indexes) == 0 {
		return
	}
	gone := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		gone[i] = true
	}
	keep := make([]int, 0, S.Len()-len(gone))
	newindex := make([]int, S.Len())
	for i := 0; i < S.Len(); i++ {
		if gone[i] {
			newindex[i] = -1
			continue
		}
		newindex[i] = len(keep)
		keep = append(keep, i)
	}
	S.gather(keep)
	bonds := make([][2]int, 0, len(S.Bonds))
	for _, b := range S.Bonds {
		if newindex[b[0]] < 0 || newindex[b[1]] < 0 {
			continue
		}
		bonds = append(bonds, [2]int{newindex[b[0]], newindex[b[1]]})
	}
	S.Bonds = bonds
}

//Reorder rearranges the atoms so the atom currently at index i ends at index
//perm[i], applying the same permutation to every per-atom array and to the
//rows of the coordinate matrix. It returns a validation error, changing
//nothing, unless perm is a bijection over the atom indexes.
func (S *Structure) Reorder(perm []int) error {
	if len(perm) != S.Len() {
		return Error{NotBijection, Validation, "", []string{"Reorder"}, true}
	}
	src := make([]int, len(perm)) //src[d] is the atom that ends up at index d
	seen := make([]bool, len(perm))
	for i, d := range perm {
		if d < 0 || d >= len(perm) || seen[d] {
			return Error{NotBijection, Validation, "", []string{"Reorder"}, true}
		}
		seen[d] = true
		src[d] = i
	}
	S.gather(src)
	for bi, b := range S.Bonds {
		S.Bonds[bi] = [2]int{perm[b[0]], perm[b[1]]}
	}
	return nil
}

//gather rebuilds every per-atom array taking, for each destination position,
//the atom at the corresponding source index. src may be shorter than the
//current atom count (Remove) but never longer.
func (S *Structure) gather(src []int) {
	n := len(src)
	name := make([]string, n)
	molname := make([]string, n)
	molid := make([]int, n)
	insertion := make([]string, n)
	chain := make([]string, n)
	segid := make([]string, n)
	symbol := make([]string, n)
	tag := make([]int, n)
	for d, s := range src {
		name[d] = S.Name[s]
		molname[d] = S.MolName[s]
		molid[d] = S.MolID[s]
		insertion[d] = S.Insertion[s]
		chain[d] = S.Chain[s]
		segid[d] = S.SegID[s]
		symbol[d] = S.Symbol[s]
		tag[d] = S.Tag[s]
	}
	coords := v3.Zeros(n)
	coords.SomeVecs(S.Coords, src)
	S.Name = name
	S.MolName = molname
	S.MolID = molid
	S.Insertion = insertion
	S.Chain = chain
	S.SegID = segid
	S.Symbol = symbol
	S.Tag = tag
	S.Coords = coords
}

//Topology exports the structure as a gochem topology, ready to be written
//to disk together with Coords by chem.PDBFileWrite.
func (S *Structure) Topology() *chem.Topology {
	ats := make([]*chem.Atom, 0, S.Len())
	for i := 0; i < S.Len(); i++ {
		a := new(chem.Atom)
		a.Name = S.Name[i]
		a.ID = i + 1
		a.SetIndex(i)
		a.MolName = S.MolName[i]
		a.MolID = S.MolID[i]
		a.Chain = S.Chain[i]
		a.Symbol = S.Symbol[i]
		ats = append(ats, a)
	}
	return chem.NewTopology(0, 1, ats)
}
