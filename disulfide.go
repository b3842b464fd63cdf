/*
 * disulfide.go, part of goprep.
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
	"fmt"
	"math"
	"sort"
)

//SGSGCutoff is the largest SG-SG distance, in A, taken as a disulfide bridge.
const SGSGCutoff = 3.0

//CysPair identifies two residues bridged by a disulfide bond, by segment and
//residue id. The two endpoints are interchangeable: pairs are canonicalized
//so (A,B) and (B,A) describe the same bridge.
type CysPair struct {
	Seg1 string
	Res1 int
	Seg2 string
	Res2 int
}

func (p CysPair) canonical() CysPair {
	if p.Seg2 < p.Seg1 || (p.Seg2 == p.Seg1 && p.Res2 < p.Res1) {
		return CysPair{p.Seg2, p.Res2, p.Seg1, p.Res1}
	}
	return p
}

//DetectDisulfides returns the candidate disulfide pairs of S: every pair of
//distinct cysteine residues whose SG atoms lie within cutoff. A cutoff <= 0
//selects SGSGCutoff. The returned pairs are canonical, deduplicated and
//sorted.
func DetectDisulfides(S *Structure, cutoff float64) []CysPair {
	if cutoff <= 0 {
		cutoff = SGSGCutoff
	}
	sulfurs := S.Select(func(i int) bool {
		return S.Name[i] == "SG" && (S.MolName[i] == "CYS" || S.MolName[i] == "CYX")
	})
	pairs := make([]CysPair, 0)
	for a := 0; a < len(sulfurs); a++ {
		for b := a + 1; b < len(sulfurs); b++ {
			i, j := sulfurs[a], sulfurs[b]
			if S.SegID[i] == S.SegID[j] && S.MolID[i] == S.MolID[j] {
				continue
			}
			var d2 float64
			for k := 0; k < 3; k++ {
				d := S.Coords.At(i, k) - S.Coords.At(j, k)
				d2 += d * d
			}
			if math.Sqrt(d2) > cutoff {
				continue
			}
			p := CysPair{S.SegID[i], S.MolID[i], S.SegID[j], S.MolID[j]}
			pairs = append(pairs, p.canonical())
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].Seg1 != pairs[b].Seg1 {
			return pairs[a].Seg1 < pairs[b].Seg1
		}
		if pairs[a].Res1 != pairs[b].Res1 {
			return pairs[a].Res1 < pairs[b].Res1
		}
		if pairs[a].Seg2 != pairs[b].Seg2 {
			return pairs[a].Seg2 < pairs[b].Seg2
		}
		return pairs[a].Res2 < pairs[b].Res2
	})
	return pairs
}

//PatchDisulfides renames both residues of every pair to the bonded-cysteine
//variant CYX, records a bond between their SG atoms, and returns one pair of
//bond endpoints per bridge. The endpoints are the residues' sequence ids
//offset by the structure's first residue id minus one, which is the
//numbering tleap assigns to the residues of a loaded structure.
//PatchDisulfides must only run on a structure that will not be regenerated
//by ion placement afterwards: the returned numbering refers to this exact
//structure.
func PatchDisulfides(S *Structure, pairs []CysPair) ([][2]int, error) {
	if S.Len() == 0 {
		return nil, Error{NilStructure, Validation, "", []string{"PatchDisulfides"}, true}
	}
	uqseq := SequenceIDs(S)
	offset := S.MolID[0] - 1
	seen := make(map[CysPair]bool, len(pairs))
	bonds := make([][2]int, 0, len(pairs))
	for _, raw := range pairs {
		p := raw.canonical()
		if seen[p] {
			continue
		}
		seen[p] = true
		id1, sg1, err := patchResidue(S, uqseq, p.Seg1, p.Res1)
		if err != nil {
			return nil, errDecorate(err, "PatchDisulfides")
		}
		id2, sg2, err := patchResidue(S, uqseq, p.Seg2, p.Res2)
		if err != nil {
			return nil, errDecorate(err, "PatchDisulfides")
		}
		S.AddBond(sg1, sg2)
		bonds = append(bonds, [2]int{id1 + offset, id2 + offset})
	}
	return bonds, nil
}

//patchResidue renames one endpoint residue to CYX and returns its sequence
//id and the index of its SG atom.
func patchResidue(S *Structure, uqseq []int, seg string, resid int) (int, int, error) {
	sel := S.Select(func(i int) bool { return S.SegID[i] == seg && S.MolID[i] == resid })
	where := fmt.Sprintf("segid %s, resid %d", seg, resid)
	if len(sel) == 0 {
		return 0, 0, Error{"Disulfide pair names a residue with no atoms", Structural, where, []string{"patchResidue"}, true}
	}
	for _, i := range sel {
		if uqseq[i] != uqseq[sel[0]] {
			return 0, 0, Error{"Disulfide endpoint is not a single residue instance", Structural, where, []string{"patchResidue"}, true}
		}
	}
	S.SetMolNames("CYX", sel)
	sg := -1
	for _, i := range sel {
		if S.Name[i] == "SG" {
			sg = i
			break
		}
	}
	if sg < 0 {
		return 0, 0, Error{MissingSG, Structural, where, []string{"patchResidue"}, true}
	}
	return uqseq[sel[0]], sg, nil
}
