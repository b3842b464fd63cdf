/*
 * caps.go, part of goprep.
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
	"log"
	"sort"
)

//The standard aminoacidic residues. Used to decide which segments are
//polymer (protein) chains and get default caps.
var aminoAcid = map[string]bool{
	"SER": true,
	"THR": true,
	"ASN": true,
	"GLN": true,
	"SEC": true, //Selenocysteine!
	"CYS": true,
	"CYX": true,
	"GLY": true,
	"PRO": true,
	"ALA": true,
	"VAL": true,
	"ILE": true,
	"LEU": true,
	"MET": true,
	"PHE": true,
	"TYR": true,
	"TRP": true,
	"ARG": true,
	"HIS": true,
	"HID": true,
	"HIE": true,
	"HIP": true,
	"LYS": true,
	"ASP": true,
	"GLU": true,
}

//Residue names of the water models this package recognizes.
var waterRes = map[string]bool{
	"WAT":   true,
	"HOH":   true,
	"TIP3":  true,
	"TIP3P": true,
	"SPC":   true,
}

//IsAminoAcid reports whether resname is a standard aminoacidic residue.
func IsAminoAcid(resname string) bool {
	return aminoAcid[resname]
}

//IsWater reports whether resname is a water residue.
func IsWater(resname string) bool {
	return waterRes[resname]
}

//Atom names tried, in order, when looking for the single atom to convert
//into a cap. The XPLOR names for H2 and OXT are HT2 and OT1.
var (
	ntermNames    = []string{"H2", "HT2"}
	ntermFallback = "H"
	ctermNames    = []string{"OXT", "OT1"}
	ctermFallback = "O"
)

//DefaultCaps returns the default capping configuration for S: neutral ACE
//and NME caps for every segment holding protein residues, and nothing for
//any other segment. This might not be ideal for proteins which require
//charged terminals.
func DefaultCaps(S *Structure) map[string][2]string {
	caps := make(map[string][2]string)
	for i := 0; i < S.Len(); i++ {
		if aminoAcid[S.MolName[i]] {
			caps[S.SegID[i]] = [2]string{"ACE", "NME"}
		}
	}
	return caps
}

//ApplyCaps converts boundary atoms of each configured segment into synthetic
//terminal cap residues, the way tleap expects them: the spare N-terminal
//hydrogen becomes the C atom of the N-cap at resid min-1, the terminal
//oxygen becomes the N atom of the C-cap at resid max+1, both atoms are
//swapped to the physical extremes of the segment, and the two remaining
//spare hydrogens of the former first residue are removed. A segment that
//already carries both cap residues is skipped with a warning, so applying
//the same configuration twice is a no-op. Warnings go to logger; a nil
//logger selects log.Default().
func ApplyCaps(S *Structure, caps map[string][2]string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	segs := make([]string, 0, len(caps))
	for seg := range caps {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	for _, seg := range segs {
		ncap, ccap := caps[seg][0], caps[seg][1]
		already := len(S.Select(func(i int) bool { return S.SegID[i] == seg && S.MolName[i] == ncap })) > 0 &&
			len(S.Select(func(i int) bool { return S.SegID[i] == seg && S.MolName[i] == ccap })) > 0
		if already {
			logger.Printf("goprep: %s and %s caps already present on segid %s", ncap, ccap, seg)
			continue
		}
		segment := S.Select(func(i int) bool { return S.SegID[i] == seg })
		if len(segment) == 0 {
			return Error{"Cap configuration names a segment with no atoms", Structural, "segid " + seg, []string{"ApplyCaps"}, true}
		}
		segfirst := segment[0]
		seglast := segment[len(segment)-1]
		minres, maxres := S.MolID[segment[0]], S.MolID[segment[0]]
		for _, i := range segment {
			if S.MolID[i] < minres {
				minres = S.MolID[i]
			}
			if S.MolID[i] > maxres {
				maxres = S.MolID[i]
			}
		}
		nterm, err := capCandidate(S, seg, minres, ntermNames, ntermFallback, logger)
		if err != nil {
			return errDecorate(err, "ApplyCaps")
		}
		cterm, err := capCandidate(S, seg, maxres, ctermNames, ctermFallback, logger)
		if err != nil {
			return errDecorate(err, "ApplyCaps")
		}
		S.SetMolNames(ncap, []int{nterm})
		S.SetNames("C", []int{nterm})
		S.SetMolIDs(minres-1, []int{nterm})
		S.SetMolNames(ccap, []int{cterm})
		S.SetNames("N", []int{cterm})
		S.SetMolIDs(maxres+1, []int{cterm})
		//the caps go to the physical extremes of the segment.
		perm := make([]int, S.Len())
		for i := range perm {
			perm[i] = i
		}
		perm[nterm] = segfirst
		perm[segfirst] = nterm
		perm[cterm] = seglast
		perm[seglast] = cterm
		if err := S.Reorder(perm); err != nil {
			return errDecorate(err, "ApplyCaps")
		}
		torem := S.Select(func(i int) bool {
			if S.SegID[i] != seg || S.MolID[i] != minres {
				return false
			}
			n := S.Name[i]
			return n == "H1" || n == "H3" || n == "HT1" || n == "HT3"
		})
		if len(torem) != 2 {
			logger.Printf("goprep: segid %s, resid %d should have H[123] or HT[123] atoms. Capping in AMBER requires "+
				"hydrogens on the residues that will be capped; consider protonating the structure before building", seg, minres)
		}
		S.Remove(torem)
	}
	return nil
}

//capCandidate returns the index of the single atom of the given segment and
//residue whose name is in names, falling back (with a log message) to the
//fallback name. Zero or several matches after the fallback is a structural
//error naming the segment and residue.
func capCandidate(S *Structure, seg string, resid int, names []string, fallback string, logger *log.Logger) (int, error) {
	inres := func(i int) bool { return S.SegID[i] == seg && S.MolID[i] == resid }
	sel := S.Select(func(i int) bool {
		if !inres(i) {
			return false
		}
		for _, n := range names {
			if S.Name[i] == n {
				return true
			}
		}
		return false
	})
	if len(sel) == 1 {
		return sel[0], nil
	}
	sel = S.Select(func(i int) bool { return inres(i) && S.Name[i] == fallback })
	if len(sel) == 1 {
		logger.Printf("goprep: segid %s, resid %d has no %v atom, falling back to atom %s", seg, resid, names, fallback)
		return sel[0], nil
	}
	where := fmt.Sprintf("segid %s, resid %d", seg, resid)
	return -1, Error{NoCapCandidate, Structural, where, []string{"capCandidate"}, true}
}
