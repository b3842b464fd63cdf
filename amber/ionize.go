package amber

import (
	"math"
	"strings"

	prep "github.com/rmera/goprep"
	"gonum.org/v1/gonum/floats"
)

//The molarity of water, used to translate a salt concentration into a number
//of ion pairs per water molecule.
const waterMolarity = 55.345

//systemCharge returns the total charge to neutralize and the number of water
//molecules in S. The charge comes from the per-atom charges when the caller
//supplied them, from the NetCharge option otherwise; reading it out of the
//engine output is the caller's business, not ours.
func systemCharge(S *prep.Structure, O *Options) (float64, int) {
	charge := O.NetCharge
	if O.AtomCharges != nil {
		charge = floats.Sum(O.AtomCharges)
	}
	return charge, countWaters(S)
}

//countWaters counts water molecules (not atoms) by scanning residue
//instances.
func countWaters(S *prep.Structure) int {
	seq := prep.SequenceIDs(S)
	n := 0
	last := -1
	for i := 0; i < S.Len(); i++ {
		if prep.IsWater(S.MolName[i]) && seq[i] != last {
			n++
			last = seq[i]
		}
	}
	return n
}

//ionCounts returns how many anions and cations to add: enough to neutralize
//charge, plus one pair per round(saltconc*nwater/55.345) for the requested
//salt concentration.
func ionCounts(charge float64, nwater int, saltconc float64) (nanion, ncation int) {
	c := int(math.Round(charge))
	if c > 0 {
		nanion = c
	} else {
		ncation = -c
	}
	if saltconc > 0 && nwater > 0 {
		pairs := int(math.Round(saltconc * float64(nwater) / waterMolarity))
		nanion += pairs
		ncation += pairs
	}
	return nanion, ncation
}

//placeIons builds a new structure from S with nanion+ncation water molecules
//replaced by single-atom ion residues. The replaced waters are taken evenly
//spaced over the solvent, and each ion sits on the oxygen site of the water
//it replaces, on segment ION. The original structure is not touched: the
//rebuild pass starts from the value returned here.
func placeIons(S *prep.Structure, nanion, ncation int, anion, cation string) (*prep.Structure, error) {
	total := nanion + ncation
	if total == 0 {
		return S.Copy(), nil
	}
	seq := prep.SequenceIDs(S)
	//first atom of every water residue; with TIP3-like waters that is the
	//oxygen site.
	sites := make([]int, 0)
	last := -1
	for i := 0; i < S.Len(); i++ {
		if prep.IsWater(S.MolName[i]) && seq[i] != last {
			sites = append(sites, i)
			last = seq[i]
		}
	}
	if len(sites) < total {
		return nil, Error{"Not enough water molecules to place the requested ions", prep.Structural, "", []string{"placeIons"}, true}
	}
	step := float64(len(sites)) / float64(total)
	chosen := make([]int, total) //index into sites
	replaced := make(map[int]bool, total)
	for k := 0; k < total; k++ {
		s := int(float64(k) * step)
		for replaced[s] { //guard against rounding collisions
			s++
		}
		replaced[s] = true
		chosen[k] = s
	}
	gone := make(map[int]bool, total) //sequence ids of the waters to drop
	for s := range replaced {
		gone[seq[sites[s]]] = true
	}
	kept := S.Copy()
	kept.Remove(S.Select(func(i int) bool { return gone[seq[i]] }))
	N := prep.NewStructure(kept.Len() + total)
	copy(N.Name, kept.Name)
	copy(N.MolName, kept.MolName)
	copy(N.MolID, kept.MolID)
	copy(N.Insertion, kept.Insertion)
	copy(N.Chain, kept.Chain)
	copy(N.SegID, kept.SegID)
	copy(N.Symbol, kept.Symbol)
	copy(N.Tag, kept.Tag)
	for i := 0; i < kept.Len(); i++ {
		for k := 0; k < 3; k++ {
			N.Coords.Set(i, k, kept.Coords.At(i, k))
		}
	}
	for k := 0; k < total; k++ {
		species := anion
		if k >= nanion {
			species = cation
		}
		at := kept.Len() + k
		N.Name[at] = species
		N.MolName[at] = species
		N.MolID[at] = k + 1
		N.SegID[at] = "ION"
		N.Symbol[at] = strings.TrimRight(species, "+-0123456789")
		site := sites[chosen[k]]
		for c := 0; c < 3; c++ {
			N.Coords.Set(at, c, S.Coords.At(site, c))
		}
	}
	return N, nil
}
