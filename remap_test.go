package prep

import (
	"fmt"
	"testing"
)

//the rule table of the concrete reordering scenario: residue X maps to
//residue Z with atom A1 first and atom A2 last, the last atom closing a
//terminal-bound group.
func xRules() RuleTable {
	return RuleTable{
		"X": {
			"A1": &Rule{"B1", "Z", 0, 2, false},
			"A2": &Rule{"B2", "Z", 1, 2, true},
		},
	}
}

func TestRemapOrdering(Te *testing.T) {
	//file order has A2 before A1; the rules must flip them.
	S := testStructure([]string{"A2", "A1"}, []string{"X", "X"}, []int{1, 1}, "P")
	m, err := Remap(S, xRules())
	if err != nil {
		Te.Fatal(err)
	}
	if S.Name[0] != "B1" || S.Name[1] != "B2" {
		Te.Errorf("atoms not reordered to rule positions: %v", S.Name)
	}
	if S.MolName[0] != "Z" || S.MolName[1] != "Z" {
		Te.Errorf("residue not renamed: %v", S.MolName)
	}
	//A2 carried x=0; it must now sit at index 1.
	if S.Coords.At(1, 0) != 0.0 {
		Te.Errorf("coordinates did not follow the remapped atoms")
	}
	if m.Beg[0] || !m.End[1] {
		Te.Errorf("wrong terminal markers: beg %v end %v", m.Beg, m.End)
	}
}

func TestRemapNoop(Te *testing.T) {
	S := testStructure([]string{"N", "CA", "C"}, []string{"GLY", "GLY", "GLY"}, []int{1, 1, 1}, "P")
	m, err := Remap(S, xRules()) //no GLY rules: nothing is governed
	if err != nil {
		Te.Fatal(err)
	}
	if S.Name[0] != "N" || S.Name[1] != "CA" || S.Name[2] != "C" {
		Te.Errorf("ungoverned structure was changed: %v", S.Name)
	}
	for i := 0; i < S.Len(); i++ {
		if S.Coords.At(i, 0) != float64(i) {
			Te.Errorf("ungoverned structure was reordered")
		}
		if m.Beg[i] || m.End[i] {
			Te.Errorf("ungoverned structure got terminal markers")
		}
	}
}

func TestRemapMixedResidue(Te *testing.T) {
	//an ungoverned atom inside a governed residue keeps its place by its
	//original offset in the group.
	S := testStructure([]string{"A2", "Q", "A1"}, []string{"X", "X", "X"}, []int{1, 1, 1}, "P")
	_, err := Remap(S, xRules())
	if err != nil {
		Te.Fatal(err)
	}
	//keys: A2->1, Q->offset 1, A1->0. Stable sort: B1, A2/Q tie in file order.
	if S.Name[0] != "B1" || S.Name[1] != "B2" || S.Name[2] != "Q" {
		Te.Errorf("unexpected order with ungoverned atom: %v", S.Name)
	}
	fmt.Println("mixed-residue order:", S.Name)
}

func TestResegment(Te *testing.T) {
	//two lipid-like groups of two atoms each; both boundary rules carry the
	//terminal flag, so each group is terminal-bound.
	table := RuleTable{
		"X": {
			"A1": &Rule{"B1", "Z", 0, 2, true},
			"A2": &Rule{"B2", "Z", 1, 2, true},
		},
	}
	S := testStructure([]string{"A1", "A2", "A1", "A2"}, []string{"X", "X", "X", "X"},
		[]int{4, 4, 9, 9}, "OLD")
	m, err := Remap(S, table)
	if err != nil {
		Te.Fatal(err)
	}
	if err := Resegment(S, m, "L"); err != nil {
		Te.Fatal(err)
	}
	if S.SegID[0] != "L1" || S.SegID[1] != "L1" || S.SegID[2] != "L2" || S.SegID[3] != "L2" {
		Te.Errorf("wrong segment labels: %v", S.SegID)
	}
	if S.MolID[0] != 1 || S.MolID[2] != 1 {
		Te.Errorf("residues not renumbered per segment: %v", S.MolID)
	}
}

func TestResegmentOverflow(Te *testing.T) {
	//1000 single-atom terminal-bound groups exhaust the 999-label space.
	n := 1000
	names := make([]string, n)
	molnames := make([]string, n)
	molids := make([]int, n)
	for i := range names {
		names[i] = "A1"
		molnames[i] = "X"
		molids[i] = i + 1
	}
	S := testStructure(names, molnames, molids, "OLD")
	m := &TerMarkers{Beg: make([]bool, n), End: make([]bool, n)}
	for i := 0; i < n; i++ {
		m.Beg[i] = true
		m.End[i] = true
	}
	err := Resegment(S, m, "L")
	if err == nil {
		Te.Fatal("expected a capacity error with 1000 groups")
	}
	if err.(Error).Kind() != Capacity {
		Te.Errorf("expected a %s error, got %s", Capacity, err.(Error).Kind())
	}
}
