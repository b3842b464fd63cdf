package prep

import (
	"fmt"
	"testing"
)

//cysScenario builds one segment with CYS-GLY-CYS, the two SG atoms sitting
//2 A apart.
func cysScenario() *Structure {
	names := []string{
		"N", "CA", "CB", "SG", //resid 1
		"N", "CA", "C", //resid 2
		"N", "CA", "CB", "SG", //resid 3
	}
	molnames := []string{"CYS", "CYS", "CYS", "CYS", "GLY", "GLY", "GLY", "CYS", "CYS", "CYS", "CYS"}
	molids := []int{1, 1, 1, 1, 2, 2, 2, 3, 3, 3, 3}
	S := testStructure(names, molnames, molids, "P")
	for i := 0; i < S.Len(); i++ { //testStructure spreads the atoms on x
		S.Coords.Set(i, 0, 0.0)
	}
	S.Coords.Set(3, 0, 10.0)
	S.Coords.Set(10, 0, 12.0)
	return S
}

func TestDetectDisulfides(Te *testing.T) {
	S := cysScenario()
	pairs := DetectDisulfides(S, 0)
	if len(pairs) != 1 {
		Te.Fatalf("expected 1 disulfide pair, got %d", len(pairs))
	}
	want := CysPair{"P", 1, "P", 3}
	if pairs[0] != want {
		Te.Errorf("wrong pair: %+v", pairs[0])
	}
	//pulling the sulfurs apart should break the bridge
	S.Coords.Set(10, 0, 20.0)
	if len(DetectDisulfides(S, 0)) != 0 {
		Te.Errorf("distant sulfurs should not pair")
	}
}

func TestPatchDisulfides(Te *testing.T) {
	S := cysScenario()
	bonds, err := PatchDisulfides(S, []CysPair{{"P", 1, "P", 3}})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bonds) != 1 || bonds[0] != [2]int{1, 3} {
		Te.Errorf("wrong bond endpoints: %v", bonds)
	}
	for _, i := range []int{0, 3, 7, 10} {
		if S.MolName[i] != "CYX" {
			Te.Errorf("atom %d not renamed to CYX: %s", i, S.MolName[i])
		}
	}
	for _, i := range []int{4, 5, 6} {
		if S.MolName[i] != "GLY" {
			Te.Errorf("unpaired residue renamed: %s", S.MolName[i])
		}
	}
	if len(S.Bonds) != 1 || S.Bonds[0] != [2]int{3, 10} {
		Te.Errorf("SG-SG bond not recorded: %v", S.Bonds)
	}
	fmt.Println("patched bridge:", bonds)
}

func TestPatchDisulfidesSymmetry(Te *testing.T) {
	a := cysScenario()
	b := cysScenario()
	bondsA, err := PatchDisulfides(a, []CysPair{{"P", 1, "P", 3}})
	if err != nil {
		Te.Fatal(err)
	}
	bondsB, err := PatchDisulfides(b, []CysPair{{"P", 3, "P", 1}})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bondsA) != len(bondsB) || bondsA[0] != bondsB[0] {
		Te.Errorf("pair order changed the output: %v vs %v", bondsA, bondsB)
	}
	for i := 0; i < a.Len(); i++ {
		if a.MolName[i] != b.MolName[i] {
			Te.Errorf("pair order changed the renaming at atom %d", i)
			break
		}
	}
	//and both orders of the same bridge are one bridge, not two
	bondsC, err := PatchDisulfides(cysScenario(), []CysPair{{"P", 1, "P", 3}, {"P", 3, "P", 1}})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bondsC) != 1 {
		Te.Errorf("duplicated pair patched twice: %v", bondsC)
	}
}
