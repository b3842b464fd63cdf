/*
 * amber_test.go, part of goprep.
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

package amber

import (
	"fmt"
	"os"
	"strings"
	"testing"

	prep "github.com/rmera/goprep"
)

func TestBuildDryRun(Te *testing.T) {
	S := solvatedScenario(2)
	O := DefaultOptions()
	O.Execute = false
	O.Caps = map[string][2]string{} //the test structure has no cap candidates
	O.OutDir = "../test/build"
	mol, err := Build(S, O)
	if err != nil {
		Te.Fatal(err)
	}
	if mol == nil || mol.Len() != S.Len() {
		Te.Fatalf("dry run should return the prepared structure")
	}
	script, err := os.ReadFile("../test/build/tleap.in")
	if err != nil {
		Te.Fatal(err)
	}
	for _, directive := range []string{"source leaprc.lipid14", "mol = loadpdb input.pdb", "saveamberparm mol structure.prmtop structure.crd", "quit"} {
		if !strings.Contains(string(script), directive) {
			Te.Errorf("tleap.in misses directive %q", directive)
		}
	}
	if fi, err := os.Stat("../test/build/input.pdb"); err != nil || fi.Size() == 0 {
		Te.Errorf("dry run did not write input.pdb")
	}
	fmt.Println("dry run wrote", len(script), "bytes of tleap input")
}

func TestBuildValidate(Te *testing.T) {
	//an atom without segid must be rejected before any work is done
	S := solvatedScenario(1)
	S.SetSegIDs("", []int{0})
	O := DefaultOptions()
	O.Execute = false
	O.Caps = map[string][2]string{}
	_, err := Build(S, O)
	if err == nil {
		Te.Fatal("structure with missing segids should not build")
	}
	if err.(Error).Kind() != prep.Validation {
		Te.Errorf("expected a %s error, got %s", prep.Validation, err.(Error).Kind())
	}
	//and so must a segment mixing protein and water
	S2 := solvatedScenario(1)
	S2.SetSegIDs("P", S2.Select(func(i int) bool { return true }))
	_, err = Build(S2, O)
	if err == nil {
		Te.Fatal("mixed protein/water segment should not build")
	}
	if !strings.Contains(err.Error(), "mixes") {
		Te.Errorf("unexpected error for a mixed segment: %s", err.Error())
	}
}

func TestBuildMissingTleap(Te *testing.T) {
	S := solvatedScenario(1)
	O := DefaultOptions()
	O.Caps = map[string][2]string{}
	O.Tleap = "tleap-binary-that-does-not-exist"
	O.OutDir = "../test/build"
	_, err := Build(S, O)
	if err == nil {
		Te.Fatal("a missing tleap executable should abort the build")
	}
	if err.(Error).Kind() != prep.ExternalTool {
		Te.Errorf("expected a %s error, got %s", prep.ExternalTool, err.(Error).Kind())
	}
}
