/*
 * amber.go, part of goprep.
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

//Package amber drives AmberTools' tleap to parameterize a structure prepared
//with the goprep root package: it converts naming conventions, resegments,
//caps terminals, patches disulfide bridges, writes the tleap input, runs the
//program and, optionally, ionizes the system and rebuilds it once.
//In order to use this package you need the tleap program from AmberTools.
package amber

import (
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	chem "github.com/rmera/gochem"
	prep "github.com/rmera/goprep"
)

//Options collects everything the user can configure for a build. The zero
//value is not usable; get one from DefaultOptions or call SetDefaults.
type Options struct {
	FF          []string             //leaprc forcefield files, sourced in order
	Topo        []string             //prepi topology files, copied into OutDir
	Param       []string             //frcmod parameter files, copied into OutDir
	Prefix      string               //prefix of the generated prmtop/crd pair
	OutDir      string               //output directory, created if absent
	RuleTable   string               //naming-conversion table; empty skips the conversion
	SegPrefix   string               //segment-label prefix used when resegmenting
	Caps        map[string][2]string //cap residues per segid. nil: default caps. Empty map: no caps.
	Ionize      bool                 //neutralize and add salt, then rebuild once
	SaltConc    float64              //salt concentration in mol/L, on top of neutralization
	SaltAnion   string               //anion species, AMBER naming
	SaltCation  string               //cation species, AMBER naming
	NetCharge   float64              //total system charge, used to neutralize
	AtomCharges []float64            //per-atom charges; when given, they replace NetCharge
	Disulfides  []prep.CysPair       //explicit disulfide pairs. nil: detect by distance
	Tleap       string               //the tleap executable
	Execute     bool                 //false writes the inputs and stops (dry run)
	Logger      *log.Logger          //destination for warnings. nil: log.Default()
}

//SetDefaults fills O with the default build configuration: the lipid14,
//ff14SB and gaff forcefields, prefix "structure" in the working directory,
//Cl-/Na+ salt, tleap taken from the PATH, and execution enabled.
func (O *Options) SetDefaults() {
	O.FF = []string{"leaprc.lipid14", "leaprc.ff14SB", "leaprc.gaff"}
	O.Prefix = "structure"
	O.OutDir = "."
	O.SegPrefix = "L"
	O.SaltAnion = "Cl-"
	O.SaltCation = "Na+"
	O.Tleap = "tleap"
	O.Execute = true
}

//DefaultOptions returns an Options with the defaults set.
func DefaultOptions() *Options {
	O := new(Options)
	O.SetDefaults()
	return O
}

//Build prepares S and runs tleap on it, returning the structure that was
//handed to the engine. The stages are: purge stale artifacts, validate,
//convert naming conventions (when a rule table is configured), resegment,
//apply terminal caps, patch disulfides, write tleap.in and input.pdb, run
//tleap and check its outputs. With ionization enabled the first pass skips
//disulfides, computes the ion content from the system charge and the water
//count, replaces waters by ions in a freshly built structure, and restarts
//the whole pipeline exactly once, with capping disabled and disulfide
//patching enabled. Any stage failure aborts the build; nothing is retried.
func Build(S *prep.Structure, O *Options) (*prep.Structure, error) {
	if O == nil {
		O = DefaultOptions()
	}
	logger := O.Logger
	if logger == nil {
		logger = log.Default()
	}
	if S == nil {
		return nil, Error{prep.NilStructure, prep.Validation, "", []string{"Build"}, true}
	}
	if O.Execute {
		if _, err := exec.LookPath(O.Tleap); err != nil {
			return nil, Error{"Could not find executable " + O.Tleap + " in the PATH. Cannot build for AMBER", prep.ExternalTool, O.Tleap, []string{"Build"}, true}
		}
	}
	if err := os.MkdirAll(O.OutDir, 0755); err != nil {
		return nil, Error{err.Error(), prep.ExternalTool, O.OutDir, []string{"Build"}, true}
	}
	mol := S.Copy()
	//tleap regenerates the covalent bonds; stale bond records would refer to
	//pre-conversion indexes anyway.
	mol.Bonds = mol.Bonds[:0]
	caps := O.Caps
	ionize := O.Ionize
	disulfides := O.Disulfides
	//The ionization rebuild is a single planned second pass, not a retry
	//loop: the bound below is part of the contract.
	const maxPasses = 2
	for pass := 0; pass < maxPasses; pass++ {
		purgeOutDir(O)
		if err := validate(mol); err != nil {
			return nil, errDecorate(err, "Build")
		}
		if O.RuleTable != "" {
			table, err := prep.ReadRuleTable(O.RuleTable)
			if err != nil {
				return nil, errDecorate(err, "Build")
			}
			markers, err := prep.Remap(mol, table)
			if err != nil {
				return nil, errDecorate(err, "Build")
			}
			if err := prep.Resegment(mol, markers, O.SegPrefix); err != nil {
				return nil, errDecorate(err, "Build")
			}
		} else {
			logger.Printf("goprep/amber: no naming-conversion table configured, skipping conversion")
		}
		if caps == nil {
			caps = prep.DefaultCaps(mol)
		}
		if err := prep.ApplyCaps(mol, caps, logger); err != nil {
			return nil, errDecorate(err, "Build")
		}
		var bonds [][2]int
		if !ionize {
			//Disulfides are only patched on a pass whose structure will not
			//be regenerated by ion placement: the bond records refer to this
			//exact structure.
			pairs := disulfides
			if pairs == nil {
				logger.Printf("goprep/amber: detecting disulfide bonds")
				pairs = prep.DetectDisulfides(mol, 0)
			}
			var err error
			bonds, err = prep.PatchDisulfides(mol, pairs)
			if err != nil {
				return nil, errDecorate(err, "Build")
			}
		}
		if err := writeInputs(mol, O, bonds); err != nil {
			return nil, errDecorate(err, "Build")
		}
		if !O.Execute {
			return mol, nil
		}
		if err := runTleap(O); err != nil {
			return nil, errDecorate(err, "Build")
		}
		if !ionize {
			return mol, nil //Finalize
		}
		//IonizeRebuild
		charge, nwater := systemCharge(mol, O)
		nanion, ncation := ionCounts(charge, nwater, O.SaltConc)
		logger.Printf("goprep/amber: adding %d %s and %d %s ions, rebuilding once", nanion, O.SaltAnion, ncation, O.SaltCation)
		newmol, err := placeIons(mol, nanion, ncation, O.SaltAnion, O.SaltCation)
		if err != nil {
			return nil, errDecorate(err, "Build")
		}
		if err := stashNoIons(O); err != nil {
			return nil, errDecorate(err, "Build")
		}
		mol = newmol
		ionize = false
		caps = map[string][2]string{} //the rebuilt structure is already capped
		//an explicit disulfide list is carried to the second pass, so user
		//overrides survive the rebuild.
	}
	//unreachable: the second pass always finalizes or fails.
	return mol, nil
}

//validate checks the structure invariants the rest of the pipeline relies
//on: consistent array lengths, no atom without a segment id, and no segment
//mixing protein with water residues.
func validate(S *prep.Structure) error {
	if err := S.Check(); err != nil {
		return errDecorate(err, "validate")
	}
	mixed := make(map[string]int) //1: protein seen, 2: water seen
	for i := 0; i < S.Len(); i++ {
		if S.SegID[i] == "" {
			return Error{"Atoms with no segment id present. Assign segids before building", prep.Validation, "", []string{"validate"}, true}
		}
		if prep.IsAminoAcid(S.MolName[i]) {
			mixed[S.SegID[i]] |= 1
		}
		if prep.IsWater(S.MolName[i]) {
			mixed[S.SegID[i]] |= 2
		}
	}
	for seg, m := range mixed {
		if m == 3 {
			return Error{"Segment mixes protein and water residues", prep.Validation, "segid " + seg, []string{"validate"}, true}
		}
	}
	return nil
}

//purgeOutDir removes the artifacts a previous (or superseded) run may have
//left in the output directory, so no later read can pick stale output.
func purgeOutDir(O *Options) {
	for _, f := range []string{O.Prefix + ".prmtop", O.Prefix + ".crd", "tleap.in", "input.pdb", "log.txt"} {
		os.Remove(filepath.Join(O.OutDir, f))
	}
}

//stashNoIons moves the outputs of the pre-ionization pass aside, so the
//rebuild cannot be confused with them.
func stashNoIons(O *Options) error {
	for _, ext := range []string{".prmtop", ".crd"} {
		from := filepath.Join(O.OutDir, O.Prefix+ext)
		to := filepath.Join(O.OutDir, O.Prefix+".noions"+ext)
		if err := os.Rename(from, to); err != nil {
			return Error{err.Error(), prep.ExternalTool, from, []string{"stashNoIons"}, true}
		}
	}
	return nil
}

//writeInputs writes tleap.in and input.pdb into the output directory, and
//copies the user topology and parameter files next to them.
func writeInputs(S *prep.Structure, O *Options, bonds [][2]int) error {
	for _, f := range append(append([]string{}, O.Param...), O.Topo...) {
		if err := copyFile(f, filepath.Join(O.OutDir, filepath.Base(f))); err != nil {
			return err
		}
	}
	f, err := os.Create(filepath.Join(O.OutDir, "tleap.in"))
	if err != nil {
		return Error{err.Error(), prep.ExternalTool, O.OutDir, []string{"writeInputs"}, true}
	}
	defer f.Close()
	if err := WriteInput(f, O, bonds); err != nil {
		return err
	}
	pdbname := filepath.Join(O.OutDir, "input.pdb")
	if err := chem.PDBFileWrite(pdbname, S.Coords, S.Topology(), nil); err != nil {
		return Error{"Could not write a PDB file out of the given structure: " + err.Error(), prep.ExternalTool, pdbname, []string{"writeInputs"}, true}
	}
	return nil
}

//runTleap executes tleap in the output directory, sending its output to
//log.txt, and checks that the expected artifacts exist and are not empty.
//A failed run is fatal and never retried.
func runTleap(O *Options) error {
	logpath := filepath.Join(O.OutDir, "log.txt")
	logf, err := os.Create(logpath)
	if err != nil {
		return Error{err.Error(), prep.ExternalTool, logpath, []string{"runTleap"}, true}
	}
	defer logf.Close()
	cmd := exec.Command(O.Tleap, "-f", "./tleap.in")
	cmd.Dir = O.OutDir
	cmd.Stdout = logf
	cmd.Stderr = logf
	if err := cmd.Run(); err != nil {
		return Error{"tleap failed at execution: " + err.Error(), prep.ExternalTool, logpath, []string{"runTleap"}, true}
	}
	for _, ext := range []string{".prmtop", ".crd"} {
		out := filepath.Join(O.OutDir, O.Prefix+ext)
		fi, err := os.Stat(out)
		if err != nil || fi.Size() == 0 {
			return Error{"No " + ext + " file was generated. Check " + logpath + " for errors in building", prep.ExternalTool, out, []string{"runTleap"}, true}
		}
	}
	return nil
}

func copyFile(from, to string) error {
	if abs1, err := filepath.Abs(from); err == nil {
		if abs2, err := filepath.Abs(to); err == nil && abs1 == abs2 {
			return nil //the file already sits in the output directory
		}
	}
	src, err := os.Open(from)
	if err != nil {
		return Error{err.Error(), prep.ExternalTool, from, []string{"copyFile"}, true}
	}
	defer src.Close()
	dst, err := os.Create(to)
	if err != nil {
		return Error{err.Error(), prep.ExternalTool, to, []string{"copyFile"}, true}
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return Error{err.Error(), prep.ExternalTool, to, []string{"copyFile"}, true}
	}
	return nil
}
