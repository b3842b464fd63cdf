package amber

import (
	"fmt"
	"io"
	"path/filepath"

	prep "github.com/rmera/goprep"
)

//WriteInput writes a tleap input script to w. The directive vocabulary and
//their order are a compatibility contract with tleap and are reproduced
//verbatim: sourced forcefields, ion/water parameters, user parameter and
//topology files (by basename, they are copied next to the script), the
//structure load, one bond directive per disulfide bridge, the save and the
//terminating quit. The bond endpoints are the tleap residue numbers computed
//by prep.PatchDisulfides.
func WriteInput(w io.Writer, O *Options, bonds [][2]int) error {
	var err error
	pr := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}
	pr("# tleap file generated by amber.Build\n")
	for _, force := range O.FF {
		pr("source %s\n", force)
	}
	pr("\n")
	pr("# Loading ions and TIP3P water parameters\n")
	pr("loadamberparams frcmod.ionsjc_tip3p\n\n")
	pr("# Loading parameter files\n")
	for _, p := range O.Param {
		pr("loadamberparams %s\n", filepath.Base(p))
	}
	pr("\n")
	pr("# Loading prepi topologies\n")
	for _, t := range O.Topo {
		pr("loadamberprep %s\n", filepath.Base(t))
	}
	pr("\n")
	pr("# Loading the system\n")
	pr("mol = loadpdb input.pdb\n\n")
	if len(bonds) > 0 {
		pr("# Adding disulfide bonds\n")
		for _, b := range bonds {
			pr("bond mol.%d.SG mol.%d.SG\n", b[0], b[1])
		}
		pr("\n")
	}
	pr("# Writing out the results\n")
	pr("saveamberparm mol %s.prmtop %s.crd\n", O.Prefix, O.Prefix)
	pr("quit")
	if err != nil {
		return Error{err.Error(), prep.ExternalTool, "tleap.in", []string{"WriteInput"}, true}
	}
	return nil
}
