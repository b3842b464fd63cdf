/*
 * errors.go, part of goprep.
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

	chem "github.com/rmera/gochem"
)

//The kinds of fatal errors produced by this package. All of them
//abort the preparation; none is retried.
const (
	Validation   = "validation"
	Format       = "format"
	Structural   = "structural"
	Capacity     = "capacity"
	ExternalTool = "external tool"
)

//Error messages used by this package and the amber subpackage.
const (
	NotBijection      = "Permutation is not a bijection over the atom indexes"
	WrongLength       = "Per-atom arrays must all have one element per atom"
	MalformedRule     = "Malformed rule-table row"
	UnableToOpen      = "Unable to open file"
	NoCapCandidate    = "No unambiguous cap-candidate atom in terminal residue"
	SegmentsExhausted = "More than 999 terminal-bound groups. Cannot label separate segments for all of them"
	MissingSG         = "Residue in disulfide pair has no SG atom"
	NilStructure      = "Given a nil structure"
)

//Error is the general error type for the structure-preparation package.
//It fullfills chem.Error.
type Error struct {
	message  string
	kind     string //one of the kind constants above
	where    string //the file, segment or residue the problem refers to. Empty if none applies.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.where == "" {
		return fmt.Sprintf("goprep %s error: %s", err.kind, err.message)
	}
	return fmt.Sprintf("goprep %s error in %s: %s", err.kind, err.where, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns the kind of the error, one of the kind constants of this package.
func (err Error) Kind() string { return err.kind }

//Where returns the file, segment or residue associated to the error, if any.
func (err Error) Where() string { return err.where }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

var _ chem.Error = Error{}

//errDecorate asserts that the error implements chem.Error and decorates it
//with the caller's name before returning it. Panics on a non-chem.Error error.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}
