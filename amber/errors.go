package amber

import (
	"fmt"

	chem "github.com/rmera/gochem"
)

//Error is the error type for the build orchestrator. It fullfills
//chem.Error, and reuses the error kinds of the root goprep package.
type Error struct {
	message  string
	kind     string
	where    string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.where == "" {
		return fmt.Sprintf("goprep/amber %s error: %s", err.kind, err.message)
	}
	return fmt.Sprintf("goprep/amber %s error in %s: %s", err.kind, err.where, err.message)
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

//Kind returns the kind of the error, one of the kind constants of the root
//goprep package.
func (err Error) Kind() string { return err.kind }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

var _ chem.Error = Error{}

//errDecorate asserts that the error implements chem.Error and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}
