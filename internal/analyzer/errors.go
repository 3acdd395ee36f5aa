package analyzer

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound reports that the supplied root path does not exist. It is
// one of the two fatal error kinds; everything else is recovered
// locally and surfaced only through logs and counts.
var ErrNotFound = errors.New("path does not exist")

// ErrNotDirectory reports that the supplied root path exists but is not
// a directory.
var ErrNotDirectory = errors.New("path is not a directory")

// validateRoot checks the two fatal preconditions shared by every
// analyzer entry point.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}
