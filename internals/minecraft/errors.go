package minecraft

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrResolution matches every error returned while resolving a version
var ErrResolution = errors.New("version could not be resolved")

// MissingAncestorError is returned when a version in the inheritance chain can not be loaded
type MissingAncestorError struct {
	ID  string
	Err error
}

func (e *MissingAncestorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("version %s could not be loaded: %s", e.ID, e.Err)
	}
	return fmt.Sprintf("version %s could not be loaded", e.ID)
}

func (e *MissingAncestorError) Unwrap() error       { return e.Err }
func (e *MissingAncestorError) Is(target error) bool { return target == ErrResolution }

// CyclicInheritanceError is returned when a version (indirectly) inherits from itself
type CyclicInheritanceError struct {
	// Chain is the walked chain, starting with the leaf. The last id is the repeated one
	Chain []string
}

func (e *CyclicInheritanceError) Error() string {
	return "cyclic inheritance: " + strings.Join(e.Chain, " -> ")
}

func (e *CyclicInheritanceError) Is(target error) bool { return target == ErrResolution }

// IncompleteInstallationError is returned when the merged chain misses required fields
type IncompleteInstallationError struct {
	ID     string
	Reason string
}

func (e *IncompleteInstallationError) Error() string {
	return fmt.Sprintf("version %s is incomplete: %s", e.ID, e.Reason)
}

func (e *IncompleteInstallationError) Is(target error) bool { return target == ErrResolution }
