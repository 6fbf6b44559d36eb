package install

import (
	"fmt"

	"github.com/minepkg/minelaunch/internals/progress"
)

// PlanningError is returned when the asset index could not be fetched or parsed
type PlanningError struct {
	Err error
}

func (e *PlanningError) Error() string { return "planning failed: " + e.Err.Error() }
func (e *PlanningError) Unwrap() error { return e.Err }

// PhaseError tells in which step an installation failed
type PhaseError struct {
	Step progress.Step
	Err  error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Step, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// ExternalToolError is returned when an installer process did not succeed
type ExternalToolError struct {
	Tool     string
	ExitCode int
	// Output is the combined output of the process (truncated)
	Output string
}

func (e *ExternalToolError) Error() string {
	if e.ExitCode == 0 {
		return fmt.Sprintf("%s did not report success", e.Tool)
	}
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
}
