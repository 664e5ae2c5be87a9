package timer

import (
	"errors"
	"fmt"

	"github.com/ptrack/beats/internal/domain/beat"
)

var (
	// ErrNoActiveTimer indicates stop was attempted with no timer running.
	ErrNoActiveTimer = errors.New("no timer is currently running")
	// ErrTimerAlreadyRunning indicates start was attempted while another
	// beat is active. Errors carrying the conflicting beat wrap this.
	ErrTimerAlreadyRunning = errors.New("a timer is already running")
	// ErrProjectNotFound indicates the target project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
)

// AlreadyRunningError reports the conflicting active beat for diagnostics.
type AlreadyRunningError struct {
	Active beat.Beat
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("a timer is already running for project %s (beat %s)", e.Active.ProjectID, e.Active.ID)
}

func (e *AlreadyRunningError) Unwrap() error {
	return ErrTimerAlreadyRunning
}
