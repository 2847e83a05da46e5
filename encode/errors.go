package encode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSpawn means the encoder process could not be started.
	ErrSpawn = errors.New("unable to start encoder")
	// ErrWriteTimeout means a write to the encoder did not finish before its
	// deadline.
	ErrWriteTimeout = errors.New("encoder write timed out")
	// ErrClosed is returned for writes after Close.
	ErrClosed = errors.New("encoder input closed")
)

// ExitError reports an encoder that exited unsuccessfully. Killed is set when
// it was stopped after a write timeout.
type ExitError struct {
	Code   int
	Stderr string
	Killed bool
}

func (e *ExitError) Error() string {
	status := fmt.Sprintf("encoder exited with status %d", e.Code)
	if e.Killed {
		status = "encoder killed after stalling"
	}
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return status
	}
	return status + ": " + msg
}
