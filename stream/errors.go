package stream

import (
	"errors"
	"fmt"
)

// ErrFrameSize means the renderer produced a buffer of the wrong length.
var ErrFrameSize = errors.New("unexpected frame size")

// Stage names a step of a rendering run.
type Stage string

// Stages reported by StageError, in the order a run reaches them.
const (
	StageSpawn  Stage = "spawn encoder"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
	StageClose  Stage = "close encoder input"
	StageWait   Stage = "wait for encoder"
)

// StageError reports which stage of a run failed. Frame is zero for stages
// outside the frame loop.
type StageError struct {
	Stage Stage
	Frame int
	Err   error
}

func (e *StageError) Error() string {
	if e.Frame > 0 {
		return fmt.Sprintf("%s frame %d: %v", e.Stage, e.Frame, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
