package util

import "math"

// FrameCount is the number of frames in duration seconds at fps, rounded to
// the nearest frame. Non-positive inputs give zero frames.
func FrameCount(duration float64, fps int) int {
	if duration <= 0 || fps <= 0 {
		return 0
	}
	return int(math.Round(duration * float64(fps)))
}

// NormalizedTime maps frame index i of frames to [0, 1].
func NormalizedTime(i, frames int) float64 {
	if frames <= 0 {
		return 0
	}
	return float64(i) / float64(frames)
}
