package stream

import (
	"fmt"

	"github.com/matt-g-everett/curvemorph/shape"
)

// Frame is one rendered step of the animation.
type Frame struct {
	Index  int
	Time   float64
	Curve  shape.Bezier
	Pixels []byte
}

// NewFrame creates a new Frame instance.
func NewFrame(index int, t float64, curve shape.Bezier, pixels []byte) *Frame {
	f := new(Frame)
	f.Index = index
	f.Time = t
	f.Curve = curve
	f.Pixels = pixels
	return f
}

// Bytes returns the raw pixel bytes, checking they are exactly size
// bytes long.
func (f *Frame) Bytes(size int) ([]byte, error) {
	if len(f.Pixels) != size {
		return nil, fmt.Errorf("%w: frame %d has %d bytes, want %d", ErrFrameSize, f.Index, len(f.Pixels), size)
	}
	return f.Pixels, nil
}
