package render

import (
	"fmt"
	"strings"
)

// BytesPerPixel is the size of one pixel in every supported format.
const BytesPerPixel = 4

// PixelFormat is the byte layout of raw frames handed to the encoder.
type PixelFormat int

const (
	// RGBA orders bytes red, green, blue, alpha.
	RGBA PixelFormat = iota
	// BGRA orders bytes blue, green, red, alpha. This is the in-memory layout
	// of a little-endian ARGB32 surface.
	BGRA
)

func (f PixelFormat) String() string {
	switch f {
	case RGBA:
		return "rgba"
	case BGRA:
		return "bgra"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// ParsePixelFormat parses a pixel format name as ffmpeg spells it.
func ParsePixelFormat(name string) (PixelFormat, error) {
	switch strings.ToLower(name) {
	case "rgba":
		return RGBA, nil
	case "bgra":
		return BGRA, nil
	default:
		return 0, fmt.Errorf("unsupported pixel format %q", name)
	}
}

// FrameSize is the length in bytes of one raw frame.
func FrameSize(width, height int) int {
	return width * height * BytesPerPixel
}
