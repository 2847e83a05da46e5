package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColour parses a "#rrggbb" colour.
func ParseColour(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colour %q: %w", hex, err)
	}
	return c, nil
}

// Style describes how a curve is painted.
type Style struct {
	Background colorful.Color
	Stroke     colorful.Color
	LineWidth  float64
}

// DefaultStyle is black 1px on white.
func DefaultStyle() Style {
	return Style{
		Background: colorful.Color{R: 1, G: 1, B: 1},
		Stroke:     colorful.Color{R: 0, G: 0, B: 0},
		LineWidth:  1,
	}
}

// StrokeBlend fades the stroke colour between two styles.
type StrokeBlend struct {
	From colorful.Color
	To   colorful.Color
}

// At returns the stroke colour for eased progress p. Blending is done in HCL
// so intermediate colours keep a steady lightness.
func (b StrokeBlend) At(p float64) colorful.Color {
	if b.From == b.To {
		return b.From
	}
	return b.From.BlendHcl(b.To, p).Clamped()
}
