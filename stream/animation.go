package stream

import (
	"github.com/matt-g-everett/curvemorph/render"
	"github.com/matt-g-everett/curvemorph/shape"
)

// An Animation computes what to draw at normalised time t.
type Animation interface {
	CalculateFrame(t float64) (shape.Bezier, render.Style)
}

// A Morph is an Animation that eases one curve into another. The stroke
// colour follows the same easing.
type Morph struct {
	transform shape.CurveTransform
	easing    shape.Easing
	style     render.Style
	blend     render.StrokeBlend
}

// NewMorph creates an instance of a Morph.
func NewMorph(transform shape.CurveTransform, easing shape.Easing, style render.Style, blend render.StrokeBlend) *Morph {
	m := new(Morph)
	m.transform = transform
	m.easing = easing
	m.style = style
	m.blend = blend

	return m
}

// CalculateFrame implements Animation.
func (m *Morph) CalculateFrame(t float64) (shape.Bezier, render.Style) {
	style := m.style
	style.Stroke = m.blend.At(m.easing.Ease(t))
	return m.transform.InterpolateWeighted(t, m.easing), style
}
