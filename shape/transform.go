package shape

// CurveTransform morphs one Bezier into another.
type CurveTransform struct {
	From Bezier `yaml:"from" json:"from"`
	To   Bezier `yaml:"to" json:"to"`
}

// NewCurveTransform creates an instance of a CurveTransform.
func NewCurveTransform(from, to Bezier) CurveTransform {
	return CurveTransform{From: from, To: to}
}

// Interpolate returns the curve at linear progress t.
func (c CurveTransform) Interpolate(t float64) Bezier {
	return c.From.Interpolate(c.To, t)
}

// InterpolateWeighted returns the curve at time t under the easing.
func (c CurveTransform) InterpolateWeighted(t float64, e Easing) Bezier {
	return c.From.InterpolateWeighted(c.To, t, e)
}
