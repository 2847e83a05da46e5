package shape

// Precision is the number of parameter steps used to approximate a curve with
// a polyline. Lower is faster and visibly polygonal.
const Precision = 35

// Bezier is a quadratic Bézier curve. Any three points form a valid curve,
// including collinear and coincident ones.
type Bezier struct {
	Start   Point `yaml:"start" json:"start"`
	Control Point `yaml:"control" json:"control"`
	End     Point `yaml:"end" json:"end"`
}

// PointAt evaluates the curve at t. The polynomial is not clamped to [0, 1].
func (b Bezier) PointAt(t float64) Point {
	mt := 1 - t
	a := mt * mt
	c := 2 * t * mt
	d := t * t

	return Point{
		X: b.Start.X*a + b.Control.X*c + b.End.X*d,
		Y: b.Start.Y*a + b.Control.Y*c + b.End.Y*d,
	}
}

// Interpolate morphs b towards o at linear progress t.
func (b Bezier) Interpolate(o Bezier, t float64) Bezier {
	return b.InterpolateWeighted(o, t, Linear)
}

// InterpolateWeighted morphs b towards o by interpolating each of the three
// control points with the same time and easing.
func (b Bezier) InterpolateWeighted(o Bezier, t float64, e Easing) Bezier {
	return Bezier{
		Start:   b.Start.InterpolateWeighted(o.Start, t, e),
		Control: b.Control.InterpolateWeighted(o.Control, t, e),
		End:     b.End.InterpolateWeighted(o.End, t, e),
	}
}

// Polyline samples the curve at n evenly spaced parameters i/n for i in
// [0, n). The end point itself is not sampled.
func (b Bezier) Polyline(n int) []Point {
	if n <= 0 {
		return nil
	}

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = b.PointAt(float64(i) / float64(n))
	}
	return points
}
