package shape

import "fmt"

// Point is a 2D coordinate.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Interpolate returns the point on the line from p to o at linear progress t.
func (p Point) Interpolate(o Point, t float64) Point {
	return p.InterpolateWeighted(o, t, Linear)
}

// InterpolateWeighted returns the point on the line from p to o after passing
// t through the easing. Progress outside [0, 1] extrapolates.
func (p Point) InterpolateWeighted(o Point, t float64, e Easing) Point {
	progress := e.Ease(t)
	return Point{
		X: p.X + (o.X-p.X)*progress,
		Y: p.Y + (o.Y-p.Y)*progress,
	}
}
