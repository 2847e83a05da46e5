package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/matt-g-everett/curvemorph/shape"
)

// A Renderer draws one curve per frame onto a reusable surface.
type Renderer interface {
	// Render clears the surface and strokes the curve.
	Render(b shape.Bezier, style Style)
	// Pixels returns the surface as width×height×4 bytes. The slice is only
	// valid until the next Render.
	Pixels() []byte
	// Size reports the surface dimensions.
	Size() (width, height int)
}

// Canvas is a Renderer backed by a gg drawing context.
type Canvas struct {
	dc     *gg.Context
	img    *image.RGBA
	format PixelFormat
	out    []byte
}

// NewCanvas creates an instance of a Canvas.
func NewCanvas(width, height int, format PixelFormat) *Canvas {
	c := new(Canvas)
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.dc = gg.NewContextForRGBA(c.img)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.format = format
	if format != RGBA {
		c.out = make([]byte, len(c.img.Pix))
	}

	return c
}

// Size implements Renderer.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Render implements Renderer.
func (c *Canvas) Render(b shape.Bezier, style Style) {
	c.dc.SetColor(style.Background)
	c.dc.Clear()

	c.dc.SetColor(style.Stroke)
	c.dc.SetLineWidth(style.LineWidth)
	c.dc.NewSubPath()
	for i, p := range b.Polyline(shape.Precision) {
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
		} else {
			c.dc.LineTo(p.X, p.Y)
		}
	}
	c.dc.Stroke()
}

// Pixels implements Renderer.
func (c *Canvas) Pixels() []byte {
	if c.format == RGBA {
		return c.img.Pix
	}

	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += BytesPerPixel {
		c.out[i+0] = pix[i+2]
		c.out[i+1] = pix[i+1]
		c.out[i+2] = pix[i+0]
		c.out[i+3] = pix[i+3]
	}
	return c.out
}
