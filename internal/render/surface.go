// Package render draws the shop scene onto a 2D surface: reference grid,
// operation surface, dependency overlay, fractal point cloud and axes,
// back to front.
package render

import "github.com/gogpu/gg"

// Surface is the primitive drawing contract the scene renderer consumes.
// Implementations keep stroke/fill colour, line width, global alpha and shadow
// as mutable state applied to every subsequent primitive.
type Surface interface {
	Size() (width, height float64)

	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	Circle(x, y, r float64) // filled
	Text(s string, x, y float64)

	SetStrokeColor(c gg.RGBA)
	SetFillColor(c gg.RGBA)
	SetLineWidth(w float64)
	SetAlpha(a float64)
	SetShadow(blur float64, c gg.RGBA)
}

// Default render state, restored at the start and end of every scene.
const (
	DefaultLineWidth = 1.0
	DefaultAlpha     = 1.0
)

// ResetState puts s back to the default line width, full opacity and no shadow.
func ResetState(s Surface) {
	s.SetAlpha(DefaultAlpha)
	s.SetLineWidth(DefaultLineWidth)
	s.SetShadow(0, gg.Transparent)
}
