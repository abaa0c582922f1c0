package projection

import "math"

const (
	// FocalLength is the perspective distance in scene units.
	FocalLength = 800.0

	// ReferenceSize is the surface size at which one scene unit maps to one pixel.
	ReferenceSize = 800.0
)

// Point is a scene-space coordinate.
type Point struct {
	X, Y, Z float64
}

// Projected is a surface coordinate plus the rotated depth.
type Projected struct {
	X, Y  float64
	Depth float64
}

// Viewport is the size of the render surface in pixels.
type Viewport struct {
	Width, Height float64
}

// Center returns the surface midpoint.
func (vp Viewport) Center() (x, y float64) {
	return vp.Width / 2, vp.Height / 2
}

// BaseScale normalizes scene units against the smaller surface side.
func (vp Viewport) BaseScale() float64 {
	return math.Min(vp.Width, vp.Height) / ReferenceSize
}

// Project rotates p about the vertical axis by RotationY, then about the
// horizontal axis by RotationX, applies the perspective divide and maps the
// result onto the surface. Points at or behind the focal plane use a unit
// perspective factor instead of blowing up.
func Project(p Point, v ViewState, vp Viewport) Projected {
	rx := v.RotationX * math.Pi / 180
	ry := v.RotationY * math.Pi / 180
	sinX, cosX := math.Sincos(rx)
	sinY, cosY := math.Sincos(ry)

	// Yaw.
	x1 := p.X*cosY - p.Z*sinY
	z1 := p.X*sinY + p.Z*cosY

	// Pitch, applied to the yawed point.
	y1 := p.Y*cosX - z1*sinX
	z2 := p.Y*sinX + z1*cosX

	factor := perspective(z2)
	base := vp.BaseScale()
	cx, cy := vp.Center()

	out := Projected{
		X:     cx + (x1*base+v.PanX)*factor*v.Zoom,
		Y:     cy + (y1*base+v.PanY)*factor*v.Zoom,
		Depth: z2,
	}
	if !finite(out.X) || !finite(out.Y) {
		out.X, out.Y = cx, cy
	}
	return out
}

func perspective(depth float64) float64 {
	distance := FocalLength + depth
	if distance <= 0 || !finite(distance) {
		return 1
	}
	return FocalLength / distance
}

// Finite reports whether both surface coordinates are finite.
func (p Projected) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
