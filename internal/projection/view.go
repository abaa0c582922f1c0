// Package projection maps scene-space points onto the 2D render surface.
// It holds the mutable ViewState and the stateless rotate/perspective transform.
package projection

import "math"

// Zoom limits and steps.
const (
	MinZoom     = 0.1
	MaxZoom     = 5.0
	ZoomInStep  = 1.1
	ZoomOutStep = 0.9
)

// Default view: a slight tilt that keeps the three axes readable.
const (
	DefaultRotationX = 15.0
	DefaultRotationY = 20.0
	DefaultZoom      = 1.2
)

// ViewState is the navigable camera. Angles are in degrees.
type ViewState struct {
	RotationX float64 `json:"rotation_x"` // pitch
	RotationY float64 `json:"rotation_y"` // yaw
	Zoom      float64 `json:"zoom"`
	PanX      float64 `json:"pan_x"`
	PanY      float64 `json:"pan_y"`
	Time      uint64  `json:"time"` // frame counter, only ever increases
}

// DefaultView returns the initial camera.
func DefaultView() ViewState {
	return ViewState{
		RotationX: DefaultRotationX,
		RotationY: DefaultRotationY,
		Zoom:      DefaultZoom,
	}
}

// Reset restores angles, zoom and pan to their defaults. Time is kept.
func (v *ViewState) Reset() {
	t := v.Time
	*v = DefaultView()
	v.Time = t
}

// Pan shifts the view by (dx, dy) surface units.
func (v *ViewState) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Rotate adds pitch and yaw in degrees.
func (v *ViewState) Rotate(pitch, yaw float64) {
	v.RotationX += pitch
	v.RotationY += yaw
}

// ZoomBy multiplies the zoom by factor and clamps the result.
func (v *ViewState) ZoomBy(factor float64) {
	v.Zoom = ClampZoom(v.Zoom * factor)
}

// ClampZoom pulls z into [MinZoom, MaxZoom]. Non-finite input yields the default zoom.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return DefaultZoom
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
