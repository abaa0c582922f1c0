package engine

import (
	"strings"

	"github.com/talgya/ghost-cookies/internal/projection"
)

// Navigation speeds per frame while a key is held, and the drag factor.
const (
	PanSpeed    = 2.0
	RotateSpeed = 1.0
	DragFactor  = 0.5
)

// Pointer buttons.
const (
	ButtonPrimary   = 0 // pan
	ButtonSecondary = 2 // rotate
)

// Key is a normalized key name.
type Key string

// Recognized keys.
const (
	KeyPanUp        Key = "w"
	KeyPanLeft      Key = "a"
	KeyPanDown      Key = "s"
	KeyPanRight     Key = "d"
	KeyRotateUp     Key = "arrowup"
	KeyRotateDown   Key = "arrowdown"
	KeyRotateLeft   Key = "arrowleft"
	KeyRotateRight  Key = "arrowright"
	KeyInstructions Key = "i"
)

// ParseKey normalizes a key name to lower case.
func ParseKey(name string) Key {
	return Key(strings.ToLower(strings.TrimSpace(name)))
}

// ZoomStep returns the zoom factor a key applies, or 0 when it is not a zoom key.
func (k Key) ZoomStep() float64 {
	switch k {
	case ",", "<":
		return projection.ZoomOutStep
	case ".", ">":
		return projection.ZoomInStep
	}
	return 0
}

// navigation is the per-frame effect of one held key.
type navigation struct {
	panX, panY float64
	pitch, yaw float64
}

var navKeys = map[Key]navigation{
	KeyPanUp:       {panY: -PanSpeed},
	KeyPanDown:     {panY: PanSpeed},
	KeyPanLeft:     {panX: -PanSpeed},
	KeyPanRight:    {panX: PanSpeed},
	KeyRotateUp:    {pitch: -RotateSpeed},
	KeyRotateDown:  {pitch: RotateSpeed},
	KeyRotateLeft:  {yaw: -RotateSpeed},
	KeyRotateRight: {yaw: RotateSpeed},
}

// Input tracks held keys and the instructions panel toggle.
type Input struct {
	held         map[Key]bool
	Instructions bool // auxiliary panel visibility, no effect on the scene
}

// NewInput creates an input tracker with nothing held.
func NewInput() *Input {
	return &Input{held: make(map[Key]bool)}
}

// Press records k as held. The instructions key toggles the panel.
func (in *Input) Press(k Key) {
	in.held[k] = true
	if k == KeyInstructions {
		in.Instructions = !in.Instructions
	}
}

// Release records k as no longer held.
func (in *Input) Release(k Key) {
	delete(in.held, k)
}

// Held reports whether k is down.
func (in *Input) Held(k Key) bool {
	return in.held[k]
}

// Navigating reports whether any navigation key is held.
func (in *Input) Navigating() bool {
	for k := range in.held {
		if _, ok := navKeys[k]; ok {
			return true
		}
	}
	return false
}

// ApplyNavigation applies one frame of held-key pan and rotate to v and
// reports whether anything changed.
func (in *Input) ApplyNavigation(v *projection.ViewState) bool {
	moved := false
	for k := range in.held {
		nav, ok := navKeys[k]
		if !ok {
			continue
		}
		v.Pan(nav.panX, nav.panY)
		v.Rotate(nav.pitch, nav.yaw)
		moved = true
	}
	return moved
}

// ApplyDrag feeds a pointer drag delta into v. The primary button pans and
// the secondary rotates; other buttons are ignored.
func ApplyDrag(v *projection.ViewState, button int, dx, dy float64) bool {
	switch button {
	case ButtonPrimary:
		v.Pan(dx*DragFactor, dy*DragFactor)
	case ButtonSecondary:
		v.Rotate(dy*DragFactor, dx*DragFactor)
	default:
		return false
	}
	return true
}

// ApplyWheel zooms out for a positive delta and in otherwise.
func ApplyWheel(v *projection.ViewState, deltaY float64) {
	if deltaY > 0 {
		v.ZoomBy(projection.ZoomOutStep)
		return
	}
	v.ZoomBy(projection.ZoomInStep)
}
