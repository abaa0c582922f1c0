package engine

import (
	"log/slog"

	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// State is the animation state.
type State uint8

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Scheduler runs at most one pending frame callback at the next frame
// boundary. Schedule replaces any pending callback; Cancel drops it.
type Scheduler interface {
	Schedule(frame func())
	Cancel()
}

// Presenter receives every rendered frame.
type Presenter interface {
	Present(sc *render.Scene, view projection.ViewState)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(sc *render.Scene, view projection.ViewState)

// Present calls f.
func (f PresenterFunc) Present(sc *render.Scene, view projection.ViewState) { f(sc, view) }

// SurfacePresenter draws every frame onto one surface.
func SurfacePresenter(r *render.Renderer, s render.Surface) Presenter {
	return PresenterFunc(func(sc *render.Scene, view projection.ViewState) {
		r.Render(s, sc, view)
	})
}

// Driver is the animation state machine. While running, each frame applies
// held-key navigation, renders, advances time and schedules the next frame.
// While paused, frames render only on request.
type Driver struct {
	session *Session
	sched   Scheduler
	present Presenter

	state   State
	pending bool
	frames  uint64
}

// NewDriver creates a driver in the running state. Nothing is scheduled
// until Start.
func NewDriver(s *Session, sched Scheduler, p Presenter) *Driver {
	return &Driver{
		session: s,
		sched:   sched,
		present: p,
		state:   Running,
	}
}

// Session returns the driven session.
func (d *Driver) Session() *Session { return d.session }

// State returns the current animation state.
func (d *Driver) State() State { return d.state }

// Frames returns how many frames have been rendered.
func (d *Driver) Frames() uint64 { return d.frames }

// Start renders the first frame and, when running, begins the frame chain.
func (d *Driver) Start() {
	if d.state == Running {
		d.frame()
		return
	}
	d.render()
}

// Toggle cancels any pending frame and flips between running and paused.
// Resuming renders immediately and restarts the frame chain.
func (d *Driver) Toggle() State {
	d.cancel()
	if d.state == Running {
		d.state = Paused
	} else {
		d.state = Running
		d.frame()
	}
	slog.Debug("animation toggled", "state", d.state, "time", d.session.View.Time)
	return d.state
}

// RequestRender renders once when paused. While running the next frame
// picks up the change.
func (d *Driver) RequestRender() {
	if d.state == Paused {
		d.render()
	}
}

// PollNavigation schedules a single navigation frame when paused with
// navigation keys held. That frame does not schedule another.
func (d *Driver) PollNavigation() {
	if d.state != Paused || d.pending || !d.session.Input.Navigating() {
		return
	}
	d.schedule(d.navigate)
}

// KeyDown handles a key press. Zoom keys step the zoom at once; navigation
// keys take effect on the next frame.
func (d *Driver) KeyDown(name string) Key {
	k := ParseKey(name)
	d.session.Input.Press(k)
	if step := k.ZoomStep(); step != 0 {
		d.session.View.ZoomBy(step)
		d.RequestRender()
	}
	d.PollNavigation()
	return k
}

// KeyUp handles a key release.
func (d *Driver) KeyUp(name string) Key {
	k := ParseKey(name)
	d.session.Input.Release(k)
	return k
}

// Drag feeds a pointer drag into the view.
func (d *Driver) Drag(button int, dx, dy float64) {
	if ApplyDrag(&d.session.View, button, dx, dy) {
		d.RequestRender()
	}
}

// Wheel feeds a wheel delta into the zoom.
func (d *Driver) Wheel(deltaY float64) {
	ApplyWheel(&d.session.View, deltaY)
	d.RequestRender()
}

// Pan shifts the view.
func (d *Driver) Pan(dx, dy float64) {
	d.session.View.Pan(dx, dy)
	d.RequestRender()
}

// Rotate adds pitch and yaw in degrees.
func (d *Driver) Rotate(pitch, yaw float64) {
	d.session.View.Rotate(pitch, yaw)
	d.RequestRender()
}

// Zoom multiplies the zoom by factor.
func (d *Driver) Zoom(factor float64) {
	d.session.View.ZoomBy(factor)
	d.RequestRender()
}

// ResetView restores the default camera, keeping time.
func (d *Driver) ResetView() {
	d.session.View.Reset()
	d.RequestRender()
}

// Reconfigure applies next to the session and reports whether it regenerated.
func (d *Driver) Reconfigure(next shop.Config) (bool, error) {
	regenerated, err := d.session.Apply(next)
	if err != nil {
		return false, err
	}
	d.RequestRender()
	return regenerated, nil
}

// SetThreshold changes the threshold. Only metrics are recomputed.
func (d *Driver) SetThreshold(t float64) error {
	return d.session.SetThreshold(t)
}

func (d *Driver) frame() {
	d.pending = false
	d.session.Input.ApplyNavigation(&d.session.View)
	d.render()
	if d.state == Running {
		d.session.View.Time++
		d.schedule(d.frame)
	}
}

func (d *Driver) navigate() {
	d.pending = false
	if d.session.Input.ApplyNavigation(&d.session.View) {
		d.render()
	}
}

func (d *Driver) render() {
	d.present.Present(d.session.Scene(), d.session.View)
	d.frames++
}

func (d *Driver) schedule(fn func()) {
	d.pending = true
	d.sched.Schedule(fn)
}

func (d *Driver) cancel() {
	d.pending = false
	d.sched.Cancel()
}
