package render

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// Layer styling.
const (
	gridSpacing = 50.0
	gridAlpha   = 0.1

	surfaceWidth  = 3.0
	surfaceShadow = 8.0

	parentAlpha   = 0.6
	parentLift    = 5.0 // each successive parent link starts this much higher, times its depth
	spouseAlpha   = 0.4
	fractalAlpha  = 0.8
	fractalShadow = 5.0

	axisWidth   = 4.0
	axisShadow  = 10.0
	labelShadow = 8.0
	originSize  = 4.0
)

// Resource gradient: resources are normalized as (r - 50) / 150.
const (
	resourceOffset = 50.0
	resourceRange  = 150.0
)

var (
	spouseColor = rgb255(0, 255, 136, 0.3)
	labelPlate  = gg.RGBA2(0, 0, 0, 0.7)
)

func (r *Renderer) drawBackground(s Surface, f *frame) {
	s.SetFillColor(r.Palette.Background)
	s.FillRect(0, 0, f.vp.Width, f.vp.Height)
}

func (r *Renderer) drawGrid(s Surface, f *frame) {
	s.SetStrokeColor(r.Palette.Grid)
	s.SetLineWidth(1)
	s.SetAlpha(gridAlpha)

	for x := 0.0; x < f.vp.Width; x += gridSpacing {
		s.Line(x, 0, x, f.vp.Height)
	}
	for y := 0.0; y < f.vp.Height; y += gridSpacing {
		s.Line(0, y, f.vp.Width, y)
	}
}

// drawOperations draws the operation surface as a polyline, each segment
// coloured by the resources of its starting operation.
func (r *Renderer) drawOperations(s Surface, f *frame) {
	ops := f.scene.Operations
	if len(ops) < 2 {
		return
	}
	s.SetLineWidth(surfaceWidth)
	s.SetShadow(surfaceShadow, r.Palette.Foreground)

	prev := f.operationPos(0)
	for i := 0; i < len(ops)-1; i++ {
		next := f.operationPos(i + 1)
		s.SetStrokeColor(ResourceColor(ops[i].Resources))
		s.Line(prev.X, prev.Y, next.X, next.Y)
		prev = next
	}
}

// drawBlankets overlays dependency links: parents weighted by inefficiency on a
// red-green ramp, spouses as faint constant-colour lines.
func (r *Renderer) drawBlankets(s Surface, f *frame) {
	ops := f.scene.Operations
	for _, b := range f.scene.Blankets {
		if b.Operation < 0 || b.Operation >= len(ops) {
			continue
		}
		base := f.operationPos(b.Operation)

		s.SetStrokeColor(InefficiencyColor(b.Inefficiency))
		s.SetLineWidth(1 + b.Inefficiency*2)
		s.SetAlpha(parentAlpha)
		lift := 0.0
		for d, p := range b.Parents {
			if p < 0 || p >= len(ops) {
				continue
			}
			parent := f.operationPos(p)
			s.Line(base.X, base.Y-lift, parent.X, parent.Y)
			lift += parentLift * float64(d+1)
		}

		s.SetStrokeColor(spouseColor)
		s.SetLineWidth(1)
		s.SetAlpha(spouseAlpha)
		for _, sp := range b.Spouses {
			if sp < 0 || sp >= len(ops) {
				continue
			}
			spouse := f.operationPos(sp)
			s.Line(base.X, base.Y, spouse.X, spouse.Y)
		}

		s.SetAlpha(DefaultAlpha)
	}
}

// drawFractal draws the escape-time point cloud, each point pulsing with
// time and its density.
func (r *Renderer) drawFractal(s Surface, f *frame) {
	if f.scene.Archetype != shop.ArchFractal || len(f.scene.Operations) == 0 {
		return
	}
	t := float64(f.view.Time)
	s.SetAlpha(fractalAlpha)

	for i, pt := range f.scene.Samples {
		growth := math.Sin(t*0.01+pt.Density*10)*0.5 + 0.5
		wobble := r.wobble(i, t)

		pos := f.project(projection.Point{
			X: pt.X * 100,
			Y: pt.Y * 100,
			Z: pt.Density*50 - 25 + wobble,
		})

		col := HueColor(pt.Density*360 + t*2)
		s.SetFillColor(col)
		s.SetShadow(fractalShadow, col)
		s.Circle(pos.X, pos.Y, 2+growth*3)
	}
}

type axisLabel struct {
	text  string
	end   projection.Projected
	plate float64 // plate width
}

// drawAxes draws the three data axes with labels, fully opaque on top of everything.
func (r *Renderer) drawAxes(s Surface, f *frame) {
	length := f.scale
	origin := f.project(projection.Point{})
	xEnd := f.project(projection.Point{X: length})
	yEnd := f.project(projection.Point{Y: length})
	zEnd := f.project(projection.Point{Z: length})

	fg := r.Palette.Foreground
	s.SetAlpha(1)
	s.SetStrokeColor(fg)
	s.SetLineWidth(axisWidth)
	s.SetShadow(axisShadow, fg)

	for _, end := range []projection.Projected{xEnd, yEnd, zEnd} {
		if origin.Finite() && end.Finite() {
			s.Line(origin.X, origin.Y, end.X, end.Y)
		}
	}

	s.SetShadow(labelShadow, r.Palette.Background)
	for _, l := range []axisLabel{
		{"PERIODS →", xEnd, 120},
		{"↑ EFFICIENCY", yEnd, 140},
		{"COST →", zEnd, 100},
	} {
		if !l.end.Finite() {
			continue
		}
		s.SetFillColor(labelPlate)
		s.FillRect(l.end.X+5, l.end.Y-12, l.plate, 24)
		s.SetFillColor(fg)
		s.Text(l.text, l.end.X+10, l.end.Y)
	}

	s.SetFillColor(fg)
	s.Circle(origin.X, origin.Y, originSize)
}

// ResourceColor maps a resource amount onto the surface gradient.
func ResourceColor(resources float64) gg.RGBA {
	norm := (resources - resourceOffset) / resourceRange
	return rgb255(
		math.Floor(norm*255),
		math.Floor(255-norm*100),
		136,
		1,
	)
}

// InefficiencyColor ramps from dark green (0) to red (1).
func InefficiencyColor(ineff float64) gg.RGBA {
	return rgb255(math.Floor(ineff*255), math.Floor((1-ineff)*100), 0, 1)
}

// HueColor maps a hue in degrees to three phase-shifted sines.
func HueColor(hue float64) gg.RGBA {
	hue = math.Mod(hue, 360)
	channel := func(offset float64) float64 {
		return math.Floor(128 + math.Sin((hue+offset)*math.Pi/180)*127)
	}
	return rgb255(channel(0), channel(120), channel(240), 1)
}

// rgb255 builds a colour from 0-255 channels, clamping like a CSS rgb() string.
func rgb255(r, g, b, a float64) gg.RGBA {
	c := func(v float64) float64 { return math.Max(0, math.Min(255, v)) / 255 }
	return gg.RGBA2(c(r), c(g), c(b), a)
}
