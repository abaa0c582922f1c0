package render

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/ghost-cookies/internal/fractal"
	"github.com/talgya/ghost-cookies/internal/graph"
	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// Scene is everything one frame draws. The renderer only reads it.
type Scene struct {
	Archetype  shop.Archetype
	Operations []shop.Operation
	Blankets   []graph.Blanket
	Samples    []fractal.Sample
}

// Renderer draws scenes in a fixed back-to-front layer order.
type Renderer struct {
	Palette Palette

	noise opensimplex.Noise // fractal point depth wobble
}

// NewRenderer creates a renderer with the given palette. The seed only
// affects the fractal point cloud's wobble.
func NewRenderer(p Palette, seed int64) *Renderer {
	return &Renderer{
		Palette: p,
		noise:   opensimplex.New(seed),
	}
}

// WithPalette returns a copy of r drawing with p.
func (r *Renderer) WithPalette(p Palette) *Renderer {
	c := *r
	c.Palette = p
	return &c
}

// layer is one pass of the scene. Layers run in slice order and each is drawn
// completely before the next starts.
type layer struct {
	name string
	draw func(r *Renderer, s Surface, f *frame)
}

var layers = []layer{
	{"background", (*Renderer).drawBackground},
	{"grid", (*Renderer).drawGrid},
	{"operations", (*Renderer).drawOperations},
	{"blankets", (*Renderer).drawBlankets},
	{"fractal", (*Renderer).drawFractal},
	{"axes", (*Renderer).drawAxes},
}

// LayerNames returns the draw order.
func LayerNames() []string {
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.name
	}
	return names
}

// Render draws sc onto s as seen from view. sc may be nil, in which case only
// the background, grid and axes are drawn.
func (r *Renderer) Render(s Surface, sc *Scene, view projection.ViewState) {
	if sc == nil {
		sc = &Scene{}
	}
	w, h := s.Size()
	f := newFrame(sc, view, projection.Viewport{Width: w, Height: h})

	ResetState(s)
	for _, l := range layers {
		l.draw(r, s, f)
		ResetState(s)
	}
}

// frame carries the per-render geometry shared by the layers.
type frame struct {
	scene *Scene
	view  projection.ViewState
	vp    projection.Viewport
	scale float64 // half the smaller surface side
}

func newFrame(sc *Scene, view projection.ViewState, vp projection.Viewport) *frame {
	return &frame{
		scene: sc,
		view:  view,
		vp:    vp,
		scale: min(vp.Width, vp.Height) * 0.5,
	}
}

func (f *frame) project(p projection.Point) projection.Projected {
	return projection.Project(p, f.view, f.vp)
}

// operationPoint places operation index on the data axes:
// X = time, Y = efficiency, Z = cost.
func (f *frame) operationPoint(index int) projection.Point {
	ops := f.scene.Operations
	op := ops[index]
	n := float64(len(ops))
	return projection.Point{
		X: (float64(index)/n - 0.5) * f.scale * 1.5 * 2,
		Y: (op.Efficiency - 0.5) * f.scale,
		Z: (op.Cost - 0.5) * f.scale * 0.8,
	}
}

func (f *frame) operationPos(index int) projection.Projected {
	return f.project(f.operationPoint(index))
}
