package render

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomonobold"
)

// LabelSize is the axis label font size in points.
const LabelSize = 18.0

// shadowAlpha scales the halo drawn under primitives while a shadow is set.
const shadowAlpha = 0.25

var (
	labelFontOnce sync.Once
	labelFont     *text.FontSource
	labelFontErr  error
)

func loadLabelFont() (*text.FontSource, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = text.NewFontSource(gomonobold.TTF)
	})
	return labelFont, labelFontErr
}

// Canvas is a Surface backed by a gogpu/gg raster context. gg has no global
// alpha or shadow, so Canvas folds alpha into every colour and approximates a
// shadow blur with a wider translucent halo under each primitive.
type Canvas struct {
	dc *gg.Context

	stroke      gg.RGBA
	fill        gg.RGBA
	lineWidth   float64
	alpha       float64
	shadowBlur  float64
	shadowColor gg.RGBA

	err error // first rasterizer error
}

// NewCanvas allocates a width×height canvas with the label font loaded.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d: must be positive", width, height)
	}
	font, err := loadLabelFont()
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetFont(font.Face(LabelSize))

	c := &Canvas{
		dc:     dc,
		stroke: gg.Black,
		fill:   gg.Black,
	}
	ResetState(c)
	return c, nil
}

// Size implements Surface.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

// SetStrokeColor implements Surface.
func (c *Canvas) SetStrokeColor(col gg.RGBA) { c.stroke = col }

// SetFillColor implements Surface.
func (c *Canvas) SetFillColor(col gg.RGBA) { c.fill = col }

// SetLineWidth implements Surface.
func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }

// SetAlpha implements Surface. Values are clamped to [0, 1].
func (c *Canvas) SetAlpha(a float64) { c.alpha = math.Max(0, math.Min(1, a)) }

// SetShadow implements Surface. A blur of zero disables the halo.
func (c *Canvas) SetShadow(blur float64, col gg.RGBA) {
	c.shadowBlur = math.Max(0, blur)
	c.shadowColor = col
}

// FillRect implements Surface.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.setColor(c.fill, 1)
	c.dc.DrawRectangle(x, y, w, h)
	c.check(c.dc.Fill())
}

// Line implements Surface.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	if c.shadowBlur > 0 {
		c.setColor(c.shadowColor, shadowAlpha)
		c.dc.SetLineWidth(c.lineWidth + c.shadowBlur)
		c.dc.DrawLine(x1, y1, x2, y2)
		c.check(c.dc.Stroke())
	}
	c.setColor(c.stroke, 1)
	c.dc.SetLineWidth(c.lineWidth)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.check(c.dc.Stroke())
}

// Circle implements Surface.
func (c *Canvas) Circle(x, y, r float64) {
	if c.shadowBlur > 0 {
		c.setColor(c.shadowColor, shadowAlpha)
		c.dc.DrawCircle(x, y, r+c.shadowBlur/2)
		c.check(c.dc.Fill())
	}
	c.setColor(c.fill, 1)
	c.dc.DrawCircle(x, y, r)
	c.check(c.dc.Fill())
}

// Text implements Surface. y is the vertical middle of the text.
func (c *Canvas) Text(s string, x, y float64) {
	c.setColor(c.fill, 1)
	c.dc.DrawStringAnchored(s, x, y, 0, 0.35)
}

func (c *Canvas) setColor(col gg.RGBA, scale float64) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A*c.alpha*scale)
}

func (c *Canvas) check(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Err returns the first rasterization error since the canvas was created.
func (c *Canvas) Err() error {
	return c.err
}

// EncodePNG writes the current pixels as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the current pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the underlying context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
