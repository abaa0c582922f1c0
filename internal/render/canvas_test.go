package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/shop"
)

func TestNewCanvasRejectsEmptySize(t *testing.T) {
	_, err := NewCanvas(0, 10)
	assert.Error(t, err)
	_, err = NewCanvas(10, -1)
	assert.Error(t, err)
}

func TestCanvasRendersPNG(t *testing.T) {
	c, err := NewCanvas(160, 120)
	require.NoError(t, err)
	defer c.Close()

	w, h := c.Size()
	assert.Equal(t, 160.0, w)
	assert.Equal(t, 120.0, h)

	NewRenderer(DefaultPalette(), 3).Render(c, testScene(t, shop.ArchFractal), projection.DefaultView())
	require.NoError(t, c.Err())

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestCanvasAlphaIsClamped(t *testing.T) {
	c, err := NewCanvas(8, 8)
	require.NoError(t, err)
	defer c.Close()

	c.SetAlpha(3)
	assert.Equal(t, 1.0, c.alpha)
	c.SetAlpha(-1)
	assert.Equal(t, 0.0, c.alpha)

	c.SetShadow(-4, gg.Black)
	assert.Zero(t, c.shadowBlur)
}
