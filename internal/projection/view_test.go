package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetKeepsTime(t *testing.T) {
	v := ViewState{RotationX: 80, RotationY: -30, Zoom: 3, PanX: 5, PanY: 6, Time: 999}
	v.Reset()
	assert.Equal(t, ViewState{RotationX: 15, RotationY: 20, Zoom: 1.2, Time: 999}, v)
}

func TestZoomClamped(t *testing.T) {
	v := DefaultView()
	for i := 0; i < 100; i++ {
		v.ZoomBy(ZoomInStep)
	}
	assert.Equal(t, MaxZoom, v.Zoom)

	for i := 0; i < 100; i++ {
		v.ZoomBy(ZoomOutStep)
	}
	assert.Equal(t, MinZoom, v.Zoom)

	assert.Equal(t, DefaultZoom, ClampZoom(math.NaN()))
}

func TestPanRotate(t *testing.T) {
	v := DefaultView()
	v.Pan(3, -4)
	v.Rotate(1, -2)
	assert.Equal(t, 3.0, v.PanX)
	assert.Equal(t, -4.0, v.PanY)
	assert.Equal(t, 16.0, v.RotationX)
	assert.Equal(t, 18.0, v.RotationY)
}
