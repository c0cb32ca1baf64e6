package postprocess_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/DavidArayan/gfx/internal/postprocess"
	"github.com/stretchr/testify/require"
)

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 32; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	dst := postprocess.Downsample(src, 2)
	require.Equal(t, image.Rect(0, 0, 32, 32), dst.Bounds())

	// Solid interior keeps its color, transparent interior stays clear.
	c := dst.NRGBAAt(4, 16)
	require.Equal(t, uint8(255), c.A)
	require.InDelta(t, 200, int(c.R), 2)
	require.InDelta(t, 50, int(c.B), 2)
	require.Equal(t, uint8(0), dst.NRGBAAt(28, 16).A)
}

func TestDownsample_NoOp(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	require.Same(t, src, postprocess.Downsample(src, 1))
	require.Same(t, src, postprocess.Downsample(src, 16))
}
