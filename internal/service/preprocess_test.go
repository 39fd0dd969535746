package service

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessForOCR_BlankWhiteStaysWhite(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	out := PreprocessForOCR(src)

	require.Equal(t, image.Rect(0, 0, 8, 6), out.Bounds())
	for _, v := range out.Pix {
		assert.Equal(t, uint8(255), v)
	}
}

func TestPreprocessForOCR_ContrastBrightnessMedian(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.Pix[0] = 100
	src.Pix[1] = 200

	out := PreprocessForOCR(src)

	// mean 150: contrast x3 gives 0 and 300 (clipped to 255), brightness
	// keeps both, and the edge-replicated median keeps the split.
	assert.Equal(t, []uint8{0, 255}, out.Pix[:2])
	assert.Equal(t, []uint8{100, 200}, src.Pix, "source must not be modified")
}

func TestPreprocessForOCR_GrayscaleConversion(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			src.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}

	out := PreprocessForOCR(src)

	// A flat image is unchanged by contrast; brightness x1.5 maps 40 to 60.
	for _, v := range out.Pix {
		assert.Equal(t, uint8(60), v)
	}
}

func TestPreprocessForOCR_BrightnessClips(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 200
	}

	out := PreprocessForOCR(src)

	for _, v := range out.Pix {
		assert.Equal(t, uint8(255), v)
	}
}

func TestPreprocessForOCR_MedianRemovesSpeck(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.SetGray(2, 2, color.Gray{Y: 0})

	out := PreprocessForOCR(src)

	assert.Equal(t, uint8(255), out.GrayAt(2, 2).Y)
}

func TestPreprocessForOCR_OffsetBounds(t *testing.T) {
	full := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range full.Pix {
		full.Pix[i] = 255
	}
	sub := full.SubImage(image.Rect(4, 4, 8, 7))

	out := PreprocessForOCR(sub)

	assert.Equal(t, image.Rect(0, 0, 4, 3), out.Bounds())
	assert.Equal(t, uint8(255), out.GrayAt(0, 0).Y)
}

func TestPreprocessForOCR_Empty(t *testing.T) {
	out := PreprocessForOCR(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.True(t, out.Bounds().Empty())
}
