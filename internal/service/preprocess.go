package service

import (
	"image"

	"golang.org/x/image/draw"
)

const (
	ocrContrastFactor   = 3.0
	ocrBrightnessFactor = 1.5
	medianFilterSize    = 3
)

// PreprocessForOCR returns a new grayscale bitmap tuned for recognition:
// luminance only, contrast x3, brightness x1.5, then a 3x3 median filter.
// The source image is not modified.
func PreprocessForOCR(src image.Image) *image.Gray {
	gray := toGray(src)
	enhanceContrast(gray, ocrContrastFactor)
	enhanceBrightness(gray, ocrBrightnessFactor)
	return medianFilter(gray, medianFilterSize)
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
	return gray
}

// enhanceContrast blends every pixel against a flat image of the mean
// luminance, rounded to the nearest integer level.
func enhanceContrast(img *image.Gray, factor float64) {
	if len(img.Pix) == 0 {
		return
	}
	var sum float64
	forEachPixel(img, func(v uint8) uint8 {
		sum += float64(v)
		return v
	})
	pixels := float64(img.Rect.Dx() * img.Rect.Dy())
	mean := float64(int(sum/pixels + 0.5))
	forEachPixel(img, func(v uint8) uint8 {
		return blend(mean, float64(v), factor)
	})
}

// enhanceBrightness blends every pixel against black
func enhanceBrightness(img *image.Gray, factor float64) {
	forEachPixel(img, func(v uint8) uint8 {
		return blend(0, float64(v), factor)
	})
}

func blend(degenerate, v, factor float64) uint8 {
	out := degenerate + factor*(v-degenerate)
	switch {
	case out <= 0:
		return 0
	case out >= 255:
		return 255
	default:
		return uint8(out)
	}
}

func forEachPixel(img *image.Gray, fn func(uint8) uint8) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := range row {
			row[x] = fn(row[x])
		}
	}
}

// medianFilter applies a size x size rank filter, replicating edge pixels
// outside the bounds.
func medianFilter(src *image.Gray, size int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	r := size / 2
	window := make([]uint8, 0, size*size)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -r; dy <= r; dy++ {
				sy := clamp(y+dy, 0, h-1)
				for dx := -r; dx <= r; dx++ {
					sx := clamp(x+dx, 0, w-1)
					window = append(window, src.Pix[sy*src.Stride+sx])
				}
			}
			insertionSort(window)
			dst.Pix[y*dst.Stride+x] = window[len(window)/2]
		}
	}
	return dst
}

// insertionSort is enough for 9-element windows and avoids per-pixel allocations
func insertionSort(v []uint8) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
