package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"mcq-generator/internal/domain"
)

// fakeRecognizer counts calls so tests can assert when OCR ran
type fakeRecognizer struct {
	calls       atomic.Int32
	RecognizeFn func(ctx context.Context, img image.Image) (string, error)
}

func (r *fakeRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	r.calls.Add(1)
	if r.RecognizeFn == nil {
		return "", nil
	}
	return r.RecognizeFn(ctx, img)
}

func (r *fakeRecognizer) Calls() int {
	return int(r.calls.Load())
}

// fakePage describes one page of a fakePDF. Raster is the gray level of the
// rasterized page, used by recognizers to tell pages apart.
type fakePage struct {
	Text      string
	TextErr   error
	Raster    uint8
	RasterErr error
}

type fakePDF struct {
	mu     sync.Mutex
	pages  []fakePage
	closed int
}

func (d *fakePDF) NumPage() int { return len(d.pages) }

func (d *fakePDF) Text(page int) (string, error) {
	p := d.pages[page]
	return p.Text, p.TextErr
}

func (d *fakePDF) Image(page int, dpi float64) (image.Image, error) {
	p := d.pages[page]
	if p.RasterErr != nil {
		return nil, p.RasterErr
	}
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = p.Raster
	}
	return img, nil
}

func (d *fakePDF) Close() error {
	d.mu.Lock()
	d.closed++
	d.mu.Unlock()
	return nil
}

type fakeOpener struct {
	doc    *fakePDF
	err    error
	opened atomic.Int32
}

func (o *fakeOpener) Open(path string) (domain.PDFDocument, error) {
	o.opened.Add(1)
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

type fakeExtractor struct {
	ExtractFn func(ctx context.Context, path string) (string, error)
	calls     int
}

func (e *fakeExtractor) Extract(ctx context.Context, path string) (string, error) {
	e.calls++
	return e.ExtractFn(ctx, path)
}

type fakeGenerator struct {
	GenerateFn func(ctx context.Context, notes string) (string, error)
	lastNotes  string
}

func (g *fakeGenerator) Generate(ctx context.Context, notes string) (string, error) {
	g.lastNotes = notes
	return g.GenerateFn(ctx, notes)
}

// grayAt returns the gray level of the pixel at the image origin
func grayAt(img image.Image) uint8 {
	b := img.Bounds()
	return color.GrayModel.Convert(img.At(b.Min.X, b.Min.Y)).(color.Gray).Y
}

var errEngine = errors.New("engine exploded")

// nopLogger discards log output
type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}
