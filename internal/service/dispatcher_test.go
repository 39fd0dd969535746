package service

import (
	"context"
	"errors"
	"testing"

	"mcq-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*Dispatcher, map[domain.Format]*fakeExtractor) {
	fakes := map[domain.Format]*fakeExtractor{}
	for _, f := range []domain.Format{domain.FormatPDF, domain.FormatDOCX, domain.FormatImage} {
		format := f
		fakes[format] = &fakeExtractor{
			ExtractFn: func(ctx context.Context, path string) (string, error) {
				return string(format) + " text", nil
			},
		}
	}
	d := NewDispatcher(fakes[domain.FormatPDF], fakes[domain.FormatDOCX], fakes[domain.FormatImage], nopLogger{})
	return d, fakes
}

func TestDispatcher_Routes(t *testing.T) {
	tests := []struct {
		path string
		want domain.Format
	}{
		{"notes.pdf", domain.FormatPDF},
		{"NOTES.PDF", domain.FormatPDF},
		{"/tmp/upload-123.docx", domain.FormatDOCX},
		{"scan.png", domain.FormatImage},
		{"scan.JPG", domain.FormatImage},
		{"scan.jpeg", domain.FormatImage},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, fakes := newTestDispatcher()

			text, err := d.Extract(context.Background(), tt.path)

			require.NoError(t, err)
			assert.Equal(t, string(tt.want)+" text", text)
			for format, fake := range fakes {
				if format == tt.want {
					assert.Equal(t, 1, fake.calls)
				} else {
					assert.Equal(t, 0, fake.calls)
				}
			}
		})
	}
}

func TestDispatcher_Unsupported(t *testing.T) {
	for _, path := range []string{"notes.txt", "archive.zip", "README", "slides.pptx"} {
		t.Run(path, func(t *testing.T) {
			d, fakes := newTestDispatcher()

			text, err := d.Extract(context.Background(), path)

			assert.Equal(t, "", text)
			require.True(t, errors.Is(err, domain.ErrUnsupportedType))
			assert.False(t, errors.Is(err, domain.ErrNoTextFound))
			for _, fake := range fakes {
				assert.Equal(t, 0, fake.calls)
			}
		})
	}
}

func TestDispatcher_PropagatesNoText(t *testing.T) {
	d, fakes := newTestDispatcher()
	fakes[domain.FormatDOCX].ExtractFn = func(ctx context.Context, path string) (string, error) {
		return "", &domain.NoTextError{Format: domain.FormatDOCX, Cause: errEngine}
	}

	_, err := d.Extract(context.Background(), "notes.docx")

	assert.True(t, errors.Is(err, domain.ErrNoTextFound))
	assert.True(t, errors.Is(err, errEngine))
	assert.False(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestDispatcher_EmptyResultIsNoText(t *testing.T) {
	d, fakes := newTestDispatcher()
	fakes[domain.FormatImage].ExtractFn = func(ctx context.Context, path string) (string, error) {
		return "  \n", nil
	}

	text, err := d.Extract(context.Background(), "scan.png")

	assert.Equal(t, "", text)
	assert.True(t, errors.Is(err, domain.ErrNoTextFound))
}
