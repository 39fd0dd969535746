package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		want   Format
		wantOK bool
	}{
		{name: "pdf", path: "/tmp/notes.pdf", want: FormatPDF, wantOK: true},
		{name: "upper case pdf", path: "NOTES.PDF", want: FormatPDF, wantOK: true},
		{name: "docx", path: "lecture.docx", want: FormatDOCX, wantOK: true},
		{name: "png", path: "scan.png", want: FormatImage, wantOK: true},
		{name: "jpg", path: "scan.jpg", want: FormatImage, wantOK: true},
		{name: "jpeg", path: "scan.JPEG", want: FormatImage, wantOK: true},
		{name: "txt", path: "notes.txt", wantOK: false},
		{name: "legacy doc", path: "notes.doc", wantOK: false},
		{name: "no extension", path: "notes", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSourceFile_Unsupported(t *testing.T) {
	_, err := NewSourceFile("notes.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.False(t, errors.Is(err, ErrNoTextFound))
	assert.Equal(t, "unsupported file type: .txt", err.Error())
}

func TestNoTextError(t *testing.T) {
	cause := &EngineError{Stage: "rasterize", Page: 2, Err: errors.New("mupdf: broken xref")}
	err := fmt.Errorf("extract: %w", &NoTextError{Format: FormatPDF, Cause: cause})

	assert.True(t, errors.Is(err, ErrNoTextFound))
	assert.False(t, errors.Is(err, ErrUnsupportedType))

	var engineErr *EngineError
	require.True(t, errors.As(err, &engineErr))
	assert.Equal(t, 2, engineErr.Page)
	assert.Contains(t, err.Error(), "rasterize failed on page 2")
}

func TestNoTextError_NoCause(t *testing.T) {
	err := &NoTextError{Format: FormatImage}
	assert.Equal(t, "image: no text could be extracted", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
