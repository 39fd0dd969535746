package domain

import (
	"path/filepath"
	"strings"
)

// MaxExtractedChars caps every extractor's output, counted in characters
// (code points) rather than bytes or words.
const MaxExtractedChars = 10000

// Format identifies which extractor handles a source file
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatImage Format = "image"
)

// FormatFromPath infers the format from the file suffix. The suffix is
// lower-cased first, so NOTES.PDF is treated as a PDF.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	case ".png", ".jpg", ".jpeg":
		return FormatImage, true
	default:
		return "", false
	}
}

// SourceFile is a document on disk handed to the pipeline for one call.
// The caller owns it and removes it once extraction returns.
type SourceFile struct {
	Path   string
	Format Format
}

// NewSourceFile resolves the format of path or returns an UnsupportedTypeError.
func NewSourceFile(path string) (SourceFile, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return SourceFile{}, &UnsupportedTypeError{Ext: filepath.Ext(path)}
	}
	return SourceFile{Path: path, Format: format}, nil
}
