// Package fitz adapts MuPDF (through go-fitz) to the PDF extractor.
package fitz

import (
	"image"
	"strings"

	"mcq-generator/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// Opener opens PDFs with MuPDF
type Opener struct{}

// NewOpener creates a new MuPDF backed opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open implements domain.PDFOpener
func (o *Opener) Open(path string) (domain.PDFDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Document wraps a go-fitz document. go-fitz serializes calls on one
// document internally, so it is safe for the OCR worker pool.
type Document struct {
	doc *fitz.Document
}

func (d *Document) NumPage() int {
	return d.doc.NumPage()
}

// Text returns the embedded text layer of a zero-based page. MuPDF closes
// every block with a blank line; the trailing newlines are dropped so the
// extractor controls page separators.
func (d *Document) Text(page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\n"), nil
}

// Image rasterizes a zero-based page at the given resolution
func (d *Document) Image(page int, dpi float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}
