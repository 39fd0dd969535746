package service

import (
	"context"
	"path/filepath"

	"mcq-generator/internal/domain"
)

// Dispatcher routes a file to the extractor registered for its format
type Dispatcher struct {
	extractors map[domain.Format]domain.Extractor
	logger     domain.Logger
}

// NewDispatcher wires the three format extractors
func NewDispatcher(pdf, docx, img domain.Extractor, logger domain.Logger) *Dispatcher {
	return &Dispatcher{
		extractors: map[domain.Format]domain.Extractor{
			domain.FormatPDF:   pdf,
			domain.FormatDOCX:  docx,
			domain.FormatImage: img,
		},
		logger: logger,
	}
}

// Extract implements domain.Extractor. Unsupported suffixes fail with
// domain.ErrUnsupportedType; every other failure is domain.ErrNoTextFound.
func (d *Dispatcher) Extract(ctx context.Context, path string) (string, error) {
	src, err := domain.NewSourceFile(path)
	if err != nil {
		d.logger.Warn("Unsupported file type", "file", path, "ext", filepath.Ext(path))
		return "", err
	}

	extractor, ok := d.extractors[src.Format]
	if !ok || extractor == nil {
		return "", &domain.UnsupportedTypeError{Ext: filepath.Ext(path)}
	}

	d.logger.Debug("Dispatching extraction", "file", path, "format", src.Format)
	text, err := extractor.Extract(ctx, src.Path)
	if err != nil {
		return "", err
	}
	if !hasText(text) {
		return "", &domain.NoTextError{Format: src.Format}
	}
	return text, nil
}
