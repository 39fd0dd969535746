package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"mcq-generator/internal/domain"

	"golang.org/x/sync/errgroup"
)

// DefaultPDFDPI is the rasterization resolution used for the OCR fallback
const DefaultPDFDPI = 300

var errNoTextLayer = errors.New("pdf has no usable text layer")

// PDFExtractor reads the embedded text layer and falls back to OCR of the
// rasterized pages when that layer is empty or unreadable.
type PDFExtractor struct {
	opener     domain.PDFOpener
	recognizer domain.Recognizer
	logger     domain.Logger
	dpi        float64
	workers    int
}

// PDFOption configures a PDFExtractor
type PDFOption func(*PDFExtractor)

// WithDPI overrides the rasterization resolution
func WithDPI(dpi float64) PDFOption {
	return func(e *PDFExtractor) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// WithOCRWorkers bounds how many pages are rasterized and recognized at once
func WithOCRWorkers(n int) PDFOption {
	return func(e *PDFExtractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(opener domain.PDFOpener, recognizer domain.Recognizer, logger domain.Logger, opts ...PDFOption) *PDFExtractor {
	e := &PDFExtractor{
		opener:     opener,
		recognizer: recognizer,
		logger:     logger,
		dpi:        DefaultPDFDPI,
		workers:    1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements domain.Extractor
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	text, err := e.directText(path)
	if err == nil {
		e.logger.Info("Direct PDF text extraction successful", "file", path, "chars", utf8.RuneCountInString(text))
		e.logger.Debug("Extracted text", "preview", preview(text))
		return TruncateText(text), nil
	}
	e.logger.Warn("Direct PDF text extraction failed, falling back to OCR", "file", path, "reason", err)

	text, err = e.ocrText(ctx, path)
	if err != nil {
		e.logger.Error("PDF OCR failed", err, "file", path)
		return "", &domain.NoTextError{Format: domain.FormatPDF, Cause: err}
	}
	if !hasText(text) {
		e.logger.Warn("PDF OCR extracted no text", "file", path)
		return "", &domain.NoTextError{Format: domain.FormatPDF}
	}

	e.logger.Info("PDF OCR successful", "file", path, "chars", utf8.RuneCountInString(text))
	e.logger.Debug("Extracted text", "preview", preview(text))
	return TruncateText(text), nil
}

// directText concatenates the text layer of every page that has one
func (e *PDFExtractor) directText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.EngineError{Stage: "pdf text", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	doc, err := e.opener.Open(path)
	if err != nil {
		return "", &domain.EngineError{Stage: "pdf open", Err: err}
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", &domain.EngineError{Stage: "pdf text", Page: i + 1, Err: err}
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	text = sb.String()
	if !hasText(text) {
		return "", errNoTextLayer
	}
	return text, nil
}

// ocrText rasterizes and recognizes every page. Pages run on a bounded pool
// and are merged by index so the output keeps page order.
func (e *PDFExtractor) ocrText(ctx context.Context, path string) (string, error) {
	doc, err := e.opener.Open(path)
	if err != nil {
		return "", &domain.EngineError{Stage: "pdf open", Err: err}
	}
	defer doc.Close()

	pages := make([]string, doc.NumPage())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.logger.Debug("PDF OCR page", "file", path, "page", i+1, "total", len(pages))
			pageText, err := e.ocrPage(gctx, doc, i)
			if err != nil {
				return err
			}
			pages[i] = pageText
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, pageText := range pages {
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (e *PDFExtractor) ocrPage(ctx context.Context, doc domain.PDFDocument, page int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.EngineError{Stage: "ocr", Page: page + 1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	img, err := doc.Image(page, e.dpi)
	if err != nil {
		return "", &domain.EngineError{Stage: "rasterize", Page: page + 1, Err: err}
	}
	text, err = e.recognizer.Recognize(ctx, PreprocessForOCR(img))
	if err != nil {
		return "", &domain.EngineError{Stage: "ocr", Page: page + 1, Err: err}
	}
	return text, nil
}
