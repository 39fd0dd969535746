package service

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"unicode/utf8"

	"mcq-generator/internal/domain"
)

// ImageExtractor runs a single OCR pass over a PNG or JPEG file
type ImageExtractor struct {
	recognizer domain.Recognizer
	logger     domain.Logger
}

// NewImageExtractor creates a new image extractor
func NewImageExtractor(recognizer domain.Recognizer, logger domain.Logger) *ImageExtractor {
	return &ImageExtractor{recognizer: recognizer, logger: logger}
}

// Extract implements domain.Extractor
func (e *ImageExtractor) Extract(ctx context.Context, path string) (string, error) {
	text, err := e.recognize(ctx, path)
	if err != nil {
		e.logger.Error("Image OCR failed", err, "file", path)
		return "", &domain.NoTextError{Format: domain.FormatImage, Cause: err}
	}
	if !hasText(text) {
		e.logger.Warn("Image OCR extracted no text", "file", path)
		return "", &domain.NoTextError{Format: domain.FormatImage}
	}

	e.logger.Info("Image OCR successful", "file", path, "chars", utf8.RuneCountInString(text))
	e.logger.Debug("Extracted text", "preview", preview(text))
	return TruncateText(text), nil
}

func (e *ImageExtractor) recognize(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.EngineError{Stage: "ocr", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", &domain.EngineError{Stage: "image open", Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", &domain.EngineError{Stage: "image decode", Err: err}
	}

	text, err = e.recognizer.Recognize(ctx, PreprocessForOCR(img))
	if err != nil {
		return "", &domain.EngineError{Stage: "ocr", Err: err}
	}
	return text, nil
}
