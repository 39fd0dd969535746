// Package tesseract implements text recognition with the Tesseract engine.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the trained data used when none is configured
const DefaultLanguage = "eng"

// Recognizer runs Tesseract with a fixed configuration: automatic full-page
// segmentation (PSM 3) and the engine's default legacy+LSTM selection.
type Recognizer struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewRecognizer creates a Tesseract recognizer for the given languages
func NewRecognizer(languages ...string) *Recognizer {
	if len(languages) == 0 {
		languages = []string{DefaultLanguage}
	}
	return &Recognizer{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize implements domain.Recognizer. A page without text yields an
// empty string and no error.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	c := r.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(r.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// Version reports the linked Tesseract version
func Version() string {
	return gosseract.Version()
}
