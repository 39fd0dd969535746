package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"mcq-generator/internal/domain"

	"github.com/beevik/etree"
)

const (
	docxMainPart     = "word/document.xml"
	wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	compatibilityNS  = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

// DOCXExtractor concatenates the paragraph text of an OOXML document.
// There is no OCR fallback: images embedded in the document are ignored.
type DOCXExtractor struct {
	logger domain.Logger
}

// NewDOCXExtractor creates a new DOCX extractor
func NewDOCXExtractor(logger domain.Logger) *DOCXExtractor {
	return &DOCXExtractor{logger: logger}
}

// Extract implements domain.Extractor
func (e *DOCXExtractor) Extract(ctx context.Context, path string) (string, error) {
	text, err := e.paragraphs(path)
	if err != nil {
		e.logger.Error("DOCX extraction failed", err, "file", path)
		return "", &domain.NoTextError{Format: domain.FormatDOCX, Cause: err}
	}
	if !hasText(text) {
		e.logger.Warn("DOCX extracted no text", "file", path)
		return "", &domain.NoTextError{Format: domain.FormatDOCX}
	}

	e.logger.Info("DOCX text extraction successful", "file", path, "chars", utf8.RuneCountInString(text))
	e.logger.Debug("Extracted text", "preview", preview(text))
	return TruncateText(text), nil
}

func (e *DOCXExtractor) paragraphs(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", &domain.EngineError{Stage: "docx open", Err: err}
	}
	defer zr.Close()

	data, err := readPart(&zr.Reader, docxMainPart)
	if err != nil {
		return "", &domain.EngineError{Stage: "docx open", Err: err}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", &domain.EngineError{Stage: "docx parse", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return "", &domain.EngineError{Stage: "docx parse", Err: fmt.Errorf("%s has no root element", docxMainPart)}
	}

	var sb strings.Builder
	for _, p := range collectParagraphs(root, nil) {
		sb.WriteString(paragraphText(p))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// collectParagraphs gathers w:p elements in document order, table cells
// included. mc:Fallback repeats the text of its mc:Choice and is skipped.
func collectParagraphs(el *etree.Element, out []*etree.Element) []*etree.Element {
	for _, child := range el.ChildElements() {
		if isFallback(child) {
			continue
		}
		if isWordElement(child, "p") {
			out = append(out, child)
		}
		out = collectParagraphs(child, out)
	}
	return out
}

// paragraphText renders the runs of one paragraph. Paragraphs nested inside
// it (text boxes) are rendered on their own by collectParagraphs.
func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			switch {
			case isWordElement(child, "t"):
				sb.WriteString(child.Text())
			case isWordElement(child, "tab"):
				sb.WriteString("\t")
			case isWordElement(child, "br"), isWordElement(child, "cr"):
				sb.WriteString("\n")
			case isWordElement(child, "p"), isFallback(child):
				// nested paragraphs are emitted by collectParagraphs
			default:
				walk(child)
			}
		}
	}
	walk(p)
	return sb.String()
}

func isWordElement(el *etree.Element, tag string) bool {
	if el.Tag != tag {
		return false
	}
	if ns := el.NamespaceURI(); ns != "" {
		return ns == wordprocessingNS
	}
	return el.Space == "w"
}

func isFallback(el *etree.Element) bool {
	if el.Tag != "Fallback" {
		return false
	}
	if ns := el.NamespaceURI(); ns != "" {
		return ns == compatibilityNS
	}
	return el.Space == "mc"
}
