package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"screenerpro/engine/internal/screening"
)

// TextExtractorService turns raw document bytes into plain text. Extraction
// failures are returned as errors and converted to error rows by the
// pipeline; they never abort a batch.
type TextExtractorService interface {
	ExtractText(ctx context.Context, data []byte, mediaType string) (string, error)
}

type textExtractorService struct {
	ocr      OCREngine
	minYield int
}

// NewTextExtractorService creates an extractor. minYield is the minimum
// cleaned character count below which a PDF is treated as scanned and sent
// through OCR.
func NewTextExtractorService(ocr OCREngine, minYield int) TextExtractorService {
	if minYield <= 0 {
		minYield = 120
	}
	return &textExtractorService{
		ocr:      ocr,
		minYield: minYield,
	}
}

// ExtractText implements TextExtractorService.
func (s *textExtractorService) ExtractText(ctx context.Context, data []byte, mediaType string) (string, error) {
	switch strings.ToLower(mediaType) {
	case "application/pdf":
		return s.extractPDF(ctx, data)
	case "image/png", "image/jpeg", "image/jpg":
		return s.extractImage(ctx, data)
	default:
		return "", fmt.Errorf("unsupported media type: %s", mediaType)
	}
}

func (s *textExtractorService) extractPDF(ctx context.Context, data []byte) (string, error) {
	text, directErr := extractPDFTextLayer(data)

	// A thin or garbled text layer means a scanned PDF: fall through to OCR.
	if directErr == nil && !screening.LooksScanned(text, s.minYield) {
		return screening.CleanText(text), nil
	}

	if s.ocr != nil && s.ocr.Available() {
		ocrText, err := s.ocr.PDFToText(ctx, data)
		if err == nil && strings.TrimSpace(ocrText) != "" {
			return screening.CleanText(ocrText), nil
		}
		if directErr != nil {
			return "", fmt.Errorf("pdf extraction failed: %v; ocr fallback failed: %v", directErr, err)
		}
	}

	if directErr != nil {
		return "", fmt.Errorf("pdf extraction failed: %w", directErr)
	}
	clean := screening.CleanText(text)
	if clean == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	// Thin but non-empty yield without OCR available: return what we have.
	return clean, nil
}

func (s *textExtractorService) extractImage(ctx context.Context, data []byte) (string, error) {
	if s.ocr == nil || !s.ocr.Available() {
		return "", fmt.Errorf("image extraction requires OCR, which is unavailable on this host")
	}
	text, err := s.ocr.ImageToText(ctx, data)
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}
	clean := screening.CleanText(text)
	if clean == "" {
		return "", fmt.Errorf("ocr produced no usable text")
	}
	return clean, nil
}

// extractPDFTextLayer reads the PDF text layer page by page. Pages that fail
// individually are skipped; only a fully empty document is an error.
func extractPDFTextLayer(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return text, nil
}

// MediaTypeForFile maps a file name to the declared media type the extractor
// understands, or empty for unsupported extensions.
func MediaTypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return ""
	}
}
