package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOCR is an in-memory OCR engine for extractor tests.
type fakeOCR struct {
	available bool
	text      string
	err       error
}

func (f fakeOCR) Available() bool { return f.available }

func (f fakeOCR) ImageToText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func (f fakeOCR) PDFToText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func TestExtractTextImage(t *testing.T) {
	t.Run("routes through OCR", func(t *testing.T) {
		svc := NewTextExtractorService(fakeOCR{available: true, text: "  John Doe \n Engineer "}, 120)
		text, err := svc.ExtractText(context.Background(), []byte("png bytes"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, "John Doe\nEngineer", text)
	})

	t.Run("ocr unavailable", func(t *testing.T) {
		svc := NewTextExtractorService(fakeOCR{available: false}, 120)
		_, err := svc.ExtractText(context.Background(), []byte("png bytes"), "image/png")
		assert.Error(t, err)
	})

	t.Run("ocr failure propagates", func(t *testing.T) {
		svc := NewTextExtractorService(fakeOCR{available: true, err: fmt.Errorf("tesseract exploded")}, 120)
		_, err := svc.ExtractText(context.Background(), []byte("png bytes"), "image/jpeg")
		assert.Error(t, err)
	})

	t.Run("empty ocr output is an error", func(t *testing.T) {
		svc := NewTextExtractorService(fakeOCR{available: true, text: "   "}, 120)
		_, err := svc.ExtractText(context.Background(), []byte("png bytes"), "image/png")
		assert.Error(t, err)
	})
}

func TestExtractTextUnsupportedMediaType(t *testing.T) {
	svc := NewTextExtractorService(fakeOCR{}, 120)
	_, err := svc.ExtractText(context.Background(), []byte("hello"), "application/msword")
	assert.Error(t, err)
}

func TestExtractTextBrokenPDF(t *testing.T) {
	// Not a PDF at all; the text layer fails and no OCR is available.
	svc := NewTextExtractorService(fakeOCR{available: false}, 120)
	_, err := svc.ExtractText(context.Background(), []byte("not a pdf"), "application/pdf")
	assert.Error(t, err)
}

func TestExtractTextScannedPDFFallsBackToOCR(t *testing.T) {
	// Unreadable as a text layer, but OCR recognizes it.
	svc := NewTextExtractorService(fakeOCR{available: true, text: "Recovered by OCR"}, 120)
	text, err := svc.ExtractText(context.Background(), []byte("not a pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "Recovered by OCR", text)
}

func TestMediaTypeForFile(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"resume.pdf", "application/pdf"},
		{"RESUME.PDF", "application/pdf"},
		{"scan.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"notes.docx", ""},
		{"noextension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaTypeForFile(tt.name))
		})
	}
}
