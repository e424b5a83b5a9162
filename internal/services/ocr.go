package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
)

// OCREngine turns image bytes (or scanned PDFs) into text.
type OCREngine interface {
	Available() bool
	ImageToText(ctx context.Context, img []byte) (string, error)
	PDFToText(ctx context.Context, pdfData []byte) (string, error)
}

type tesseractEngine struct {
	tesseractPath string
	pdftoppmPath  string
}

// NewTesseractEngine probes for the tesseract and pdftoppm binaries on the
// host. A missing binary does not fail construction: availability is checked
// once here and surfaced at startup, and unavailable OCR degrades scanned
// documents to extraction-failure rows instead of killing the service.
func NewTesseractEngine(tesseractPath, pdftoppmPath string) OCREngine {
	engine := &tesseractEngine{}

	if p, err := exec.LookPath(tesseractPath); err == nil {
		engine.tesseractPath = p
	}
	if p, err := exec.LookPath(pdftoppmPath); err == nil {
		engine.pdftoppmPath = p
	}
	return engine
}

// Available implements OCREngine.
func (t *tesseractEngine) Available() bool {
	return t.tesseractPath != ""
}

// ImageToText implements OCREngine. The image is grayscaled and thresholded
// before recognition to improve accuracy on photos of documents.
func (t *tesseractEngine) ImageToText(ctx context.Context, img []byte) (string, error) {
	if !t.Available() {
		return "", fmt.Errorf("ocr unavailable: tesseract binary not found")
	}

	processed := preprocessImage(img)

	dir, err := os.MkdirTemp("", "screener-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	imgPath := filepath.Join(dir, "input.png")
	if err := os.WriteFile(imgPath, processed, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}

	return t.runTesseract(ctx, imgPath)
}

// PDFToText implements OCREngine: rasterize each page with pdftoppm, then
// OCR every page image and concatenate.
func (t *tesseractEngine) PDFToText(ctx context.Context, pdfData []byte) (string, error) {
	if !t.Available() {
		return "", fmt.Errorf("ocr unavailable: tesseract binary not found")
	}
	if t.pdftoppmPath == "" {
		return "", fmt.Errorf("ocr unavailable: pdftoppm binary not found (install poppler-utils)")
	}

	dir, err := os.MkdirTemp("", "screener-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp pdf: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.pdftoppmPath, "-r", "200", "-png", pdfPath, filepath.Join(dir, "page"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	pages, err := filepath.Glob(filepath.Join(dir, "page*.png"))
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("pdf rasterization produced no pages")
	}
	sort.Strings(pages)

	var sb strings.Builder
	for _, page := range pages {
		text, err := t.runTesseract(ctx, page)
		if err != nil {
			// One unreadable page should not lose the rest.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("ocr produced no text")
	}
	return result, nil
}

func (t *tesseractEngine) runTesseract(ctx context.Context, imgPath string) (string, error) {
	cmd := exec.CommandContext(ctx, t.tesseractPath, imgPath, "stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// preprocessImage grayscales and binarizes an image with an Otsu threshold.
// Returns the input unchanged when it cannot be decoded; tesseract gets one
// more chance on the raw bytes.
func preprocessImage(data []byte) []byte {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, src.At(x, y))
		}
	}

	threshold := otsuThreshold(gray)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				gray.SetGray(x, y, color.Gray{Y: 255})
			} else {
				gray.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return data
	}
	return buf.Bytes()
}

// otsuThreshold picks the global threshold minimizing intra-class variance.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVar float64
	best := 128
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maxVar {
			maxVar = between
			best = i
		}
	}
	return uint8(best)
}
