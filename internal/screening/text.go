package screening

import (
	"strings"
	"unicode"
)

// CleanText trims every line and drops empty ones, so downstream heuristics
// see a stable line structure regardless of the extractor that produced it.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}

// Lines returns the non-empty trimmed lines of a text.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// PrintableRatio returns the fraction of printable characters in text.
// Scanned PDFs with a broken text layer produce a low ratio, which is one of
// the signals used to decide an OCR pass.
func PrintableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	// Private Use Area glyphs from embedded fonts
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == 0xFFFD {
		return true
	}
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}

// LooksScanned reports whether a PDF text layer is too thin or too garbled to
// trust, meaning the document is likely image-based and needs OCR.
func LooksScanned(text string, minYield int) bool {
	clean := CleanText(text)
	if len(clean) < minYield {
		return true
	}
	return PrintableRatio(clean) < 0.85
}
