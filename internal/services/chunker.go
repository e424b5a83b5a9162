package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits resume text into overlapping pieces for vector indexing.
// Resumes are short compared to reports, so most fit in a single chunk; the
// splitter only kicks in for portfolio-style documents with long appendices.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder

	flush := func(separator string) {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		if overlap > 0 {
			tail := lastRunes(chunks[len(chunks)-1], overlap)
			if tail != "" {
				current.WriteString(tail)
				current.WriteString(separator)
			}
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			if current.Len()+len(para)+2 > maxChunkSize {
				flush("\n\n")
			}
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(para)
			continue
		}

		// Oversized paragraph, fall back to sentence boundaries.
		for _, sentence := range splitSentences(para) {
			if current.Len()+len(sentence)+1 > maxChunkSize {
				flush(" ")
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
