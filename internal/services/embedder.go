package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"google.golang.org/genai"
)

// EmbeddingService produces sentence embeddings for job descriptions and
// resume texts. Embeddings are deterministic for a fixed model, which keeps
// the whole pipeline idempotent.
type EmbeddingService interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

const embedMaxChars = 40000

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
	dimensions int
}

// NewGeminiEmbedder creates the Gemini-backed embedding service.
func NewGeminiEmbedder(apiKey string) (EmbeddingService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEmbedder{
		client:     client,
		embedModel: "text-embedding-004",
		dimensions: 768,
	}, nil
}

// Dimensions implements EmbeddingService.
func (g *geminiEmbedder) Dimensions() int {
	return g.dimensions
}

// EmbedText implements EmbeddingService.
func (g *geminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if len(text) > embedMaxChars {
		text = text[:embedMaxChars]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return result.Embeddings[0].Values, nil
}

// EmbedBatch implements EmbeddingService. One call embeds every text, which
// amortizes the model invocation overhead across the batch.
func (g *geminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		if len(t) > embedMaxChars {
			t = t[:embedMaxChars]
		}
		contents = append(contents, genai.Text(t)...)
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch embeddings: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("batch embedding returned %d results for %d texts", len(result.Embeddings), len(texts))
	}

	embeddings := make([][]float32, len(texts))
	for i, e := range result.Embeddings {
		embeddings[i] = e.Values
	}
	return embeddings, nil
}

// localEmbedder is a deterministic hashed bag-of-words embedder used when no
// Gemini API key is configured. Rankings stay meaningful (shared vocabulary
// lands in shared dimensions) and the pipeline remains fully offline and
// reproducible.
type localEmbedder struct {
	dimensions int
}

// NewLocalEmbedder creates the offline embedding service.
func NewLocalEmbedder() EmbeddingService {
	return &localEmbedder{dimensions: 256}
}

// Dimensions implements EmbeddingService.
func (l *localEmbedder) Dimensions() int {
	return l.dimensions
}

// EmbedText implements EmbeddingService.
func (l *localEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, l.dimensions)

	var word strings.Builder
	flush := func() {
		if word.Len() < 2 {
			word.Reset()
			return
		}
		h := fnv.New32a()
		h.Write([]byte(word.String()))
		vec[h.Sum32()%uint32(l.dimensions)]++
		word.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

// EmbedBatch implements EmbeddingService.
func (l *localEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := l.EmbedText(ctx, t)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}
