package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"screenerpro/engine/internal/models"
)

// VectorStoreService maintains the talent pool: every scored candidate is
// indexed by resume embedding so recruiters can search for profiles similar
// to a strong hit from an earlier screening.
type VectorStoreService interface {
	InitCollection() error
	IndexResults(ctx context.Context, batch *models.Screening, results []models.ScreeningResult) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, excludeScreeningID string) ([]models.SimilarCandidate, error)
	DeleteResult(ctx context.Context, resultID string) error
}

type vectorStoreService struct {
	client         *qdrant.Client
	embedder       EmbeddingService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewVectorStoreService(urlStr, apiKey, collectionName string, embedder EmbeddingService, chunker TextChunker) (VectorStoreService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the 6333 REST port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorStoreService{
		client:         client,
		embedder:       embedder,
		chunker:        chunker,
		collectionName: collectionName,
		vectorSize:     uint64(embedder.Dimensions()),
	}, nil
}

// InitCollection implements VectorStoreService.
func (v *vectorStoreService) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", v.collectionName)
	return nil
}

// IndexResults implements VectorStoreService. Long resumes are chunked so no
// single point exceeds the embedder's useful input size; every chunk carries
// the same result payload.
func (v *vectorStoreService) IndexResults(ctx context.Context, batch *models.Screening, results []models.ScreeningResult) error {
	var points []*qdrant.PointStruct

	for _, result := range results {
		if result.Failed || result.RawText == "" {
			continue
		}

		chunks := v.chunker.ChunkText(result.RawText, 2000, 200)
		embeddings, err := v.embedder.EmbedBatch(ctx, chunks)
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", result.FileName, err)
		}

		for i, embedding := range embeddings {
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
				Vectors: qdrant.NewVectors(embedding...),
				Payload: qdrant.NewValueMap(map[string]interface{}{
					"result_id":      result.ID.String(),
					"screening_id":   batch.ID.String(),
					"file_name":      result.FileName,
					"candidate_name": result.CandidateName,
					"tier":           result.Tier,
					"chunk":          i,
				}),
			})
		}
	}

	if len(points) == 0 {
		return nil
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// SearchSimilar implements VectorStoreService.
func (v *vectorStoreService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, excludeScreeningID string) ([]models.SimilarCandidate, error) {
	var filter *qdrant.Filter
	if excludeScreeningID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("screening_id", excludeScreeningID),
			},
		}
	}

	searchResult, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := make(map[string]bool)
	var candidates []models.SimilarCandidate
	for _, point := range searchResult {
		payload := point.Payload

		resultID := payloadString(payload, "result_id")
		if resultID == "" || seen[resultID] {
			// Multiple chunks of the same resume collapse to the best hit.
			continue
		}
		seen[resultID] = true

		candidates = append(candidates, models.SimilarCandidate{
			FileName:      payloadString(payload, "file_name"),
			CandidateName: payloadString(payload, "candidate_name"),
			ScreeningID:   payloadString(payload, "screening_id"),
			Tier:          payloadString(payload, "tier"),
			Score:         point.Score,
		})
	}
	return candidates, nil
}

// DeleteResult implements VectorStoreService.
func (v *vectorStoreService) DeleteResult(ctx context.Context, resultID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("result_id", resultID),
		},
	}

	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return val.StringValue
		}
	}
	return ""
}
