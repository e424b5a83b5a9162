package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"screenerpro/engine/internal/repositories"
	"screenerpro/engine/internal/services"
)

type SimilarHandler struct {
	screeningRepo repositories.ScreeningRepository
	embedder      services.EmbeddingService
	vectorStore   services.VectorStoreService
}

func NewSimilarHandler(
	screeningRepo repositories.ScreeningRepository,
	embedder services.EmbeddingService,
	vectorStore services.VectorStoreService,
) *SimilarHandler {
	return &SimilarHandler{
		screeningRepo: screeningRepo,
		embedder:      embedder,
		vectorStore:   vectorStore,
	}
}

// HandleGetSimilar handles GET /screenings/:id/results/:resultID/similar.
// It embeds the chosen candidate's resume text and searches the talent pool
// for close matches from other screenings.
func (h *SimilarHandler) HandleGetSimilar(c *fiber.Ctx) error {
	if h.vectorStore == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Talent pool search is not configured",
		})
	}

	screeningID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening ID format",
		})
	}

	resultID, err := uuid.Parse(c.Params("resultID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid result ID format",
		})
	}

	result, err := h.screeningRepo.FindResultByID(resultID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Result not found",
		})
	}
	if result.ScreeningID != screeningID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Result does not belong to this screening",
		})
	}
	if result.Failed || result.RawText == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Result has no extracted text to compare",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	embedding, err := h.embedder.EmbedText(c.Context(), result.RawText)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to embed resume text",
		})
	}

	candidates, err := h.vectorStore.SearchSimilar(c.Context(), embedding, limit, screeningID.String())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search talent pool",
		})
	}

	return c.JSON(fiber.Map{
		"result_id":  resultID.String(),
		"candidates": candidates,
	})
}
