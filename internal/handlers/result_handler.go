package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"screenerpro/engine/internal/models"
	"screenerpro/engine/internal/repositories"
	"screenerpro/engine/internal/services"
)

type ResultHandler struct {
	screeningRepo repositories.ScreeningRepository
	vectorStore   services.VectorStoreService
}

func NewResultHandler(screeningRepo repositories.ScreeningRepository, vectorStore services.VectorStoreService) *ResultHandler {
	return &ResultHandler{
		screeningRepo: screeningRepo,
		vectorStore:   vectorStore,
	}
}

// HandleGetScreening handles GET /screenings/:id. Query params tighten the
// filters recorded on the batch at read time; rows are never dropped from
// storage, only from the response.
func (h *ResultHandler) HandleGetScreening(c *fiber.Ctx) error {
	idParam := c.Params("id")
	screeningID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening ID format",
		})
	}

	batch, err := h.screeningRepo.FindByID(screeningID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Screening not found",
		})
	}

	response := models.ScreeningResultResponse{
		ID:       batch.ID.String(),
		Status:   string(batch.Status),
		JobTitle: batch.JobTitle,
	}

	if batch.Status == models.StatusFailed {
		response.ErrorMessage = batch.ErrorMessage
	}

	if batch.Status == models.StatusCompleted {
		results, err := h.screeningRepo.FindResults(screeningID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load results",
			})
		}
		response.Results = filterResults(results, resultFilters{
			minScore:      c.QueryFloat("min_score", batch.MinScore),
			minExperience: c.QueryFloat("min_experience", batch.MinExperience),
			maxExperience: c.QueryFloat("max_experience", batch.MaxExperience),
			minCGPA:       c.QueryFloat("min_cgpa", batch.MinCGPA),
			includeFailed: c.QueryBool("include_failed", true),
		})
	}

	return c.JSON(response)
}

// HandleDeleteResult handles DELETE /screenings/:id/results/:resultID.
// Removes the row and evicts the candidate from the talent pool.
func (h *ResultHandler) HandleDeleteResult(c *fiber.Ctx) error {
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

	if err := h.screeningRepo.DeleteResult(resultID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete result",
		})
	}

	if h.vectorStore != nil {
		if err := h.vectorStore.DeleteResult(c.Context(), resultID.String()); err != nil {
			log.Printf("⚠️ Failed to remove result %s from talent pool: %v", resultID, err)
		}
	}

	return c.JSON(fiber.Map{
		"id":      resultID.String(),
		"deleted": true,
	})
}

type resultFilters struct {
	minScore      float64
	minExperience float64
	maxExperience float64
	minCGPA       float64
	includeFailed bool
}

func filterResults(results []models.ScreeningResult, f resultFilters) []models.ScreeningResult {
	filtered := make([]models.ScreeningResult, 0, len(results))
	for _, r := range results {
		if r.Failed {
			// Error rows carry no score; filters do not apply.
			if f.includeFailed {
				filtered = append(filtered, r)
			}
			continue
		}
		if r.Score < f.minScore {
			continue
		}
		if r.YearsExperience < f.minExperience {
			continue
		}
		if f.maxExperience > 0 && r.YearsExperience > f.maxExperience {
			continue
		}
		// A missing CGPA never disqualifies a candidate.
		if f.minCGPA > 0 && r.CGPA != nil && *r.CGPA < f.minCGPA {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
