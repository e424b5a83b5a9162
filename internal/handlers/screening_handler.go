package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"screenerpro/engine/internal/models"
	"screenerpro/engine/internal/repositories"
	"screenerpro/engine/internal/services"
)

type ScreeningHandler struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	extractor     services.TextExtractorService
	worker        services.Worker
	validate      *validator.Validate
	maxExperience float64
}

func NewScreeningHandler(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	extractor services.TextExtractorService,
	worker services.Worker,
	maxExperience float64,
) *ScreeningHandler {
	return &ScreeningHandler{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		extractor:     extractor,
		worker:        worker,
		validate:      validator.New(),
		maxExperience: maxExperience,
	}
}

// HandleScreen handles POST /screenings. The batch is queued and ranked by
// the worker; the client polls GET /screenings/:id for the results.
func (h *ScreeningHandler) HandleScreen(c *fiber.Ctx) error {
	var req models.ScreenRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	jobDescription := strings.TrimSpace(req.JobDescription)
	if req.JDDocumentID != "" {
		text, err := h.extractJobDescription(c.Context(), req.JDDocumentID)
		if err != nil {
			return err
		}
		jobDescription = text
	}
	if jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description or jd_document_id is required",
		})
	}

	// Every id must resolve to an uploaded resume before queuing. JD
	// documents are rejected here, not silently scored.
	ids := make([]uuid.UUID, 0, len(req.DocumentIDs))
	for _, raw := range req.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid document id: %s", raw),
			})
		}
		ids = append(ids, id)
	}
	docs, err := h.docRepo.FindResumesByIDs(ids)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up documents",
		})
	}
	if len(docs) != len(ids) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("found %d of %d resume documents", len(docs), len(ids)),
		})
	}

	maxExperience := req.MaxExperience
	if maxExperience <= 0 {
		maxExperience = h.maxExperience
	}

	batch := &models.Screening{
		ID:             uuid.New(),
		JobTitle:       req.JobTitle,
		JobDescription: jobDescription,
		HighPriority:   req.HighPriority,
		MediumPriority: req.MediumPriority,
		DocumentIDs:    req.DocumentIDs,
		MinScore:       req.MinScore,
		MinExperience:  req.MinExperience,
		MaxExperience:  maxExperience,
		MinCGPA:        req.MinCGPA,
		Status:         models.StatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.screeningRepo.Create(batch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create screening job",
		})
	}

	h.worker.EnqueueJob(batch.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScreenResponse{
		ID:     batch.ID.String(),
		Status: string(models.StatusQueued),
	})
}

func (h *ScreeningHandler) extractJobDescription(ctx context.Context, docID string) (string, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid jd_document_id format")
	}

	doc, err := h.docRepo.FindByID(id)
	if err != nil {
		return "", fiber.NewError(fiber.StatusNotFound, "JD document not found")
	}

	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to read JD document")
	}

	text, err := h.extractor.ExtractText(ctx, data, doc.MediaType)
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Failed to extract JD text: %v", err))
	}
	return strings.TrimSpace(text), nil
}

func validationMessage(err error) string {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		fe := invalid[0]
		return fmt.Sprintf("validation failed on field '%s' (%s)", fe.Field(), fe.Tag())
	}
	return "Invalid request payload"
}
