package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"screenerpro/engine/internal/models"
	"screenerpro/engine/internal/repositories"
	"screenerpro/engine/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts any number of resume files under the "resumes" field
// and at most one job description under "jd". PDF, PNG and JPEG are accepted;
// scanned files go through OCR later in the pipeline, not here.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	for _, resumeFile := range files["resumes"] {
		resp, err := h.saveDocument(resumeFile, models.FileTypeResume)
		if err != nil {
			return err
		}
		responses = append(responses, *resp)
	}

	if jdFiles, exists := files["jd"]; exists && len(jdFiles) > 0 {
		resp, err := h.saveDocument(jdFiles[0], models.FileTypeJobDescription)
		if err != nil {
			return err
		}
		responses = append(responses, *resp)
	}

	if len(responses) == 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No valid files uploaded. Please upload 'resumes' and/or 'jd' as PDF, PNG or JPEG files.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

// HandleDeleteDocument handles DELETE /documents/:id. The row goes first;
// a leftover file on disk is recoverable, a dangling row is not.
func (h *UploadHandler) HandleDeleteDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	if err := h.docRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document",
		})
	}

	if err := h.storageService.DeleteFile(doc.Filename); err != nil {
		log.Printf("⚠️  Failed to remove file %s: %v", doc.Filename, err)
	}

	return c.JSON(fiber.Map{
		"id":      id.String(),
		"deleted": true,
	})
}

func (h *UploadHandler) saveDocument(file *multipart.FileHeader, fileType string) (*models.UploadResponse, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s too large. Max size: %d bytes", file.Filename, h.maxFileSize))
	}

	mediaType := services.MediaTypeForFile(file.Filename)
	if mediaType == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s: unsupported file type", file.Filename))
	}

	filename, filePath, err := h.storageService.SaveFile(file, fileType)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("failed to save %s: %v", file.Filename, err))
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         fileType,
		MediaType:        mediaType,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("failed to save document record for %s", file.Filename))
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		FileType:     doc.FileType,
		MediaType:    doc.MediaType,
	}, nil
}
