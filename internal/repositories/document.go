package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"screenerpro/engine/internal/models"
)

// DocumentRepository tracks uploaded files. Resumes and job descriptions
// share the table but never mix: a screening batch only ever pulls
// resume-typed rows.
type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	FindResumesByIDs(ids []uuid.UUID) ([]models.Document, error)
	Delete(id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(&document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("document not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

// FindResumesByIDs implements DocumentRepository. Only resume-typed rows are
// returned: feeding a job description into the scoring pipeline as a
// candidate is a caller bug, and the shorter result set surfaces it.
func (d *documentRepository) FindResumesByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	err := d.db.
		Where("id IN ? AND file_type = ?", ids, models.FileTypeResume).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find resume documents: %w", err)
	}
	return docs, nil
}

// Delete implements DocumentRepository. Removing the stored file is the
// caller's job; the repository only owns the row.
func (d *documentRepository) Delete(id uuid.UUID) error {
	result := d.db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document not found")
	}
	return nil
}
