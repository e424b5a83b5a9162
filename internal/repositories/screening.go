package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"screenerpro/engine/internal/models"
)

type ScreeningRepository interface {
	Create(s *models.Screening) error
	FindByID(id uuid.UUID) (*models.Screening, error)
	UpdateStatus(id uuid.UUID, status models.ScreeningStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Screening, error)
	SaveResults(id uuid.UUID, results []models.ScreeningResult) error
	FindResults(id uuid.UUID) ([]models.ScreeningResult, error)
	FindResultByID(id uuid.UUID) (*models.ScreeningResult, error)
	DeleteResult(id uuid.UUID) error
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) Create(s *models.Screening) error {
	if err := r.db.Create(s).Error; err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}
	return nil
}

func (r *screeningRepository) FindByID(id uuid.UUID) (*models.Screening, error) {
	var s models.Screening
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("screening not found")
		}
		return nil, fmt.Errorf("failed to find screening: %w", err)
	}
	return &s, nil
}

func (r *screeningRepository) UpdateStatus(id uuid.UUID, status models.ScreeningStatus) error {
	result := r.db.Model(&models.Screening{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("screening not found")
	}
	return nil
}

func (r *screeningRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Screening{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("screening not found")
	}
	return nil
}

func (r *screeningRepository) FindPendingJobs(limit int) ([]models.Screening, error) {
	var screenings []models.Screening
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&screenings).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return screenings, nil
}

// SaveResults stores the whole result table for a batch and marks the
// screening completed, atomically.
func (r *screeningRepository) SaveResults(id uuid.UUID, results []models.ScreeningResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return fmt.Errorf("failed to save results: %w", err)
			}
		}

		result := tx.Model(&models.Screening{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     models.StatusCompleted,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark screening completed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("screening not found")
		}
		return nil
	})
}

func (r *screeningRepository) FindResults(id uuid.UUID) ([]models.ScreeningResult, error) {
	var results []models.ScreeningResult
	err := r.db.
		Where("screening_id = ?", id).
		Order("score DESC").
		Find(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find results: %w", err)
	}
	return results, nil
}

func (r *screeningRepository) DeleteResult(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.ScreeningResult{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("result not found")
	}
	return nil
}

func (r *screeningRepository) FindResultByID(id uuid.UUID) (*models.ScreeningResult, error) {
	var result models.ScreeningResult
	if err := r.db.Where("id = ?", id).First(&result).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("result not found")
		}
		return nil, fmt.Errorf("failed to find result: %w", err)
	}
	return &result, nil
}
