package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	FindRecent(limit int) ([]models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

// FindByID implements AnalysisRepository.
func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	return &analysis, nil
}

// FindRecent implements AnalysisRepository.
func (r *analysisRepository) FindRecent(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find recent analyses: %w", err)
	}

	return analyses, nil
}
