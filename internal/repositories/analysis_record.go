package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-roaster/internal/models"
)

type AnalysisRecordRepository interface {
	Create(record *models.AnalysisRecord) error
	CountByOutcome(since time.Time) ([]models.OutcomeCount, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type analysisRecordRepository struct {
	db *gorm.DB
}

func NewAnalysisRecordRepository(db *gorm.DB) AnalysisRecordRepository {
	return &analysisRecordRepository{db: db}
}

func (r *analysisRecordRepository) Create(record *models.AnalysisRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

func (r *analysisRecordRepository) CountByOutcome(since time.Time) ([]models.OutcomeCount, error) {
	var counts []models.OutcomeCount
	err := r.db.Model(&models.AnalysisRecord{}).
		Select("outcome, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("outcome").
		Order("outcome ASC").
		Scan(&counts).Error

	if err != nil {
		return nil, fmt.Errorf("failed to count analysis records: %w", err)
	}

	return counts, nil
}

func (r *analysisRecordRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("created_at < ?", cutoff).
		Delete(&models.AnalysisRecord{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old analysis records: %w", result.Error)
	}

	return result.RowsAffected, nil
}
