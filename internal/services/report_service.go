package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/models"
)

// ReportService owns the moderation queue: users file reports against a
// confession or one of its comments, admins resolve them.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) Create(confessionID, reporterID uuid.UUID, reason, reportType string) (*models.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.Validation("reason is required")
	}
	if reportType != models.ReportTypePost && reportType != models.ReportTypeComment {
		return nil, apperror.Validation("type must be post or comment")
	}

	var confession models.Confession
	if err := s.db.First(&confession, "id = ?", confessionID).Error; err != nil {
		return nil, apperror.NotFound("confession")
	}

	report := models.Report{
		ID:           uuid.New(),
		ConfessionID: confessionID,
		ReporterID:   reporterID,
		Reason:       strings.TrimSpace(reason),
		Type:         reportType,
		Status:       models.ReportStatusPending,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// ListPending returns open reports newest-first with the referenced confession
// and the reporter attached (the moderation queue's read-side join).
func (s *ReportService) ListPending() ([]models.Report, error) {
	var reports []models.Report
	err := s.db.
		Where("status = ?", models.ReportStatusPending).
		Preload("Confession").
		Preload("Reporter").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Resolve moves a report to resolved. The transition is one-way and resolving
// an already-resolved report is a no-op, not an error.
func (s *ReportService) Resolve(reportID uuid.UUID) error {
	result := s.db.Model(&models.Report{}).
		Where("id = ?", reportID).
		Update("status", models.ReportStatusResolved)
	if result.Error != nil {
		return fmt.Errorf("failed to resolve report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var existing models.Report
		if err := s.db.First(&existing, "id = ?", reportID).Error; err != nil {
			return apperror.NotFound("report")
		}
	}
	return nil
}
