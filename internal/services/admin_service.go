package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/models"
)

// AdminService is the read-only dashboard aggregation plus the moderation
// pass-throughs. Totals are plain counts recomputed per request; there are no
// incremental counters to drift.
type AdminService struct {
	db          *gorm.DB
	confessions *ConfessionService
	reports     *ReportService
}

func NewAdminService(db *gorm.DB, confessions *ConfessionService, reports *ReportService) *AdminService {
	return &AdminService{db: db, confessions: confessions, reports: reports}
}

func (s *AdminService) Stats() (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}

	if err := s.db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&models.Confession{}).Count(&stats.Confessions).Error; err != nil {
		return nil, fmt.Errorf("failed to count confessions: %w", err)
	}
	if err := s.db.Model(&models.Comment{}).Count(&stats.Comments).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	if err := s.db.Model(&models.Like{}).Count(&stats.Likes).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	perDay, err := s.postsPerDay()
	if err != nil {
		return nil, err
	}
	stats.PostsPerDay = perDay

	return stats, nil
}

// postsPerDay groups confession timestamps by calendar date, ascending.
// Grouping happens in Go so the query stays portable across dialects.
func (s *AdminService) postsPerDay() ([]dto.DailyCount, error) {
	var createdAts []time.Time
	if err := s.db.Model(&models.Confession{}).Pluck("created_at", &createdAts).Error; err != nil {
		return nil, fmt.Errorf("failed to load confession dates: %w", err)
	}

	grouped := make(map[string]int64)
	for _, ts := range createdAts {
		grouped[ts.UTC().Format("2006-01-02")]++
	}

	out := make([]dto.DailyCount, 0, len(grouped))
	for date, count := range grouped {
		out = append(out, dto.DailyCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) ListConfessions() ([]models.Confession, error) {
	return s.confessions.List()
}

// DeleteUser removes the account only. Confessions and reports authored by
// the user stay behind with a dangling author reference.
func (s *AdminService) DeleteUser(userID uuid.UUID) error {
	result := s.db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user")
	}
	return nil
}

// The remaining moderation actions delegate with the admin bypass flag set.

func (s *AdminService) DeleteConfession(confessionID uuid.UUID) error {
	return s.confessions.Delete(confessionID, uuid.Nil, true)
}

func (s *AdminService) DeleteComment(confessionID, commentID uuid.UUID) error {
	return s.confessions.DeleteComment(confessionID, commentID, uuid.Nil, true)
}

func (s *AdminService) ListPendingReports() ([]models.Report, error) {
	return s.reports.ListPending()
}

func (s *AdminService) ResolveReport(reportID uuid.UUID) error {
	return s.reports.Resolve(reportID)
}
