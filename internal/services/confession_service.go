package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/models"
)

const (
	MaxConfessionLen = 280
	MaxCommentLen    = 500
)

// ConfessionService owns the confession lifecycle: create, list, like-toggle,
// comment append/delete, delete. Ownership rules live here, next to the data
// they guard; handlers only supply the resolved requester id and admin flag.
type ConfessionService struct {
	db *gorm.DB
}

func NewConfessionService(db *gorm.DB) *ConfessionService {
	return &ConfessionService{db: db}
}

func (s *ConfessionService) Create(authorID uuid.UUID, text string) (*models.Confession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("confession text is required")
	}
	if utf8.RuneCountInString(text) > MaxConfessionLen {
		return nil, apperror.Validation(fmt.Sprintf("confession must be at most %d characters", MaxConfessionLen))
	}

	confession := models.Confession{
		ID:     uuid.New(),
		UserID: authorID,
		Text:   text,
	}
	if err := s.db.Create(&confession).Error; err != nil {
		return nil, fmt.Errorf("failed to create confession: %w", err)
	}

	confession.Likes = []models.Like{}
	confession.Comments = []models.Comment{}
	return &confession, nil
}

// List returns every confession newest-first with likes and comments attached.
// Public; there is no pagination.
func (s *ConfessionService) List() ([]models.Confession, error) {
	var confessions []models.Confession
	if err := s.preloaded().Order("created_at DESC").Find(&confessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list confessions: %w", err)
	}
	return confessions, nil
}

func (s *ConfessionService) Get(id uuid.UUID) (*models.Confession, error) {
	var confession models.Confession
	if err := s.preloaded().First(&confession, "id = ?", id).Error; err != nil {
		return nil, apperror.NotFound("confession")
	}
	return &confession, nil
}

// ToggleLike flips userID's membership in the confession's like set and
// returns the updated confession. The toggle is a row delete-or-insert under a
// transaction, never a read-modify-write of an array: concurrent toggles from
// different users both land, and the composite unique index on
// (confession_id, user_id) makes a racing duplicate insert lose.
func (s *ConfessionService) ToggleLike(confessionID, userID uuid.UUID) (*models.Confession, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var confession models.Confession
		if err := tx.First(&confession, "id = ?", confessionID).Error; err != nil {
			return apperror.NotFound("confession")
		}

		res := tx.Where("confession_id = ? AND user_id = ?", confessionID, userID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil // was liked, now unliked
		}

		like := models.Like{ID: uuid.New(), ConfessionID: confessionID, UserID: userID}
		return tx.Create(&like).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(confessionID)
}

// AddComment appends a comment to the end of the confession's comment
// sequence and returns the updated confession.
func (s *ConfessionService) AddComment(confessionID, authorID uuid.UUID, text string) (*models.Confession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("comment text is required")
	}
	if utf8.RuneCountInString(text) > MaxCommentLen {
		return nil, apperror.Validation(fmt.Sprintf("comment must be at most %d characters", MaxCommentLen))
	}

	var confession models.Confession
	if err := s.db.First(&confession, "id = ?", confessionID).Error; err != nil {
		return nil, apperror.NotFound("confession")
	}

	comment := models.Comment{
		ID:           uuid.New(),
		ConfessionID: confessionID,
		UserID:       authorID,
		Text:         text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return s.Get(confessionID)
}

// DeleteComment removes exactly one comment. Only the comment's author may
// remove it, unless the requester comes through an admin route.
func (s *ConfessionService) DeleteComment(confessionID, commentID, requesterID uuid.UUID, isAdmin bool) error {
	var confession models.Confession
	if err := s.db.First(&confession, "id = ?", confessionID).Error; err != nil {
		return apperror.NotFound("confession")
	}

	var comment models.Comment
	if err := s.db.Where("id = ? AND confession_id = ?", commentID, confessionID).
		First(&comment).Error; err != nil {
		return apperror.NotFound("comment")
	}

	if !isAdmin && comment.UserID != requesterID {
		return apperror.Forbidden("you can only delete your own comments")
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// Delete removes a confession together with its likes, comments and any
// reports that target it, in one transaction. Only the author may delete,
// unless the requester comes through an admin route.
func (s *ConfessionService) Delete(confessionID, requesterID uuid.UUID, isAdmin bool) error {
	var confession models.Confession
	if err := s.db.First(&confession, "id = ?", confessionID).Error; err != nil {
		return apperror.NotFound("confession")
	}

	if !isAdmin && confession.UserID != requesterID {
		return apperror.Forbidden("you can only delete your own confessions")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("confession_id = ?", confessionID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("confession_id = ?", confessionID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("confession_id = ?", confessionID).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&confession).Error
	})
}

func (s *ConfessionService) preloaded() *gorm.DB {
	return s.db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}
