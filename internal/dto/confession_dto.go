package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/whisperwall/server/internal/models"
)

type CreateConfessionRequest struct {
	Text string `json:"text"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ConfessionResponse flattens likes back to the array-of-user-ids shape the
// feed consumes. Likes and comments are always present, never null.
type ConfessionResponse struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Text      string            `json:"text"`
	Likes     []uuid.UUID       `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewConfessionResponse(c *models.Confession) ConfessionResponse {
	likes := make([]uuid.UUID, 0, len(c.Likes))
	for _, l := range c.Likes {
		likes = append(likes, l.UserID)
	}

	comments := make([]CommentResponse, 0, len(c.Comments))
	for _, cm := range c.Comments {
		comments = append(comments, CommentResponse{
			ID:        cm.ID,
			UserID:    cm.UserID,
			Text:      cm.Text,
			CreatedAt: cm.CreatedAt,
		})
	}

	return ConfessionResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Text:      c.Text,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: c.CreatedAt,
	}
}

func NewConfessionList(confessions []models.Confession) []ConfessionResponse {
	out := make([]ConfessionResponse, 0, len(confessions))
	for i := range confessions {
		out = append(out, NewConfessionResponse(&confessions[i]))
	}
	return out
}
