package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/whisperwall/server/internal/models"
)

type CreateReportRequest struct {
	Reason string `json:"reason"`
}

type ReporterInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// ReportResponse is the moderation queue row: the report plus its referenced
// confession and the reporter's display data. Reporter is null when the
// reporting account has since been deleted.
type ReportResponse struct {
	ID         uuid.UUID           `json:"id"`
	Type       string              `json:"type"`
	Reason     string              `json:"reason"`
	Status     string              `json:"status"`
	Confession *ConfessionResponse `json:"post"`
	Reporter   *ReporterInfo       `json:"reported_by"`
	CreatedAt  time.Time           `json:"created_at"`
}

func NewReportResponse(r *models.Report) ReportResponse {
	resp := ReportResponse{
		ID:        r.ID,
		Type:      r.Type,
		Reason:    r.Reason,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if r.Confession != nil {
		c := NewConfessionResponse(r.Confession)
		resp.Confession = &c
	}
	if r.Reporter != nil {
		resp.Reporter = &ReporterInfo{ID: r.Reporter.ID, Email: r.Reporter.Email}
	}
	return resp
}

func NewReportList(reports []models.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportResponse(&reports[i]))
	}
	return out
}
