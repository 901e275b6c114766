package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/auth"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/models"
	"github.com/whisperwall/server/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ReportPost flags a confession. POST /reports/post/:id
func (h *ReportHandler) ReportPost(c *fiber.Ctx) error {
	return h.create(c, c.Params("id"), models.ReportTypePost)
}

// ReportComment flags a comment via its parent confession.
// POST /reports/comment/:postId/:commentId
func (h *ReportHandler) ReportComment(c *fiber.Ctx) error {
	return h.create(c, c.Params("postId"), models.ReportTypeComment)
}

func (h *ReportHandler) create(c *fiber.Ctx, rawID, reportType string) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	confessionID, err := uuid.Parse(rawID)
	if err != nil {
		return apperror.Validation("invalid confession id")
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if _, err := h.service.Create(confessionID, userID, req.Reason, reportType); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Reported successfully"})
}
