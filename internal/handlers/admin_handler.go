package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/services"
)

// AdminHandler serves the moderation dashboard. Every route behind it is
// already gated by Protected + AdminRequired.
type AdminHandler struct {
	service *services.AdminService
}

func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *AdminHandler) ListPosts(c *fiber.Ctx) error {
	confessions, err := h.service.ListConfessions()
	if err != nil {
		return err
	}
	return c.JSON(dto.NewConfessionList(confessions))
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid user id")
	}
	if err := h.service.DeleteUser(userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}

func (h *AdminHandler) DeletePost(c *fiber.Ctx) error {
	confessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid confession id")
	}
	if err := h.service.DeleteConfession(confessionID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}

func (h *AdminHandler) DeleteComment(c *fiber.Ctx) error {
	confessionID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return apperror.Validation("invalid confession id")
	}
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return apperror.Validation("invalid comment id")
	}
	if err := h.service.DeleteComment(confessionID, commentID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.service.ListPendingReports()
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportList(reports))
}

func (h *AdminHandler) ResolveReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid report id")
	}
	if err := h.service.ResolveReport(reportID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Report resolved"})
}
