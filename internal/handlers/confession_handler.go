package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/auth"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/services"
)

type ConfessionHandler struct {
	service *services.ConfessionService
}

func NewConfessionHandler(service *services.ConfessionService) *ConfessionHandler {
	return &ConfessionHandler{service: service}
}

// List is the public feed; no token required.
func (h *ConfessionHandler) List(c *fiber.Ctx) error {
	confessions, err := h.service.List()
	if err != nil {
		return err
	}
	return c.JSON(dto.NewConfessionList(confessions))
}

func (h *ConfessionHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	var req dto.CreateConfessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	confession, err := h.service.Create(userID, req.Text)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewConfessionResponse(confession))
}

func (h *ConfessionHandler) ToggleLike(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	confessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid confession id")
	}

	confession, err := h.service.ToggleLike(confessionID, userID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewConfessionResponse(confession))
}

func (h *ConfessionHandler) AddComment(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	confessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid confession id")
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	confession, err := h.service.AddComment(confessionID, userID, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewConfessionResponse(confession))
}

func (h *ConfessionHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	confessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid confession id")
	}
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return apperror.Validation("invalid comment id")
	}

	if err := h.service.DeleteComment(confessionID, commentID, userID, false); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}

func (h *ConfessionHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	confessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Validation("invalid confession id")
	}

	if err := h.service.Delete(confessionID, userID, false); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}
