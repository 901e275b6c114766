package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/auth"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperror.Unauthenticated("Unauthorized")
	}

	resp, err := h.authService.Me(userID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := h.authService.Logout(&req); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
