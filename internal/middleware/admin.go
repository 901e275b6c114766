package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/whisperwall/server/internal/auth"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/models"
)

// AdminRequired gates a route on the requester's stored role. The DB row is
// authoritative: a stale role claim in an otherwise valid token is not enough,
// and a deleted user is rejected the same way as a non-admin.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil && user.IsAdmin() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
