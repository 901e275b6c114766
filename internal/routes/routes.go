package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/whisperwall/server/internal/config"
	"github.com/whisperwall/server/internal/handlers"
	"github.com/whisperwall/server/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	confessionHandler *handlers.ConfessionHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limiter: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	protected := middleware.Protected(cfg)

	api.Get("/auth/me", protected, authHandler.Me)
	api.Post("/auth/logout", protected, authHandler.Logout)

	// Confessions — the feed is public, everything else needs a token.
	api.Get("/confessions", confessionHandler.List)
	api.Post("/confessions", protected, confessionHandler.Create)
	api.Put("/confessions/:id/like", protected, confessionHandler.ToggleLike)
	api.Post("/confessions/:id/comment", protected, confessionHandler.AddComment)
	api.Delete("/confessions/:id/comment/:commentId", protected, confessionHandler.DeleteComment)
	api.Delete("/confessions/:id", protected, confessionHandler.Delete)

	// Reports
	api.Post("/reports/post/:id", protected, reportHandler.ReportPost)
	api.Post("/reports/comment/:postId/:commentId", protected, reportHandler.ReportComment)

	// Admin dashboard (token + admin role)
	admin := api.Group("/admin", protected, middleware.AdminRequired(db))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/user/:id", adminHandler.DeleteUser)
	admin.Get("/posts", adminHandler.ListPosts)
	admin.Delete("/post/:id", adminHandler.DeletePost)
	admin.Delete("/comment/:postId/:commentId", adminHandler.DeleteComment)
	admin.Get("/reports", adminHandler.ListReports)
	admin.Put("/report/:id/resolve", adminHandler.ResolveReport)
}
