package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/whisperwall/server/internal/config"
	"github.com/whisperwall/server/internal/database"
	"github.com/whisperwall/server/internal/handlers"
	"github.com/whisperwall/server/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		AdminEmails:      "admin@example.com",
		CORSOrigins:      "*",
	}

	authService := services.NewAuthService(db, cfg)
	confessionService := services.NewConfessionService(db)
	reportService := services.NewReportService(db)
	adminService := services.NewAdminService(db, confessionService, reportService)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewConfessionHandler(confessionService),
		handlers.NewReportHandler(reportService),
		handlers.NewAdminHandler(adminService),
		handlers.NewHealthHandler(db),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func register(t *testing.T, app *fiber.App, email string) (token string, userID string) {
	t.Helper()

	resp, raw := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": email, "password": "longenough",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var body struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Token, body.UserID
}

type confessionBody struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Text     string   `json:"text"`
	Likes    []string `json:"likes"`
	Comments []struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
		Text   string `json:"text"`
	} `json:"comments"`
}

// Full lifecycle: post, like, unlike, comment, owner delete.
func TestConfessionLifecycle(t *testing.T) {
	app := newTestApp(t)

	tokenA, _ := register(t, app, "a@example.com")
	tokenB, userB := register(t, app, "b@example.com")
	tokenC, userC := register(t, app, "c@example.com")

	// A creates "hello"
	resp, raw := doJSON(t, app, "POST", "/api/confessions", tokenA, fiber.Map{"text": "hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	// public list shows one entry with empty likes/comments
	resp, raw = doJSON(t, app, "GET", "/api/confessions", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []confessionBody
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Text)
	assert.Empty(t, list[0].Likes)
	assert.Empty(t, list[0].Comments)
	id := list[0].ID

	// B likes
	resp, raw = doJSON(t, app, "PUT", "/api/confessions/"+id+"/like", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated confessionBody
	require.NoError(t, json.Unmarshal(raw, &updated))
	require.Len(t, updated.Likes, 1)
	assert.Equal(t, userB, updated.Likes[0])

	// B unlikes
	resp, raw = doJSON(t, app, "PUT", "/api/confessions/"+id+"/like", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Empty(t, updated.Likes)

	// C comments "hi"
	resp, raw = doJSON(t, app, "POST", "/api/confessions/"+id+"/comment", tokenC, fiber.Map{"text": "hi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &updated))
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "hi", updated.Comments[0].Text)
	assert.Equal(t, userC, updated.Comments[0].UserID)

	// B may not delete A's confession
	resp, _ = doJSON(t, app, "DELETE", "/api/confessions/"+id, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// A (owner) deletes; the feed is empty again
	resp, _ = doJSON(t, app, "DELETE", "/api/confessions/"+id, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, "GET", "/api/confessions", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list)
}

func TestAuthGates(t *testing.T) {
	app := newTestApp(t)
	tokenA, _ := register(t, app, "a@example.com")

	t.Run("create without token", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/confessions", "", fiber.Map{"text": "hello"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, _ := doJSON(t, app, "PUT", "/api/confessions/x/like", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin routes reject non-admin regardless of valid token", func(t *testing.T) {
		for _, path := range []string{"/api/admin/users", "/api/admin/posts", "/api/admin/reports", "/api/admin/stats"} {
			resp, _ := doJSON(t, app, "GET", path, tokenA, nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		}
	})

	t.Run("empty confession is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/confessions", tokenA, fiber.Map{"text": "   "})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReportAndModerationFlow(t *testing.T) {
	app := newTestApp(t)

	tokenUser, _ := register(t, app, "user@example.com")
	tokenAdmin, _ := register(t, app, "admin@example.com")

	// user posts and reports it
	resp, raw := doJSON(t, app, "POST", "/api/confessions", tokenUser, fiber.Map{"text": "report me"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var confession confessionBody
	require.NoError(t, json.Unmarshal(raw, &confession))

	resp, _ = doJSON(t, app, "POST", "/api/reports/post/"+confession.ID, tokenUser, fiber.Map{"reason": "spam"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// blank reason is a 400
	resp, _ = doJSON(t, app, "POST", "/api/reports/post/"+confession.ID, tokenUser, fiber.Map{"reason": " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// admin sees the pending report with the joined post
	resp, raw = doJSON(t, app, "GET", "/api/admin/reports", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var reports []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Post   *struct {
			Text string `json:"text"`
		} `json:"post"`
		ReportedBy *struct {
			Email string `json:"email"`
		} `json:"reported_by"`
	}
	require.NoError(t, json.Unmarshal(raw, &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "pending", reports[0].Status)
	require.NotNil(t, reports[0].Post)
	assert.Equal(t, "report me", reports[0].Post.Text)
	require.NotNil(t, reports[0].ReportedBy)
	assert.Equal(t, "user@example.com", reports[0].ReportedBy.Email)

	// resolve empties the queue; resolving again stays 200
	resp, _ = doJSON(t, app, "PUT", "/api/admin/report/"+reports[0].ID+"/resolve", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, "PUT", "/api/admin/report/"+reports[0].ID+"/resolve", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, "GET", "/api/admin/reports", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &reports))
	assert.Empty(t, reports)

	// admin deletes the post without owning it
	resp, _ = doJSON(t, app, "DELETE", "/api/admin/post/"+confession.ID, tokenAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, "GET", "/api/admin/stats", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		Users       int64 `json:"users"`
		Confessions int64 `json:"confessions"`
	}
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, int64(2), stats.Users)
	assert.Zero(t, stats.Confessions)
}
