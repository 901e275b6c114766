package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/whisperwall/server/internal/config"
	"github.com/whisperwall/server/internal/database"
	"github.com/whisperwall/server/internal/models"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// MaxOpenConns(1) keeps every GORM session on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		AdminEmails:      "admin@example.com",
	}
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedConfession(t *testing.T, db *gorm.DB, authorID uuid.UUID, text string) models.Confession {
	t.Helper()

	confession := models.Confession{
		ID:     uuid.New(),
		UserID: authorID,
		Text:   text,
	}
	require.NoError(t, db.Create(&confession).Error)
	return confession
}
