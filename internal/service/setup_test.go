package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nepal-egov/polling-backend/internal/database"
	"github.com/nepal-egov/polling-backend/internal/models"
)

// setupDB opens an in-memory SQLite database with the production schema.
// TranslateError is on, as in production, so the unique indexes surface as
// gorm.ErrDuplicatedKey.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	clearTables(db)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// clearTables wipes all rows; order matters for the foreign keys.
func clearTables(db *gorm.DB) {
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Vote{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Poll{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{})
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()

	userSeq++
	user := models.User{
		FullName: fmt.Sprintf("Citizen %d", userSeq),
		Email:    fmt.Sprintf("citizen%d@example.com.np", userSeq),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPoll(t *testing.T, db *gorm.DB, owner models.User, status models.PollStatus) models.Poll {
	t.Helper()

	poll := models.Poll{
		Title:       "Should the ward build a new health post?",
		CreatedByID: owner.ID,
		Status:      status,
	}
	if status != models.StatusDraft {
		now := time.Now().UTC()
		poll.StartedAt = &now
	}
	require.NoError(t, db.Create(&poll).Error)
	return poll
}

func asActor(u models.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}
