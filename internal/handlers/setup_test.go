package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nepal-egov/polling-backend/internal/database"
	"github.com/nepal-egov/polling-backend/internal/middleware"
	"github.com/nepal-egov/polling-backend/internal/models"
	"github.com/nepal-egov/polling-backend/internal/notify"
)

// setupTestEnvironment wires the real handlers and middlewares onto a test
// router over an in-memory SQLite database, mirroring the production route
// registration.
func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	h := NewHandler(db, notify.NewSMSFromEnv())

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		public := api.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/polls", h.Poll.GetPolls)
			public.GET("/polls/:id", h.Poll.GetPoll)
			public.GET("/polls/:id/results", h.Vote.GetResults)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", h.Auth.GetMe)
			protected.PUT("/me", h.User.UpdateProfile)
			protected.POST("/me/photo", h.User.UploadPhoto)
			protected.DELETE("/me/photo", h.User.DeletePhoto)
			protected.POST("/polls/:id/vote", h.Vote.CastVote)
			protected.GET("/polls/:id/vote", h.Vote.GetVoteStatus)

			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/polls", h.Poll.CreatePoll)
				admin.PUT("/polls/:id", h.Poll.UpdatePoll)
				admin.PATCH("/polls/:id/status", h.Poll.SetPollStatus)
				admin.DELETE("/polls/:id", h.Poll.DeletePoll)

				admin.GET("/users", h.User.ListUsers)
				admin.PUT("/users/:id", h.User.UpdateUser)
				admin.PATCH("/users/:id/role", h.User.SetUserRole)
				admin.DELETE("/users/:id", h.User.DeleteUser)
			}
		}
	}

	return router, db
}

func clearTables(db *gorm.DB) {
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Vote{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Poll{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{})
}

var testUserSeq int

// seedUser inserts a user directly and returns it with a signed token.
func seedUser(t *testing.T, db *gorm.DB, role models.Role) (models.User, string) {
	t.Helper()

	testUserSeq++
	user := models.User{
		FullName: fmt.Sprintf("Citizen %d", testUserSeq),
		Email:    fmt.Sprintf("citizen%d@example.com.np", testUserSeq),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

func seedStartedPoll(t *testing.T, db *gorm.DB, owner models.User) models.Poll {
	t.Helper()

	now := time.Now().UTC()
	poll := models.Poll{
		Title:       "Widen the Ring Road?",
		CreatedByID: owner.ID,
		Status:      models.StatusStarted,
		StartedAt:   &now,
	}
	require.NoError(t, db.Create(&poll).Error)
	return poll
}

func pollPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/polls/%d%s", id, suffix)
}

func userPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/users/%d%s", id, suffix)
}

// doJSON performs a JSON request with an optional bearer token.
func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
