package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nepal-egov/polling-backend/internal/middleware"
	"github.com/nepal-egov/polling-backend/internal/models"
	"github.com/nepal-egov/polling-backend/internal/notify"
	"github.com/nepal-egov/polling-backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth *AuthHandler
	Poll *PollHandler
	Vote *VoteHandler
	User *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, sms *notify.SMS) *Handler {
	return &Handler{
		Auth: NewAuthHandler(db, sms),
		Poll: NewPollHandler(service.NewPollService(db)),
		Vote: NewVoteHandler(service.NewVoteService(db)),
		User: NewUserHandler(db, service.NewUserService(db)),
	}
}

// currentActor builds the service actor from whatever the auth middleware
// resolved; anonymous when nothing is set.
func currentActor(c *gin.Context) service.Actor {
	raw, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return service.Anonymous
	}
	userID, ok := raw.(uint)
	if !ok {
		return service.Anonymous
	}

	role := models.RoleUser
	if r, exists := c.Get(middleware.ContextRole); exists {
		if typed, ok := r.(models.Role); ok {
			role = typed
		}
	}

	return service.Actor{UserID: userID, Role: role}
}

// parseID reads a numeric path parameter; responds 400 and returns false
// when it is not a positive integer.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPollNotActive),
		errors.Is(err, service.ErrPollClosed),
		errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
