package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nepal-egov/polling-backend/internal/models"
	"github.com/nepal-egov/polling-backend/internal/service"
)

type PollHandler struct {
	polls *service.PollService
}

func NewPollHandler(polls *service.PollService) *PollHandler {
	return &PollHandler{polls: polls}
}

// GetPolls lists polls visible to the caller. Supports ?status=started etc.
// Runs behind optional auth so admins also see drafts.
func (h *PollHandler) GetPolls(c *gin.Context) {
	var status *models.PollStatus
	if raw := c.Query("status"); raw != "" {
		s := models.PollStatus(raw)
		status = &s
	}

	polls, err := h.polls.List(currentActor(c), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, polls)
}

// GetPoll returns a single poll by ID
func (h *PollHandler) GetPoll(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	poll, err := h.polls.Get(currentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// CreatePoll creates a new draft poll (admin only)
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var input models.CreatePollRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.polls.Create(currentActor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// UpdatePoll applies a partial edit to a poll (admin only)
func (h *PollHandler) UpdatePoll(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.UpdatePollRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.polls.Update(currentActor(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// SetPollStatus moves a poll through its lifecycle (admin only)
func (h *PollHandler) SetPollStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.SetStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.polls.SetStatus(currentActor(c), id, input.Status, input.FinishDurationDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// DeletePoll removes a poll and its votes (admin only)
func (h *PollHandler) DeletePoll(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.polls.Delete(currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted successfully"})
}
