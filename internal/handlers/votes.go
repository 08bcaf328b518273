package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nepal-egov/polling-backend/internal/models"
	"github.com/nepal-egov/polling-backend/internal/service"
)

type VoteHandler struct {
	votes *service.VoteService
}

func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// CastVote records the caller's vote on a poll
func (h *VoteHandler) CastVote(c *gin.Context) {
	pollID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choice must be positive or negative"})
		return
	}

	vote, err := h.votes.Cast(currentActor(c), pollID, input.Choice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vote)
}

// GetVoteStatus reports whether the caller already voted on a poll
func (h *VoteHandler) GetVoteStatus(c *gin.Context) {
	pollID, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := h.votes.Status(currentActor(c), pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetResults returns the current tally for a poll (public)
func (h *VoteHandler) GetResults(c *gin.Context) {
	pollID, ok := parseID(c, "id")
	if !ok {
		return
	}

	results, err := h.votes.Results(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
