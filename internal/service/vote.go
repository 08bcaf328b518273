package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/nepal-egov/polling-backend/internal/models"
)

// VoteService records votes and computes tallies.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Cast records the actor's vote on a poll. Preconditions are checked in a
// fixed order, each with its own error: the poll must exist and be started,
// the voting deadline (when one is set) must not have passed — the deadline
// wins over a stale status flag — and the actor must be authenticated.
//
// Uniqueness is not checked up front. The insert relies on the composite
// unique index on (poll_id, user_id), so two concurrent submissions cannot
// both succeed; the loser surfaces as ErrAlreadyVoted.
func (s *VoteService) Cast(actor Actor, pollID uint, choice models.VoteChoice) (*models.Vote, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("%w: choice must be positive or negative", ErrValidation)
	}

	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotActive
		}
		return nil, err
	}
	if poll.Status != models.StatusStarted {
		return nil, ErrPollNotActive
	}
	if poll.FinishedAt != nil && time.Now().After(*poll.FinishedAt) {
		return nil, ErrPollClosed
	}
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}

	vote := models.Vote{
		PollID: poll.ID,
		UserID: actor.UserID,
		Choice: choice,
	}

	if err := s.db.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	return &vote, nil
}

// Status reports whether the actor has voted on a poll, and with which
// choice. Read-only.
func (s *VoteService) Status(actor Actor, pollID uint) (*models.VoteStatus, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}

	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var vote models.Vote
	err := s.db.Where("poll_id = ? AND user_id = ?", pollID, actor.UserID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.VoteStatus{HasVoted: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.VoteStatus{HasVoted: true, Choice: vote.Choice}, nil
}

// Results tallies a poll's votes at request time. Nothing is cached; every
// call recounts. Percentages are integer-rounded and the negative share is
// the complement of the positive one, so the pair always sums to 100 when
// any votes exist (and to 0 when none do).
func (s *VoteService) Results(pollID uint) (*models.PollResults, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var positive, negative int64
	if err := s.db.Model(&models.Vote{}).
		Where("poll_id = ? AND choice = ?", pollID, models.ChoicePositive).
		Count(&positive).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Vote{}).
		Where("poll_id = ? AND choice = ?", pollID, models.ChoiceNegative).
		Count(&negative).Error; err != nil {
		return nil, err
	}

	results := models.PollResults{
		TotalVotes:    positive + negative,
		PositiveVotes: positive,
		NegativeVotes: negative,
	}
	if results.TotalVotes > 0 {
		results.PositivePercentage = int(math.Round(float64(positive) * 100 / float64(results.TotalVotes)))
		results.NegativePercentage = 100 - results.PositivePercentage
	}

	return &results, nil
}
