package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nepal-egov/polling-backend/internal/models"
)

// PollService manages the poll lifecycle: creation, edits, status
// transitions and deletion. All mutating operations require an admin actor.
type PollService struct {
	db *gorm.DB
}

func NewPollService(db *gorm.DB) *PollService {
	return &PollService{db: db}
}

func (s *PollService) requireAdmin(actor Actor) error {
	if !actor.Authenticated() {
		return ErrAuthRequired
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// Create inserts a new poll in draft status owned by the acting admin.
func (s *PollService) Create(actor Actor, req models.CreatePollRequest) (*models.Poll, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	poll := models.Poll{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatedByID: actor.UserID,
		Status:      models.StatusDraft,
	}

	if err := s.db.Create(&poll).Error; err != nil {
		return nil, err
	}

	s.db.Preload("CreatedBy").First(&poll, poll.ID)
	return &poll, nil
}

// Get returns a single poll. Drafts exist only for admins; everyone else
// gets a not-found.
func (s *PollService) Get(actor Actor, id uint) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.Preload("CreatedBy").First(&poll, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if poll.Status == models.StatusDraft && !actor.IsAdmin() {
		return nil, ErrNotFound
	}

	return &poll, nil
}

// List returns polls visible to the actor, newest first. A status filter
// narrows the result; non-admins never see drafts regardless of the filter.
func (s *PollService) List(actor Actor, status *models.PollStatus) ([]models.Poll, error) {
	query := s.db.Preload("CreatedBy").Order("created_at desc")

	if !actor.IsAdmin() {
		query = query.Where("status IN ?", []models.PollStatus{models.StatusStarted, models.StatusFinished})
	}
	if status != nil {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *status)
		}
		query = query.Where("status = ?", *status)
	}

	var polls []models.Poll
	if err := query.Find(&polls).Error; err != nil {
		return nil, err
	}
	if polls == nil {
		polls = []models.Poll{}
	}
	return polls, nil
}

// Update applies a partial edit to a poll. Nil request fields are ignored.
func (s *PollService) Update(actor Actor, id uint, req models.UpdatePollRequest) (*models.Poll, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	var poll models.Poll
	if err := s.db.First(&poll, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		poll.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		poll.Description = *req.Description
	}
	if req.CreatedByID != nil {
		poll.CreatedByID = *req.CreatedByID
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		poll.Status = *req.Status
	}
	if req.StartedAt != nil {
		poll.StartedAt = req.StartedAt
	}
	if req.FinishedAt != nil {
		poll.FinishedAt = req.FinishedAt
	}
	if req.FinishDuration != nil {
		poll.FinishDuration = *req.FinishDuration
	}

	if err := s.db.Save(&poll).Error; err != nil {
		return nil, err
	}

	s.db.Preload("CreatedBy").First(&poll, poll.ID)
	return &poll, nil
}

// SetStatus moves a poll to a new lifecycle state and maintains the derived
// timestamps. Every transition is legal for an admin, including backward
// ones (finished polls can be reopened); the state machine deliberately
// does not forbid edges, only the admin gate applies.
//
// Starting a poll with a duration in days fixes the voting deadline at
// now + duration; without one the poll stays open-ended. Finishing stamps
// finished_at unless already set. Returning to draft clears finished_at.
func (s *PollService) SetStatus(actor Actor, id uint, status models.PollStatus, finishDurationDays int) (*models.Poll, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var poll models.Poll
	if err := s.db.First(&poll, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()

	switch status {
	case models.StatusStarted:
		poll.Status = models.StatusStarted
		poll.StartedAt = &now
		if finishDurationDays > 0 {
			poll.FinishDuration = finishDurationDays
			finish := now.AddDate(0, 0, finishDurationDays)
			poll.FinishedAt = &finish
		}
	case models.StatusFinished:
		poll.Status = models.StatusFinished
		if poll.FinishedAt == nil {
			poll.FinishedAt = &now
		}
	case models.StatusDraft:
		poll.Status = models.StatusDraft
		poll.FinishedAt = nil
	}

	if err := s.db.Save(&poll).Error; err != nil {
		return nil, err
	}

	s.db.Preload("CreatedBy").First(&poll, poll.ID)
	return &poll, nil
}

// Delete removes a poll and all of its votes in one transaction.
func (s *PollService) Delete(actor Actor, id uint) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	var poll models.Poll
	if err := s.db.First(&poll, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&poll).Error
	})
}
