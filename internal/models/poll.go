package models

import "time"

// PollStatus is the poll lifecycle state. Only the three values below are
// ever written; anything else is rejected at the service layer.
type PollStatus string

const (
	StatusDraft    PollStatus = "draft"
	StatusStarted  PollStatus = "started"
	StatusFinished PollStatus = "finished"
)

func (s PollStatus) Valid() bool {
	return s == StatusDraft || s == StatusStarted || s == StatusFinished
}

type Poll struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedByID uint       `json:"created_by_id"`
	CreatedBy   User       `gorm:"foreignKey:CreatedByID" json:"created_by"`
	Status      PollStatus `gorm:"type:varchar(10);default:'draft'" json:"status"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	// FinishDuration is the voting window in days, applied when the poll
	// is started. Zero means open-ended.
	FinishDuration int `json:"finish_duration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePollRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdatePollRequest carries a partial update; nil fields are left untouched.
type UpdatePollRequest struct {
	Title          *string     `json:"title"`
	Description    *string     `json:"description"`
	CreatedByID    *uint       `json:"created_by_id"`
	Status         *PollStatus `json:"status"`
	StartedAt      *time.Time  `json:"started_at"`
	FinishedAt     *time.Time  `json:"finished_at"`
	FinishDuration *int        `json:"finish_duration"`
}

type SetStatusRequest struct {
	Status             PollStatus `json:"status"`
	FinishDurationDays int        `json:"finish_duration_days"`
}
