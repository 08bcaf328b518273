package models

import "time"

// VoteChoice is a yes/no answer on a poll.
type VoteChoice string

const (
	ChoicePositive VoteChoice = "positive"
	ChoiceNegative VoteChoice = "negative"
)

func (c VoteChoice) Valid() bool {
	return c == ChoicePositive || c == ChoiceNegative
}

// Vote records one citizen's choice on one poll. The composite unique index
// on (poll_id, user_id) is what guarantees at-most-one vote per pair; the
// insert is never preceded by a lookup.
type Vote struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PollID    uint       `gorm:"not null;uniqueIndex:idx_poll_voter" json:"poll_id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_poll_voter" json:"user_id"`
	Choice    VoteChoice `gorm:"type:varchar(10);not null" json:"choice"`
	CreatedAt time.Time  `json:"created_at"`
}

type CastVoteRequest struct {
	Choice VoteChoice `json:"choice" binding:"required"`
}

// VoteStatus is the per-user view of a poll's voting state.
type VoteStatus struct {
	HasVoted bool       `json:"has_voted"`
	Choice   VoteChoice `json:"choice,omitempty"`
}

// PollResults is the on-demand tally for a poll. Percentages are integers
// and sum to 100 whenever TotalVotes is non-zero.
type PollResults struct {
	TotalVotes         int64 `json:"total_votes"`
	PositiveVotes      int64 `json:"positive_votes"`
	NegativeVotes      int64 `json:"negative_votes"`
	PositivePercentage int   `json:"positive_percentage"`
	NegativePercentage int   `json:"negative_percentage"`
}
