// Package match holds the matching-request entity and its state machine.
package match

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string { return string(s) }

// Terminal reports whether no further transition is allowed out of s.
// Pending is the only non-terminal state; it is set exactly once, at create.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusCancelled
}

// CanTransition reports whether a request in state s may move to next.
func (s Status) CanTransition(next Status) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusAccepted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

type Request struct {
	ID        int64
	MentorID  int64
	MenteeID  int64
	Message   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrNotFound = errors.New("match request not found")
