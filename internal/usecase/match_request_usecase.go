package usecase

import (
	"context"
	"errors"

	"mentor-match/internal/domain/match"
	"mentor-match/internal/domain/user"
	"mentor-match/internal/repository"
)

var (
	ErrOnlyMentees          = errors.New("only mentees can send requests")
	ErrOnlyMentors          = errors.New("only mentors can act on requests")
	ErrMentorNotFound       = errors.New("mentor not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrPendingRequestExists = errors.New("you already have a pending request")
	ErrDuplicateRequest     = errors.New("request to this mentor already exists")
	ErrAlreadyMentoring     = errors.New("you already have an accepted mentoring relationship")
	ErrRequestNotPending    = errors.New("request is no longer pending")
)

type CreateRequestInput struct {
	MentorID int64
	Message  string
}

type MatchRequestUsecase interface {
	Create(ctx context.Context, caller Actor, in CreateRequestInput) (match.Request, error)
	Accept(ctx context.Context, caller Actor, requestID int64) (match.Request, error)
	Reject(ctx context.Context, caller Actor, requestID int64) (match.Request, error)
	Cancel(ctx context.Context, caller Actor, requestID int64) (match.Request, error)
	Incoming(ctx context.Context, caller Actor) ([]match.Request, error)
	Outgoing(ctx context.Context, caller Actor) ([]match.Request, error)
}

// Ledger enforces the matching-request lifecycle. Uniqueness rules are not
// pre-checked here: the insert and the guarded status update surface them
// as constraint errors, so concurrent callers cannot slip past a stale read.
type Ledger struct {
	requests repository.MatchRequestRepository
	users    repository.UserRepository
}

func NewMatchRequestUsecase(requests repository.MatchRequestRepository, users repository.UserRepository) *Ledger {
	return &Ledger{requests: requests, users: users}
}

func (l *Ledger) Create(ctx context.Context, caller Actor, in CreateRequestInput) (match.Request, error) {
	if caller.Role != user.RoleMentee.String() {
		return match.Request{}, ErrOnlyMentees
	}
	if in.MentorID <= 0 {
		return match.Request{}, &MissingFieldError{Field: "mentorId"}
	}

	mentor, err := l.users.GetByID(ctx, in.MentorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return match.Request{}, ErrMentorNotFound
		}
		return match.Request{}, ErrInternal
	}
	if mentor.Role != user.RoleMentor {
		return match.Request{}, ErrMentorNotFound
	}

	created, err := l.requests.Create(ctx, match.Request{
		MentorID: in.MentorID,
		MenteeID: caller.ID,
		Message:  in.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMenteeHasPending):
			return match.Request{}, ErrPendingRequestExists
		case errors.Is(err, repository.ErrDuplicatePair):
			return match.Request{}, ErrDuplicateRequest
		default:
			return match.Request{}, ErrInternal
		}
	}
	return created, nil
}

func (l *Ledger) Accept(ctx context.Context, caller Actor, requestID int64) (match.Request, error) {
	return l.mentorTransition(ctx, caller, requestID, match.StatusAccepted)
}

func (l *Ledger) Reject(ctx context.Context, caller Actor, requestID int64) (match.Request, error) {
	return l.mentorTransition(ctx, caller, requestID, match.StatusRejected)
}

func (l *Ledger) Cancel(ctx context.Context, caller Actor, requestID int64) (match.Request, error) {
	if caller.Role != user.RoleMentee.String() {
		return match.Request{}, ErrOnlyMentees
	}

	req, err := l.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Request{}, ErrRequestNotFound
		}
		return match.Request{}, ErrInternal
	}
	if req.MenteeID != caller.ID {
		return match.Request{}, ErrForbidden
	}

	return l.transition(ctx, requestID, match.StatusCancelled)
}

func (l *Ledger) Incoming(ctx context.Context, caller Actor) ([]match.Request, error) {
	if caller.Role != user.RoleMentor.String() {
		return nil, ErrOnlyMentors
	}
	out, err := l.requests.ListByMentor(ctx, caller.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (l *Ledger) Outgoing(ctx context.Context, caller Actor) ([]match.Request, error) {
	if caller.Role != user.RoleMentee.String() {
		return nil, ErrOnlyMentees
	}
	out, err := l.requests.ListByMentee(ctx, caller.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (l *Ledger) mentorTransition(ctx context.Context, caller Actor, requestID int64, next match.Status) (match.Request, error) {
	if caller.Role != user.RoleMentor.String() {
		return match.Request{}, ErrOnlyMentors
	}

	req, err := l.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Request{}, ErrRequestNotFound
		}
		return match.Request{}, ErrInternal
	}
	if req.MentorID != caller.ID {
		return match.Request{}, ErrForbidden
	}

	return l.transition(ctx, requestID, next)
}

func (l *Ledger) transition(ctx context.Context, requestID int64, next match.Status) (match.Request, error) {
	updated, err := l.requests.UpdateStatusFromPending(ctx, requestID, next)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrNotFound):
			return match.Request{}, ErrRequestNotFound
		case errors.Is(err, repository.ErrMentorHasAccepted):
			return match.Request{}, ErrAlreadyMentoring
		case errors.Is(err, repository.ErrNotPending):
			return match.Request{}, ErrRequestNotPending
		default:
			return match.Request{}, ErrInternal
		}
	}
	return updated, nil
}
