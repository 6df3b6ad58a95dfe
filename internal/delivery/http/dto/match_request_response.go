package dto

import "mentor-match/internal/domain/match"

type MatchRequestResponse struct {
	ID       int64  `json:"id"`
	MentorID int64  `json:"mentorId"`
	MenteeID int64  `json:"menteeId"`
	Message  string `json:"message"`
	Status   string `json:"status"`
}

// OutgoingRequestResponse omits the message; the mentee wrote it.
type OutgoingRequestResponse struct {
	ID       int64  `json:"id"`
	MentorID int64  `json:"mentorId"`
	MenteeID int64  `json:"menteeId"`
	Status   string `json:"status"`
}

func NewMatchRequestResponse(req match.Request) MatchRequestResponse {
	return MatchRequestResponse{
		ID:       req.ID,
		MentorID: req.MentorID,
		MenteeID: req.MenteeID,
		Message:  req.Message,
		Status:   req.Status.String(),
	}
}

func NewMatchRequestResponses(reqs []match.Request) []MatchRequestResponse {
	out := make([]MatchRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, NewMatchRequestResponse(r))
	}
	return out
}

func NewOutgoingRequestResponses(reqs []match.Request) []OutgoingRequestResponse {
	out := make([]OutgoingRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, OutgoingRequestResponse{
			ID:       r.ID,
			MentorID: r.MentorID,
			MenteeID: r.MenteeID,
			Status:   r.Status.String(),
		})
	}
	return out
}
