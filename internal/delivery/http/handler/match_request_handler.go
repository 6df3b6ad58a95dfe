package handler

import (
	"context"
	"errors"
	"strconv"

	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/domain/match"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchRequestHandler struct {
	uc usecase.MatchRequestUsecase
}

type createMatchRequest struct {
	MentorID int64  `json:"mentorId"`
	Message  string `json:"message"`
}

func NewMatchRequestHandler(uc usecase.MatchRequestUsecase) *MatchRequestHandler {
	return &MatchRequestHandler{uc: uc}
}

func (h *MatchRequestHandler) RegisterRoutes(r fiber.Router) {
	grp := r.Group("/match-requests")
	grp.Post("/", h.Create)
	grp.Get("/incoming", h.Incoming)
	grp.Get("/outgoing", h.Outgoing)
	grp.Put("/:id/accept", h.Accept)
	grp.Put("/:id/reject", h.Reject)
	grp.Delete("/:id", h.Cancel)
}

func (h *MatchRequestHandler) Create(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	var req createMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	created, err := h.uc.Create(c.Context(), caller, usecase.CreateRequestInput{
		MentorID: req.MentorID,
		Message:  req.Message,
	})
	if err != nil {
		return mapMatchRequestError(err, "send")
	}
	return response.JSON(c, fiber.StatusOK, dto.NewMatchRequestResponse(created))
}

func (h *MatchRequestHandler) Incoming(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	reqs, err := h.uc.Incoming(c.Context(), caller)
	if err != nil {
		return mapMatchRequestError(err, "view incoming")
	}
	return response.JSON(c, fiber.StatusOK, dto.NewMatchRequestResponses(reqs))
}

func (h *MatchRequestHandler) Outgoing(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	reqs, err := h.uc.Outgoing(c.Context(), caller)
	if err != nil {
		return mapMatchRequestError(err, "view outgoing")
	}
	return response.JSON(c, fiber.StatusOK, dto.NewOutgoingRequestResponses(reqs))
}

func (h *MatchRequestHandler) Accept(c fiber.Ctx) error {
	return h.transition(c, "accept", h.uc.Accept)
}

func (h *MatchRequestHandler) Reject(c fiber.Ctx) error {
	return h.transition(c, "reject", h.uc.Reject)
}

func (h *MatchRequestHandler) Cancel(c fiber.Ctx) error {
	return h.transition(c, "cancel", h.uc.Cancel)
}

func (h *MatchRequestHandler) transition(
	c fiber.Ctx,
	action string,
	op func(ctx context.Context, caller usecase.Actor, requestID int64) (match.Request, error),
) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", err)
	}

	updated, err := op(c.Context(), caller, id)
	if err != nil {
		return mapMatchRequestError(err, action)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewMatchRequestResponse(updated))
}

func mapMatchRequestError(err error, action string) error {
	switch {
	case errors.Is(err, usecase.ErrOnlyMentees):
		return middleware.NewAppError(fiber.StatusForbidden, "Only mentees can "+action+" requests", err)
	case errors.Is(err, usecase.ErrOnlyMentors):
		return middleware.NewAppError(fiber.StatusForbidden, "Only mentors can "+action+" requests", err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageUnauthorized, err)
	case errors.Is(err, usecase.ErrMentorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Mentor not found", err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", err)
	case errors.Is(err, usecase.ErrPendingRequestExists):
		return middleware.NewAppError(fiber.StatusConflict, "You already have a pending request", err)
	case errors.Is(err, usecase.ErrDuplicateRequest):
		return middleware.NewAppError(fiber.StatusConflict, "Request to this mentor already exists", err)
	case errors.Is(err, usecase.ErrAlreadyMentoring):
		return middleware.NewAppError(fiber.StatusConflict, "You already have an accepted mentoring relationship", err)
	case errors.Is(err, usecase.ErrRequestNotPending):
		return middleware.NewAppError(fiber.StatusConflict, "Request is no longer pending", err)
	default:
		var missing *usecase.MissingFieldError
		if errors.As(err, &missing) {
			return middleware.NewAppError(fiber.StatusBadRequest, missing.Error(), err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
