package handler

import (
	"errors"

	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/pkg/imaging"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type updateProfileRequest struct {
	Name   *string   `json:"name"`
	Bio    *string   `json:"bio"`
	Image  *string   `json:"image"`
	Skills *[]string `json:"skills"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/me", h.Me)
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
}

// Me serves the caller's profile in the nested shape.
func (h *ProfileHandler) Me(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	p, err := h.uc.Get(c.Context(), caller.ID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponse(p))
}

// GetProfile serves the caller's profile in the flat shape.
func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	p, err := h.uc.Get(c.Context(), caller.ID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	in := usecase.UpdateProfileInput{
		Name:        req.Name,
		Bio:         req.Bio,
		ImageBase64: req.Image,
	}
	if req.Skills != nil {
		in.HasSkills = true
		in.Skills = *req.Skills
	}

	p, err := h.uc.Update(c.Context(), caller.ID, in)
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponse(p))
}

func mapProfileError(err error) error {
	switch {
	case isImagingError(err):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageUnauthorized, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}

func isImagingError(err error) bool {
	return errors.Is(err, imaging.ErrUnsupportedFormat) ||
		errors.Is(err, imaging.ErrBadDimensions) ||
		errors.Is(err, imaging.ErrNotSquare) ||
		errors.Is(err, imaging.ErrTooLarge) ||
		errors.Is(err, imaging.ErrUndecodable)
}
