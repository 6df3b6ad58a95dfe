package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/imaging"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/repository"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ImageHandler struct {
	uc usecase.ProfileUsecase
}

func NewImageHandler(uc usecase.ProfileUsecase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

func (h *ImageHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/images/:role/:id", h.GetImage)
}

func (h *ImageHandler) RegisterProtectedRoutes(r fiber.Router) {
	r.Put("/images/:role/:id", h.UpdateImage)
}

// GetImage serves the stored blob. Every miss (no uploaded image, no such
// user, role segment mismatch) redirects to the role-labelled placeholder.
func (h *ImageHandler) GetImage(c fiber.Ctx) error {
	role := c.Params("role")
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, err)
	}

	data, err := h.uc.GetImage(c.Context(), role, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrImageNotFound),
			errors.Is(err, usecase.ErrUserNotFound),
			errors.Is(err, user.ErrInvalidRole):
			return c.Redirect().To(placeholderURL(role))
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *ImageHandler) UpdateImage(c fiber.Ctx) error {
	caller, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	role := c.Params("role")
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, err)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No image file provided", err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No image file provided", err)
	}
	defer f.Close()

	// One byte past the limit is enough to reject without buffering more.
	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, imaging.ErrUndecodable.Error(), err)
	}

	if err := h.uc.UpdateImage(c.Context(), caller, role, id, data); err != nil {
		switch {
		case isImagingError(err):
			return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), err)
		case errors.Is(err, usecase.ErrForbidden):
			return middleware.NewAppError(fiber.StatusForbidden, response.MessageUnauthorized, err)
		case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, user.ErrInvalidRole):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Message(c, fiber.StatusOK, "Profile image updated successfully")
}

func placeholderURL(role string) string {
	return fmt.Sprintf("https://placehold.co/500x500.jpg?text=%s", strings.ToUpper(role))
}
