package handler

import (
	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MentorHandler struct {
	uc usecase.MentorUsecase
}

func NewMentorHandler(uc usecase.MentorUsecase) *MentorHandler {
	return &MentorHandler{uc: uc}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/mentors", h.List)
}

func (h *MentorHandler) List(c fiber.Ctx) error {
	if _, ok := actorFromCtx(c); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	items, err := h.uc.ListMentors(c.Context(), usecase.MentorListParams{
		Skill:     c.Query("skill"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.NewMentorResponses(items))
}
