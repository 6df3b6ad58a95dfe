package handler

import (
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func actorFromCtx(c fiber.Ctx) (usecase.Actor, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(int64)
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := c.Locals(middleware.CtxRoleKey).(string)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: id, Role: role}, true
}
