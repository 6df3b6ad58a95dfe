package handler

import (
	"mentor-match/internal/docs"

	"github.com/gofiber/fiber/v3"
)

type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

func (h *DocsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.Index)
	r.Get("/swagger-ui", h.SwaggerUI)
	r.Get("/openapi.json", h.OpenAPI)
}

func (h *DocsHandler) Index(c fiber.Ctx) error {
	return c.Redirect().To("/swagger-ui")
}

func (h *DocsHandler) SwaggerUI(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(docs.SwaggerUIPage)
}

func (h *DocsHandler) OpenAPI(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(docs.OpenAPISpec)
}
