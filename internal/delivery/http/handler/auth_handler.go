package handler

import (
	"errors"

	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	_, err := h.uc.Register(c.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Message(c, fiber.StatusCreated, "User created successfully")
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	token, err := h.uc.Login(c.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"token": token})
}

func mapAuthError(err error) error {
	var missing *usecase.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return middleware.NewAppError(fiber.StatusBadRequest, missing.Error(), err)
	case errors.Is(err, usecase.ErrMissingCredentials):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email and password are required", err)
	case errors.Is(err, usecase.ErrInvalidEmail):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid email format", err)
	case errors.Is(err, user.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "Role must be either mentor or mentee", err)
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
