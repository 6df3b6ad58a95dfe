package app

import (
	"fmt"
	"strings"

	"mentor-match/internal/config"
	"mentor-match/internal/delivery/http/handler"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/delivery/http/routes"
	pkgjwt "mentor-match/internal/pkg/jwt"
	"mentor-match/internal/repository"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, container *Container) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(container.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware().Middleware())

	users := repository.NewPostgresUserRepository(container.DB)
	skills := repository.NewPostgresMentorSkillRepository(container.DB)
	requests := repository.NewPostgresMatchRequestRepository(container.DB)

	jwtSvc := pkgjwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	authUC := usecase.NewAuthUsecase(users, jwtSvc)
	profileUC := usecase.NewProfileUsecase(users, skills, container.Cache)
	mentorUC := usecase.NewMentorUsecase(users, skills, container.Cache, cfg.Redis.DirectoryTTL)
	requestUC := usecase.NewMatchRequestUsecase(requests, users)

	registry := &routes.Registry{
		Auth:           handler.NewAuthHandler(authUC),
		Profile:        handler.NewProfileHandler(profileUC),
		Image:          handler.NewImageHandler(profileUC),
		Mentor:         handler.NewMentorHandler(mentorUC),
		MatchRequest:   handler.NewMatchRequestHandler(requestUC),
		Health:         handler.NewHealthHandler(),
		Docs:           handler.NewDocsHandler(),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: container}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
