// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"forgeauth/internal/auth/adapters/http/auth"
	"forgeauth/internal/auth/adapters/http/middleware"
	"forgeauth/internal/auth/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, authUseCase api.AuthUseCase, guardUseCase api.GuardUseCase, profileUseCase api.ProfileUseCase) {
	handler := auth.NewHandler(authUseCase, guardUseCase, profileUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", handler.Healthz)

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Публичные маршруты учетных данных.
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", handler.Register)
	authRoutes.Post("/login", handler.Login)

	// Защищенные маршруты: обработчики сами вызывают guard.
	apiV1.Get("/protected-resource", handler.ProtectedResource)
	apiV1.Get("/user/profile", handler.Profile)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
