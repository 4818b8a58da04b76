package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/apizrace/internal/config"
	"github.com/example/apizrace/internal/handlers"
	"github.com/example/apizrace/internal/services"
	"github.com/example/apizrace/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	emailService := services.NewEmailService(cfg)
	registrationStore := store.New(db)
	registrationService := services.NewRegistrationService(registrationStore, emailService)

	registrationHandler := handlers.NewRegistrationHandler(registrationStore, emailService, registrationService)

	app.Get("/health", registrationHandler.Health)

	api := app.Group("/api")
	api.Post("/check-identity", registrationHandler.CheckIdentity)
	api.Post("/send-email", registrationHandler.SendEmail)
	api.Post("/registrations", registrationHandler.Submit)
	api.Get("/postal-lookup", registrationHandler.PostalLookup)
}
