package server

import (
	"errors"
	"log"
	"strings"
	"time"

	"shf-backend/internal/auth"
	"shf-backend/internal/config"
	"shf-backend/internal/contact"
	"shf-backend/internal/donation"
	"shf-backend/internal/gallery"
	"shf-backend/internal/models"
	"shf-backend/internal/news"
	"shf-backend/internal/program"
	"shf-backend/internal/settings"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// New builds the fiber app with all middleware and routes. The database must
// be initialized before the app serves requests.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(cfg),
	})

	app.Use(helmet.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Southern Hemisphere Foundation API",
			"version": "1.0.0",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")

	authRequired := auth.JWTMiddleware(cfg)
	adminOnly := auth.RequireRole(models.RoleAdmin)
	adminOrStaff := auth.RequireRole(models.RoleAdmin, models.RoleStaff)

	// Public submission endpoints are rate-limited. Each route gets its own
	// limiter instance so the buckets do not bleed into each other.
	authLimiter := limiter.New(limiter.Config{Max: 10, Expiration: 15 * time.Minute})
	donationLimiter := limiter.New(limiter.Config{Max: 10, Expiration: time.Hour})
	contactLimiter := limiter.New(limiter.Config{Max: 10, Expiration: time.Hour})

	// Auth
	api.Post("/auth/login", authLimiter, auth.LoginHandler(cfg))
	api.Post("/auth/register", authRequired, adminOnly, auth.RegisterHandler())
	api.Get("/auth/me", authRequired, auth.MeHandler())
	api.Put("/auth/change-password", authRequired, auth.ChangePasswordHandler())
	api.Get("/auth/users", authRequired, adminOnly, auth.ListUsersHandler())
	api.Delete("/auth/users/:id", authRequired, adminOnly, auth.DeleteUserHandler())

	// Programs
	api.Get("/programs", program.ListProgramsHandler())
	api.Get("/programs/:id", program.GetProgramHandler())
	api.Post("/programs", authRequired, adminOrStaff, program.CreateProgramHandler())
	api.Put("/programs/:id", authRequired, adminOrStaff, program.UpdateProgramHandler())
	api.Delete("/programs/:id", authRequired, adminOnly, program.DeleteProgramHandler())

	// News
	api.Get("/news", news.ListNewsHandler())
	api.Get("/news/:id", news.GetNewsHandler())
	api.Post("/news", authRequired, adminOrStaff, news.CreateNewsHandler())
	api.Put("/news/:id", authRequired, adminOrStaff, news.UpdateNewsHandler())
	api.Delete("/news/:id", authRequired, adminOnly, news.DeleteNewsHandler())

	// Gallery
	api.Get("/gallery", gallery.ListGalleryHandler())
	api.Get("/gallery/:id", gallery.GetGalleryItemHandler())
	api.Post("/gallery", authRequired, adminOrStaff, gallery.CreateGalleryItemHandler())
	api.Put("/gallery/:id", authRequired, adminOrStaff, gallery.UpdateGalleryItemHandler())
	api.Delete("/gallery/:id", authRequired, adminOnly, gallery.DeleteGalleryItemHandler())

	// Donations
	api.Post("/donations", donationLimiter, donation.CreateDonationHandler())
	api.Get("/donations", authRequired, adminOrStaff, donation.ListDonationsHandler())
	api.Get("/donations/status/:status", authRequired, adminOrStaff, donation.ListByStatusHandler())
	api.Get("/donations/:id", authRequired, adminOrStaff, donation.GetDonationHandler())
	api.Put("/donations/:id/status", authRequired, adminOrStaff, donation.UpdateStatusHandler(cfg))
	api.Put("/donations/:id", authRequired, adminOrStaff, donation.UpdateDonationHandler())
	api.Delete("/donations/:id", authRequired, adminOnly, donation.DeleteDonationHandler())

	api.Get("/donation-categories", donation.ListCategoriesHandler())
	api.Post("/donation-categories", authRequired, adminOnly, donation.CreateCategoryHandler())

	// Contact messages
	api.Post("/contact", contactLimiter, contact.CreateContactHandler(cfg))
	api.Get("/contact", authRequired, adminOrStaff, contact.ListContactsHandler())
	api.Get("/contact/:id", authRequired, adminOrStaff, contact.GetContactHandler())
	api.Put("/contact/:id/read", authRequired, adminOrStaff, contact.MarkAsReadHandler())
	api.Put("/contact/:id/respond", authRequired, adminOrStaff, contact.MarkAsRespondedHandler())
	api.Put("/contact/:id", authRequired, adminOrStaff, contact.UpdateContactHandler())
	api.Delete("/contact/:id", authRequired, adminOnly, contact.DeleteContactHandler())

	// Settings
	api.Get("/settings", settings.GetSettingsHandler())
	api.Put("/settings", authRequired, adminOnly, settings.UpdateSettingsHandler())

	// Payment webhook: authenticated by signature, not by bearer token
	api.Post("/payments/webhook", donation.WebhookHandler(cfg))

	return app
}

func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ve *validation.Error
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  ve.Fields,
			})
		}

		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"message": e.Message,
			})
		}

		log.Println("Unexpected error:", err)
		msg := "Internal server error"
		// Detail is only exposed in development mode.
		if cfg.Env == "development" {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": msg,
		})
	}
}
