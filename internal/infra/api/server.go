package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/fardannozami/accountability-tracker/internal/domain"
)

type ServerConfig struct {
	CORSOrigins string
}

// NewServer wires the handler's routes into a fiber app.
func NewServer(h *Handler, logger *zap.Logger, cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "accountability-tracker",
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(RequestLogger(logger))

	SetupRoutes(app, h)

	return app
}

func SetupRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")

	api.Get("/streak", h.GetStreak)
	api.Get("/leaderboard", h.GetLeaderboard)

	commitments := api.Group("/commitments")
	commitments.Get("/", h.ListActivity(domain.KindCommitment))
	commitments.Post("/", h.RecordCommitment)
	commitments.Get("/stats", h.GetWeekStats(domain.KindCommitment))

	calls := api.Group("/phone-calls")
	calls.Get("/", h.ListActivity(domain.KindPhoneCall))
	calls.Post("/", h.RecordPhoneCall)
	calls.Get("/stats", h.GetWeekStats(domain.KindPhoneCall))
}
