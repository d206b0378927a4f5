package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/temperature-converter/internal/converter"
	"github.com/i474232898/temperature-converter/internal/weather"
)

const appName = "temperature-converter"

// NewApp builds the Fiber app with middleware, health, metrics and API routes.
func NewApp(conv *converter.Service, weatherSvc *weather.Service, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{Output: log.WriterLevel(logrus.InfoLevel)}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, conv, weatherSvc)
	return app
}
