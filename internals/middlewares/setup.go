package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"edufam_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the base middleware stack (order matters:
// recover first so the logger still sees panicking requests).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
