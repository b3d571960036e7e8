package system

import (
	"crm-dashboards/internal/common/api"
	"crm-dashboards/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	db *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) api.Route {
	return &HealthApi{db: db}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		if err := h.db.DB.Client().Ping(c.UserContext(), nil); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
