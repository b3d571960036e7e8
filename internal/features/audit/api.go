package audit

import (
	"crm-dashboards/internal/common/api"
	"crm-dashboards/internal/config"
	"crm-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
}

func NewAuditApi(controller *AuditController, config *config.Config) api.Route {
	return &AuditApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	group := app.Group("/api/audit-logs", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.ListLogs)
}
