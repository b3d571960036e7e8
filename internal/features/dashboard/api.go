package dashboard

import (
	"crm-dashboards/internal/common/api"
	"crm-dashboards/internal/config"
	"crm-dashboards/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	Controller     *DashboardController
	LiveController *LiveController
	Config         *config.Config
}

func NewDashboardApi(controller *DashboardController, liveController *LiveController, cfg *config.Config) api.Route {
	return &DashboardApi{
		Controller:     controller,
		LiveController: liveController,
		Config:         cfg,
	}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboards", middleware.AuthMiddleware(h.Config.SkipAuth))

	group.Get("/", h.Controller.ListDashboards)
	group.Post("/", h.Controller.CreateDashboard)
	group.Get("/default", h.Controller.GetDefaultDashboard)
	group.Post("/repair-defaults", h.Controller.RepairDefaults)

	// Widget routes sit above /:id so the router never swallows them.
	group.Put("/widgets/:widgetId", h.Controller.UpdateWidget)
	group.Delete("/widgets/:widgetId", h.Controller.RemoveWidget)
	group.Get("/widgets/:widgetId/data", h.Controller.GetWidgetData)
	group.Get("/widgets/:widgetId/export", h.Controller.ExportWidgetData)

	group.Get("/:id", h.Controller.GetDashboard)
	group.Put("/:id", h.Controller.UpdateDashboard)
	group.Delete("/:id", h.Controller.DeleteDashboard)
	group.Post("/:id/duplicate", h.Controller.DuplicateDashboard)
	group.Put("/:id/layout", h.Controller.UpdateLayout)
	group.Post("/:id/widgets", h.Controller.AddWidget)

	// The live stream skips the auth group: websocket clients cannot set
	// an Authorization header from the browser.
	app.Get("/api/dashboards/:id/live", websocket.New(h.LiveController.HandleDashboardStream))
}
