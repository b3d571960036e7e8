package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service     DashboardService
	DataService WidgetDataService
}

func NewDashboardController(service DashboardService, dataService WidgetDataService) *DashboardController {
	return &DashboardController{
		Service:     service,
		DataService: dataService,
	}
}

func statusFor(err error) int {
	if errors.Is(err, ErrDashboardNotFound) || errors.Is(err, ErrWidgetNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// ListDashboards godoc
// @Summary List dashboards
// @Description List all dashboards, default first, then by name
// @Tags dashboard
// @Produce json
// @Router /api/dashboards [get]
func (ctrl *DashboardController) ListDashboards(c *fiber.Ctx) error {
	dashboards, err := ctrl.Service.ListDashboards(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(dashboards)
}

// GetDashboard godoc
// @Summary Get dashboard
// @Description Get a dashboard with its widgets; null when it does not exist
// @Tags dashboard
// @Produce json
// @Param id path string true "Dashboard ID"
// @Router /api/dashboards/{id} [get]
func (ctrl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	dash, err := ctrl.Service.GetDashboard(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if dash == nil {
		return c.JSON(nil)
	}
	return c.JSON(dash)
}

// GetDefaultDashboard godoc
// @Summary Get default dashboard
// @Tags dashboard
// @Produce json
// @Router /api/dashboards/default [get]
func (ctrl *DashboardController) GetDefaultDashboard(c *fiber.Ctx) error {
	dash, err := ctrl.Service.GetDefaultDashboard(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if dash == nil {
		return c.JSON(nil)
	}
	return c.JSON(dash)
}

// CreateDashboard godoc
// @Summary Create dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Router /api/dashboards [post]
func (ctrl *DashboardController) CreateDashboard(c *fiber.Ctx) error {
	var input CreateDashboardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := ctrl.Service.CreateDashboard(c.UserContext(), input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateDashboard godoc
// @Summary Update dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Router /api/dashboards/{id} [put]
func (ctrl *DashboardController) UpdateDashboard(c *fiber.Ctx) error {
	var update DashboardUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := ctrl.Service.UpdateDashboard(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id})
}

// DeleteDashboard godoc
// @Summary Delete dashboard and its widgets
// @Tags dashboard
// @Param id path string true "Dashboard ID"
// @Router /api/dashboards/{id} [delete]
func (ctrl *DashboardController) DeleteDashboard(c *fiber.Ctx) error {
	id, err := ctrl.Service.DeleteDashboard(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id})
}

// DuplicateDashboard godoc
// @Summary Duplicate a dashboard and all of its widgets
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Router /api/dashboards/{id}/duplicate [post]
func (ctrl *DashboardController) DuplicateDashboard(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	// An empty body means "use '<original> (Copy)'".
	_ = c.BodyParser(&body)

	id, err := ctrl.Service.DuplicateDashboard(c.UserContext(), c.Params("id"), body.Name)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateLayout godoc
// @Summary Replace the dashboard's widget layout
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Router /api/dashboards/{id}/layout [put]
func (ctrl *DashboardController) UpdateLayout(c *fiber.Ctx) error {
	var layout []LayoutItem
	if err := c.BodyParser(&layout); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := ctrl.Service.UpdateLayout(c.UserContext(), c.Params("id"), layout)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id})
}

// AddWidget godoc
// @Summary Add a widget to a dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Router /api/dashboards/{id}/widgets [post]
func (ctrl *DashboardController) AddWidget(c *fiber.Ctx) error {
	var input AddWidgetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := ctrl.Service.AddWidget(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateWidget godoc
// @Summary Update a widget
// @Tags dashboard
// @Accept json
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Router /api/dashboards/widgets/{widgetId} [put]
func (ctrl *DashboardController) UpdateWidget(c *fiber.Ctx) error {
	var update WidgetUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := ctrl.Service.UpdateWidget(c.UserContext(), c.Params("widgetId"), update)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id})
}

// RemoveWidget godoc
// @Summary Remove a widget and strip its layout entry
// @Tags dashboard
// @Param widgetId path string true "Widget ID"
// @Router /api/dashboards/widgets/{widgetId} [delete]
func (ctrl *DashboardController) RemoveWidget(c *fiber.Ctx) error {
	id, err := ctrl.Service.RemoveWidget(c.UserContext(), c.Params("widgetId"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id})
}

// GetWidgetData godoc
// @Summary Resolve a widget's data
// @Description Returns the widget's type specific shape, or null when it no longer exists
// @Tags dashboard
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Router /api/dashboards/widgets/{widgetId}/data [get]
func (ctrl *DashboardController) GetWidgetData(c *fiber.Ctx) error {
	data, err := ctrl.DataService.GetWidgetData(c.UserContext(), c.Params("widgetId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if data == nil {
		return c.JSON(nil)
	}
	return c.JSON(data)
}

// ExportWidgetData godoc
// @Summary Export a list/table widget's rows as XLSX
// @Tags dashboard
// @Param widgetId path string true "Widget ID"
// @Router /api/dashboards/widgets/{widgetId}/export [get]
func (ctrl *DashboardController) ExportWidgetData(c *fiber.Ctx) error {
	content, filename, err := ctrl.DataService.ExportWidgetData(c.UserContext(), c.Params("widgetId"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(content)
}

// RepairDefaults godoc
// @Summary Reconcile the single-default invariant
// @Tags dashboard
// @Produce json
// @Router /api/dashboards/repair-defaults [post]
func (ctrl *DashboardController) RepairDefaults(c *fiber.Ctx) error {
	cleared, err := ctrl.Service.RepairDefaults(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"cleared": cleared})
}
