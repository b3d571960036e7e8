package pipeline

import (
	"crm-dashboards/internal/common/api"
	"crm-dashboards/internal/config"
	"crm-dashboards/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PipelineApi struct {
	Controller *PipelineController
	Config     *config.Config
}

func NewPipelineApi(controller *PipelineController, cfg *config.Config) api.Route {
	return &PipelineApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *PipelineApi) Setup(app *fiber.App) {
	group := app.Group("/api/pipelines", middleware.AuthMiddleware(h.Config.SkipAuth))

	group.Get("/", h.Controller.ListPipelines)
	group.Post("/", h.Controller.CreatePipeline)
	group.Get("/:id", h.Controller.GetPipeline)
	group.Post("/:id/set-default", h.Controller.SetDefaultPipeline)
}
