package pipeline

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type PipelineController struct {
	Repo PipelineRepository
}

func NewPipelineController(repo PipelineRepository) *PipelineController {
	return &PipelineController{Repo: repo}
}

func (ctrl *PipelineController) ListPipelines(c *fiber.Ctx) error {
	pipelines, err := ctrl.Repo.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(pipelines)
}

func (ctrl *PipelineController) GetPipeline(c *fiber.Ctx) error {
	pipeline, err := ctrl.Repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(pipeline)
}

func (ctrl *PipelineController) CreatePipeline(c *fiber.Ctx) error {
	var pipeline Pipeline
	if err := c.BodyParser(&pipeline); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.Repo.Create(c.UserContext(), &pipeline); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(pipeline)
}

func (ctrl *PipelineController) SetDefaultPipeline(c *fiber.Ctx) error {
	if err := ctrl.Repo.SetDefault(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Default pipeline set successfully"})
}
