package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/services"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/utils"
)

type ProjectController struct {
	projectService services.ProjectServiceInterface
	logger         *zap.Logger
}

func NewProjectController(projectService services.ProjectServiceInterface, logger *zap.Logger) *ProjectController {
	return &ProjectController{projectService: projectService, logger: logger}
}

func (c *ProjectController) GetProjects(ctx echo.Context) error {
	res, err := c.projectService.GetProjects(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetProjects: could not list projects", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *ProjectController) GetLocations(ctx echo.Context) error {
	res, err := c.projectService.GetLocations(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *ProjectController) GetProject(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.projectService.GetProject(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *ProjectController) CreateProject(ctx echo.Context) error {
	var payload dto.CreateProjectDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateProject: could not bind body", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.projectService.CreateProject(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateProject: could not create project", zap.Any("payload", payload), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Project created", http.StatusCreated)
}

func (c *ProjectController) UpdateProject(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateProjectDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateProject: could not bind body", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.projectService.UpdateProject(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Project updated", http.StatusOK)
}

func (c *ProjectController) DeleteProject(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.projectService.DeleteProject(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Project deleted", http.StatusOK)
}
