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

type MachineryController struct {
	machineryService  services.MachineryServiceInterface
	assignmentService services.AssignmentServiceInterface
	logger            *zap.Logger
}

func NewMachineryController(
	machineryService services.MachineryServiceInterface,
	assignmentService services.AssignmentServiceInterface,
	logger *zap.Logger,
) *MachineryController {
	return &MachineryController{
		machineryService:  machineryService,
		assignmentService: assignmentService,
		logger:            logger,
	}
}

func (c *MachineryController) GetMachinery(ctx echo.Context) error {
	filter := dto.MachineryFilter{Status: ctx.QueryParam("status")}

	res, err := c.machineryService.GetMachinery(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetMachinery: could not list machinery", zap.String("status", filter.Status), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *MachineryController) GetMachine(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.machineryService.GetMachine(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *MachineryController) CreateMachine(ctx echo.Context) error {
	var payload dto.CreateMachineryDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateMachine: could not bind body", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.machineryService.CreateMachine(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Machinery created", http.StatusCreated)
}

func (c *MachineryController) UpdateMachine(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMachineryDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateMachine: could not bind body", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.machineryService.UpdateMachine(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Machinery updated", http.StatusOK)
}

func (c *MachineryController) DeleteMachine(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.machineryService.DeleteMachine(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Machinery deleted", http.StatusOK)
}

// Assign handles POST /machinery/:id/assign.
func (c *MachineryController) Assign(ctx echo.Context) error {
	machineryID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateAssignmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("Assign: could not bind body", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	assignmentID, err := c.assignmentService.CreateAssignment(ctx.Request().Context(), machineryID, payload)
	if err != nil {
		c.logger.Warn("Assign: failed",
			zap.Uint64("machineryID", machineryID),
			zap.Uint64("projectID", payload.ProjectID),
			zap.Error(err),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.JSON(http.StatusCreated, dto.AssignmentCreatedDTO{
		Success:      true,
		Message:      "Machinery assigned",
		AssignmentID: assignmentID,
	})
}

// UpdateAssignment handles PUT /machinery/:id/assign; the body names the assignment.
func (c *MachineryController) UpdateAssignment(ctx echo.Context) error {
	machineryID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateAssignmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateAssignment: could not bind body", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.assignmentService.UpdateAssignment(ctx.Request().Context(), machineryID, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Assignment updated", http.StatusOK)
}

func (c *MachineryController) DeleteAssignment(ctx echo.Context) error {
	machineryID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	assignmentID, err := utils.ParseIDParam(ctx, "assignmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.assignmentService.DeleteAssignment(ctx.Request().Context(), machineryID, assignmentID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Assignment deleted", http.StatusOK)
}
