package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/services"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/filestorage"
	"machinery-registry/pkg/utils"
	"machinery-registry/pkg/validation"
)

const importPathPrefix = "imports"

// ImportController receives machinery spreadsheets. Uploaded files are kept
// in storage so an import can be traced back to its source.
type ImportController struct {
	importer         *services.MachineryImporter
	dashboardService services.DashboardServiceInterface
	fileStorage      filestorage.FileStorageInterface
	maxSizeMB        int
	logger           *zap.Logger
}

func NewImportController(
	importer *services.MachineryImporter,
	dashboardService services.DashboardServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	maxSizeMB int,
	logger *zap.Logger,
) *ImportController {
	return &ImportController{
		importer:         importer,
		dashboardService: dashboardService,
		fileStorage:      fileStorage,
		maxSizeMB:        maxSizeMB,
		logger:           logger,
	}
}

func (c *ImportController) ImportMachinery(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "File was not provided", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not read uploaded file", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	if err := validation.ValidateSpreadsheet(fileHeader, src, c.maxSizeMB); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest,
				map[string]interface{}{"file": fileHeader.Filename}),
			c.logger,
		)
	}

	savedPath, err := c.fileStorage.Save(src, fileHeader.Filename, importPathPrefix)
	if err != nil {
		c.logger.Error("ImportMachinery: could not store upload", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not store uploaded file", err, nil),
			c.logger,
		)
	}

	reqCtx := ctx.Request().Context()
	result, err := c.importer.ImportFile(reqCtx, c.fileStorage.Path(savedPath))
	if err != nil {
		c.logger.Warn("ImportMachinery: workbook rejected", zap.String("stored_as", savedPath), zap.Error(err))
		// only imported workbooks are kept
		if delErr := c.fileStorage.Delete(savedPath); delErr != nil {
			c.logger.Warn("ImportMachinery: could not remove rejected upload", zap.String("stored_as", savedPath), zap.Error(delErr))
		}
		return utils.ErrorResponse(ctx, importError(err, fileHeader.Filename), c.logger)
	}

	if result.Created > 0 {
		if err := c.dashboardService.Invalidate(reqCtx); err != nil {
			c.logger.Warn("ImportMachinery: could not invalidate dashboard cache", zap.Error(err))
		}
	}

	c.logger.Info("machinery imported",
		zap.String("file", fileHeader.Filename),
		zap.String("stored_as", savedPath),
		zap.Int("created", result.Created),
	)
	return utils.SuccessResponse(ctx, result, "Import finished", http.StatusOK)
}

func importError(err error, fileName string) error {
	fileCtx := map[string]interface{}{"file": fileName}
	switch {
	case errors.Is(err, services.ErrNoImportHeader):
		return apperrors.NewHttpError(http.StatusBadRequest, "Workbook has no header row with code and name columns", err, fileCtx)
	case errors.Is(err, services.ErrUnreadableWorkbook):
		return apperrors.NewHttpError(http.StatusBadRequest, "File is not a readable Excel workbook", err, fileCtx)
	}
	return apperrors.NewHttpError(http.StatusInternalServerError, "Could not import workbook", err, fileCtx)
}
