package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/services"
	"machinery-registry/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) MachineryReport(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 30)
	defer cancel()

	book, err := c.reportService.MachineryWorkbook(reqCtx)
	if err != nil {
		c.logger.Error("MachineryReport: could not build workbook", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer book.Close()

	fileName := fmt.Sprintf("machinery_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return book.Write(ctx.Response().Writer)
}
