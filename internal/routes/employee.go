package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/controllers"
	"machinery-registry/internal/services"
)

func runEmployeeRouter(secureGroup *echo.Group, employeeService services.EmployeeServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewEmployeeController(employeeService, logger)

	employees := secureGroup.Group("/employees")
	employees.GET("", ctrl.GetEmployees)
	employees.POST("", ctrl.CreateEmployee)
	employees.GET("/:id", ctrl.GetEmployee)
	employees.PUT("/:id", ctrl.UpdateEmployee)
	employees.DELETE("/:id", ctrl.DeleteEmployee)
}
