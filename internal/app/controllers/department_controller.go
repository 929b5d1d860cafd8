package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SMU-RES/smu-course-review/internal/app/services"
	"github.com/SMU-RES/smu-course-review/internal/middleware"
)

// DepartmentController handles the department listing endpoint
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// ListDepartments handles GET /api/departments
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	response, err := c.departmentService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
