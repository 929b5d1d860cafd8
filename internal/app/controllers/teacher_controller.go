package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/app/services"
	"github.com/SMU-RES/smu-course-review/internal/middleware"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
)

// TeacherController handles teacher listing and detail endpoints
type TeacherController struct {
	teacherService *services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// ListTeachers handles GET /api/teachers
// Query parameters: q, sort, page, limit.
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	params := dto.TeacherListParams{
		Query: ctx.Query("q"),
		Sort:  ctx.Query("sort"),
		Page:  page,
		Limit: limit,
	}

	response, err := c.teacherService.ListTeachers(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTeacherDetail handles GET /api/teachers/:id
// Teacher IDs are opaque codes, not numbers, so the path segment is taken as is.
func (c *TeacherController) GetTeacherDetail(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid teacher ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithField("id")))
		return
	}

	response, err := c.teacherService.GetTeacherDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
