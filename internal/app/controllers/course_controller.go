package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/app/services"
	"github.com/SMU-RES/smu-course-review/internal/middleware"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
)

// CourseController handles course listing and detail endpoints
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses handles GET /api/courses
// Query parameters: q, field, dept, sort, page, limit.
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	params := dto.CourseListParams{
		Query: ctx.Query("q"),
		Field: ctx.Query("field"),
		Sort:  ctx.Query("sort"),
		Page:  page,
		Limit: limit,
	}

	if deptStr := ctx.Query("dept"); deptStr != "" {
		dept, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department ID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithField("dept")))
			return
		}
		params.Department = &dept
	}

	response, err := c.courseService.ListCourses(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCourseDetail handles GET /api/courses/:id
func (c *CourseController) GetCourseDetail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithField("id")))
		return
	}

	response, err := c.courseService.GetCourseDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
