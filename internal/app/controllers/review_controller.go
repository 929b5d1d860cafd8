package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/app/services"
	"github.com/SMU-RES/smu-course-review/internal/middleware"
)

// ReviewController handles rating and comment submission endpoints
type ReviewController struct {
	ratingService  *services.RatingService
	commentService *services.CommentService
}

// NewReviewController creates a new ReviewController
func NewReviewController(ratingService *services.RatingService, commentService *services.CommentService) *ReviewController {
	return &ReviewController{
		ratingService:  ratingService,
		commentService: commentService,
	}
}

// SubmitCourseRating handles POST /api/ratings
func (c *ReviewController) SubmitCourseRating(ctx *gin.Context) {
	var req dto.SubmitRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMalformedRequest, "Invalid rating data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	if err := c.ratingService.SubmitCourseRating(ctx, req, ctx.ClientIP()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Rating recorded"))
}

// SubmitTeacherRating handles POST /api/teacher-ratings
func (c *ReviewController) SubmitTeacherRating(ctx *gin.Context) {
	var req dto.SubmitTeacherRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMalformedRequest, "Invalid rating data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	if err := c.ratingService.SubmitTeacherRating(ctx, req, ctx.ClientIP()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Rating recorded"))
}

// SubmitCourseComment handles POST /api/comments
func (c *ReviewController) SubmitCourseComment(ctx *gin.Context) {
	var req dto.SubmitCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMalformedRequest, "Invalid comment data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	if _, err := c.commentService.SubmitCourseComment(ctx, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Comment posted"))
}

// SubmitTeacherComment handles POST /api/teacher-comments
func (c *ReviewController) SubmitTeacherComment(ctx *gin.Context) {
	var req dto.SubmitTeacherCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMalformedRequest, "Invalid comment data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	if _, err := c.commentService.SubmitTeacherComment(ctx, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Comment posted"))
}
