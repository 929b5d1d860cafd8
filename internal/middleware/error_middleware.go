package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
	"github.com/SMU-RES/smu-course-review/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Sentinel matches
// decide the status; the error message becomes the response message so
// clients see what was wrong without leaking internals on unknown errors.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrTeacherNotFound,
		apperrors.ErrParentNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrScoreOutOfRange,
		apperrors.ErrCommentEmpty,
		apperrors.ErrCommentTooLong,
		apperrors.ErrReplyToReply,
		apperrors.ErrParentEntityMismatch,
		apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Field != "" {
			detail = detail.WithField(custom.Field)
		}
		c.JSON(400, dto.NewErrorResponse(detail))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
