package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
	DefaultPage     = 1 // Default page is 1-based
)

// ClampPageLimit normalizes untrusted pagination input. Out-of-range values
// saturate at the nearest bound, never get rejected.
func ClampPageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on
// 1-based page index.
func CalculateOffsetLimit(page, limit int) (offset uint64, clamped int) {
	page, clamped = ClampPageLimit(page, limit)
	offset = uint64((page - 1) * clamped)
	return offset, clamped
}

// ParsePaginationParams extracts and clamps pagination parameters from the request
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		limit = DefaultPageSize
	}

	return ClampPageLimit(page, limit)
}
