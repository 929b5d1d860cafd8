package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/app/services"
)

func newCourseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCourseController(services.NewCourseService(nil, nil))
	router := gin.New()
	router.GET("/api/courses", controller.ListCourses)
	router.GET("/api/courses/:id", controller.GetCourseDetail)
	return router
}

// Parameter validation happens before any backend access, so a nil-backed
// service is enough for these cases.

func TestListCourses_InvalidDepartment(t *testing.T) {
	router := newCourseRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/courses?dept=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "dept", resp.Error.Field)
}

func TestGetCourseDetail_InvalidID(t *testing.T) {
	router := newCourseRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/courses/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "id", resp.Error.Field)
}
