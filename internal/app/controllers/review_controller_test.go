package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/app/services"
)

type mockRatingWriter struct {
	mock.Mock
}

func (m *mockRatingWriter) UpsertCourseRating(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingWriter) UpsertTeacherRating(ctx context.Context, rating *models.TeacherRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

type mockCommentWriter struct {
	mock.Mock
}

func (m *mockCommentWriter) GetCourseCommentParent(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentWriter) GetTeacherCommentParent(ctx context.Context, id int64) (*models.TeacherComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeacherComment), args.Error(1)
}

func (m *mockCommentWriter) InsertCourseComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentWriter) InsertTeacherComment(ctx context.Context, comment *models.TeacherComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

type mockCourseExistence struct {
	mock.Mock
}

func (m *mockCourseExistence) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockTeacherExistence struct {
	mock.Mock
}

func (m *mockTeacherExistence) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type reviewFixture struct {
	router   *gin.Engine
	ratings  *mockRatingWriter
	comments *mockCommentWriter
	courses  *mockCourseExistence
	teachers *mockTeacherExistence
}

func newReviewFixture() *reviewFixture {
	gin.SetMode(gin.TestMode)

	f := &reviewFixture{
		ratings:  new(mockRatingWriter),
		comments: new(mockCommentWriter),
		courses:  new(mockCourseExistence),
		teachers: new(mockTeacherExistence),
	}

	ratingService := services.NewRatingService(f.ratings, f.courses, f.teachers, "smu-salt")
	commentService := services.NewCommentService(f.comments, f.courses, f.teachers, 100, "Anonymous")
	controller := NewReviewController(ratingService, commentService)

	f.router = gin.New()
	f.router.POST("/api/ratings", controller.SubmitCourseRating)
	f.router.POST("/api/teacher-ratings", controller.SubmitTeacherRating)
	f.router.POST("/api/comments", controller.SubmitCourseComment)
	f.router.POST("/api/teacher-comments", controller.SubmitTeacherComment)
	return f
}

func (f *reviewFixture) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSubmitCourseRating_OK(t *testing.T) {
	f := newReviewFixture()
	f.courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	f.ratings.On("UpsertCourseRating", mock.Anything, mock.AnythingOfType("*models.Rating")).Return(nil)

	w := f.post(t, "/api/ratings", dto.SubmitRatingRequest{CourseID: 5, Score: 4})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestSubmitCourseRating_ScoreOutOfRange(t *testing.T) {
	f := newReviewFixture()

	w := f.post(t, "/api/ratings", dto.SubmitRatingRequest{CourseID: 5, Score: 9})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}

func TestSubmitCourseRating_ScoreZero(t *testing.T) {
	f := newReviewFixture()

	w := f.post(t, "/api/ratings", dto.SubmitRatingRequest{CourseID: 5, Score: 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Score 0 reaches the range validator and gets its message, not the
	// generic malformed-body error.
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	f.courses.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestSubmitCourseRating_CourseNotFound(t *testing.T) {
	f := newReviewFixture()
	f.courses.On("Exists", mock.Anything, int64(404)).Return(false, nil)

	w := f.post(t, "/api/ratings", dto.SubmitRatingRequest{CourseID: 404, Score: 3})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
}

func TestSubmitCourseRating_MalformedBody(t *testing.T) {
	f := newReviewFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/ratings", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeMalformedRequest, resp.Error.Code)
}

func TestSubmitTeacherRating_OK(t *testing.T) {
	f := newReviewFixture()
	f.teachers.On("Exists", mock.Anything, "T001").Return(true, nil)
	f.ratings.On("UpsertTeacherRating", mock.Anything, mock.AnythingOfType("*models.TeacherRating")).Return(nil)

	w := f.post(t, "/api/teacher-ratings", dto.SubmitTeacherRatingRequest{TeacherID: "T001", Score: 5})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitCourseComment_OK(t *testing.T) {
	f := newReviewFixture()
	f.courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	f.comments.On("InsertCourseComment", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	w := f.post(t, "/api/comments", dto.SubmitCommentRequest{CourseID: 5, Content: "Great course"})

	assert.Equal(t, http.StatusOK, w.Code)
	f.comments.AssertExpectations(t)
}

func TestSubmitCourseComment_ReplyToReply(t *testing.T) {
	f := newReviewFixture()
	parentID := int64(11)
	grandparent := int64(10)
	f.courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	f.comments.On("GetCourseCommentParent", mock.Anything, parentID).
		Return(&models.Comment{ID: parentID, CourseID: 5, ParentID: &grandparent}, nil)

	w := f.post(t, "/api/comments", dto.SubmitCommentRequest{CourseID: 5, Content: "Nested", ParentID: &parentID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitTeacherComment_ParentNotFound(t *testing.T) {
	f := newReviewFixture()
	parentID := int64(99)
	f.teachers.On("Exists", mock.Anything, "T001").Return(true, nil)
	f.comments.On("GetTeacherCommentParent", mock.Anything, parentID).Return(nil, nil)

	w := f.post(t, "/api/teacher-comments", dto.SubmitTeacherCommentRequest{
		TeacherID: "T001", Content: "Agreed", ParentID: &parentID,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
