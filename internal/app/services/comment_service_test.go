package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
)

type MockCommentWriter struct {
	mock.Mock
}

func (m *MockCommentWriter) GetCourseCommentParent(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentWriter) GetTeacherCommentParent(ctx context.Context, id int64) (*models.TeacherComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeacherComment), args.Error(1)
}

func (m *MockCommentWriter) InsertCourseComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentWriter) InsertTeacherComment(ctx context.Context, comment *models.TeacherComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func newCommentFixture() (*CommentService, *MockCommentWriter, *MockCourseExistence, *MockTeacherExistence) {
	comments := new(MockCommentWriter)
	courses := new(MockCourseExistence)
	teachers := new(MockTeacherExistence)
	svc := NewCommentService(comments, courses, teachers, 100, "Anonymous")
	return svc, comments, courses, teachers
}

func int64Ptr(v int64) *int64 { return &v }

func TestSubmitCourseComment_TopLevel(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	comments.On("InsertCourseComment", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  "  Great course  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), comment.CourseID)
	assert.Nil(t, comment.ParentID)
	assert.Equal(t, "Anonymous", comment.Nickname)
	assert.Equal(t, "Great course", comment.Content)
}

func TestSubmitCourseComment_SanitizesContent(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	comments.On("InsertCourseComment", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  `<b>bold</b> & "quoted"`,
	})

	assert.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt; &amp; &quot;quoted&quot;", comment.Content)
}

func TestSubmitCourseComment_EmptyContent(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()

	_, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  "   ",
	})

	assert.ErrorIs(t, err, apperrors.ErrCommentEmpty)
	courses.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	comments.AssertNotCalled(t, "InsertCourseComment", mock.Anything, mock.Anything)
}

func TestSubmitCourseComment_TooLong(t *testing.T) {
	svc, _, _, _ := newCommentFixture()

	_, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  strings.Repeat("a", 101),
	})

	assert.ErrorIs(t, err, apperrors.ErrCommentTooLong)
}

func TestSubmitCourseComment_CourseNotFound(t *testing.T) {
	svc, _, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(404)).Return(false, nil)

	_, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 404,
		Content:  "hello",
	})

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestSubmitCourseComment_Reply(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	comments.On("GetCourseCommentParent", mock.Anything, int64(10)).
		Return(&models.Comment{ID: 10, CourseID: 5}, nil)
	comments.On("InsertCourseComment", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  "Agreed",
		ParentID: int64Ptr(10),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), *comment.ParentID)
}

func TestSubmitCourseComment_ParentNotFound(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	comments.On("GetCourseCommentParent", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  "Agreed",
		ParentID: int64Ptr(99),
	})

	assert.ErrorIs(t, err, apperrors.ErrParentNotFound)
}

func TestSubmitCourseComment_ReplyToReply(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	comments.On("GetCourseCommentParent", mock.Anything, int64(11)).
		Return(&models.Comment{ID: 11, CourseID: 5, ParentID: int64Ptr(10)}, nil)

	_, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  "Nested",
		ParentID: int64Ptr(11),
	})

	assert.ErrorIs(t, err, apperrors.ErrReplyToReply)
	comments.AssertNotCalled(t, "InsertCourseComment", mock.Anything, mock.Anything)
}

func TestSubmitCourseComment_ParentOnDifferentCourse(t *testing.T) {
	svc, comments, courses, _ := newCommentFixture()
	courses.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	comments.On("GetCourseCommentParent", mock.Anything, int64(10)).
		Return(&models.Comment{ID: 10, CourseID: 7}, nil)

	_, err := svc.SubmitCourseComment(context.Background(), dto.SubmitCommentRequest{
		CourseID: 5,
		Content:  "Agreed",
		ParentID: int64Ptr(10),
	})

	assert.ErrorIs(t, err, apperrors.ErrParentEntityMismatch)
}

func TestSubmitTeacherComment_TopLevel(t *testing.T) {
	svc, comments, _, teachers := newCommentFixture()
	teachers.On("Exists", mock.Anything, "T001").Return(true, nil)
	comments.On("InsertTeacherComment", mock.Anything, mock.AnythingOfType("*models.TeacherComment")).Return(nil)

	comment, err := svc.SubmitTeacherComment(context.Background(), dto.SubmitTeacherCommentRequest{
		TeacherID: "T001",
		Content:   "Very clear lectures",
	})

	assert.NoError(t, err)
	assert.Equal(t, "T001", comment.TeacherID)
	assert.Equal(t, "Very clear lectures", comment.Content)
}

func TestSubmitTeacherComment_ParentOnDifferentTeacher(t *testing.T) {
	svc, comments, _, teachers := newCommentFixture()
	teachers.On("Exists", mock.Anything, "T001").Return(true, nil)
	comments.On("GetTeacherCommentParent", mock.Anything, int64(10)).
		Return(&models.TeacherComment{ID: 10, TeacherID: "T002"}, nil)

	_, err := svc.SubmitTeacherComment(context.Background(), dto.SubmitTeacherCommentRequest{
		TeacherID: "T001",
		Content:   "Agreed",
		ParentID:  int64Ptr(10),
	})

	assert.ErrorIs(t, err, apperrors.ErrParentEntityMismatch)
}
