package services

import (
	"context"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
)

// TeacherReader is the teacher data access surface the teacher service needs.
type TeacherReader interface {
	List(ctx context.Context, params dto.TeacherListParams) ([]dto.TeacherListItem, int64, error)
	GetInfoByID(ctx context.Context, id string) (*dto.TeacherInfo, error)
	GetRatingInfo(ctx context.Context, id string) (dto.RatingInfo, error)
}

// TeacherCourseReader loads the courses block of a teacher detail.
type TeacherCourseReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]dto.CourseListItem, error)
}

// TeacherCommentReader loads the two comment levels of a teacher detail.
type TeacherCommentReader interface {
	ListTeacherTopComments(ctx context.Context, teacherID string) ([]dto.CommentNode, error)
	ListTeacherReplies(ctx context.Context, teacherID string) ([]dto.ReplyNode, error)
}

// TeacherService implements teacher listing and detail operations
type TeacherService struct {
	teachers TeacherReader
	courses  TeacherCourseReader
	comments TeacherCommentReader
}

// NewTeacherService creates a new teacher service
func NewTeacherService(teachers TeacherReader, courses TeacherCourseReader, comments TeacherCommentReader) *TeacherService {
	return &TeacherService{teachers: teachers, courses: courses, comments: comments}
}

// ListTeachers returns a page of teachers matching the given filters.
func (s *TeacherService) ListTeachers(ctx context.Context, params dto.TeacherListParams) (*dto.TeacherListResponse, error) {
	params.Page, params.Limit = helpers.ClampPageLimit(params.Page, params.Limit)

	teachers, total, err := s.teachers.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherListResponse{
		Teachers: teachers,
		Total:    total,
		Page:     params.Page,
		Limit:    params.Limit,
	}, nil
}

// GetTeacherDetail returns a teacher with their courses, rating aggregates and
// assembled comment tree.
func (s *TeacherService) GetTeacherDetail(ctx context.Context, id string) (*dto.TeacherDetailResponse, error) {
	info, err := s.teachers.GetInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperrors.ErrTeacherNotFound
	}

	courses, err := s.courses.ListByTeacher(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.teachers.GetRatingInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	tops, err := s.comments.ListTeacherTopComments(ctx, id)
	if err != nil {
		return nil, err
	}

	replies, err := s.comments.ListTeacherReplies(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherDetailResponse{
		Teacher:  *info,
		Courses:  courses,
		Rating:   rating,
		Comments: BuildCommentTree(tops, replies),
	}, nil
}
