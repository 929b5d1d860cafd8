package services

import (
	"context"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
)

// CourseReader is the course data access surface the course service needs.
type CourseReader interface {
	List(ctx context.Context, params dto.CourseListParams) ([]dto.CourseListItem, int64, error)
	GetInfoByID(ctx context.Context, id int64) (*dto.CourseInfo, error)
	GetRatingInfo(ctx context.Context, id int64) (dto.RatingInfo, error)
	GetTeachers(ctx context.Context, courseID int64) ([]dto.TeacherBrief, error)
}

// CourseCommentReader loads the two comment levels of a course detail.
type CourseCommentReader interface {
	ListCourseTopComments(ctx context.Context, courseID int64) ([]dto.CommentNode, error)
	ListCourseReplies(ctx context.Context, courseID int64) ([]dto.ReplyNode, error)
}

// CourseService implements course listing and detail operations
type CourseService struct {
	courses  CourseReader
	comments CourseCommentReader
}

// NewCourseService creates a new course service
func NewCourseService(courses CourseReader, comments CourseCommentReader) *CourseService {
	return &CourseService{courses: courses, comments: comments}
}

// ListCourses returns a page of courses matching the given filters. Page and
// limit are clamped before they reach the query, and the clamped values are
// echoed in the response.
func (s *CourseService) ListCourses(ctx context.Context, params dto.CourseListParams) (*dto.CourseListResponse, error) {
	params.Page, params.Limit = helpers.ClampPageLimit(params.Page, params.Limit)

	courses, total, err := s.courses.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &dto.CourseListResponse{
		Courses: courses,
		Total:   total,
		Page:    params.Page,
		Limit:   params.Limit,
	}, nil
}

// GetCourseDetail returns a course with its teachers, rating aggregates and
// assembled comment tree.
func (s *CourseService) GetCourseDetail(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	info, err := s.courses.GetInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	teachers, err := s.courses.GetTeachers(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.courses.GetRatingInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	tops, err := s.comments.ListCourseTopComments(ctx, id)
	if err != nil {
		return nil, err
	}

	replies, err := s.comments.ListCourseReplies(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CourseDetailResponse{
		Course:   *info,
		Teachers: teachers,
		Rating:   rating,
		Comments: BuildCommentTree(tops, replies),
	}, nil
}
