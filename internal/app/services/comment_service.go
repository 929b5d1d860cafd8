package services

import (
	"context"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
	"github.com/SMU-RES/smu-course-review/internal/pkg/validation"
)

// CommentWriter is the comment persistence surface of the comment service.
type CommentWriter interface {
	GetCourseCommentParent(ctx context.Context, id int64) (*models.Comment, error)
	GetTeacherCommentParent(ctx context.Context, id int64) (*models.TeacherComment, error)
	InsertCourseComment(ctx context.Context, comment *models.Comment) error
	InsertTeacherComment(ctx context.Context, comment *models.TeacherComment) error
}

// CommentService implements comment submission for courses and teachers
type CommentService struct {
	comments CommentWriter
	courses  CourseExistenceChecker
	teachers TeacherExistenceChecker
	maxLen   int
	nickname string
}

// NewCommentService creates a new comment service
func NewCommentService(comments CommentWriter, courses CourseExistenceChecker, teachers TeacherExistenceChecker, maxLen int, nickname string) *CommentService {
	return &CommentService{
		comments: comments,
		courses:  courses,
		teachers: teachers,
		maxLen:   maxLen,
		nickname: nickname,
	}
}

// SubmitCourseComment validates, sanitizes and stores a course comment or
// reply. Replies must point at an existing top-level comment of the same
// course.
func (s *CommentService) SubmitCourseComment(ctx context.Context, req dto.SubmitCommentRequest) (*models.Comment, error) {
	content, err := validation.SanitizeContent(req.Content, s.maxLen)
	if err != nil {
		return nil, err
	}

	exists, err := s.courses.Exists(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetCourseCommentParent(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperrors.ErrParentNotFound
		}
		if parent.ParentID != nil {
			return nil, apperrors.ErrReplyToReply
		}
		if parent.CourseID != req.CourseID {
			return nil, apperrors.ErrParentEntityMismatch
		}
	}

	comment := &models.Comment{
		CourseID: req.CourseID,
		ParentID: req.ParentID,
		Nickname: s.nickname,
		Content:  content,
	}
	if err := s.comments.InsertCourseComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// SubmitTeacherComment validates, sanitizes and stores a teacher comment or
// reply with the same rules as SubmitCourseComment.
func (s *CommentService) SubmitTeacherComment(ctx context.Context, req dto.SubmitTeacherCommentRequest) (*models.TeacherComment, error) {
	content, err := validation.SanitizeContent(req.Content, s.maxLen)
	if err != nil {
		return nil, err
	}

	exists, err := s.teachers.Exists(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrTeacherNotFound
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetTeacherCommentParent(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperrors.ErrParentNotFound
		}
		if parent.ParentID != nil {
			return nil, apperrors.ErrReplyToReply
		}
		if parent.TeacherID != req.TeacherID {
			return nil, apperrors.ErrParentEntityMismatch
		}
	}

	comment := &models.TeacherComment{
		TeacherID: req.TeacherID,
		ParentID:  req.ParentID,
		Nickname:  s.nickname,
		Content:   content,
	}
	if err := s.comments.InsertTeacherComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
