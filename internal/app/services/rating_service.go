package services

import (
	"context"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
	"github.com/SMU-RES/smu-course-review/internal/pkg/validation"
)

// CourseExistenceChecker reports whether a course exists.
type CourseExistenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TeacherExistenceChecker reports whether a teacher exists.
type TeacherExistenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// RatingWriter is the rating persistence surface of the rating service.
type RatingWriter interface {
	UpsertCourseRating(ctx context.Context, rating *models.Rating) error
	UpsertTeacherRating(ctx context.Context, rating *models.TeacherRating) error
}

// RatingService implements rating submission for courses and teachers
type RatingService struct {
	ratings  RatingWriter
	courses  CourseExistenceChecker
	teachers TeacherExistenceChecker
	salt     string
}

// NewRatingService creates a new rating service
func NewRatingService(ratings RatingWriter, courses CourseExistenceChecker, teachers TeacherExistenceChecker, salt string) *RatingService {
	return &RatingService{
		ratings:  ratings,
		courses:  courses,
		teachers: teachers,
		salt:     salt,
	}
}

// SubmitCourseRating validates and records one visitor's score for a course.
// Resubmitting replaces the visitor's previous score.
func (s *RatingService) SubmitCourseRating(ctx context.Context, req dto.SubmitRatingRequest, clientIP string) error {
	if err := validation.ValidateScore(req.Score); err != nil {
		return err
	}

	exists, err := s.courses.Exists(ctx, req.CourseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	return s.ratings.UpsertCourseRating(ctx, &models.Rating{
		CourseID:     req.CourseID,
		Score:        req.Score,
		SubmitterKey: DeriveSubmitterKey(clientIP, s.salt),
	})
}

// SubmitTeacherRating validates and records one visitor's score for a teacher.
func (s *RatingService) SubmitTeacherRating(ctx context.Context, req dto.SubmitTeacherRatingRequest, clientIP string) error {
	if err := validation.ValidateScore(req.Score); err != nil {
		return err
	}

	exists, err := s.teachers.Exists(ctx, req.TeacherID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrTeacherNotFound
	}

	return s.ratings.UpsertTeacherRating(ctx, &models.TeacherRating{
		TeacherID:    req.TeacherID,
		Score:        req.Score,
		SubmitterKey: DeriveSubmitterKey(clientIP, s.salt),
	})
}
