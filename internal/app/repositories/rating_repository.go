package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/db"
)

// RatingRepository handles database operations for course and teacher ratings.
type RatingRepository struct {
	db *pgxpool.Pool
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{db: db}
}

// UpsertCourseRating records one visitor's score for a course. The conflict
// target is the (course_id, submitter_key) uniqueness constraint, so two
// concurrent submissions from the same visitor converge to one row with the
// later score. Aggregates are refreshed in the same transaction.
func (r *RatingRepository) UpsertCourseRating(ctx context.Context, rating *models.Rating) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO ratings (course_id, score, submitter_key)
			VALUES ($1, $2, $3)
			ON CONFLICT (course_id, submitter_key)
			DO UPDATE SET score = EXCLUDED.score`,
			rating.CourseID, rating.Score, rating.SubmitterKey)
		if err != nil {
			return fmt.Errorf("error upserting rating: %w", err)
		}

		return recomputeCourseRatingAggregates(ctx, tx, rating.CourseID)
	})
}

// UpsertTeacherRating records one visitor's score for a teacher with the same
// semantics as UpsertCourseRating.
func (r *RatingRepository) UpsertTeacherRating(ctx context.Context, rating *models.TeacherRating) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO teacher_ratings (teacher_id, score, submitter_key)
			VALUES ($1, $2, $3)
			ON CONFLICT (teacher_id, submitter_key)
			DO UPDATE SET score = EXCLUDED.score`,
			rating.TeacherID, rating.Score, rating.SubmitterKey)
		if err != nil {
			return fmt.Errorf("error upserting rating: %w", err)
		}

		return recomputeTeacherRatingAggregates(ctx, tx, rating.TeacherID)
	})
}
