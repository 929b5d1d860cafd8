package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Aggregate columns on courses and teachers are derived state. Every write to
// ratings or comments recomputes them from the raw rows inside the same
// transaction, so a crash can never leave them drifted. ROUND on numeric
// rounds half away from zero, the display rounding rule.

// recomputeCourseRatingAggregates refreshes rating_count and avg_score for one course.
func recomputeCourseRatingAggregates(ctx context.Context, tx pgx.Tx, courseID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE courses SET
			rating_count = stats.cnt,
			avg_score = stats.avg
		FROM (
			SELECT COUNT(*) AS cnt, ROUND(AVG(score)::numeric, 1) AS avg
			FROM ratings WHERE course_id = $1
		) AS stats
		WHERE courses.id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("error recomputing course rating aggregates: %w", err)
	}
	return nil
}

// recomputeTeacherRatingAggregates refreshes rating_count and avg_score for one teacher.
func recomputeTeacherRatingAggregates(ctx context.Context, tx pgx.Tx, teacherID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE teachers SET
			rating_count = stats.cnt,
			avg_score = stats.avg
		FROM (
			SELECT COUNT(*) AS cnt, ROUND(AVG(score)::numeric, 1) AS avg
			FROM teacher_ratings WHERE teacher_id = $1
		) AS stats
		WHERE teachers.id = $1`, teacherID)
	if err != nil {
		return fmt.Errorf("error recomputing teacher rating aggregates: %w", err)
	}
	return nil
}

// recomputeCourseCommentCount refreshes comment_count for one course.
// Only top-level comments are counted.
func recomputeCourseCommentCount(ctx context.Context, tx pgx.Tx, courseID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE courses SET comment_count = (
			SELECT COUNT(*) FROM comments
			WHERE course_id = $1 AND parent_id IS NULL
		)
		WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("error recomputing course comment count: %w", err)
	}
	return nil
}

// recomputeTeacherCommentCount refreshes comment_count for one teacher.
func recomputeTeacherCommentCount(ctx context.Context, tx pgx.Tx, teacherID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE teachers SET comment_count = (
			SELECT COUNT(*) FROM teacher_comments
			WHERE teacher_id = $1 AND parent_id IS NULL
		)
		WHERE id = $1`, teacherID)
	if err != nil {
		return fmt.Errorf("error recomputing teacher comment count: %w", err)
	}
	return nil
}
