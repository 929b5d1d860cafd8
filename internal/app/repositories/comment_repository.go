package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/db"
)

// topCommentPageSize caps the number of top-level comments on a detail view.
const topCommentPageSize = 100

// CommentRepository handles database operations for course and teacher comments.
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// GetCourseCommentParent retrieves a course comment for reply validation,
// or nil when absent.
func (r *CommentRepository) GetCourseCommentParent(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, course_id, parent_id FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.CourseID, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving parent comment: %w", err)
	}
	return &c, nil
}

// GetTeacherCommentParent retrieves a teacher comment for reply validation,
// or nil when absent.
func (r *CommentRepository) GetTeacherCommentParent(ctx context.Context, id int64) (*models.TeacherComment, error) {
	var c models.TeacherComment
	err := r.db.QueryRow(ctx,
		`SELECT id, teacher_id, parent_id FROM teacher_comments WHERE id = $1`, id).
		Scan(&c.ID, &c.TeacherID, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving parent comment: %w", err)
	}
	return &c, nil
}

// InsertCourseComment persists a sanitized course comment and refreshes the
// course's comment count in the same transaction.
func (r *CommentRepository) InsertCourseComment(ctx context.Context, comment *models.Comment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO comments (course_id, parent_id, nickname, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			comment.CourseID, comment.ParentID, comment.Nickname, comment.Content).
			Scan(&comment.ID, &comment.CreatedAt)
		if err != nil {
			return fmt.Errorf("error inserting comment: %w", err)
		}

		return recomputeCourseCommentCount(ctx, tx, comment.CourseID)
	})
}

// InsertTeacherComment persists a sanitized teacher comment and refreshes the
// teacher's comment count in the same transaction.
func (r *CommentRepository) InsertTeacherComment(ctx context.Context, comment *models.TeacherComment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO teacher_comments (teacher_id, parent_id, nickname, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			comment.TeacherID, comment.ParentID, comment.Nickname, comment.Content).
			Scan(&comment.ID, &comment.CreatedAt)
		if err != nil {
			return fmt.Errorf("error inserting comment: %w", err)
		}

		return recomputeTeacherCommentCount(ctx, tx, comment.TeacherID)
	})
}

// ListCourseTopComments retrieves a course's top-level comments, newest first.
func (r *CommentRepository) ListCourseTopComments(ctx context.Context, courseID int64) ([]dto.CommentNode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nickname, content, created_at FROM comments
		WHERE course_id = $1 AND parent_id IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, courseID, topCommentPageSize)
	if err != nil {
		return nil, fmt.Errorf("error retrieving comments: %w", err)
	}
	defer rows.Close()

	return scanCommentNodes(rows)
}

// ListCourseReplies retrieves all replies for a course, oldest first.
func (r *CommentRepository) ListCourseReplies(ctx context.Context, courseID int64) ([]dto.ReplyNode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, parent_id, nickname, content, created_at FROM comments
		WHERE course_id = $1 AND parent_id IS NOT NULL
		ORDER BY created_at ASC, id ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving replies: %w", err)
	}
	defer rows.Close()

	return scanReplyNodes(rows)
}

// ListTeacherTopComments retrieves a teacher's top-level comments, newest first.
func (r *CommentRepository) ListTeacherTopComments(ctx context.Context, teacherID string) ([]dto.CommentNode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nickname, content, created_at FROM teacher_comments
		WHERE teacher_id = $1 AND parent_id IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, teacherID, topCommentPageSize)
	if err != nil {
		return nil, fmt.Errorf("error retrieving comments: %w", err)
	}
	defer rows.Close()

	return scanCommentNodes(rows)
}

// ListTeacherReplies retrieves all replies for a teacher, oldest first.
func (r *CommentRepository) ListTeacherReplies(ctx context.Context, teacherID string) ([]dto.ReplyNode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, parent_id, nickname, content, created_at FROM teacher_comments
		WHERE teacher_id = $1 AND parent_id IS NOT NULL
		ORDER BY created_at ASC, id ASC`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving replies: %w", err)
	}
	defer rows.Close()

	return scanReplyNodes(rows)
}

func scanCommentNodes(rows pgx.Rows) ([]dto.CommentNode, error) {
	nodes := make([]dto.CommentNode, 0)
	for rows.Next() {
		var node dto.CommentNode
		var createdAt time.Time
		if err := rows.Scan(&node.ID, &node.Nickname, &node.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		node.CreatedAt = formatTimestamp(createdAt)
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

func scanReplyNodes(rows pgx.Rows) ([]dto.ReplyNode, error) {
	replies := make([]dto.ReplyNode, 0)
	for rows.Next() {
		var reply dto.ReplyNode
		var createdAt time.Time
		if err := rows.Scan(&reply.ID, &reply.ParentID, &reply.Nickname, &reply.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reply.CreatedAt = formatTimestamp(createdAt)
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}
