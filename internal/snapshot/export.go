// Package snapshot exports the live database into a standalone SQLite file
// the local backend can serve without a network.
package snapshot

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"

	"github.com/SMU-RES/smu-course-review/internal/app/models"
	"github.com/SMU-RES/smu-course-review/internal/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Exporter copies the read-path tables from Postgres into a SQLite file.
type Exporter struct {
	pool *pgxpool.Pool
}

// NewExporter creates a new exporter over the live connection pool.
func NewExporter(pool *pgxpool.Pool) *Exporter {
	return &Exporter{pool: pool}
}

// Export writes a fresh snapshot at path. Any existing file is replaced only
// after the new one is fully written: the export goes to a temp file first and
// is renamed into place, so readers never see a half-written snapshot.
func (e *Exporter) Export(ctx context.Context, path string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	db, err := sql.Open("sqlite3", tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := e.export(ctx, db); err != nil {
		db.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	logger.Info().Str("path", path).Msg("Snapshot exported")
	return nil
}

func (e *Exporter) export(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply snapshot schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []func(context.Context, *sql.Tx) error{
		e.exportDepartments,
		e.exportTeachers,
		e.exportCourses,
		e.exportCourseTeachers,
		e.exportCourseComments,
		e.exportTeacherComments,
	}
	for _, step := range steps {
		if err := step(ctx, tx); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (e *Exporter) exportDepartments(ctx context.Context, tx *sql.Tx) error {
	rows, err := e.pool.Query(ctx, `SELECT id, name FROM departments ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error reading departments: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var dept models.Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return fmt.Errorf("error scanning department: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO departments (id, name) VALUES (?, ?)`, dept.ID, dept.Name); err != nil {
			return fmt.Errorf("error writing department: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Debug().Int("count", count).Msg("Departments exported")
	return nil
}

func (e *Exporter) exportTeachers(ctx context.Context, tx *sql.Tx) error {
	rows, err := e.pool.Query(ctx, `
		SELECT id, name, department_id, avg_score, rating_count, comment_count
		FROM teachers ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error reading teachers: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.DepartmentID, &t.AvgScore, &t.RatingCount, &t.CommentCount); err != nil {
			return fmt.Errorf("error scanning teacher: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO teachers (id, name, department_id, avg_score, rating_count, comment_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.DepartmentID, t.AvgScore, t.RatingCount, t.CommentCount); err != nil {
			return fmt.Errorf("error writing teacher: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Debug().Int("count", count).Msg("Teachers exported")
	return nil
}

func (e *Exporter) exportCourses(ctx context.Context, tx *sql.Tx) error {
	rows, err := e.pool.Query(ctx, `
		SELECT id, course_code, course_seq, name, category, credits, hours,
		       department_id, avg_score, rating_count, comment_count
		FROM courses ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error reading courses: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var c models.Course
		err := rows.Scan(&c.ID, &c.CourseCode, &c.CourseSeq, &c.Name, &c.Category, &c.Credits, &c.Hours,
			&c.DepartmentID, &c.AvgScore, &c.RatingCount, &c.CommentCount)
		if err != nil {
			return fmt.Errorf("error scanning course: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO courses (id, course_code, course_seq, name, category, credits, hours,
				department_id, avg_score, rating_count, comment_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.CourseCode, c.CourseSeq, c.Name, c.Category, c.Credits, c.Hours,
			c.DepartmentID, c.AvgScore, c.RatingCount, c.CommentCount)
		if err != nil {
			return fmt.Errorf("error writing course: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Debug().Int("count", count).Msg("Courses exported")
	return nil
}

func (e *Exporter) exportCourseTeachers(ctx context.Context, tx *sql.Tx) error {
	rows, err := e.pool.Query(ctx,
		`SELECT course_id, teacher_id FROM course_teachers ORDER BY course_id, teacher_id`)
	if err != nil {
		return fmt.Errorf("error reading course teachers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link models.CourseTeacher
		if err := rows.Scan(&link.CourseID, &link.TeacherID); err != nil {
			return fmt.Errorf("error scanning course teacher: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO course_teachers (course_id, teacher_id) VALUES (?, ?)`,
			link.CourseID, link.TeacherID); err != nil {
			return fmt.Errorf("error writing course teacher: %w", err)
		}
	}
	return rows.Err()
}

func (e *Exporter) exportCourseComments(ctx context.Context, tx *sql.Tx) error {
	rows, err := e.pool.Query(ctx, `
		SELECT id, course_id, parent_id, nickname, content, created_at
		FROM comments ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error reading comments: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.CourseID, &c.ParentID, &c.Nickname, &c.Content, &c.CreatedAt); err != nil {
			return fmt.Errorf("error scanning comment: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comments (id, course_id, parent_id, nickname, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.CourseID, c.ParentID, c.Nickname, c.Content, formatCreatedAt(c.CreatedAt)); err != nil {
			return fmt.Errorf("error writing comment: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Debug().Int("count", count).Msg("Course comments exported")
	return nil
}

func (e *Exporter) exportTeacherComments(ctx context.Context, tx *sql.Tx) error {
	rows, err := e.pool.Query(ctx, `
		SELECT id, teacher_id, parent_id, nickname, content, created_at
		FROM teacher_comments ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error reading teacher comments: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var c models.TeacherComment
		if err := rows.Scan(&c.ID, &c.TeacherID, &c.ParentID, &c.Nickname, &c.Content, &c.CreatedAt); err != nil {
			return fmt.Errorf("error scanning teacher comment: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO teacher_comments (id, teacher_id, parent_id, nickname, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.TeacherID, c.ParentID, c.Nickname, c.Content, formatCreatedAt(c.CreatedAt)); err != nil {
			return fmt.Errorf("error writing teacher comment: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Debug().Int("count", count).Msg("Teacher comments exported")
	return nil
}

// formatCreatedAt renders timestamps exactly the way the live API serializes
// them, so both backends emit byte-identical created_at values.
func formatCreatedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
