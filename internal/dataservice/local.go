package dataservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/app/services"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
	"github.com/SMU-RES/smu-course-review/internal/pkg/logger"
)

// localTeacherNames aggregates teacher names for one course in name order.
// The ORDER BY inside the aggregate needs SQLite 3.44 or later, which the
// bundled driver provides.
const localTeacherNames = `(SELECT group_concat(t.name, ', ' ORDER BY t.name)
		FROM course_teachers ct
		JOIN teachers t ON ct.teacher_id = t.id
		WHERE ct.course_id = c.id) AS teacher_names`

const localTopCommentLimit = 100

// LocalService reads from a SQLite snapshot file. The snapshot is written by
// the exporter and opened read-only; write operations are not part of the
// interface. The file is opened lazily on first use, and an open failure is
// terminal: every later call returns the same error instead of retrying.
type LocalService struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

var _ DataService = (*LocalService)(nil)

// NewLocalService creates a snapshot backend over the given SQLite file.
func NewLocalService(path string) *LocalService {
	return &LocalService{path: path}
}

// Close releases the underlying database handle if it was ever opened.
func (s *LocalService) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *LocalService) conn() (*sql.DB, error) {
	s.once.Do(func() {
		db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro&_fk=1")
		if err != nil {
			s.openErr = fmt.Errorf("%w: %v", apperrors.ErrSnapshotLoadFailed, err)
			return
		}
		if err := db.Ping(); err != nil {
			db.Close()
			s.openErr = fmt.Errorf("%w: %v", apperrors.ErrSnapshotLoadFailed, err)
			return
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		s.db = db
		logger.Debug().Str("path", s.path).Msg("Snapshot opened")
	})
	return s.db, s.openErr
}

// localCourseOrderBy mirrors the live backend's sort key mapping.
func localCourseOrderBy(sort string) string {
	switch sort {
	case "rating_count":
		return "c.comment_count DESC, c.id ASC"
	case "avg_rating":
		return "c.avg_score DESC NULLS LAST, c.id ASC"
	default:
		return "c.id ASC"
	}
}

func localTeacherOrderBy(sort string) string {
	switch sort {
	case "rating_count":
		return "t.comment_count DESC, t.id ASC"
	case "avg_rating":
		return "t.avg_score DESC NULLS LAST, t.id ASC"
	default:
		return "t.id ASC"
	}
}

// ListCourses returns a page of courses from the snapshot. The predicate and
// ordering match the live backend; SQLite LIKE is case-insensitive for ASCII,
// matching ILIKE behavior on the data the snapshot holds.
func (s *LocalService) ListCourses(ctx context.Context, params dto.CourseListParams) (*dto.CourseListResponse, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	params.Page, params.Limit = helpers.ClampPageLimit(params.Page, params.Limit)

	where := "1=1"
	args := make([]interface{}, 0, 4)
	if params.Query != "" {
		like := "%" + params.Query + "%"
		if params.Field == "name" {
			where += " AND c.name LIKE ?"
			args = append(args, like)
		} else {
			where += ` AND (c.name LIKE ? OR c.course_code LIKE ? OR EXISTS (
				SELECT 1 FROM course_teachers ct2
				JOIN teachers t2 ON ct2.teacher_id = t2.id
				WHERE ct2.course_id = c.id AND t2.name LIKE ?))`
			args = append(args, like, like, like)
		}
	}
	if params.Department != nil {
		where += " AND c.department_id = ?"
		args = append(args, *params.Department)
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM courses c WHERE " + where
	if err := db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting courses: %w", err)
	}

	listSQL := `SELECT c.id, c.course_code, c.name, c.category, c.credits, c.hours,
			d.name AS department_name,
			` + localTeacherNames + `,
			c.avg_score AS avg_rating, c.rating_count, c.comment_count
		FROM courses c
		LEFT JOIN departments d ON c.department_id = d.id
		WHERE ` + where + `
		ORDER BY ` + localCourseOrderBy(params.Sort) + `
		LIMIT ? OFFSET ?`
	listArgs := append(args, params.Limit, (params.Page-1)*params.Limit)

	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	courses := make([]dto.CourseListItem, 0)
	for rows.Next() {
		var item dto.CourseListItem
		err := rows.Scan(
			&item.ID,
			&item.CourseCode,
			&item.Name,
			&item.Category,
			&item.Credits,
			&item.Hours,
			&item.DepartmentName,
			&item.TeacherNames,
			&item.AvgRating,
			&item.RatingCount,
			&item.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &dto.CourseListResponse{
		Courses: courses,
		Total:   total,
		Page:    params.Page,
		Limit:   params.Limit,
	}, nil
}

// GetCourseDetail returns a course detail from the snapshot.
func (s *LocalService) GetCourseDetail(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var info dto.CourseInfo
	var rating dto.RatingInfo
	var avg *float64
	err = db.QueryRowContext(ctx, `
		SELECT c.id, c.course_code, c.name, c.category, c.credits, c.hours,
		       d.name AS department_name, c.rating_count, c.avg_score
		FROM courses c
		LEFT JOIN departments d ON c.department_id = d.id
		WHERE c.id = ?`, id).Scan(
		&info.ID, &info.CourseCode, &info.Name, &info.Category,
		&info.Credits, &info.Hours, &info.DepartmentName,
		&rating.Count, &avg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if avg != nil {
		rating.Average = *avg
	}

	teachers, err := s.courseTeachers(ctx, db, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentTree(ctx, db, "comments", "course_id", id)
	if err != nil {
		return nil, err
	}

	return &dto.CourseDetailResponse{
		Course:   info,
		Teachers: teachers,
		Rating:   rating,
		Comments: comments,
	}, nil
}

// ListTeachers returns a page of teachers from the snapshot.
func (s *LocalService) ListTeachers(ctx context.Context, params dto.TeacherListParams) (*dto.TeacherListResponse, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	params.Page, params.Limit = helpers.ClampPageLimit(params.Page, params.Limit)

	where := "1=1"
	args := make([]interface{}, 0, 1)
	if params.Query != "" {
		where += " AND t.name LIKE ?"
		args = append(args, "%"+params.Query+"%")
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM teachers t WHERE " + where
	if err := db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting teachers: %w", err)
	}

	listSQL := `SELECT t.id, t.name, d.name AS department_name,
			(SELECT COUNT(DISTINCT ct.course_id)
				FROM course_teachers ct WHERE ct.teacher_id = t.id) AS course_count,
			t.avg_score AS avg_rating, t.rating_count, t.comment_count
		FROM teachers t
		LEFT JOIN departments d ON t.department_id = d.id
		WHERE ` + where + `
		ORDER BY ` + localTeacherOrderBy(params.Sort) + `
		LIMIT ? OFFSET ?`
	listArgs := append(args, params.Limit, (params.Page-1)*params.Limit)

	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	teachers := make([]dto.TeacherListItem, 0)
	for rows.Next() {
		var item dto.TeacherListItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.DepartmentName,
			&item.CourseCount,
			&item.AvgRating,
			&item.RatingCount,
			&item.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		teachers = append(teachers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &dto.TeacherListResponse{
		Teachers: teachers,
		Total:    total,
		Page:     params.Page,
		Limit:    params.Limit,
	}, nil
}

// GetTeacherDetail returns a teacher detail from the snapshot.
func (s *LocalService) GetTeacherDetail(ctx context.Context, id string) (*dto.TeacherDetailResponse, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var info dto.TeacherInfo
	var rating dto.RatingInfo
	var avg *float64
	err = db.QueryRowContext(ctx, `
		SELECT t.id, t.name, d.name AS department_name, t.rating_count, t.avg_score
		FROM teachers t
		LEFT JOIN departments d ON t.department_id = d.id
		WHERE t.id = ?`, id).Scan(
		&info.ID, &info.Name, &info.DepartmentName, &rating.Count, &avg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	if avg != nil {
		rating.Average = *avg
	}

	courses, err := s.teacherCourses(ctx, db, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentTree(ctx, db, "teacher_comments", "teacher_id", id)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherDetailResponse{
		Teacher:  info,
		Courses:  courses,
		Rating:   rating,
		Comments: comments,
	}, nil
}

// ListDepartments returns all departments with course counts from the snapshot.
func (s *LocalService) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT d.id, d.name, COUNT(c.id) AS course_count
		FROM departments d
		LEFT JOIN courses c ON d.id = c.department_id
		GROUP BY d.id, d.name
		ORDER BY course_count DESC, d.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	defer rows.Close()

	departments := make([]dto.DepartmentItem, 0)
	for rows.Next() {
		var item dto.DepartmentItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CourseCount); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		departments = append(departments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &dto.DepartmentListResponse{Departments: departments}, nil
}

func (s *LocalService) courseTeachers(ctx context.Context, db *sql.DB, courseID int64) ([]dto.TeacherBrief, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM course_teachers ct
		JOIN teachers t ON ct.teacher_id = t.id
		WHERE ct.course_id = ?
		ORDER BY t.name`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]dto.TeacherBrief, 0)
	for rows.Next() {
		var t dto.TeacherBrief
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (s *LocalService) teacherCourses(ctx context.Context, db *sql.DB, teacherID string) ([]dto.CourseListItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.course_code, c.name, c.category, c.credits, c.hours,
		       d.name AS department_name,
		       `+localTeacherNames+`,
		       c.avg_score AS avg_rating, c.rating_count, c.comment_count
		FROM course_teachers ct
		JOIN courses c ON ct.course_id = c.id
		LEFT JOIN departments d ON c.department_id = d.id
		WHERE ct.teacher_id = ?
		ORDER BY c.name`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher courses: %w", err)
	}
	defer rows.Close()

	courses := make([]dto.CourseListItem, 0)
	for rows.Next() {
		var item dto.CourseListItem
		err := rows.Scan(
			&item.ID,
			&item.CourseCode,
			&item.Name,
			&item.Category,
			&item.Credits,
			&item.Hours,
			&item.DepartmentName,
			&item.TeacherNames,
			&item.AvgRating,
			&item.RatingCount,
			&item.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, item)
	}
	return courses, rows.Err()
}

// commentTree loads both comment levels from one table and assembles them the
// same way the live backend does. Snapshot timestamps are already RFC3339
// strings, so they pass through unchanged.
func (s *LocalService) commentTree(ctx context.Context, db *sql.DB, table, fkColumn string, entityID interface{}) ([]dto.CommentNode, error) {
	topRows, err := db.QueryContext(ctx, `
		SELECT id, nickname, content, created_at FROM `+table+`
		WHERE `+fkColumn+` = ? AND parent_id IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, entityID, localTopCommentLimit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving comments: %w", err)
	}
	defer topRows.Close()

	tops := make([]dto.CommentNode, 0)
	for topRows.Next() {
		var node dto.CommentNode
		if err := topRows.Scan(&node.ID, &node.Nickname, &node.Content, &node.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		tops = append(tops, node)
	}
	if err := topRows.Err(); err != nil {
		return nil, err
	}

	replyRows, err := db.QueryContext(ctx, `
		SELECT id, parent_id, nickname, content, created_at FROM `+table+`
		WHERE `+fkColumn+` = ? AND parent_id IS NOT NULL
		ORDER BY created_at ASC, id ASC`, entityID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving replies: %w", err)
	}
	defer replyRows.Close()

	replies := make([]dto.ReplyNode, 0)
	for replyRows.Next() {
		var reply dto.ReplyNode
		if err := replyRows.Scan(&reply.ID, &reply.ParentID, &reply.Nickname, &reply.Content, &reply.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := replyRows.Err(); err != nil {
		return nil, err
	}

	return services.BuildCommentTree(tops, replies), nil
}
