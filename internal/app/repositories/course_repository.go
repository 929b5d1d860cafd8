package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
)

// teacherNamesSubquery aggregates a course's teacher names into one
// comma-separated column without multiplying result rows.
const teacherNamesSubquery = `(SELECT string_agg(t.name, ', ' ORDER BY t.name)
		FROM course_teachers ct
		JOIN teachers t ON ct.teacher_id = t.id
		WHERE ct.course_id = c.id) AS teacher_names`

// teacherNameExists matches courses taught by any teacher whose name matches.
const teacherNameExists = `EXISTS (SELECT 1
		FROM course_teachers ct2
		JOIN teachers t2 ON ct2.teacher_id = t2.id
		WHERE ct2.course_id = c.id AND t2.name ILIKE ?)`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// applyCourseFilters adds the text and department predicates shared by the
// listing and count queries. Only course columns and EXISTS subqueries are
// referenced, so the count never double-counts through the teacher join.
func applyCourseFilters(query squirrel.SelectBuilder, params dto.CourseListParams) squirrel.SelectBuilder {
	if params.Query != "" {
		like := "%" + params.Query + "%"
		if params.Field == "name" {
			query = query.Where("c.name ILIKE ?", like)
		} else {
			query = query.Where("(c.name ILIKE ? OR c.course_code ILIKE ? OR "+teacherNameExists+")",
				like, like, like)
		}
	}
	if params.Department != nil {
		query = query.Where("c.department_id = ?", *params.Department)
	}
	return query
}

// courseOrderBy maps an untrusted sort key to a deterministic ORDER BY clause.
// Unknown keys fall back to the stable identity order.
func courseOrderBy(sort string) string {
	switch sort {
	case "rating_count":
		return "c.comment_count DESC, c.id ASC"
	case "avg_rating":
		return "c.avg_score DESC NULLS LAST, c.id ASC"
	default:
		return "c.id ASC"
	}
}

// buildCourseListQuery constructs the paginated course listing query.
func buildCourseListQuery(params dto.CourseListParams) squirrel.SelectBuilder {
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	query := squirrel.Select(
		"c.id", "c.course_code", "c.name", "c.category", "c.credits", "c.hours",
		"d.name AS department_name",
		teacherNamesSubquery,
		"c.avg_score AS avg_rating", "c.rating_count", "c.comment_count",
	).
		From("courses c").
		LeftJoin("departments d ON c.department_id = d.id").
		PlaceholderFormat(squirrel.Dollar)

	query = applyCourseFilters(query, params)

	return query.
		OrderBy(courseOrderBy(params.Sort)).
		Limit(uint64(limit)).
		Offset(offset)
}

// buildCourseCountQuery constructs the total count query over the same filter
// predicate, without joins or aggregates.
func buildCourseCountQuery(params dto.CourseListParams) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("courses c").
		PlaceholderFormat(squirrel.Dollar)
	return applyCourseFilters(query, params)
}

// List retrieves a filtered, sorted and paginated page of courses together
// with the total number of matching rows before pagination.
func (r *CourseRepository) List(ctx context.Context, params dto.CourseListParams) ([]dto.CourseListItem, int64, error) {
	countSQL, countArgs, err := buildCourseCountQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	listSQL, listArgs, err := buildCourseListQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
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
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// GetInfoByID retrieves the course header block, or nil when absent.
func (r *CourseRepository) GetInfoByID(ctx context.Context, id int64) (*dto.CourseInfo, error) {
	query := `
		SELECT c.id, c.course_code, c.name, c.category, c.credits, c.hours,
		       d.name AS department_name
		FROM courses c
		LEFT JOIN departments d ON c.department_id = d.id
		WHERE c.id = $1
	`

	var info dto.CourseInfo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&info.ID,
		&info.CourseCode,
		&info.Name,
		&info.Category,
		&info.Credits,
		&info.Hours,
		&info.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &info, nil
}

// Exists reports whether a course row exists.
func (r *CourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// GetRatingInfo reads the precomputed rating aggregates for a course.
func (r *CourseRepository) GetRatingInfo(ctx context.Context, id int64) (dto.RatingInfo, error) {
	var info dto.RatingInfo
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT rating_count, avg_score FROM courses WHERE id = $1`, id).
		Scan(&info.Count, &avg)
	if err != nil {
		return dto.RatingInfo{}, fmt.Errorf("error retrieving rating info: %w", err)
	}
	if avg != nil {
		info.Average = *avg
	}
	return info, nil
}

// GetTeachers retrieves the teachers of a course, ordered by name.
func (r *CourseRepository) GetTeachers(ctx context.Context, courseID int64) ([]dto.TeacherBrief, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name
		FROM course_teachers ct
		JOIN teachers t ON ct.teacher_id = t.id
		WHERE ct.course_id = $1
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

// ListByTeacher retrieves all courses taught by a teacher, with aggregates,
// ordered by course name.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID string) ([]dto.CourseListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.course_code, c.name, c.category, c.credits, c.hours,
		       d.name AS department_name,
		       `+teacherNamesSubqueryDollar+`,
		       c.avg_score AS avg_rating, c.rating_count, c.comment_count
		FROM course_teachers ct
		JOIN courses c ON ct.course_id = c.id
		LEFT JOIN departments d ON c.department_id = d.id
		WHERE ct.teacher_id = $1
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

// teacherNamesSubqueryDollar is the raw-SQL variant of teacherNamesSubquery
// for queries written without the builder.
const teacherNamesSubqueryDollar = `(SELECT string_agg(t.name, ', ' ORDER BY t.name)
		FROM course_teachers ct2
		JOIN teachers t ON ct2.teacher_id = t.id
		WHERE ct2.course_id = c.id) AS teacher_names`

// formatTimestamp renders creation times the way both backends serialize them.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
