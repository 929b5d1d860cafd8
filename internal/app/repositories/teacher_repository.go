package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/helpers"
)

// courseCountSubquery counts distinct courses a teacher is associated with.
const courseCountSubquery = `(SELECT COUNT(DISTINCT ct.course_id)
		FROM course_teachers ct
		WHERE ct.teacher_id = t.id) AS course_count`

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func applyTeacherFilters(query squirrel.SelectBuilder, params dto.TeacherListParams) squirrel.SelectBuilder {
	if params.Query != "" {
		query = query.Where("t.name ILIKE ?", "%"+params.Query+"%")
	}
	return query
}

func teacherOrderBy(sort string) string {
	switch sort {
	case "rating_count":
		return "t.comment_count DESC, t.id ASC"
	case "avg_rating":
		return "t.avg_score DESC NULLS LAST, t.id ASC"
	default:
		return "t.id ASC"
	}
}

// buildTeacherListQuery constructs the paginated teacher listing query.
func buildTeacherListQuery(params dto.TeacherListParams) squirrel.SelectBuilder {
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	query := squirrel.Select(
		"t.id", "t.name",
		"d.name AS department_name",
		courseCountSubquery,
		"t.avg_score AS avg_rating", "t.rating_count", "t.comment_count",
	).
		From("teachers t").
		LeftJoin("departments d ON t.department_id = d.id").
		PlaceholderFormat(squirrel.Dollar)

	query = applyTeacherFilters(query, params)

	return query.
		OrderBy(teacherOrderBy(params.Sort)).
		Limit(uint64(limit)).
		Offset(offset)
}

// buildTeacherCountQuery constructs the total count over the same predicate.
func buildTeacherCountQuery(params dto.TeacherListParams) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("teachers t").
		PlaceholderFormat(squirrel.Dollar)
	return applyTeacherFilters(query, params)
}

// List retrieves a filtered, sorted and paginated page of teachers together
// with the total number of matching rows.
func (r *TeacherRepository) List(ctx context.Context, params dto.TeacherListParams) ([]dto.TeacherListItem, int64, error) {
	countSQL, countArgs, err := buildTeacherCountQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	listSQL, listArgs, err := buildTeacherListQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
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
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		teachers = append(teachers, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

// GetInfoByID retrieves the teacher header block, or nil when absent.
func (r *TeacherRepository) GetInfoByID(ctx context.Context, id string) (*dto.TeacherInfo, error) {
	query := `
		SELECT t.id, t.name, d.name AS department_name
		FROM teachers t
		LEFT JOIN departments d ON t.department_id = d.id
		WHERE t.id = $1
	`

	var info dto.TeacherInfo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&info.ID,
		&info.Name,
		&info.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return &info, nil
}

// Exists reports whether a teacher row exists.
func (r *TeacherRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teachers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher existence: %w", err)
	}
	return exists, nil
}

// GetRatingInfo reads the precomputed rating aggregates for a teacher.
func (r *TeacherRepository) GetRatingInfo(ctx context.Context, id string) (dto.RatingInfo, error) {
	var info dto.RatingInfo
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT rating_count, avg_score FROM teachers WHERE id = $1`, id).
		Scan(&info.Count, &avg)
	if err != nil {
		return dto.RatingInfo{}, fmt.Errorf("error retrieving rating info: %w", err)
	}
	if avg != nil {
		info.Average = *avg
	}
	return info, nil
}
