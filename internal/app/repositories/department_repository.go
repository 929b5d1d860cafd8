package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// ListWithCourseCounts retrieves all departments with their course counts,
// busiest department first.
func (r *DepartmentRepository) ListWithCourseCounts(ctx context.Context) ([]dto.DepartmentItem, error) {
	rows, err := r.db.Query(ctx, `
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

	return departments, rows.Err()
}

// Create inserts a department, returning its id. Existing names are reused.
func (r *DepartmentRepository) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO departments (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating department: %w", err)
	}
	return id, nil
}
