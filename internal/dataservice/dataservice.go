// Package dataservice exposes the read side of the review platform behind a
// single interface with two interchangeable backends: the live HTTP API and a
// read-only SQLite snapshot. Both produce identical response shapes, so
// consumers never know which one they are talking to.
package dataservice

import (
	"context"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

// DataService is the backend-independent read interface.
type DataService interface {
	ListCourses(ctx context.Context, params dto.CourseListParams) (*dto.CourseListResponse, error)
	GetCourseDetail(ctx context.Context, id int64) (*dto.CourseDetailResponse, error)
	ListTeachers(ctx context.Context, params dto.TeacherListParams) (*dto.TeacherListResponse, error)
	GetTeacherDetail(ctx context.Context, id string) (*dto.TeacherDetailResponse, error)
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
}
