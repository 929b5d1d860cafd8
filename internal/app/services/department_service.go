package services

import (
	"context"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

// DepartmentReader is the department data access surface of the service.
type DepartmentReader interface {
	ListWithCourseCounts(ctx context.Context) ([]dto.DepartmentItem, error)
}

// DepartmentService implements the department listing operation
type DepartmentService struct {
	departments DepartmentReader
}

// NewDepartmentService creates a new department service
func NewDepartmentService(departments DepartmentReader) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// ListDepartments returns all departments with their course counts.
func (s *DepartmentService) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := s.departments.ListWithCourseCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentListResponse{Departments: departments}, nil
}
