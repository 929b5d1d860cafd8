package dataservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
)

// RemoteService reads from the live HTTP API.
type RemoteService struct {
	baseURL    string
	httpClient *http.Client
}

var _ DataService = (*RemoteService)(nil)

// NewRemoteService creates a remote backend against the given base URL,
// for example "http://localhost:8080".
func NewRemoteService(baseURL string) *RemoteService {
	return &RemoteService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *RemoteService) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	default:
		return fmt.Errorf("request to %s failed with status: %s", path, resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ListCourses fetches a page of courses from the live API.
func (s *RemoteService) ListCourses(ctx context.Context, params dto.CourseListParams) (*dto.CourseListResponse, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	if params.Field != "" {
		query.Set("field", params.Field)
	}
	if params.Department != nil {
		query.Set("dept", strconv.FormatInt(*params.Department, 10))
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var result dto.CourseListResponse
	if err := s.get(ctx, "/api/courses", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCourseDetail fetches a course detail from the live API.
func (s *RemoteService) GetCourseDetail(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	var result dto.CourseDetailResponse
	err := s.get(ctx, "/api/courses/"+strconv.FormatInt(id, 10), nil, &result)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ListTeachers fetches a page of teachers from the live API.
func (s *RemoteService) ListTeachers(ctx context.Context, params dto.TeacherListParams) (*dto.TeacherListResponse, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var result dto.TeacherListResponse
	if err := s.get(ctx, "/api/teachers", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTeacherDetail fetches a teacher detail from the live API.
func (s *RemoteService) GetTeacherDetail(ctx context.Context, id string) (*dto.TeacherDetailResponse, error) {
	var result dto.TeacherDetailResponse
	err := s.get(ctx, "/api/teachers/"+url.PathEscape(id), nil, &result)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ListDepartments fetches all departments from the live API.
func (s *RemoteService) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	var result dto.DepartmentListResponse
	if err := s.get(ctx, "/api/departments", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
