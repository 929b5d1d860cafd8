package dto

// DepartmentItem is one row of the department listing.
type DepartmentItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CourseCount int    `json:"course_count"`
}

// DepartmentListResponse is the department listing, sorted by course count
// descending.
type DepartmentListResponse struct {
	Departments []DepartmentItem `json:"departments"`
}
