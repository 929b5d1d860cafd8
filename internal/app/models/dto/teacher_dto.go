package dto

// TeacherListItem is one row of a teacher listing.
type TeacherListItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DepartmentName *string  `json:"department_name"`
	CourseCount    int      `json:"course_count"`
	AvgRating      *float64 `json:"avg_rating"`
	RatingCount    int      `json:"rating_count"`
	CommentCount   int      `json:"comment_count"`
}

// TeacherListParams are the untrusted inputs for teacher listings. Teachers
// match on name only, so there is no Field selector.
type TeacherListParams struct {
	Query string
	Sort  string
	Page  int
	Limit int
}

// TeacherListResponse is the teacher listing page.
type TeacherListResponse struct {
	Teachers []TeacherListItem `json:"teachers"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// TeacherInfo is the teacher header block of a detail response.
type TeacherInfo struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DepartmentName *string `json:"department_name"`
}

// TeacherDetailResponse is the full teacher detail page, including the
// teacher's courses with their aggregates.
type TeacherDetailResponse struct {
	Teacher  TeacherInfo      `json:"teacher"`
	Courses  []CourseListItem `json:"courses"`
	Rating   RatingInfo       `json:"rating"`
	Comments []CommentNode    `json:"comments"`
}
