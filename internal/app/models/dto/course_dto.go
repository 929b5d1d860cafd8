package dto

// CourseListItem is one row of a course listing, aggregates included.
// Field names are shared verbatim by the live API and the snapshot backend.
type CourseListItem struct {
	ID             int64    `json:"id"`
	CourseCode     string   `json:"course_code"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Credits        float64  `json:"credits"`
	Hours          int      `json:"hours"`
	DepartmentName *string  `json:"department_name"`
	TeacherNames   *string  `json:"teacher_names"`
	AvgRating      *float64 `json:"avg_rating"`
	RatingCount    int      `json:"rating_count"`
	CommentCount   int      `json:"comment_count"`
}

// CourseListParams are the untrusted search/sort/pagination inputs for course
// listings. Field narrows the text match to the display name when set to "name".
type CourseListParams struct {
	Query      string
	Field      string
	Department *int64
	Sort       string
	Page       int
	Limit      int
}

// CourseListResponse is the course listing page.
type CourseListResponse struct {
	Courses []CourseListItem `json:"courses"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// CourseInfo is the course header block of a detail response.
type CourseInfo struct {
	ID             int64   `json:"id"`
	CourseCode     string  `json:"course_code"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Credits        float64 `json:"credits"`
	Hours          int     `json:"hours"`
	DepartmentName *string `json:"department_name"`
}

// TeacherBrief is a teacher reference embedded in a course detail.
type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourseDetailResponse is the full course detail page.
type CourseDetailResponse struct {
	Course   CourseInfo     `json:"course"`
	Teachers []TeacherBrief `json:"teachers"`
	Rating   RatingInfo     `json:"rating"`
	Comments []CommentNode  `json:"comments"`
}
