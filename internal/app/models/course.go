package models

// Course represents a course offering. CourseSeq disambiguates multiple
// sections sharing one course code.
type Course struct {
	ID           int64    `json:"id"`
	CourseCode   string   `json:"course_code"`
	CourseSeq    *string  `json:"course_seq,omitempty"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Credits      float64  `json:"credits"`
	Hours        int      `json:"hours"`
	DepartmentID *int64   `json:"department_id,omitempty"`
	AvgScore     *float64 `json:"avg_score,omitempty"`
	RatingCount  int      `json:"rating_count"`
	CommentCount int      `json:"comment_count"`

	Department *Department `json:"department,omitempty"`
	Teachers   []Teacher   `json:"teachers,omitempty"`
}

// CourseTeacher is the many-to-many association between courses and teachers.
type CourseTeacher struct {
	CourseID  int64  `json:"course_id"`
	TeacherID string `json:"teacher_id"`
}
