package models

// Teacher represents a teacher. The ID is the opaque staff code from the
// registrar export, not a generated integer.
type Teacher struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	AvgScore     *float64 `json:"avg_score,omitempty"`
	RatingCount  int     `json:"rating_count"`
	CommentCount int     `json:"comment_count"`

	Department *Department `json:"department,omitempty"`
}
