package models

import "time"

// Comment is a course comment. ParentID nil means top-level; nesting depth is
// capped at two levels, so a reply's parent is always top-level.
type Comment struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TeacherComment is a teacher comment with the same nesting rules as Comment.
type TeacherComment struct {
	ID        int64     `json:"id"`
	TeacherID string    `json:"teacher_id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
