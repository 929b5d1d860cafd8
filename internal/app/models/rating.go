package models

import "time"

// Rating is one visitor's score for a course. At most one row exists per
// (course, submitter key) pair; resubmission overwrites the score in place.
type Rating struct {
	ID           int64     `json:"id"`
	CourseID     int64     `json:"course_id"`
	Score        int       `json:"score"`
	SubmitterKey string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeacherRating is one visitor's score for a teacher, with the same
// deduplication invariant as Rating.
type TeacherRating struct {
	ID           int64     `json:"id"`
	TeacherID    string    `json:"teacher_id"`
	Score        int       `json:"score"`
	SubmitterKey string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
