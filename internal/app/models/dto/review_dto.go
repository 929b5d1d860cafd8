package dto

// RatingInfo is the aggregate rating block of a detail response. Average is
// rounded to one decimal and zero when no ratings exist.
type RatingInfo struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ReplyNode is a direct reply under a top-level comment.
type ReplyNode struct {
	ID        int64  `json:"id"`
	ParentID  int64  `json:"parent_id"`
	Nickname  string `json:"nickname"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// CommentNode is a top-level comment carrying its replies in ascending
// creation order. Replies is never null in output.
type CommentNode struct {
	ID        int64       `json:"id"`
	Nickname  string      `json:"nickname"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"created_at"`
	Replies   []ReplyNode `json:"replies"`
}

// SubmitRatingRequest is the body of POST /api/ratings. Score carries no
// binding tag so a zero score reaches the range validator instead of being
// rejected as a missing field.
type SubmitRatingRequest struct {
	CourseID int64 `json:"course_id" binding:"required"`
	Score    int   `json:"score"`
}

// SubmitTeacherRatingRequest is the body of POST /api/teacher-ratings.
type SubmitTeacherRatingRequest struct {
	TeacherID string `json:"teacher_id" binding:"required"`
	Score     int    `json:"score"`
}

// SubmitCommentRequest is the body of POST /api/comments.
type SubmitCommentRequest struct {
	CourseID int64  `json:"course_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// SubmitTeacherCommentRequest is the body of POST /api/teacher-comments.
type SubmitTeacherCommentRequest struct {
	TeacherID string `json:"teacher_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
	ParentID  *int64 `json:"parent_id"`
}
