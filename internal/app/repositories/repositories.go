package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	TeacherRepository    *TeacherRepository
	DepartmentRepository *DepartmentRepository
	RatingRepository     *RatingRepository
	CommentRepository    *CommentRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		RatingRepository:     NewRatingRepository(db),
		CommentRepository:    NewCommentRepository(db),
	}
}
