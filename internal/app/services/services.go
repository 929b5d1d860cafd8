package services

import (
	"github.com/SMU-RES/smu-course-review/internal/app/repositories"
	"github.com/SMU-RES/smu-course-review/internal/config"
)

// Services is the container for all service instances
type Services struct {
	CourseService     *CourseService
	TeacherService    *TeacherService
	DepartmentService *DepartmentService
	RatingService     *RatingService
	CommentService    *CommentService
}

// NewServices wires all services onto the repositories
func NewServices(repos *repositories.Repositories, cfg *config.Config) *Services {
	return &Services{
		CourseService: NewCourseService(
			repos.CourseRepository,
			repos.CommentRepository,
		),
		TeacherService: NewTeacherService(
			repos.TeacherRepository,
			repos.CourseRepository,
			repos.CommentRepository,
		),
		DepartmentService: NewDepartmentService(repos.DepartmentRepository),
		RatingService: NewRatingService(
			repos.RatingRepository,
			repos.CourseRepository,
			repos.TeacherRepository,
			cfg.Review.Salt,
		),
		CommentService: NewCommentService(
			repos.CommentRepository,
			repos.CourseRepository,
			repos.TeacherRepository,
			cfg.Review.CommentMaxLen,
			cfg.Review.Nickname,
		),
	}
}
