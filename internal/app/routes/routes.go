package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SMU-RES/smu-course-review/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	teacherController *controllers.TeacherController,
	departmentController *controllers.DepartmentController,
	reviewController *controllers.ReviewController,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	{
		courses := api.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourseDetail)
		}

		teachers := api.Group("/teachers")
		{
			teachers.GET("", teacherController.ListTeachers)
			teachers.GET("/:id", teacherController.GetTeacherDetail)
		}

		api.GET("/departments", departmentController.ListDepartments)

		api.POST("/ratings", reviewController.SubmitCourseRating)
		api.POST("/teacher-ratings", reviewController.SubmitTeacherRating)
		api.POST("/comments", reviewController.SubmitCourseComment)
		api.POST("/teacher-comments", reviewController.SubmitTeacherComment)
	}
}
