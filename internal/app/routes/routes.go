package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/unicampus/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	facultyController *controllers.FacultyController,
	promotionController *controllers.PromotionController,
	studentController *controllers.StudentController,
	healthController *controllers.HealthController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	faculties := v1.Group("/faculties")
	{
		faculties.GET("", facultyController.GetFaculties)
		faculties.POST("", facultyController.AddFaculty)
		faculties.GET("/:id", facultyController.GetFacultyByID)
		faculties.GET("/:id/promotions", facultyController.GetFacultyPromotions)
		faculties.PUT("/:id", facultyController.UpdateFaculty)
		faculties.DELETE("/:id", facultyController.DeleteFaculty)
	}

	promotions := v1.Group("/promotions")
	{
		promotions.GET("", promotionController.GetPromotions)
		promotions.POST("", promotionController.AddPromotion)
		promotions.GET("/:id", promotionController.GetPromotionByID)
		promotions.GET("/:id/students", promotionController.GetPromotionStudents)
		promotions.PUT("/:id", promotionController.UpdatePromotion)
		promotions.DELETE("/:id", promotionController.DeletePromotion)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetStudents)
		students.POST("", studentController.AddStudent)
		// Static segments take precedence over :id
		students.GET("/directory", studentController.GetDirectory)
		students.GET("/export", studentController.ExportStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}
}
