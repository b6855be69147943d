package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/nbadocs/internal/app/controllers"
	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth   *controllers.AuthController
	Course *controllers.CourseController
	File   *controllers.FileController
	Report *controllers.ReportController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", controllers.Health)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", controllers.Health)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty)

	authenticated.GET("/auth/me", c.Auth.Me)
	authenticated.POST("/users", adminOnly, c.Auth.CreateUser)

	courses := authenticated.Group("/courses")
	{
		courses.POST("", staff, c.Course.CreateCourse)
		courses.GET("", c.Course.GetCourses)
		courses.GET("/:id", c.Course.GetCourse)
		courses.PUT("/:id", staff, c.Course.UpdateCourse)
		courses.DELETE("/:id", adminOnly, c.Course.DeactivateCourse)
	}

	files := authenticated.Group("/files")
	{
		files.POST("/upload", c.File.UploadFile)
		files.GET("/course/:courseId", c.File.GetCourseFiles)
		files.GET("/download/:id", c.File.DownloadFile)
		files.GET("/:id", c.File.GetFile)
		files.PATCH("/:id/classification", adminOnly, c.File.ReclassifyFile)
	}

	reports := authenticated.Group("/reports")
	{
		reports.GET("/dashboard", c.Report.GetDashboard)
		reports.GET("/nba-compliance", staff, c.Report.GetComplianceReport)
		reports.GET("/nba-compliance/:courseId", staff, c.Report.GetCourseCompliance)
	}
}
