package routes

import (
	"database/sql"

	"yoklama_backend/handlers"
	"yoklama_backend/middleware"
	"yoklama_backend/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, jwtSecret []byte) {
	dataStore := store.NewPostgres(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, jwtSecret)
	healthHandler := handlers.NewHealthHandler(db)
	courseHandler := handlers.NewCourseHandler(dataStore)
	scheduleHandler := handlers.NewScheduleHandler(dataStore)
	attendanceHandler := handlers.NewAttendanceHandler(dataStore)
	statsHandler := handlers.NewStatsHandler(dataStore)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		// Term routes
		protected.GET("/terms", courseHandler.GetTerms)

		// Course routes
		protected.POST("/courses", courseHandler.CreateCourse)
		protected.GET("/courses", courseHandler.GetCourses)
		protected.GET("/courses/:id", courseHandler.GetCourseByID)
		protected.GET("/courses/:id/students", courseHandler.GetCourseStudents)

		// Schedule routes
		protected.GET("/schedule", scheduleHandler.GetSchedule)
		protected.GET("/schedule/today", scheduleHandler.GetTodaySchedule)
		protected.GET("/schedule/pending", scheduleHandler.GetPendingAttendance)
		protected.POST("/schedule", scheduleHandler.CreateScheduleSlot)
		protected.GET("/courses/:id/schedule", scheduleHandler.GetCourseSchedule)

		// Attendance routes
		protected.GET("/courses/:id/session", attendanceHandler.GetSession)
		protected.POST("/attendances", attendanceHandler.SubmitAttendance)
		protected.GET("/attendances", attendanceHandler.GetAttendances)
		protected.GET("/courses/:id/attendance/dates", attendanceHandler.GetAttendanceDates)

		// Stats routes
		protected.GET("/courses/:id/stats/weekly", statsHandler.GetWeeklyStats)
		protected.GET("/courses/:id/stats/daily", statsHandler.GetDailyStats)
		protected.GET("/courses/:id/stats/students", statsHandler.GetStudentStats)

		// Logout route
		protected.POST("/logout", authHandler.Logout)

		// User info route
		protected.GET("/userinfo", authHandler.GetUserInfo)
	}
}
