package router

import (
	"log"

	"github.com/academix/academix-api/internal/config"
	"github.com/academix/academix-api/internal/handlers"
	"github.com/academix/academix-api/internal/middleware"
	"github.com/academix/academix-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize Services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage service: %v", err)
	}

	tikaService := services.NewTextExtractionService(cfg)
	searchService := services.NewSearchService(cfg)
	activityService := services.NewActivityService(db)
	emailService := services.NewEmailService(cfg)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize rate limiter: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			login := auth.Group("")
			if rateLimiter != nil {
				login.Use(rateLimiter.RateLimitByIP(10, 300))
			}
			login.POST("/login", handlers.Login(db, cfg))

			forgot := auth.Group("")
			if rateLimiter != nil {
				forgot.Use(rateLimiter.RateLimitByEmail(3, 3600, "email"))
			}
			forgot.POST("/forgot-password", handlers.ForgotPassword(db, cfg, emailService))

			auth.POST("/reset-password", handlers.ResetPassword(db))
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(cfg))
		{
			// Auth
			protected.GET("/auth/me", handlers.GetCurrentUser(db))
			protected.POST("/auth/logout", handlers.Logout())

			// Programs
			protected.GET("/programs", handlers.ListPrograms(db))
			protected.GET("/programs/:id", handlers.GetProgram(db))

			// Courses
			protected.GET("/courses", handlers.ListCourses(db))
			protected.GET("/courses/:id", handlers.GetCourse(db))
			protected.GET("/courses/:id/syllabus", handlers.DownloadSyllabus(db, storageService))

			// Professors
			protected.GET("/professors", handlers.ListProfessors(db))
			protected.GET("/professors/:id", handlers.GetProfessor(db))

			// Students
			protected.GET("/students", handlers.ListStudents(db))
			protected.GET("/students/:id", handlers.GetStudent(db))

			// Periods
			protected.GET("/periods", handlers.ListPeriods(db))
			protected.GET("/periods/current", handlers.GetCurrentPeriod(db))
			protected.GET("/periods/:id", handlers.GetPeriod(db))

			// Sections
			protected.GET("/sections", handlers.ListSections(db))
			protected.GET("/sections/:id", handlers.GetSection(db))

			// Enrollments
			protected.GET("/enrollments", handlers.ListEnrollments(db))
			protected.POST("/enrollments", handlers.CreateEnrollment(db, activityService))

			// Activities
			protected.GET("/activities/recent", handlers.GetRecentActivities(activityService))

			// Search
			protected.GET("/search", handlers.Search(searchService))
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(cfg), middleware.AdminRequired())
		{
			// Program management
			admin.POST("/programs", handlers.CreateProgram(db))
			admin.PUT("/programs/:id", handlers.UpdateProgram(db))
			admin.DELETE("/programs/:id", handlers.DeleteProgram(db))

			// Course management
			admin.POST("/courses", handlers.CreateCourse(db, searchService))
			admin.PUT("/courses/:id", handlers.UpdateCourse(db, searchService))
			admin.DELETE("/courses/:id", handlers.DeleteCourse(db, searchService))
			admin.POST("/courses/:id/syllabus", handlers.UploadSyllabus(db, storageService, tikaService, searchService, activityService))
			admin.DELETE("/courses/:id/syllabus", handlers.DeleteSyllabus(db, storageService, searchService, activityService))

			// Professor management
			admin.POST("/professors", handlers.CreateProfessor(db))
			admin.PUT("/professors/:id", handlers.UpdateProfessor(db))
			admin.DELETE("/professors/:id", handlers.DeleteProfessor(db))

			// Student management
			admin.POST("/students", handlers.CreateStudent(db, searchService, emailService))
			admin.PUT("/students/:id", handlers.UpdateStudent(db, searchService))
			admin.DELETE("/students/:id", handlers.DeleteStudent(db, searchService))

			// Period management
			admin.POST("/periods", handlers.CreatePeriod(db))
			admin.PUT("/periods/:id", handlers.UpdatePeriod(db))
			admin.DELETE("/periods/:id", handlers.DeletePeriod(db))

			// Section management
			admin.POST("/sections", handlers.CreateSection(db))
			admin.PUT("/sections/:id", handlers.UpdateSection(db))
			admin.DELETE("/sections/:id", handlers.DeleteSection(db))

			// Enrollment management
			admin.PUT("/enrollments/:id", handlers.UpdateEnrollment(db, activityService))
			admin.DELETE("/enrollments/:id", handlers.DeleteEnrollment(db))
		}
	}

	return r
}
