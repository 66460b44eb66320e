package main

import (
	"log"
	"time"

	"github.com/academix/academix-api/internal/config"
	"github.com/academix/academix-api/internal/database"
	"github.com/academix/academix-api/internal/models"
	"github.com/academix/academix-api/internal/services"
	"github.com/joho/godotenv"
)

// Rebuilds the Meilisearch courses and students indexes from the database.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	// Courses
	var courseCount int64
	if err := db.Model(&models.Course{}).Count(&courseCount).Error; err != nil {
		log.Fatalf("Failed to get course count from DB: %v", err)
	}

	meiliCourseCount, err := searchService.GetCourseCount()
	if err != nil {
		log.Fatalf("Failed to get course count from Meilisearch: %v", err)
	}

	log.Printf("Courses in DB: %d", courseCount)
	log.Printf("Courses in Meilisearch: %d", meiliCourseCount)

	batchSize := 100
	var offset int
	totalIndexed := 0

	for {
		var courses []models.Course
		if err := db.Limit(batchSize).Offset(offset).Find(&courses).Error; err != nil {
			log.Fatalf("Failed to fetch courses: %v", err)
		}

		if len(courses) == 0 {
			break
		}

		docs := make([]services.CourseDocument, len(courses))
		for i, course := range courses {
			// Syllabus text is not re-extracted here; uploads refresh it
			docs[i] = services.NewCourseDocument(course, "")
		}

		if err := searchService.IndexCourses(docs); err != nil {
			log.Printf("Failed to index course batch (offset %d): %v", offset, err)
		} else {
			totalIndexed += len(courses)
			log.Printf("Indexed batch of %d courses (total: %d)", len(courses), totalIndexed)
		}

		offset += batchSize
		time.Sleep(100 * time.Millisecond) // Be nice to Meilisearch
	}

	// Students
	offset = 0
	totalIndexed = 0

	for {
		var students []models.Student
		if err := db.Limit(batchSize).Offset(offset).Find(&students).Error; err != nil {
			log.Fatalf("Failed to fetch students: %v", err)
		}

		if len(students) == 0 {
			break
		}

		docs := make([]services.StudentDocument, len(students))
		for i, student := range students {
			docs[i] = services.NewStudentDocument(student)
		}

		if err := searchService.IndexStudents(docs); err != nil {
			log.Printf("Failed to index student batch (offset %d): %v", offset, err)
		} else {
			totalIndexed += len(students)
			log.Printf("Indexed batch of %d students (total: %d)", len(students), totalIndexed)
		}

		offset += batchSize
		time.Sleep(100 * time.Millisecond)
	}

	finalCourseCount, err := searchService.GetCourseCount()
	if err != nil {
		log.Printf("Failed to get final course count: %v", err)
	}
	finalStudentCount, err := searchService.GetStudentCount()
	if err != nil {
		log.Printf("Failed to get final student count: %v", err)
	}

	log.Println("Reindexing completed.")
	log.Printf("Final Meilisearch counts: %d courses, %d students", finalCourseCount, finalStudentCount)
}
