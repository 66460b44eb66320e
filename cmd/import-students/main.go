package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/academix/academix-api/internal/config"
	"github.com/academix/academix-api/internal/database"
	"github.com/academix/academix-api/internal/models"
	"github.com/academix/academix-api/internal/services"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Bulk import of students from a CSV export of the legacy system.
// Expected columns: student_number, first_name, last_name, email,
// program_code, cohort_year.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <students.csv>", os.Args[0])
	}
	csvPath := os.Args[1]

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	imported, err := importStudents(db, csvPath)
	if err != nil {
		log.Fatalf("Failed to import students: %v", err)
	}

	// Index all imported students in Meilisearch
	if len(imported) > 0 {
		log.Printf("Indexing %d students in Meilisearch...", len(imported))
		docs := make([]services.StudentDocument, len(imported))
		for i, s := range imported {
			docs[i] = services.NewStudentDocument(s)
		}
		if err := searchService.IndexStudents(docs); err != nil {
			log.Printf("Warning: Failed to index students in Meilisearch: %v", err)
		} else {
			log.Printf("Successfully indexed %d students in Meilisearch", len(imported))
		}
	}

	log.Println("Import completed successfully!")
}

func importStudents(db *gorm.DB, csvPath string) ([]models.Student, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	programCache := make(map[string]*uuid.UUID)
	var imported []models.Student
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("Skipping line %d: %v", line, err)
			continue
		}
		if len(record) < 6 {
			log.Printf("Skipping line %d: expected 6 columns, got %d", line, len(record))
			continue
		}

		studentNumber := record[0]

		// Skip students that already exist
		var existing models.Student
		if err := db.Where("student_number = ?", studentNumber).First(&existing).Error; err == nil {
			log.Printf("Student %s already exists, skipping", studentNumber)
			continue
		}

		cohortYear, err := strconv.Atoi(record[5])
		if err != nil {
			log.Printf("Skipping line %d: invalid cohort year %q", line, record[5])
			continue
		}

		programID, err := resolveProgram(db, programCache, record[4])
		if err != nil {
			log.Printf("Skipping line %d: %v", line, err)
			continue
		}

		student := models.Student{
			StudentNumber: studentNumber,
			FirstName:     record[1],
			LastName:      record[2],
			Email:         record[3],
			ProgramID:     programID,
			CohortYear:    cohortYear,
			IsActive:      true,
		}

		if err := db.Create(&student).Error; err != nil {
			log.Printf("Failed to create student %s: %v", studentNumber, err)
			continue
		}

		imported = append(imported, student)
		log.Printf("Imported student %s (%s %s)", studentNumber, student.FirstName, student.LastName)
	}

	log.Printf("Imported %d students", len(imported))
	return imported, nil
}

func resolveProgram(db *gorm.DB, cache map[string]*uuid.UUID, code string) (*uuid.UUID, error) {
	if code == "" {
		return nil, nil
	}
	if id, ok := cache[code]; ok {
		return id, nil
	}

	var program models.Program
	if err := db.Where("code = ?", code).First(&program).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("unknown program code %q", code)
		}
		return nil, fmt.Errorf("error looking up program %q: %w", code, err)
	}

	cache[code] = &program.ID
	return &program.ID, nil
}
