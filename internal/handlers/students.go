package handlers

import (
	"net/http"

	"github.com/academix/academix-api/internal/models"
	"github.com/academix/academix-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request/Response types
type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=4,max=20"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ProgramID     string `json:"program_id"`
	CohortYear    int    `json:"cohort_year"`
}

type UpdateStudentRequest struct {
	StudentNumber *string `json:"student_number"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	ProgramID     *string `json:"program_id"`
	CohortYear    *int    `json:"cohort_year"`
	IsActive      *bool   `json:"is_active"`
}

// ListStudents returns students matching the optional search and filters
func ListStudents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var students []models.Student

		query := db.Preload("Program").Order("last_name asc, first_name asc")

		if q := c.Query("q"); q != "" {
			like := "%" + q + "%"
			query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR student_number ILIKE ?", like, like, like, like)
		}
		if programID := c.Query("program_id"); programID != "" {
			query = query.Where("program_id = ?", programID)
		}
		if cohort := c.Query("cohort"); cohort != "" {
			query = query.Where("cohort_year = ?", cohort)
		}
		if active := c.Query("active"); active != "" {
			query = query.Where("is_active = ?", active == "true")
		}

		if err := query.Find(&students).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch students",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    students,
		})
	}
}

// GetStudent returns a single student with their enrollments
func GetStudent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		studentID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid student ID format",
				},
			})
			return
		}

		var student models.Student
		if err := db.Preload("Program").Preload("Enrollments").Preload("Enrollments.Section").Preload("Enrollments.Section.Course").First(&student, "id = ?", studentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Student not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch student",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    student,
		})
	}
}

// CreateStudent creates a new student (admin only)
func CreateStudent(db *gorm.DB, searchService *services.SearchService, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateStudentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		// Check for duplicate student number or email
		var existing models.Student
		if err := db.Where("student_number = ? OR email = ?", req.StudentNumber, req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "Student number or email already exists",
				},
			})
			return
		}

		student := models.Student{
			StudentNumber: req.StudentNumber,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			CohortYear:    req.CohortYear,
			IsActive:      true,
		}

		if req.ProgramID != "" {
			programID, err := uuid.Parse(req.ProgramID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INVALID_ID",
						"message": "Invalid program ID format",
					},
				})
				return
			}

			// Verify program exists
			var program models.Program
			if err := db.First(&program, "id = ?", programID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INVALID_PROGRAM",
						"message": "Program not found",
					},
				})
				return
			}
			student.ProgramID = &programID
		}

		if err := db.Create(&student).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create student",
				},
			})
			return
		}

		if err := searchService.IndexStudent(services.NewStudentDocument(student)); err != nil {
			_ = c.Error(err)
		}

		// Best effort, the record is already persisted
		if err := emailService.SendStudentWelcomeEmail(student.Email, student.StudentNumber); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    student,
		})
	}
}

// UpdateStudent updates an existing student (admin only)
func UpdateStudent(db *gorm.DB, searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		studentID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid student ID format",
				},
			})
			return
		}

		var student models.Student
		if err := db.First(&student, "id = ?", studentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Student not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch student",
				},
			})
			return
		}

		var req UpdateStudentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		// Update fields if provided
		if req.StudentNumber != nil {
			student.StudentNumber = *req.StudentNumber
		}
		if req.FirstName != nil {
			student.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			student.LastName = *req.LastName
		}
		if req.Email != nil {
			student.Email = *req.Email
		}
		if req.ProgramID != nil {
			if *req.ProgramID == "" {
				student.ProgramID = nil
			} else {
				programID, err := uuid.Parse(*req.ProgramID)
				if err == nil {
					var program models.Program
					if err := db.First(&program, "id = ?", programID).Error; err == nil {
						student.ProgramID = &programID
					}
				}
			}
		}
		if req.CohortYear != nil {
			student.CohortYear = *req.CohortYear
		}
		if req.IsActive != nil {
			student.IsActive = *req.IsActive
		}

		if err := db.Save(&student).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update student",
				},
			})
			return
		}

		if err := searchService.IndexStudent(services.NewStudentDocument(student)); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    student,
		})
	}
}

// DeleteStudent deletes a student (admin only)
func DeleteStudent(db *gorm.DB, searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		studentID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid student ID format",
				},
			})
			return
		}

		// Check if student has enrollments
		var enrollmentCount int64
		db.Model(&models.Enrollment{}).Where("student_id = ?", studentID).Count(&enrollmentCount)
		if enrollmentCount > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HAS_ENROLLMENTS",
					"message": "Cannot delete student with existing enrollments",
				},
			})
			return
		}

		result := db.Delete(&models.Student{}, "id = ?", studentID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete student",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Student not found",
				},
			})
			return
		}

		if err := searchService.DeleteStudent(studentID.String()); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Student deleted successfully",
		})
	}
}
