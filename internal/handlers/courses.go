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
type CreateCourseRequest struct {
	ProgramID   string `json:"program_id" binding:"required"`
	Code        string `json:"code" binding:"required,min=3,max=10"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Semester    int    `json:"semester"`
}

type UpdateCourseRequest struct {
	ProgramID   *string `json:"program_id"`
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits"`
	Semester    *int    `json:"semester"`
}

// ListCourses returns courses matching the optional search and filters
func ListCourses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var courses []models.Course

		query := db.Preload("Program").Order("code asc")

		if q := c.Query("q"); q != "" {
			like := "%" + q + "%"
			query = query.Where("code ILIKE ? OR name ILIKE ?", like, like)
		}
		if programID := c.Query("program_id"); programID != "" {
			query = query.Where("program_id = ?", programID)
		}
		if semester := c.Query("semester"); semester != "" {
			query = query.Where("semester = ?", semester)
		}

		if err := query.Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch courses",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    courses,
		})
	}
}

// GetCourse returns a single course with its sections
func GetCourse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		courseID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid course ID format",
				},
			})
			return
		}

		var course models.Course
		if err := db.Preload("Program").Preload("Sections").Preload("Sections.Period").Preload("Sections.Professor").First(&course, "id = ?", courseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Course not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch course",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    course,
		})
	}
}

// CreateCourse creates a new course (admin only)
func CreateCourse(db *gorm.DB, searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCourseRequest
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

		course := models.Course{
			ProgramID:   programID,
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
			Credits:     req.Credits,
			Semester:    req.Semester,
		}
		if course.Semester == 0 {
			course.Semester = 1
		}

		if err := db.Create(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create course",
				},
			})
			return
		}

		if err := searchService.IndexCourse(services.NewCourseDocument(course, "")); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    course,
		})
	}
}

// UpdateCourse updates an existing course (admin only)
func UpdateCourse(db *gorm.DB, searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		courseID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid course ID format",
				},
			})
			return
		}

		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Course not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch course",
				},
			})
			return
		}

		var req UpdateCourseRequest
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
		if req.ProgramID != nil {
			programID, err := uuid.Parse(*req.ProgramID)
			if err == nil {
				// Verify program exists
				var program models.Program
				if err := db.First(&program, "id = ?", programID).Error; err == nil {
					course.ProgramID = programID
				}
			}
		}
		if req.Code != nil {
			course.Code = *req.Code
		}
		if req.Name != nil {
			course.Name = *req.Name
		}
		if req.Description != nil {
			course.Description = *req.Description
		}
		if req.Credits != nil {
			course.Credits = *req.Credits
		}
		if req.Semester != nil {
			course.Semester = *req.Semester
		}

		if err := db.Save(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update course",
				},
			})
			return
		}

		if err := searchService.IndexCourse(services.NewCourseDocument(course, "")); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    course,
		})
	}
}

// DeleteCourse deletes a course (admin only)
func DeleteCourse(db *gorm.DB, searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		courseID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid course ID format",
				},
			})
			return
		}

		// Check if course has sections
		var sectionCount int64
		db.Model(&models.Section{}).Where("course_id = ?", courseID).Count(&sectionCount)
		if sectionCount > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HAS_SECTIONS",
					"message": "Cannot delete course with existing sections",
				},
			})
			return
		}

		result := db.Delete(&models.Course{}, "id = ?", courseID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete course",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Course not found",
				},
			})
			return
		}

		if err := searchService.DeleteCourse(courseID.String()); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Course deleted successfully",
		})
	}
}
