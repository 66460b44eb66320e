package handlers

import (
	"net/http"

	"github.com/academix/academix-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request/Response types
type CreateSectionRequest struct {
	CourseID    string `json:"course_id" binding:"required"`
	PeriodID    string `json:"period_id" binding:"required"`
	ProfessorID string `json:"professor_id" binding:"required"`
	GroupCode   string `json:"group_code" binding:"required,min=1,max=10"`
	Capacity    int    `json:"capacity"`
	Room        string `json:"room"`
	Schedule    string `json:"schedule"`
}

type UpdateSectionRequest struct {
	ProfessorID *string `json:"professor_id"`
	GroupCode   *string `json:"group_code"`
	Capacity    *int    `json:"capacity"`
	Room        *string `json:"room"`
	Schedule    *string `json:"schedule"`
}

// enrolledCountSelect annotates sections with their active enrollment count.
const enrolledCountSelect = "sections.*, (SELECT COUNT(*) FROM enrollments e WHERE e.section_id = sections.id AND e.status <> 'withdrawn') AS enrolled_count"

// ListSections returns sections matching the optional filters
func ListSections(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sections []models.Section

		query := db.Select(enrolledCountSelect).
			Preload("Course").Preload("Period").Preload("Professor").
			Order("created_at desc")

		if periodID := c.Query("period_id"); periodID != "" {
			query = query.Where("period_id = ?", periodID)
		}
		if courseID := c.Query("course_id"); courseID != "" {
			query = query.Where("course_id = ?", courseID)
		}
		if professorID := c.Query("professor_id"); professorID != "" {
			query = query.Where("professor_id = ?", professorID)
		}

		if err := query.Find(&sections).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch sections",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    sections,
		})
	}
}

// GetSection returns a single section with its enrollments
func GetSection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sectionID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid section ID format",
				},
			})
			return
		}

		var section models.Section
		if err := db.Select(enrolledCountSelect).
			Preload("Course").Preload("Period").Preload("Professor").
			First(&section, "sections.id = ?", sectionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Section not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch section",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    section,
		})
	}
}

// CreateSection creates a new section (admin only)
func CreateSection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSectionRequest
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

		courseID, err1 := uuid.Parse(req.CourseID)
		periodID, err2 := uuid.Parse(req.PeriodID)
		professorID, err3 := uuid.Parse(req.ProfessorID)
		if err1 != nil || err2 != nil || err3 != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid course, period or professor ID format",
				},
			})
			return
		}

		// Verify referenced records exist
		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_COURSE",
					"message": "Course not found",
				},
			})
			return
		}
		var period models.AcademicPeriod
		if err := db.First(&period, "id = ?", periodID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PERIOD",
					"message": "Period not found",
				},
			})
			return
		}
		var professor models.Professor
		if err := db.First(&professor, "id = ?", professorID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PROFESSOR",
					"message": "Professor not found",
				},
			})
			return
		}

		// One group code per course and period
		var dup int64
		db.Model(&models.Section{}).
			Where("course_id = ? AND period_id = ? AND group_code = ?", courseID, periodID, req.GroupCode).
			Count(&dup)
		if dup > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A section with this group code already exists for the course and period",
				},
			})
			return
		}

		section := models.Section{
			CourseID:    courseID,
			PeriodID:    periodID,
			ProfessorID: professorID,
			GroupCode:   req.GroupCode,
			Capacity:    req.Capacity,
			Room:        req.Room,
			Schedule:    req.Schedule,
		}
		if section.Capacity == 0 {
			section.Capacity = 30
		}

		if err := db.Create(&section).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create section",
				},
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    section,
		})
	}
}

// UpdateSection updates an existing section (admin only)
func UpdateSection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sectionID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid section ID format",
				},
			})
			return
		}

		var section models.Section
		if err := db.First(&section, "id = ?", sectionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Section not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch section",
				},
			})
			return
		}

		var req UpdateSectionRequest
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
		if req.ProfessorID != nil {
			professorID, err := uuid.Parse(*req.ProfessorID)
			if err == nil {
				var professor models.Professor
				if err := db.First(&professor, "id = ?", professorID).Error; err == nil {
					section.ProfessorID = professorID
				}
			}
		}
		if req.GroupCode != nil {
			section.GroupCode = *req.GroupCode
		}
		if req.Capacity != nil {
			section.Capacity = *req.Capacity
		}
		if req.Room != nil {
			section.Room = *req.Room
		}
		if req.Schedule != nil {
			section.Schedule = *req.Schedule
		}

		if err := db.Save(&section).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update section",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    section,
		})
	}
}

// DeleteSection deletes a section (admin only)
func DeleteSection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sectionID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid section ID format",
				},
			})
			return
		}

		// Check if section has enrollments
		var enrollmentCount int64
		db.Model(&models.Enrollment{}).Where("section_id = ?", sectionID).Count(&enrollmentCount)
		if enrollmentCount > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HAS_ENROLLMENTS",
					"message": "Cannot delete section with existing enrollments",
				},
			})
			return
		}

		result := db.Delete(&models.Section{}, "id = ?", sectionID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete section",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Section not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Section deleted successfully",
		})
	}
}
