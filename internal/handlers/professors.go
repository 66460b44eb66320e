package handlers

import (
	"net/http"

	"github.com/academix/academix-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request/Response types
type CreateProfessorRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

type UpdateProfessorRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Title      *string `json:"title"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"is_active"`
}

// ListProfessors returns professors matching the optional search and filters
func ListProfessors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var professors []models.Professor

		query := db.Order("last_name asc, first_name asc")

		if q := c.Query("q"); q != "" {
			like := "%" + q + "%"
			query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
		}
		if department := c.Query("department"); department != "" {
			query = query.Where("department = ?", department)
		}
		if active := c.Query("active"); active != "" {
			query = query.Where("is_active = ?", active == "true")
		}

		if err := query.Find(&professors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch professors",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    professors,
		})
	}
}

// GetProfessor returns a single professor with their sections
func GetProfessor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		professorID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid professor ID format",
				},
			})
			return
		}

		var professor models.Professor
		if err := db.Preload("Sections").Preload("Sections.Course").Preload("Sections.Period").First(&professor, "id = ?", professorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Professor not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch professor",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    professor,
		})
	}
}

// CreateProfessor creates a new professor (admin only)
func CreateProfessor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProfessorRequest
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

		// Check for duplicate email
		var existing models.Professor
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "Email already exists",
				},
			})
			return
		}

		professor := models.Professor{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Title:      req.Title,
			Department: req.Department,
			IsActive:   true,
		}

		if err := db.Create(&professor).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create professor",
				},
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    professor,
		})
	}
}

// UpdateProfessor updates an existing professor (admin only)
func UpdateProfessor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		professorID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid professor ID format",
				},
			})
			return
		}

		var professor models.Professor
		if err := db.First(&professor, "id = ?", professorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Professor not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch professor",
				},
			})
			return
		}

		var req UpdateProfessorRequest
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
		if req.FirstName != nil {
			professor.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			professor.LastName = *req.LastName
		}
		if req.Email != nil {
			professor.Email = *req.Email
		}
		if req.Title != nil {
			professor.Title = *req.Title
		}
		if req.Department != nil {
			professor.Department = *req.Department
		}
		if req.IsActive != nil {
			professor.IsActive = *req.IsActive
		}

		if err := db.Save(&professor).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update professor",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    professor,
		})
	}
}

// DeleteProfessor deletes a professor (admin only)
func DeleteProfessor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		professorID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid professor ID format",
				},
			})
			return
		}

		// Check if professor teaches sections
		var sectionCount int64
		db.Model(&models.Section{}).Where("professor_id = ?", professorID).Count(&sectionCount)
		if sectionCount > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HAS_SECTIONS",
					"message": "Cannot delete professor with assigned sections",
				},
			})
			return
		}

		result := db.Delete(&models.Professor{}, "id = ?", professorID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete professor",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Professor not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Professor deleted successfully",
		})
	}
}
