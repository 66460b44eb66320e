package handlers

import (
	"net/http"

	"github.com/academix/academix-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request/Response types
type CreateProgramRequest struct {
	Code              string `json:"code" binding:"required,min=2,max=20"`
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	DegreeLevel       string `json:"degree_level"`
	DurationSemesters int    `json:"duration_semesters"`
}

type UpdateProgramRequest struct {
	Code              *string `json:"code"`
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	DegreeLevel       *string `json:"degree_level"`
	DurationSemesters *int    `json:"duration_semesters"`
	IsActive          *bool   `json:"is_active"`
}

// ListPrograms returns programs matching the optional search and filters
func ListPrograms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var programs []models.Program

		query := db.Order("code asc")

		if q := c.Query("q"); q != "" {
			like := "%" + q + "%"
			query = query.Where("code ILIKE ? OR name ILIKE ?", like, like)
		}
		if level := c.Query("degree_level"); level != "" {
			query = query.Where("degree_level = ?", level)
		}
		if active := c.Query("active"); active != "" {
			query = query.Where("is_active = ?", active == "true")
		}

		if err := query.Find(&programs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch programs",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    programs,
		})
	}
}

// GetProgram returns a single program with its courses
func GetProgram(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		programID, err := uuid.Parse(id)
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

		var program models.Program
		if err := db.Preload("Courses").First(&program, "id = ?", programID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Program not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch program",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    program,
		})
	}
}

// CreateProgram creates a new program (admin only)
func CreateProgram(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProgramRequest
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

		program := models.Program{
			Code:              req.Code,
			Name:              req.Name,
			Description:       req.Description,
			DurationSemesters: req.DurationSemesters,
			IsActive:          true,
		}
		if req.DegreeLevel != "" {
			program.DegreeLevel = models.DegreeLevel(req.DegreeLevel)
		}
		if program.DurationSemesters == 0 {
			program.DurationSemesters = 8
		}

		if err := db.Create(&program).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create program",
				},
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    program,
		})
	}
}

// UpdateProgram updates an existing program (admin only)
func UpdateProgram(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		programID, err := uuid.Parse(id)
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

		var program models.Program
		if err := db.First(&program, "id = ?", programID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Program not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch program",
				},
			})
			return
		}

		var req UpdateProgramRequest
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
		if req.Code != nil {
			program.Code = *req.Code
		}
		if req.Name != nil {
			program.Name = *req.Name
		}
		if req.Description != nil {
			program.Description = *req.Description
		}
		if req.DegreeLevel != nil {
			program.DegreeLevel = models.DegreeLevel(*req.DegreeLevel)
		}
		if req.DurationSemesters != nil {
			program.DurationSemesters = *req.DurationSemesters
		}
		if req.IsActive != nil {
			program.IsActive = *req.IsActive
		}

		if err := db.Save(&program).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update program",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    program,
		})
	}
}

// DeleteProgram deletes a program (admin only)
func DeleteProgram(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		programID, err := uuid.Parse(id)
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

		// Check if program has courses
		var courseCount int64
		db.Model(&models.Course{}).Where("program_id = ?", programID).Count(&courseCount)
		if courseCount > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HAS_COURSES",
					"message": "Cannot delete program with existing courses",
				},
			})
			return
		}

		result := db.Delete(&models.Program{}, "id = ?", programID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete program",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Program not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Program deleted successfully",
		})
	}
}
