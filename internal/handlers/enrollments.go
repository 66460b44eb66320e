package handlers

import (
	"net/http"
	"time"

	"github.com/academix/academix-api/internal/models"
	"github.com/academix/academix-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request/Response types
type CreateEnrollmentRequest struct {
	SectionID string `json:"section_id" binding:"required"`
	StudentID string `json:"student_id" binding:"required"`
}

type UpdateEnrollmentRequest struct {
	Status *string  `json:"status"`
	Grade  *float64 `json:"grade"`
}

// ListEnrollments returns enrollments matching the optional filters
func ListEnrollments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var enrollments []models.Enrollment

		query := db.Preload("Student").Preload("Section").Preload("Section.Course").Preload("Section.Period").
			Order("enrolled_at desc")

		if sectionID := c.Query("section_id"); sectionID != "" {
			query = query.Where("section_id = ?", sectionID)
		}
		if studentID := c.Query("student_id"); studentID != "" {
			query = query.Where("student_id = ?", studentID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		if err := query.Find(&enrollments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch enrollments",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    enrollments,
		})
	}
}

// CreateEnrollment enrolls a student into a section. Staff can only enroll
// while the section's period is in its enrollment window; admins can
// override that restriction.
func CreateEnrollment(db *gorm.DB, activityService *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEnrollmentRequest
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

		sectionID, err1 := uuid.Parse(req.SectionID)
		studentID, err2 := uuid.Parse(req.StudentID)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid section or student ID format",
				},
			})
			return
		}

		var section models.Section
		if err := db.Preload("Period").First(&section, "id = ?", sectionID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SECTION",
					"message": "Section not found",
				},
			})
			return
		}

		var student models.Student
		if err := db.First(&student, "id = ?", studentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STUDENT",
					"message": "Student not found",
				},
			})
			return
		}

		// Enrollment is only open while the period's derived status says
		// so. The status is recomputed here rather than read from the
		// stored column so a stale snapshot can never admit anyone.
		status := models.CalculatePeriodStatus(section.Period.Dates(), time.Now())
		if status != models.PeriodEnrollment && c.GetString("role") != string(models.RoleAdmin) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ENROLLMENT_CLOSED",
					"message": "The period is not open for enrollment",
				},
			})
			return
		}

		// Duplicate check, ignoring withdrawn enrollments
		var dup int64
		db.Model(&models.Enrollment{}).
			Where("section_id = ? AND student_id = ? AND status <> ?", sectionID, studentID, models.EnrollmentWithdrawn).
			Count(&dup)
		if dup > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ALREADY_ENROLLED",
					"message": "Student is already enrolled in this section",
				},
			})
			return
		}

		// Capacity check
		var enrolled int64
		db.Model(&models.Enrollment{}).
			Where("section_id = ? AND status <> ?", sectionID, models.EnrollmentWithdrawn).
			Count(&enrolled)
		if enrolled >= int64(section.Capacity) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SECTION_FULL",
					"message": "Section has reached its capacity",
				},
			})
			return
		}

		enrollment := models.Enrollment{
			SectionID: sectionID,
			StudentID: studentID,
			Status:    models.EnrollmentEnrolled,
		}

		if err := db.Create(&enrollment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create enrollment",
				},
			})
			return
		}

		recordActivity(c, activityService, models.ActivityStudentEnrolled, "enrollment", &enrollment.ID, map[string]interface{}{
			"student_id": studentID.String(),
			"section_id": sectionID.String(),
		})

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    enrollment,
		})
	}
}

// UpdateEnrollment updates an enrollment's status or grade (admin only)
func UpdateEnrollment(db *gorm.DB, activityService *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		enrollmentID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid enrollment ID format",
				},
			})
			return
		}

		var enrollment models.Enrollment
		if err := db.First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Enrollment not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch enrollment",
				},
			})
			return
		}

		var req UpdateEnrollmentRequest
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

		if req.Status != nil {
			switch models.EnrollmentStatus(*req.Status) {
			case models.EnrollmentEnrolled, models.EnrollmentWithdrawn, models.EnrollmentCompleted:
				enrollment.Status = models.EnrollmentStatus(*req.Status)
			default:
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "VALIDATION_ERROR",
						"message": "Status must be one of enrolled, withdrawn, completed",
					},
				})
				return
			}
		}
		if req.Grade != nil {
			if *req.Grade < 0 || *req.Grade > 100 {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "VALIDATION_ERROR",
						"message": "Grade must be between 0 and 100",
					},
				})
				return
			}
			enrollment.Grade = req.Grade
		}

		if err := db.Save(&enrollment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update enrollment",
				},
			})
			return
		}

		if enrollment.Status == models.EnrollmentWithdrawn {
			recordActivity(c, activityService, models.ActivityStudentWithdrawn, "enrollment", &enrollment.ID, nil)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    enrollment,
		})
	}
}

// DeleteEnrollment removes an enrollment record entirely (admin only)
func DeleteEnrollment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		enrollmentID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid enrollment ID format",
				},
			})
			return
		}

		result := db.Delete(&models.Enrollment{}, "id = ?", enrollmentID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete enrollment",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Enrollment not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Enrollment deleted successfully",
		})
	}
}

// recordActivity writes an audit record for the authenticated user.
func recordActivity(c *gin.Context, activityService *services.ActivityService, activityType models.ActivityType, entityType string, entityID *uuid.UUID, metadata map[string]interface{}) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return
	}
	if err := activityService.Record(userID, activityType, entityType, entityID, metadata); err != nil {
		_ = c.Error(err)
	}
}
