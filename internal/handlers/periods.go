package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/academix/academix-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request/Response types. Dates travel as "2006-01-02" strings and are
// parsed at this boundary; the calculator never sees raw strings.
type CreatePeriodRequest struct {
	Name            string `json:"name" binding:"required"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	EnrollmentStart string `json:"enrollment_start" binding:"required"`
	EnrollmentEnd   string `json:"enrollment_end" binding:"required"`
	GradingStart    string `json:"grading_start"`
	GradingDeadline string `json:"grading_deadline"`
}

type UpdatePeriodRequest struct {
	Name            *string `json:"name"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	EnrollmentStart *string `json:"enrollment_start"`
	EnrollmentEnd   *string `json:"enrollment_end"`
	GradingStart    *string `json:"grading_start"`
	GradingDeadline *string `json:"grading_deadline"`
}

const dateLayout = "2006-01-02"

// parseDate parses a required date field. Unparseable input is reported,
// never silently defaulted.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// parseOptionalDate parses an optional date field; empty means unset.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// validatePeriodDates checks the cross-field rules and returns every
// violation so the client can show the full list at once.
func validatePeriodDates(p *models.AcademicPeriod) []string {
	var errs []string

	if !p.StartDate.Before(p.EndDate) {
		errs = append(errs, "start date must be before end date")
	}
	if p.EnrollmentStart.After(p.EnrollmentEnd) {
		errs = append(errs, "enrollment start must not be after enrollment end")
	}
	if p.EnrollmentEnd.After(p.EndDate) {
		errs = append(errs, "enrollment must close before the period ends")
	}
	if p.GradingStart != nil && p.GradingStart.Before(p.EnrollmentEnd) {
		errs = append(errs, "grading start must not precede enrollment end")
	}
	if p.GradingDeadline != nil && p.GradingDeadline.Before(p.EndDate) {
		errs = append(errs, "grading deadline must not precede the period end date")
	}
	if p.GradingStart != nil && p.GradingDeadline != nil && p.GradingStart.After(*p.GradingDeadline) {
		errs = append(errs, "grading start must not be after grading deadline")
	}

	return errs
}

// ListPeriods returns periods matching the optional filters
func ListPeriods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var periods []models.AcademicPeriod

		query := db.Order("start_date desc")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if year := c.Query("year"); year != "" {
			query = query.Where("EXTRACT(YEAR FROM start_date) = ?", year)
		}

		if err := query.Find(&periods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch periods",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    periods,
		})
	}
}

// GetPeriod returns a single period with its sections
func GetPeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		periodID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid period ID format",
				},
			})
			return
		}

		var period models.AcademicPeriod
		if err := db.Preload("Sections").Preload("Sections.Course").First(&period, "id = ?", periodID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Period not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch period",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    period,
		})
	}
}

// GetCurrentPeriod returns the period whose derived lifecycle covers
// today, recomputed against the stored dates at request time.
func GetCurrentPeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var periods []models.AcademicPeriod
		if err := db.Order("start_date desc").Find(&periods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch periods",
				},
			})
			return
		}

		now := time.Now()
		for i := range periods {
			if models.CalculateIsCurrentPeriod(periods[i].Dates(), now) {
				periods[i].Recalculate(now)
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"data":    periods[i],
				})
				return
			}
		}

		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "No current period",
			},
		})
	}
}

// CreatePeriod creates a new academic period (admin only). Status and
// is_current are derived from the dates, never taken from the request.
func CreatePeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePeriodRequest
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

		period, parseErrs := buildPeriod(req)
		if len(parseErrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":     "VALIDATION_ERROR",
					"message":  "Invalid period dates",
					"messages": parseErrs,
				},
			})
			return
		}

		if errs := validatePeriodDates(period); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":     "VALIDATION_ERROR",
					"message":  "Invalid period dates",
					"messages": errs,
				},
			})
			return
		}

		period.Recalculate(time.Now())

		if err := db.Create(period).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create period",
				},
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    period,
		})
	}
}

func buildPeriod(req CreatePeriodRequest) (*models.AcademicPeriod, []string) {
	var errs []string
	period := &models.AcademicPeriod{Name: req.Name}

	parse := func(field, value string) time.Time {
		t, err := parseDate(field, value)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return t
	}
	period.StartDate = parse("start_date", req.StartDate)
	period.EndDate = parse("end_date", req.EndDate)
	period.EnrollmentStart = parse("enrollment_start", req.EnrollmentStart)
	period.EnrollmentEnd = parse("enrollment_end", req.EnrollmentEnd)

	gradingStart, err := parseOptionalDate("grading_start", req.GradingStart)
	if err != nil {
		errs = append(errs, err.Error())
	}
	period.GradingStart = gradingStart

	gradingDeadline, err := parseOptionalDate("grading_deadline", req.GradingDeadline)
	if err != nil {
		errs = append(errs, err.Error())
	}
	period.GradingDeadline = gradingDeadline

	return period, errs
}

// UpdatePeriod updates an existing period (admin only) and recomputes the
// derived status from the dates that are about to be persisted.
func UpdatePeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		periodID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid period ID format",
				},
			})
			return
		}

		var period models.AcademicPeriod
		if err := db.First(&period, "id = ?", periodID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Period not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch period",
				},
			})
			return
		}

		var req UpdatePeriodRequest
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

		var parseErrs []string
		if req.Name != nil {
			period.Name = *req.Name
		}
		setRequired := func(field string, dst *time.Time, value *string) {
			if value == nil {
				return
			}
			t, err := parseDate(field, *value)
			if err != nil {
				parseErrs = append(parseErrs, err.Error())
				return
			}
			*dst = t
		}
		setRequired("start_date", &period.StartDate, req.StartDate)
		setRequired("end_date", &period.EndDate, req.EndDate)
		setRequired("enrollment_start", &period.EnrollmentStart, req.EnrollmentStart)
		setRequired("enrollment_end", &period.EnrollmentEnd, req.EnrollmentEnd)

		// Optional fields can be cleared with an empty string
		if req.GradingStart != nil {
			t, err := parseOptionalDate("grading_start", *req.GradingStart)
			if err != nil {
				parseErrs = append(parseErrs, err.Error())
			} else {
				period.GradingStart = t
			}
		}
		if req.GradingDeadline != nil {
			t, err := parseOptionalDate("grading_deadline", *req.GradingDeadline)
			if err != nil {
				parseErrs = append(parseErrs, err.Error())
			} else {
				period.GradingDeadline = t
			}
		}

		if len(parseErrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":     "VALIDATION_ERROR",
					"message":  "Invalid period dates",
					"messages": parseErrs,
				},
			})
			return
		}

		if errs := validatePeriodDates(&period); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":     "VALIDATION_ERROR",
					"message":  "Invalid period dates",
					"messages": errs,
				},
			})
			return
		}

		period.Recalculate(time.Now())

		if err := db.Save(&period).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update period",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    period,
		})
	}
}

// DeletePeriod deletes a period (admin only)
func DeletePeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		periodID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid period ID format",
				},
			})
			return
		}

		// Check if period has sections
		var sectionCount int64
		db.Model(&models.Section{}).Where("period_id = ?", periodID).Count(&sectionCount)
		if sectionCount > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HAS_SECTIONS",
					"message": "Cannot delete period with existing sections",
				},
			})
			return
		}

		result := db.Delete(&models.AcademicPeriod{}, "id = ?", periodID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete period",
				},
			})
			return
		}

		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Period not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Period deleted successfully",
		})
	}
}
