package handlers

import (
	"net/http"

	"github.com/academix/academix-api/internal/services"
	"github.com/gin-gonic/gin"
)

// Search queries the full-text indexes. type selects the index, defaulting
// to courses; program_id narrows either index.
func Search(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		programID := c.Query("program_id")
		searchType := c.DefaultQuery("type", "courses")

		switch searchType {
		case "courses":
			result, err := search.SearchCourses(query, programID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Search failed",
					},
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Hits})
		case "students":
			result, err := search.SearchStudents(query, programID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Search failed",
					},
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Hits})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "type must be one of courses, students",
				},
			})
		}
	}
}
