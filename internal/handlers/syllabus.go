package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/academix/academix-api/internal/models"
	"github.com/academix/academix-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxSyllabusSize = 20 * 1024 * 1024 // 20 MB

var AllowedSyllabusMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // docx
	"text/plain": true,
}

// UploadSyllabus attaches a syllabus file to a course (admin only). The file
// goes to MinIO, its text goes through Tika into the search index.
func UploadSyllabus(db *gorm.DB, storage *services.StorageService, tika *services.TextExtractionService, search *services.SearchService, activity *services.ActivityService) gin.HandlerFunc {
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

		if err := c.Request.ParseMultipartForm(MaxSyllabusSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "File too large",
				},
			})
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "No file uploaded",
				},
			})
			return
		}
		defer file.Close()

		if header.Size > MaxSyllabusSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "File exceeds 20MB limit",
				},
			})
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if !AllowedSyllabusMimeTypes[mimeType] {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unsupported file type",
				},
			})
			return
		}

		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Course not found",
				},
			})
			return
		}

		// Replacing an existing syllabus removes the old object
		oldKey := course.SyllabusKey

		ext := filepath.Ext(header.Filename)
		objectKey := fmt.Sprintf("%s%s", uuid.New().String(), ext)

		if err := storage.UploadFile(file, objectKey, header.Size, mimeType); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to upload file",
				},
			})
			return
		}

		// Extract text for search (best effort)
		var extractedText string
		if isSyllabusTextExtractable(mimeType) {
			text, err := tika.ExtractText(file)
			if err == nil {
				extractedText = text
			}
		}

		course.SyllabusKey = objectKey
		course.SyllabusFilename = header.Filename
		course.SyllabusMimeType = mimeType

		if err := db.Save(&course).Error; err != nil {
			storage.DeleteFile(objectKey)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to save course record",
				},
			})
			return
		}

		if oldKey != "" && oldKey != objectKey {
			storage.DeleteFile(oldKey)
		}

		go func() {
			search.IndexCourse(services.NewCourseDocument(course, extractedText))
		}()

		recordActivity(c, activity, models.ActivitySyllabusUploaded, "course", &course.ID, map[string]interface{}{
			"filename": header.Filename,
		})

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    course,
		})
	}
}

// DownloadSyllabus streams the stored syllabus file for a course
func DownloadSyllabus(db *gorm.DB, storage *services.StorageService) gin.HandlerFunc {
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
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Course not found",
				},
			})
			return
		}

		if course.SyllabusKey == "" {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Course has no syllabus",
				},
			})
			return
		}

		obj, err := storage.DownloadFile(course.SyllabusKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to retrieve file",
				},
			})
			return
		}
		defer obj.Close()

		stat, err := obj.Stat()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "File not found in storage",
				},
			})
			return
		}

		extraHeaders := map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=\"%s\"", course.SyllabusFilename),
		}

		c.DataFromReader(http.StatusOK, stat.Size, course.SyllabusMimeType, obj, extraHeaders)
	}
}

// DeleteSyllabus removes the syllabus from a course (admin only)
func DeleteSyllabus(db *gorm.DB, storage *services.StorageService, search *services.SearchService, activity *services.ActivityService) gin.HandlerFunc {
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
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Course not found",
				},
			})
			return
		}

		if course.SyllabusKey == "" {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Course has no syllabus",
				},
			})
			return
		}

		if err := storage.DeleteFile(course.SyllabusKey); err != nil {
			_ = c.Error(fmt.Errorf("failed to delete syllabus from storage: %w", err))
		}

		course.SyllabusKey = ""
		course.SyllabusFilename = ""
		course.SyllabusMimeType = ""

		if err := db.Save(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update course record",
				},
			})
			return
		}

		// Reindex without the syllabus text
		go func() {
			search.IndexCourse(services.NewCourseDocument(course, ""))
		}()

		recordActivity(c, activity, models.ActivitySyllabusDeleted, "course", &course.ID, nil)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Syllabus deleted successfully",
		})
	}
}

func isSyllabusTextExtractable(mimeType string) bool {
	return mimeType == "application/pdf" ||
		mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" ||
		strings.HasPrefix(mimeType, "text/")
}
