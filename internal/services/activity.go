package services

import (
	"encoding/json"

	"github.com/academix/academix-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityService records the audit trail of administrative mutations.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{
		db: db,
	}
}

func (s *ActivityService) Record(userID uuid.UUID, activityType models.ActivityType, entityType string, entityID *uuid.UUID, metadata map[string]interface{}) error {
	metadataJSON := "{}"
	if len(metadata) > 0 {
		bytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(bytes)
		}
	}

	activity := models.Activity{
		UserID:       userID,
		ActivityType: activityType,
		EntityType:   entityType,
		EntityID:     entityID,
		Metadata:     metadataJSON,
	}

	return s.db.Create(&activity).Error
}

func (s *ActivityService) GetRecentActivities(limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
