package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityEntityCreated    ActivityType = "entity_created"
	ActivityEntityUpdated    ActivityType = "entity_updated"
	ActivityEntityDeleted    ActivityType = "entity_deleted"
	ActivitySyllabusUploaded ActivityType = "syllabus_uploaded"
	ActivitySyllabusDeleted  ActivityType = "syllabus_deleted"
	ActivityStudentEnrolled  ActivityType = "student_enrolled"
	ActivityStudentWithdrawn ActivityType = "student_withdrawn"
)

// Activity is an audit record of an administrative mutation.
type Activity struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"type:varchar(50);not null;index" json:"activity_type"`
	EntityType   string       `gorm:"type:varchar(50);not null;index" json:"entity_type"`
	EntityID     *uuid.UUID   `gorm:"type:uuid;index" json:"entity_id,omitempty"`
	Metadata     string       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}
