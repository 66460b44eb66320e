package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

type Enrollment struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SectionID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"section_id"`
	StudentID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	Status     EnrollmentStatus `gorm:"type:varchar(20);default:'enrolled'" json:"status"`
	Grade      *float64         `json:"grade,omitempty"`
	EnrolledAt time.Time        `json:"enrolled_at"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Relations
	Section Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	return nil
}
