package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgramID   uuid.UUID `gorm:"type:uuid;not null" json:"program_id"`
	Code        string    `gorm:"size:10;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Credits     int       `gorm:"default:0" json:"credits"`
	Semester    int       `gorm:"default:1" json:"semester"`

	// Object key of the uploaded syllabus in MinIO, empty when none.
	SyllabusKey      string `gorm:"size:300" json:"syllabus_key,omitempty"`
	SyllabusFilename string `gorm:"size:300" json:"syllabus_filename,omitempty"`
	SyllabusMimeType string `gorm:"size:100" json:"syllabus_mime_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Program  Program   `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Sections []Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
