package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DegreeLevel string

const (
	DegreeTechnical     DegreeLevel = "technical"
	DegreeUndergraduate DegreeLevel = "undergraduate"
	DegreePostgraduate  DegreeLevel = "postgraduate"
)

type Program struct {
	ID                uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code              string      `gorm:"size:20;not null;uniqueIndex" json:"code"`
	Name              string      `gorm:"size:200;not null" json:"name"`
	Description       string      `gorm:"type:text" json:"description"`
	DegreeLevel       DegreeLevel `gorm:"type:varchar(20);default:'undergraduate'" json:"degree_level"`
	DurationSemesters int         `gorm:"default:8" json:"duration_semesters"`
	IsActive          bool        `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	// Relations
	Courses []Course `gorm:"foreignKey:ProgramID" json:"courses,omitempty"`
}

func (Program) TableName() string {
	return "programs"
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
