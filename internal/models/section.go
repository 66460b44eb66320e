package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Section struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sections_course_period_group" json:"course_id"`
	PeriodID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sections_course_period_group" json:"period_id"`
	ProfessorID uuid.UUID `gorm:"type:uuid;not null" json:"professor_id"`
	GroupCode   string    `gorm:"size:10;not null;uniqueIndex:idx_sections_course_period_group" json:"group_code"`
	Capacity    int       `gorm:"default:30" json:"capacity"`
	Room        string    `gorm:"size:50" json:"room"`
	Schedule    string    `gorm:"size:200" json:"schedule"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Course    Course         `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Period    AcademicPeriod `gorm:"foreignKey:PeriodID" json:"period,omitempty"`
	Professor Professor      `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`

	// Computed
	EnrolledCount int64 `gorm:"->;-:migration" json:"enrolled_count"`
}

func (Section) TableName() string {
	return "sections"
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
