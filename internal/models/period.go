package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PeriodStatus string

const (
	PeriodPlanning   PeriodStatus = "planning"
	PeriodEnrollment PeriodStatus = "enrollment"
	PeriodActive     PeriodStatus = "active"
	PeriodGrading    PeriodStatus = "grading"
	PeriodClosed     PeriodStatus = "closed"
)

// AcademicPeriod is a term/bimester with enrollment, teaching and grading
// date windows. Status and IsCurrent are derived from the dates, never set
// by a client.
type AcademicPeriod struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string       `gorm:"size:100;not null;uniqueIndex" json:"name"`
	StartDate       time.Time    `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time    `gorm:"type:date;not null" json:"end_date"`
	EnrollmentStart time.Time    `gorm:"type:date;not null" json:"enrollment_start"`
	EnrollmentEnd   time.Time    `gorm:"type:date;not null" json:"enrollment_end"`
	GradingStart    *time.Time   `gorm:"type:date" json:"grading_start,omitempty"`
	GradingDeadline *time.Time   `gorm:"type:date" json:"grading_deadline,omitempty"`
	Status          PeriodStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	IsCurrent       bool         `gorm:"default:false" json:"is_current"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Relations
	Sections []Section `gorm:"foreignKey:PeriodID" json:"sections,omitempty"`
}

func (AcademicPeriod) TableName() string {
	return "academic_periods"
}

func (p *AcademicPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Dates returns the period's date fields in the shape the status
// calculator consumes.
func (p *AcademicPeriod) Dates() PeriodDates {
	return PeriodDates{
		StartDate:       &p.StartDate,
		EndDate:         &p.EndDate,
		EnrollmentStart: &p.EnrollmentStart,
		EnrollmentEnd:   &p.EnrollmentEnd,
		GradingStart:    p.GradingStart,
		GradingDeadline: p.GradingDeadline,
	}
}

// Recalculate refreshes Status and IsCurrent from the date fields.
// Called before every persist so stale values never reach the database.
func (p *AcademicPeriod) Recalculate(now time.Time) {
	d := p.Dates()
	p.Status = CalculatePeriodStatus(d, now)
	p.IsCurrent = CalculateIsCurrentPeriod(d, now)
}
