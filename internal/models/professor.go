package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professor struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Email      string    `gorm:"size:200;not null;uniqueIndex" json:"email"`
	Title      string    `gorm:"size:100" json:"title"`
	Department string    `gorm:"size:150" json:"department"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Sections []Section `gorm:"foreignKey:ProfessorID" json:"sections,omitempty"`
}

func (Professor) TableName() string {
	return "professors"
}

func (p *Professor) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
