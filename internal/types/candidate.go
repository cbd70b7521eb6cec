package types

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName             string    `gorm:"column:full_name;not null" json:"full_name"`
	PrimaryRole          string    `gorm:"column:primary_role" json:"primary_role"`
	TotalExperienceYears float64   `gorm:"column:total_experience_years;not null;default:0" json:"total_experience_years"`
	CreatedAt            time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

func (Candidate) TableName() string { return "candidate" }
