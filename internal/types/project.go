package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is the canonical record for one real-world engagement. Mentions of
// the same project extracted from different resumes all resolve to one row.
//
// A project with a non-nil MergedIntoID is a tombstone: it was folded into
// another project, is excluded from active listings, but stays addressable so
// the merge can be audited and reversed.
type Project struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string                      `gorm:"column:name;not null;index" json:"name"`
	Organization     string                      `gorm:"column:organization;index" json:"organization"`
	StartDate        string                      `gorm:"column:start_date" json:"start_date"`
	EndDate          string                      `gorm:"column:end_date" json:"end_date"`
	DurationMonths   *int                        `gorm:"column:duration_months" json:"duration_months,omitempty"`
	IsAcademic       bool                        `gorm:"column:is_academic;not null;default:false" json:"is_academic"`
	Summary          string                      `gorm:"column:summary;type:text" json:"summary"`
	Technologies     datatypes.JSONSlice[string] `gorm:"column:technologies" json:"technologies"`
	TeamSizeEstimate *int                        `gorm:"column:team_size_estimate" json:"team_size_estimate,omitempty"`
	ContributorCount int                         `gorm:"column:contributor_count;not null;default:0" json:"contributor_count"`
	ImpactMetrics    datatypes.JSONSlice[string] `gorm:"column:impact_metrics" json:"impact_metrics"`
	MergedIntoID     *uuid.UUID                  `gorm:"column:merged_into_id;type:uuid;index" json:"merged_into_id,omitempty"`
	MergedInto       *Project                    `gorm:"foreignKey:MergedIntoID;references:ID" json:"merged_into,omitempty"`
	MergedAt         *time.Time                  `gorm:"column:merged_at" json:"merged_at,omitempty"`
	CreatedAt        time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "project" }

func (p *Project) Tombstoned() bool { return p != nil && p.MergedIntoID != nil }
