package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContributionLink records one candidate's personal involvement in one
// canonical project. Uniqueness of (candidate_id, project_id) is the storage
// backstop behind the upsert path: re-ingesting the same resume must update
// this row, never create a second one.
type ContributionLink struct {
	ID                      uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID             uuid.UUID                   `gorm:"column:candidate_id;type:uuid;not null;uniqueIndex:idx_contribution_link_candidate_project" json:"candidate_id"`
	Candidate               *Candidate                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CandidateID;references:ID" json:"candidate,omitempty"`
	ProjectID               uuid.UUID                   `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_contribution_link_candidate_project;index" json:"project_id"`
	Project                 *Project                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Role                    string                      `gorm:"column:role" json:"role"`
	Description             string                      `gorm:"column:description;type:text" json:"description"`
	Responsibilities        datatypes.JSONSlice[string] `gorm:"column:responsibilities" json:"responsibilities"`
	Technologies            datatypes.JSONSlice[string] `gorm:"column:technologies" json:"technologies"`
	Contribution            string                      `gorm:"column:contribution;type:text" json:"contribution"`
	Impact                  string                      `gorm:"column:impact;type:text" json:"impact"`
	CandidateStartDate      string                      `gorm:"column:candidate_start_date" json:"candidate_start_date"`
	CandidateEndDate        string                      `gorm:"column:candidate_end_date" json:"candidate_end_date"`
	CandidateDurationMonths *int                        `gorm:"column:candidate_duration_months" json:"candidate_duration_months,omitempty"`
	CreatedAt               time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time                   `gorm:"not null" json:"updated_at"`
}

func (ContributionLink) TableName() string { return "contribution_link" }
