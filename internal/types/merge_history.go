package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MergeHistory is the durable record that makes a project merge exactly
// reversible. Rows are append-only; ReversedAt is the single terminal
// mutation, stamped once by unmerge.
type MergeHistory struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SourceProjectID uuid.UUID      `gorm:"column:source_project_id;type:uuid;not null;index" json:"source_project_id"`
	SourceProject   *Project       `gorm:"foreignKey:SourceProjectID;references:ID" json:"source_project,omitempty"`
	TargetProjectID uuid.UUID      `gorm:"column:target_project_id;type:uuid;not null;index" json:"target_project_id"`
	TargetProject   *Project       `gorm:"foreignKey:TargetProjectID;references:ID" json:"target_project,omitempty"`
	SourceBefore    datatypes.JSON `gorm:"column:source_before" json:"source_before"`
	TargetBefore    datatypes.JSON `gorm:"column:target_before" json:"target_before"`
	Moves           datatypes.JSON `gorm:"column:moves" json:"moves"`
	Rationale       string         `gorm:"column:rationale;type:text" json:"rationale"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	ReversedAt      *time.Time     `gorm:"column:reversed_at" json:"reversed_at,omitempty"`
}

func (MergeHistory) TableName() string { return "merge_history" }

func (h *MergeHistory) Reversed() bool { return h != nil && h.ReversedAt != nil }
