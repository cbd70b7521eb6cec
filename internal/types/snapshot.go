package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProjectSnapshot captures every mutable project field before a merge so the
// merge can be reversed bit-for-bit. Identity and timestamps stay out of it.
type ProjectSnapshot struct {
	Name             string   `json:"name"`
	Organization     string   `json:"organization"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	DurationMonths   *int     `json:"duration_months"`
	IsAcademic       bool     `json:"is_academic"`
	Summary          string   `json:"summary"`
	Technologies     []string `json:"technologies"`
	TeamSizeEstimate *int     `json:"team_size_estimate"`
	ImpactMetrics    []string `json:"impact_metrics"`
	ContributorCount int      `json:"contributor_count"`
}

func SnapshotProject(p *Project) ProjectSnapshot {
	return ProjectSnapshot{
		Name:             p.Name,
		Organization:     p.Organization,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		DurationMonths:   p.DurationMonths,
		IsAcademic:       p.IsAcademic,
		Summary:          p.Summary,
		Technologies:     append([]string(nil), p.Technologies...),
		TeamSizeEstimate: p.TeamSizeEstimate,
		ImpactMetrics:    append([]string(nil), p.ImpactMetrics...),
		ContributorCount: p.ContributorCount,
	}
}

// Apply restores the snapshotted fields onto p in place.
func (s ProjectSnapshot) Apply(p *Project) {
	p.Name = s.Name
	p.Organization = s.Organization
	p.StartDate = s.StartDate
	p.EndDate = s.EndDate
	p.DurationMonths = s.DurationMonths
	p.IsAcademic = s.IsAcademic
	p.Summary = s.Summary
	p.Technologies = datatypes.JSONSlice[string](append([]string(nil), s.Technologies...))
	p.TeamSizeEstimate = s.TeamSizeEstimate
	p.ImpactMetrics = datatypes.JSONSlice[string](append([]string(nil), s.ImpactMetrics...))
	p.ContributorCount = s.ContributorCount
}

// LinkSnapshot is the full pre-mutation state of one contribution link,
// including identity and creation time, so an absorbed link can be recreated
// verbatim. CreatedAt matters: summaries list members in link creation order,
// so a recreated link must keep its original position.
type LinkSnapshot struct {
	ID                      uuid.UUID `json:"id"`
	CandidateID             uuid.UUID `json:"candidate_id"`
	ProjectID               uuid.UUID `json:"project_id"`
	Role                    string    `json:"role"`
	Description             string    `json:"description"`
	Responsibilities        []string  `json:"responsibilities"`
	Technologies            []string  `json:"technologies"`
	Contribution            string    `json:"contribution"`
	Impact                  string    `json:"impact"`
	CandidateStartDate      string    `json:"candidate_start_date"`
	CandidateEndDate        string    `json:"candidate_end_date"`
	CandidateDurationMonths *int      `json:"candidate_duration_months"`
	CreatedAt               time.Time `json:"created_at"`
}

func SnapshotLink(l *ContributionLink) LinkSnapshot {
	return LinkSnapshot{
		ID:                      l.ID,
		CandidateID:             l.CandidateID,
		ProjectID:               l.ProjectID,
		Role:                    l.Role,
		Description:             l.Description,
		Responsibilities:        append([]string(nil), l.Responsibilities...),
		Technologies:            append([]string(nil), l.Technologies...),
		Contribution:            l.Contribution,
		Impact:                  l.Impact,
		CandidateStartDate:      l.CandidateStartDate,
		CandidateEndDate:        l.CandidateEndDate,
		CandidateDurationMonths: l.CandidateDurationMonths,
		CreatedAt:               l.CreatedAt,
	}
}

// ApplyFields restores everything except identity columns.
func (s LinkSnapshot) ApplyFields(l *ContributionLink) {
	l.Role = s.Role
	l.Description = s.Description
	l.Responsibilities = datatypes.JSONSlice[string](append([]string(nil), s.Responsibilities...))
	l.Technologies = datatypes.JSONSlice[string](append([]string(nil), s.Technologies...))
	l.Contribution = s.Contribution
	l.Impact = s.Impact
	l.CandidateStartDate = s.CandidateStartDate
	l.CandidateEndDate = s.CandidateEndDate
	l.CandidateDurationMonths = s.CandidateDurationMonths
}

// Restore builds a ContributionLink for the given project from the snapshot.
// The snapshot's row id and creation time are reused: the original row was
// deleted when the link was absorbed, and both must survive a round trip.
func (s LinkSnapshot) Restore(projectID uuid.UUID) *ContributionLink {
	l := &ContributionLink{
		ID:          s.ID,
		CandidateID: s.CandidateID,
		ProjectID:   projectID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	s.ApplyFields(l)
	return l
}

const (
	// MoveRepoint: the link had no counterpart on the target and was
	// re-parented from source to target.
	MoveRepoint = "repoint"
	// MoveMergeIntoExisting: the target already had a link for the same
	// candidate; the source link was folded into it and deleted.
	MoveMergeIntoExisting = "merge_into_existing"
)

// MoveRecord describes one link touched during a merge, with enough state to
// invert it.
type MoveRecord struct {
	Action string `json:"action"`

	// repoint
	LinkID uuid.UUID     `json:"link_id,omitempty"`
	Before *LinkSnapshot `json:"before,omitempty"`

	// merge_into_existing
	TargetLinkID       uuid.UUID     `json:"target_link_id,omitempty"`
	TargetLinkBefore   *LinkSnapshot `json:"target_link_before,omitempty"`
	SourceLinkSnapshot *LinkSnapshot `json:"source_link_snapshot,omitempty"`
}
