package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/types"
)

const maxResponsibilitiesPerMember = 3

// SummarySynthesizer composes a canonical project's narrative from its links.
// It is a pure function of its inputs: identical link state yields a
// byte-identical summary, so re-running it is always safe.
type SummarySynthesizer struct{}

func NewSummarySynthesizer() *SummarySynthesizer {
	return &SummarySynthesizer{}
}

// Compose builds the summary. Links must be in creation order; candidates maps
// candidate ids to their records (missing entries render as "Unknown").
func (s *SummarySynthesizer) Compose(projectName string, contributorCount int, links []*types.ContributionLink, candidates map[uuid.UUID]*types.Candidate) string {
	if len(links) == 0 {
		return fmt.Sprintf("**%s**\n\nNo team contributions yet.", projectName)
	}

	var sections []string

	var descriptions []string
	var impacts []string
	var technologies []string
	for _, link := range links {
		if strings.TrimSpace(link.Description) != "" {
			descriptions = append(descriptions, link.Description)
		}
		if strings.TrimSpace(link.Impact) != "" {
			impacts = append(impacts, link.Impact)
		}
		technologies = append(technologies, link.Technologies...)
	}

	if len(descriptions) > 0 {
		sections = append(sections, "**Overview:** "+descriptions[0])
	}

	if techSet := normalizeTechSet(technologies); len(techSet) > 0 {
		sections = append(sections, "**Technologies:** "+strings.Join(techSet, ", "))
	}

	teamLines := []string{"**Team Contributions:**"}
	for _, link := range links {
		name := "Unknown"
		if c := candidates[link.CandidateID]; c != nil && strings.TrimSpace(c.FullName) != "" {
			name = c.FullName
		}
		role := link.Role
		if strings.TrimSpace(role) == "" {
			role = "Team Member"
		}
		if len(link.Responsibilities) > 0 {
			top := link.Responsibilities
			if len(top) > maxResponsibilitiesPerMember {
				top = top[:maxResponsibilitiesPerMember]
			}
			teamLines = append(teamLines, fmt.Sprintf("- *%s (%s):* %s", name, role, strings.Join(top, "; ")))
		} else {
			teamLines = append(teamLines, fmt.Sprintf("- *%s (%s)*", name, role))
		}
	}
	sections = append(sections, strings.Join(teamLines, "\n"))

	if len(impacts) > 0 {
		sections = append(sections, "**Impact:** "+strings.Join(impacts, " | "))
	}

	sections = append(sections, fmt.Sprintf("**Team Size:** %d contributor(s)", contributorCount))

	return strings.Join(sections, "\n\n")
}
