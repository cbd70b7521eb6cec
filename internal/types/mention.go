package types

// ProjectMention is one extracted project record handed over by the document
// parsing collaborator. Dates and durations arrive pre-parsed as opaque
// strings/ints; this core stores them as-is.
type ProjectMention struct {
	Name             string   `json:"name"`
	Organization     string   `json:"organization,omitempty"`
	Description      string   `json:"description,omitempty"`
	Role             string   `json:"role,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Contribution     string   `json:"contribution,omitempty"`
	Impact           string   `json:"impact,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	DurationMonths   *int     `json:"duration_months,omitempty"`
	IsAcademic       bool     `json:"is_academic,omitempty"`
	TeamSize         *int     `json:"team_size,omitempty"`
}

// ProjectDescriptor is the comparable shape shared by incoming mentions and
// stored projects. The similarity scorer and the confirmation oracle both
// operate on descriptors only.
type ProjectDescriptor struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

func (m ProjectMention) Descriptor() ProjectDescriptor {
	return ProjectDescriptor{
		Name:         m.Name,
		Organization: m.Organization,
		Description:  m.Description,
		Technologies: m.Technologies,
	}
}

func (p *Project) Descriptor() ProjectDescriptor {
	return ProjectDescriptor{
		Name:         p.Name,
		Organization: p.Organization,
		Description:  p.Summary,
		Technologies: p.Technologies,
	}
}
