package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/logger"
	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/types"
)

// ProjectMember is one candidate's view of a project, assembled from the
// contribution link plus the candidate row.
type ProjectMember struct {
	CandidateID      uuid.UUID `json:"candidate_id"`
	FullName         string    `json:"full_name"`
	Role             string    `json:"role"`
	ExperienceYears  float64   `json:"experience_years"`
	Contribution     string    `json:"contribution,omitempty"`
	Impact           string    `json:"impact,omitempty"`
	Responsibilities []string  `json:"responsibilities,omitempty"`
	Technologies     []string  `json:"technologies,omitempty"`
	StartDate        string    `json:"start_date,omitempty"`
	EndDate          string    `json:"end_date,omitempty"`
}

// MergedChild is a tombstoned project that was folded into the parent, with
// the history id needed to reverse the merge.
type MergedChild struct {
	ProjectID      uuid.UUID  `json:"project_id"`
	Name           string     `json:"name"`
	MergeHistoryID *uuid.UUID `json:"merge_history_id,omitempty"`
}

type ProjectDetail struct {
	*types.Project
	Members        []ProjectMember `json:"members"`
	MergedChildren []MergedChild   `json:"merged_children,omitempty"`
}

// ProjectListing partitions active projects into ongoing and archived.
type ProjectListing struct {
	Ongoing  []*ProjectDetail `json:"projects"`
	Archived []*ProjectDetail `json:"archived_projects"`
	Total    int              `json:"total_projects"`
}

type ProjectService interface {
	ListProjects(ctx context.Context) (*ProjectListing, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error)
}

type projectService struct {
	log           *logger.Logger
	projectRepo   repos.ProjectRepo
	linkRepo      repos.ContributionLinkRepo
	candidateRepo repos.CandidateRepo
	historyRepo   repos.MergeHistoryRepo
}

func NewProjectService(
	baseLog *logger.Logger,
	projectRepo repos.ProjectRepo,
	linkRepo repos.ContributionLinkRepo,
	candidateRepo repos.CandidateRepo,
	historyRepo repos.MergeHistoryRepo,
) ProjectService {
	serviceLog := baseLog.With("service", "ProjectService")
	return &projectService{
		log:           serviceLog,
		projectRepo:   projectRepo,
		linkRepo:      linkRepo,
		candidateRepo: candidateRepo,
		historyRepo:   historyRepo,
	}
}

func (s *projectService) ListProjects(ctx context.Context) (*ProjectListing, error) {
	projects, err := s.projectRepo.GetActive(ctx, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("load active projects: %w", err)
	}

	details, err := s.assembleDetails(ctx, projects)
	if err != nil {
		return nil, err
	}

	listing := &ProjectListing{
		Ongoing:  []*ProjectDetail{},
		Archived: []*ProjectDetail{},
		Total:    len(details),
	}
	for _, d := range details {
		if projectOngoing(d.Project) {
			listing.Ongoing = append(listing.Ongoing, d)
		} else {
			listing.Archived = append(listing.Archived, d)
		}
	}
	return listing, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error) {
	if projectID == uuid.Nil {
		return nil, fmt.Errorf("project id required: %w", apperrors.ErrInvalidArgument)
	}
	projects, err := s.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{projectID})
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}

	details, err := s.assembleDetails(ctx, projects)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *projectService) assembleDetails(ctx context.Context, projects []*types.Project) ([]*ProjectDetail, error) {
	if len(projects) == 0 {
		return []*ProjectDetail{}, nil
	}

	projectIDs := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	links, err := s.linkRepo.GetByProjectIDs(ctx, nil, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}

	candidateIDs := make([]uuid.UUID, 0, len(links))
	seen := map[uuid.UUID]bool{}
	for _, link := range links {
		if !seen[link.CandidateID] {
			seen[link.CandidateID] = true
			candidateIDs = append(candidateIDs, link.CandidateID)
		}
	}
	candidateRows, err := s.candidateRepo.GetByIDs(ctx, nil, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	candidates := make(map[uuid.UUID]*types.Candidate, len(candidateRows))
	for _, c := range candidateRows {
		candidates[c.ID] = c
	}

	linksByProject := map[uuid.UUID][]*types.ContributionLink{}
	for _, link := range links {
		linksByProject[link.ProjectID] = append(linksByProject[link.ProjectID], link)
	}

	children, err := s.projectRepo.GetByMergedIntoIDs(ctx, nil, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("load merged children: %w", err)
	}
	childrenByParent := map[uuid.UUID][]*types.Project{}
	childIDs := make([]uuid.UUID, 0, len(children))
	for _, child := range children {
		childrenByParent[*child.MergedIntoID] = append(childrenByParent[*child.MergedIntoID], child)
		childIDs = append(childIDs, child.ID)
	}
	histories, err := s.historyRepo.GetUnreversedBySourceIDs(ctx, nil, childIDs)
	if err != nil {
		return nil, fmt.Errorf("load merge histories: %w", err)
	}
	historyBySource := map[uuid.UUID]uuid.UUID{}
	for _, h := range histories {
		historyBySource[h.SourceProjectID] = h.ID
	}

	details := make([]*ProjectDetail, 0, len(projects))
	for _, p := range projects {
		detail := &ProjectDetail{
			Project: p,
			Members: buildMembers(linksByProject[p.ID], candidates),
		}
		for _, child := range childrenByParent[p.ID] {
			mc := MergedChild{ProjectID: child.ID, Name: child.Name}
			if historyID, ok := historyBySource[child.ID]; ok {
				id := historyID
				mc.MergeHistoryID = &id
			}
			detail.MergedChildren = append(detail.MergedChildren, mc)
		}
		details = append(details, detail)
	}
	return details, nil
}

func buildMembers(links []*types.ContributionLink, candidates map[uuid.UUID]*types.Candidate) []ProjectMember {
	members := make([]ProjectMember, 0, len(links))
	for _, link := range links {
		member := ProjectMember{
			CandidateID:      link.CandidateID,
			Role:             link.Role,
			Contribution:     link.Contribution,
			Impact:           link.Impact,
			Responsibilities: link.Responsibilities,
			Technologies:     link.Technologies,
			StartDate:        link.CandidateStartDate,
			EndDate:          link.CandidateEndDate,
		}
		if c, ok := candidates[link.CandidateID]; ok {
			member.FullName = c.FullName
			member.ExperienceYears = c.TotalExperienceYears
		}
		members = append(members, member)
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].ExperienceYears != members[j].ExperienceYears {
			return members[i].ExperienceYears > members[j].ExperienceYears
		}
		return members[i].Role < members[j].Role
	})
	return members
}

// projectOngoing treats a project with a start but no end as in-flight, and an
// end date that reads like "present" the same way. A project with no dates at
// all goes to the archive.
func projectOngoing(p *types.Project) bool {
	start := strings.TrimSpace(p.StartDate)
	end := strings.ToLower(strings.TrimSpace(p.EndDate))

	if end == "" {
		return start != ""
	}
	for _, marker := range []string{"present", "current", "now", "ongoing"} {
		if strings.Contains(end, marker) {
			return true
		}
	}
	return false
}
