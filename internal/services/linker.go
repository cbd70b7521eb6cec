package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/types"
)

// LinkerService owns the contribution-link lifecycle: idempotent upsert of a
// candidate's link to a project, and the derived-state refresh (contributor
// count + summary) that must run after every link mutation, inside the same
// transaction.
type LinkerService interface {
	UpsertLink(ctx context.Context, tx *gorm.DB, candidateID, projectID uuid.UUID, mention types.ProjectMention) (*types.ContributionLink, error)
	// RefreshDerived recomputes contributor_count from a fresh distinct-count
	// aggregate and resynthesizes the summary for each project. Never
	// incremental: the stored count is always replaced by the aggregate.
	RefreshDerived(ctx context.Context, tx *gorm.DB, projectIDs ...uuid.UUID) error
}

type linkerService struct {
	db            *gorm.DB
	log           *logger.Logger
	projectRepo   repos.ProjectRepo
	linkRepo      repos.ContributionLinkRepo
	candidateRepo repos.CandidateRepo
	synthesizer   *SummarySynthesizer
}

func NewLinkerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projectRepo repos.ProjectRepo,
	linkRepo repos.ContributionLinkRepo,
	candidateRepo repos.CandidateRepo,
	synthesizer *SummarySynthesizer,
) LinkerService {
	serviceLog := baseLog.With("service", "LinkerService")
	return &linkerService{
		db:            db,
		log:           serviceLog,
		projectRepo:   projectRepo,
		linkRepo:      linkRepo,
		candidateRepo: candidateRepo,
		synthesizer:   synthesizer,
	}
}

func (s *linkerService) UpsertLink(ctx context.Context, tx *gorm.DB, candidateID, projectID uuid.UUID, mention types.ProjectMention) (*types.ContributionLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	existing, err := s.linkRepo.GetByCandidateAndProject(ctx, transaction, candidateID, projectID)
	if err != nil {
		return nil, fmt.Errorf("load contribution link: %w", err)
	}

	if existing == nil {
		now := time.Now().UTC()
		link := &types.ContributionLink{
			ID:                      uuid.New(),
			CandidateID:             candidateID,
			ProjectID:               projectID,
			Role:                    mention.Role,
			Description:             mention.Description,
			Responsibilities:        datatypes.JSONSlice[string](mergeLists(mention.Responsibilities, nil)),
			Technologies:            datatypes.JSONSlice[string](mergeLists(mention.Technologies, nil)),
			Contribution:            mention.Contribution,
			Impact:                  mention.Impact,
			CandidateStartDate:      mention.StartDate,
			CandidateEndDate:        mention.EndDate,
			CandidateDurationMonths: mention.DurationMonths,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if _, err := s.linkRepo.Create(ctx, transaction, []*types.ContributionLink{link}); err != nil {
			return nil, fmt.Errorf("create contribution link: %w", err)
		}
		return link, nil
	}

	// Fill-missing, prefer-union: a populated field is never clobbered by an
	// empty incoming one, and list fields grow by set union in first-seen
	// order. Re-ingesting an identical mention is a no-op.
	fillMissing(&existing.Role, mention.Role)
	fillMissing(&existing.Description, mention.Description)
	fillMissing(&existing.Contribution, mention.Contribution)
	fillMissing(&existing.Impact, mention.Impact)
	fillMissing(&existing.CandidateStartDate, mention.StartDate)
	fillMissing(&existing.CandidateEndDate, mention.EndDate)
	if existing.CandidateDurationMonths == nil && mention.DurationMonths != nil {
		existing.CandidateDurationMonths = mention.DurationMonths
	}
	existing.Responsibilities = datatypes.JSONSlice[string](mergeLists(existing.Responsibilities, mention.Responsibilities))
	existing.Technologies = datatypes.JSONSlice[string](mergeLists(existing.Technologies, mention.Technologies))
	existing.UpdatedAt = time.Now().UTC()

	if err := s.linkRepo.Save(ctx, transaction, existing); err != nil {
		return nil, fmt.Errorf("update contribution link: %w", err)
	}
	return existing, nil
}

func (s *linkerService) RefreshDerived(ctx context.Context, tx *gorm.DB, projectIDs ...uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	for _, projectID := range projectIDs {
		projects, err := s.projectRepo.GetByIDs(ctx, transaction, []uuid.UUID{projectID})
		if err != nil {
			return fmt.Errorf("load project %s: %w", projectID, err)
		}
		if len(projects) == 0 {
			continue
		}
		project := projects[0]

		count, err := s.linkRepo.CountDistinctCandidates(ctx, transaction, projectID)
		if err != nil {
			return fmt.Errorf("count contributors for %s: %w", projectID, err)
		}

		links, err := s.linkRepo.GetByProjectIDs(ctx, transaction, []uuid.UUID{projectID})
		if err != nil {
			return fmt.Errorf("load links for %s: %w", projectID, err)
		}

		candidateIDs := make([]uuid.UUID, 0, len(links))
		for _, link := range links {
			candidateIDs = append(candidateIDs, link.CandidateID)
		}
		candidateRows, err := s.candidateRepo.GetByIDs(ctx, transaction, candidateIDs)
		if err != nil {
			return fmt.Errorf("load candidates for %s: %w", projectID, err)
		}
		candidates := make(map[uuid.UUID]*types.Candidate, len(candidateRows))
		for _, c := range candidateRows {
			candidates[c.ID] = c
		}

		project.ContributorCount = count
		project.Summary = s.synthesizer.Compose(project.Name, count, links, candidates)
		project.UpdatedAt = time.Now().UTC()

		if err := s.projectRepo.Save(ctx, transaction, project); err != nil {
			return fmt.Errorf("save derived state for %s: %w", projectID, err)
		}
	}
	return nil
}

func fillMissing(dst *string, incoming string) {
	if strings.TrimSpace(*dst) == "" && strings.TrimSpace(incoming) != "" {
		*dst = incoming
	}
}
