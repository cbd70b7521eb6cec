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
	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/types"
)

// ResolverConfig carries the three-tier matching policy.
//
// score >= AcceptThreshold        -> same project, no oracle call
// ReviewThreshold <= score < ...  -> borderline, ask the oracle (budgeted)
// score < ReviewThreshold         -> distinct project
type ResolverConfig struct {
	AcceptThreshold float64
	ReviewThreshold float64
	OracleBudget    int
	OracleTimeout   time.Duration
	ActiveScanLimit int
}

func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		AcceptThreshold: 0.86,
		ReviewThreshold: 0.70,
		OracleBudget:    8,
		OracleTimeout:   20 * time.Second,
		ActiveScanLimit: 1000,
	}
}

// ResolvedMention reports where one mention landed.
type ResolvedMention struct {
	Project *types.Project          `json:"project"`
	Link    *types.ContributionLink `json:"link"`
	Created bool                    `json:"created"`
	Score   float64                 `json:"score"`
}

// ResolverService decides, for each incoming mention, whether it names an
// existing canonical project or a new one, then records the candidate's
// contribution. Each mention settles in its own transaction; the oracle
// budget spans the whole batch.
type ResolverService interface {
	ResolveAndLink(ctx context.Context, candidateID uuid.UUID, mentions []types.ProjectMention) ([]*ResolvedMention, error)
}

type resolverService struct {
	db            *gorm.DB
	log           *logger.Logger
	cfg           ResolverConfig
	scorer        *SimilarityScorer
	oracle        ConfirmationOracle
	projectRepo   repos.ProjectRepo
	candidateRepo repos.CandidateRepo
	linker        LinkerService
	events        EventPublisher
}

func NewResolverService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg ResolverConfig,
	scorer *SimilarityScorer,
	oracle ConfirmationOracle,
	projectRepo repos.ProjectRepo,
	candidateRepo repos.CandidateRepo,
	linker LinkerService,
	events EventPublisher,
) ResolverService {
	serviceLog := baseLog.With("service", "ResolverService")
	return &resolverService{
		db:            db,
		log:           serviceLog,
		cfg:           cfg,
		scorer:        scorer,
		oracle:        oracle,
		projectRepo:   projectRepo,
		candidateRepo: candidateRepo,
		linker:        linker,
		events:        events,
	}
}

func (s *resolverService) ResolveAndLink(ctx context.Context, candidateID uuid.UUID, mentions []types.ProjectMention) ([]*ResolvedMention, error) {
	if candidateID == uuid.Nil {
		return nil, fmt.Errorf("candidate id required: %w", apperrors.ErrInvalidArgument)
	}
	candidates, err := s.candidateRepo.GetByIDs(ctx, nil, []uuid.UUID{candidateID})
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, apperrors.ErrNotFound)
	}

	budget := newOracleBudget(s.cfg.OracleBudget)
	results := make([]*ResolvedMention, 0, len(mentions))

	for _, mention := range mentions {
		if strings.TrimSpace(mention.Name) == "" {
			s.log.Warn("Skipping mention with empty name", "candidate_id", candidateID)
			continue
		}
		resolved, err := s.resolveOne(ctx, budget, candidateID, mention)
		if err != nil {
			return results, err
		}
		results = append(results, resolved)

		if s.events != nil {
			if pubErr := s.events.Publish(ctx, EventProjectLinked, resolved); pubErr != nil {
				s.log.Warn("Publish project.linked failed", "error", pubErr)
			}
		}
	}
	return results, nil
}

func (s *resolverService) resolveOne(ctx context.Context, budget *oracleBudget, candidateID uuid.UUID, mention types.ProjectMention) (*ResolvedMention, error) {
	resolved := &ResolvedMention{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		normalized := NormalizeProjectName(mention.Name)
		// Serializes concurrent first mentions of the same name, closing the
		// check-then-act window on the create path.
		if err := s.projectRepo.AdvisoryLockName(ctx, tx, normalized); err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		project, score, err := s.findMatch(ctx, tx, budget, normalized, mention)
		if err != nil {
			return err
		}
		resolved.Score = score

		if project != nil {
			s.enrichProject(project, mention)
			if err := s.projectRepo.Save(ctx, tx, project); err != nil {
				return fmt.Errorf("update matched project: %w", err)
			}
		} else {
			project = s.newProjectFromMention(mention)
			if _, err := s.projectRepo.Create(ctx, tx, []*types.Project{project}); err != nil {
				return fmt.Errorf("create project: %w", err)
			}
			resolved.Created = true
		}

		link, err := s.linker.UpsertLink(ctx, tx, candidateID, project.ID, mention)
		if err != nil {
			return err
		}
		if err := s.linker.RefreshDerived(ctx, tx, project.ID); err != nil {
			return err
		}

		projects, err := s.projectRepo.GetByIDs(ctx, tx, []uuid.UUID{project.ID})
		if err != nil {
			return fmt.Errorf("reload project: %w", err)
		}
		if len(projects) == 0 {
			return fmt.Errorf("reload project %s: %w", project.ID, apperrors.ErrNotFound)
		}
		resolved.Project = projects[0]
		resolved.Link = link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// findMatch scans the active projects for the best candidate and applies the
// three-tier policy. Returns nil when the mention is a distinct project.
func (s *resolverService) findMatch(ctx context.Context, tx *gorm.DB, budget *oracleBudget, normalized string, mention types.ProjectMention) (*types.Project, float64, error) {
	active, err := s.projectRepo.GetActive(ctx, tx, s.cfg.ActiveScanLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("load active projects: %w", err)
	}

	incoming := mention.Descriptor()
	var best *types.Project
	bestScore := 0.0

	for _, p := range active {
		if NormalizeProjectName(p.Name) == normalized {
			return p, 1.0, nil
		}
		score := s.scorer.Score(incoming, p.Descriptor())
		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	if best == nil || bestScore < s.cfg.ReviewThreshold {
		return nil, bestScore, nil
	}
	if bestScore >= s.cfg.AcceptThreshold {
		s.log.Debug("Auto-accepted project match", "project_id", best.ID, "score", bestScore)
		return best, bestScore, nil
	}

	// Borderline. Fail open: exhausted budget, oracle error or timeout all
	// resolve to "distinct project" rather than risking a silent merge.
	if !budget.allow() {
		s.log.Debug("Oracle budget exhausted, treating as distinct", "score", bestScore)
		return nil, bestScore, nil
	}

	judgeCtx, cancel := context.WithTimeout(ctx, s.cfg.OracleTimeout)
	defer cancel()
	verdict, err := s.oracle.Judge(judgeCtx, incoming, best.Descriptor())
	if err != nil {
		s.log.Warn("Confirmation oracle failed, treating as distinct",
			"error", err, "score", bestScore, "project_id", best.ID)
		return nil, bestScore, nil
	}
	if !verdict.Affirmed {
		return nil, bestScore, nil
	}

	s.log.Info("Oracle affirmed project match",
		"project_id", best.ID, "score", bestScore, "confidence", verdict.Confidence, "reason", verdict.Reason)
	return best, bestScore, nil
}

// enrichProject folds mention-level fields into a matched project: technology
// union, fill-missing dates, and impact-metric union.
func (s *resolverService) enrichProject(project *types.Project, mention types.ProjectMention) {
	project.Technologies = datatypes.JSONSlice[string](normalizeTechSet(append(project.Technologies, mention.Technologies...)))
	fillMissing(&project.StartDate, mention.StartDate)
	fillMissing(&project.EndDate, mention.EndDate)
	if project.DurationMonths == nil && mention.DurationMonths != nil {
		project.DurationMonths = mention.DurationMonths
	}
	if project.TeamSizeEstimate == nil && mention.TeamSize != nil {
		project.TeamSizeEstimate = mention.TeamSize
	}
	if strings.TrimSpace(mention.Impact) != "" {
		project.ImpactMetrics = datatypes.JSONSlice[string](mergeLists(project.ImpactMetrics, []string{mention.Impact}))
	}
	project.UpdatedAt = time.Now().UTC()
}

func (s *resolverService) newProjectFromMention(mention types.ProjectMention) *types.Project {
	now := time.Now().UTC()
	var impacts []string
	if strings.TrimSpace(mention.Impact) != "" {
		impacts = []string{mention.Impact}
	}
	return &types.Project{
		ID:               uuid.New(),
		Name:             mention.Name,
		Organization:     mention.Organization,
		StartDate:        mention.StartDate,
		EndDate:          mention.EndDate,
		DurationMonths:   mention.DurationMonths,
		IsAcademic:       mention.IsAcademic,
		Technologies:     datatypes.JSONSlice[string](normalizeTechSet(mention.Technologies)),
		TeamSizeEstimate: mention.TeamSize,
		ContributorCount: 0,
		ImpactMetrics:    datatypes.JSONSlice[string](impacts),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
