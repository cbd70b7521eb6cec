package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/types"
)

const (
	defaultSuggestThreshold = 0.82
	defaultSuggestLimit     = 10
	suggestScanLimit        = 500
	suggestScoreWorkers     = 4
)

// MergeSuggestion is one ranked candidate pair for human or oracle review.
type MergeSuggestion struct {
	Score           float64   `json:"score"`
	Confidence      float64   `json:"confidence"`
	Reason          string    `json:"reason"`
	SourceProjectID uuid.UUID `json:"source_project_id"`
	SourceName      string    `json:"source_name"`
	TargetProjectID uuid.UUID `json:"target_project_id"`
	TargetName      string    `json:"target_name"`
}

// SuggestService surfaces likely-duplicate active project pairs, scored by
// the similarity scorer and screened by the confirmation oracle.
type SuggestService interface {
	SuggestPairs(ctx context.Context, threshold float64, limit int) ([]MergeSuggestion, error)
}

type suggestService struct {
	db            *gorm.DB
	log           *logger.Logger
	scorer        *SimilarityScorer
	oracle        ConfirmationOracle
	projectRepo   repos.ProjectRepo
	oracleTimeout time.Duration
}

func NewSuggestService(
	db *gorm.DB,
	baseLog *logger.Logger,
	scorer *SimilarityScorer,
	oracle ConfirmationOracle,
	projectRepo repos.ProjectRepo,
	oracleTimeout time.Duration,
) SuggestService {
	serviceLog := baseLog.With("service", "SuggestService")
	return &suggestService{
		db:            db,
		log:           serviceLog,
		scorer:        scorer,
		oracle:        oracle,
		projectRepo:   projectRepo,
		oracleTimeout: oracleTimeout,
	}
}

type scoredPair struct {
	score float64
	a     *types.Project
	b     *types.Project
}

func (s *suggestService) SuggestPairs(ctx context.Context, threshold float64, limit int) ([]MergeSuggestion, error) {
	if threshold <= 0 {
		threshold = defaultSuggestThreshold
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	projects, err := s.projectRepo.GetActive(ctx, nil, suggestScanLimit)
	if err != nil {
		return nil, err
	}

	pairs, err := s.scorePairs(ctx, projects, threshold)
	if err != nil {
		return nil, err
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].a.ID.String() < pairs[j].a.ID.String()
	})

	screen := limit * 2
	if screen < 20 {
		screen = 20
	}
	if screen > len(pairs) {
		screen = len(pairs)
	}

	suggestions := make([]MergeSuggestion, 0, limit)
	for _, pair := range pairs[:screen] {
		judgeCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
		verdict, err := s.oracle.Judge(judgeCtx, pair.a.Descriptor(), pair.b.Descriptor())
		cancel()
		if err != nil {
			s.log.Warn("Oracle failed for suggestion pair, skipping",
				"error", err, "a", pair.a.ID, "b", pair.b.ID)
			continue
		}
		if !verdict.Affirmed {
			continue
		}

		source, target := pickMergeDirection(pair.a, pair.b)
		suggestions = append(suggestions, MergeSuggestion{
			Score:           pair.score,
			Confidence:      verdict.Confidence,
			Reason:          verdict.Reason,
			SourceProjectID: source.ID,
			SourceName:      source.Name,
			TargetProjectID: target.ID,
			TargetName:      target.Name,
		})
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions, nil
}

// scorePairs computes all pairwise scores over the active set, splitting rows
// across workers. Only pairs at or above the threshold are kept.
func (s *suggestService) scorePairs(ctx context.Context, projects []*types.Project, threshold float64) ([]scoredPair, error) {
	var mu sync.Mutex
	var pairs []scoredPair

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(suggestScoreWorkers)

	for i := range projects {
		g.Go(func() error {
			var local []scoredPair
			for j := i + 1; j < len(projects); j++ {
				score := s.scorer.Score(projects[i].Descriptor(), projects[j].Descriptor())
				if score >= threshold {
					local = append(local, scoredPair{score: score, a: projects[i], b: projects[j]})
				}
			}
			if len(local) > 0 {
				mu.Lock()
				pairs = append(pairs, local...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// pickMergeDirection keeps the better-established project as the target: more
// contributors wins, then the older record.
func pickMergeDirection(a, b *types.Project) (source, target *types.Project) {
	if a.ContributorCount != b.ContributorCount {
		if a.ContributorCount > b.ContributorCount {
			return b, a
		}
		return a, b
	}
	if b.CreatedAt.Before(a.CreatedAt) {
		return a, b
	}
	return b, a
}
