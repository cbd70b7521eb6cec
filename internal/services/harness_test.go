package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/repos/testutil"
	"github.com/hireloop/hireloop-backend/internal/types"
)

// fakeOracle is a scripted ConfirmationOracle: it returns the configured
// verdict/error and counts consultations.
type fakeOracle struct {
	verdict OracleVerdict
	err     error
	calls   int
}

func (f *fakeOracle) Judge(ctx context.Context, a, b types.ProjectDescriptor) (OracleVerdict, error) {
	f.calls++
	if f.err != nil {
		return OracleVerdict{}, f.err
	}
	return f.verdict, nil
}

type harness struct {
	tx            *gorm.DB
	oracle        *fakeOracle
	candidateRepo repos.CandidateRepo
	projectRepo   repos.ProjectRepo
	linkRepo      repos.ContributionLinkRepo
	historyRepo   repos.MergeHistoryRepo

	linker    LinkerService
	resolver  ResolverService
	merge     MergeService
	candidate CandidateService
	project   ProjectService
	suggest   SuggestService
}

func newHarness(t *testing.T, cfg ResolverConfig) *harness {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	candidateRepo := repos.NewCandidateRepo(tx, log)
	projectRepo := repos.NewProjectRepo(tx, log)
	linkRepo := repos.NewContributionLinkRepo(tx, log)
	historyRepo := repos.NewMergeHistoryRepo(tx, log)

	oracle := &fakeOracle{verdict: OracleVerdict{Affirmed: true, Confidence: 0.9, Reason: "same project"}}
	scorer := NewSimilarityScorer()
	synthesizer := NewSummarySynthesizer()

	linker := NewLinkerService(tx, log, projectRepo, linkRepo, candidateRepo, synthesizer)

	return &harness{
		tx:            tx,
		oracle:        oracle,
		candidateRepo: candidateRepo,
		projectRepo:   projectRepo,
		linkRepo:      linkRepo,
		historyRepo:   historyRepo,
		linker:        linker,
		resolver:      NewResolverService(tx, log, cfg, scorer, oracle, projectRepo, candidateRepo, linker, nil),
		merge:         NewMergeService(tx, log, projectRepo, linkRepo, historyRepo, linker, nil),
		candidate:     NewCandidateService(tx, log, candidateRepo, linkRepo, linker, nil),
		project:       NewProjectService(log, projectRepo, linkRepo, candidateRepo, historyRepo),
		suggest:       NewSuggestService(tx, log, scorer, oracle, projectRepo, 5*time.Second),
	}
}

func defaultTestConfig() ResolverConfig {
	cfg := DefaultResolverConfig()
	cfg.OracleTimeout = 5 * time.Second
	return cfg
}
