package app

import (
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/clients/openai"
	"github.com/hireloop/hireloop-backend/internal/clients/redis"
	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/services"
)

type Services struct {
	Candidate services.CandidateService
	Resolver  services.ResolverService
	Project   services.ProjectService
	Merge     services.MergeService
	Suggest   services.SuggestService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, events redis.EventBus) (Services, error) {
	log.Info("Wiring services...")

	oaiClient, err := openai.NewClient(log)
	if err != nil {
		return Services{}, err
	}
	oracle := openai.NewJudge(log, oaiClient)

	scorer := services.NewSimilarityScorer()
	synthesizer := services.NewSummarySynthesizer()

	linker := services.NewLinkerService(db, log, reposet.Project, reposet.ContributionLink, reposet.Candidate, synthesizer)

	var publisher services.EventPublisher
	if events != nil {
		publisher = events
	}

	return Services{
		Candidate: services.NewCandidateService(db, log, reposet.Candidate, reposet.ContributionLink, linker, publisher),
		Resolver:  services.NewResolverService(db, log, cfg.Resolver, scorer, oracle, reposet.Project, reposet.Candidate, linker, publisher),
		Project:   services.NewProjectService(log, reposet.Project, reposet.ContributionLink, reposet.Candidate, reposet.MergeHistory),
		Merge:     services.NewMergeService(db, log, reposet.Project, reposet.ContributionLink, reposet.MergeHistory, linker, publisher),
		Suggest:   services.NewSuggestService(db, log, scorer, oracle, reposet.Project, cfg.Resolver.OracleTimeout),
	}, nil
}
