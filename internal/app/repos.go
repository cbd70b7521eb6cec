package app

import (
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/repos"
)

type Repos struct {
	Candidate        repos.CandidateRepo
	Project          repos.ProjectRepo
	ContributionLink repos.ContributionLinkRepo
	MergeHistory     repos.MergeHistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Candidate:        repos.NewCandidateRepo(db, log),
		Project:          repos.NewProjectRepo(db, log),
		ContributionLink: repos.NewContributionLinkRepo(db, log),
		MergeHistory:     repos.NewMergeHistoryRepo(db, log),
	}
}
