package app

import (
	"github.com/hireloop/hireloop-backend/internal/handlers"
	"github.com/hireloop/hireloop-backend/internal/logger"
)

type Handlers struct {
	Candidate *handlers.CandidateHandler
	Ingest    *handlers.IngestHandler
	Project   *handlers.ProjectHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Candidate: handlers.NewCandidateHandler(log, serviceset.Candidate),
		Ingest:    handlers.NewIngestHandler(log, serviceset.Resolver),
		Project:   handlers.NewProjectHandler(log, serviceset.Project, serviceset.Merge, serviceset.Suggest),
	}
}
