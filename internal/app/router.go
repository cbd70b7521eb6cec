package app

import (
	"github.com/gin-gonic/gin"

	"github.com/hireloop/hireloop-backend/internal/server"
)

func wireRouter(handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:      "hireloop-backend",
		CandidateHandler: handlerset.Candidate,
		IngestHandler:    handlerset.Ingest,
		ProjectHandler:   handlerset.Project,
	})
}
