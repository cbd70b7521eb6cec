package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/services"
	"github.com/hireloop/hireloop-backend/internal/types"
)

// IngestHandler accepts a batch of extracted project mentions for one
// candidate and runs them through the resolver.
type IngestHandler struct {
	log             *logger.Logger
	resolverService services.ResolverService
}

func NewIngestHandler(log *logger.Logger, resolverService services.ResolverService) *IngestHandler {
	return &IngestHandler{
		log:             log.With("handler", "IngestHandler"),
		resolverService: resolverService,
	}
}

type ingestProjectsRequest struct {
	Projects []types.ProjectMention `json:"projects" binding:"required"`
}

func (h *IngestHandler) IngestProjects(c *gin.Context) {
	candidateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
		return
	}

	var req ingestProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resolved, err := h.resolverService.ResolveAndLink(c.Request.Context(), candidateID, req.Projects)
	if err != nil {
		h.log.Error("IngestProjects failed", "error", err, "candidate_id", candidateID)
		RespondDomainError(c, "ingest_projects_failed", err)
		return
	}
	RespondOK(c, gin.H{"resolved": resolved})
}
