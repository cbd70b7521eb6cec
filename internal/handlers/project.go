package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/services"
)

type ProjectHandler struct {
	log            *logger.Logger
	projectService services.ProjectService
	mergeService   services.MergeService
	suggestService services.SuggestService
}

func NewProjectHandler(
	log *logger.Logger,
	projectService services.ProjectService,
	mergeService services.MergeService,
	suggestService services.SuggestService,
) *ProjectHandler {
	return &ProjectHandler{
		log:            log.With("handler", "ProjectHandler"),
		projectService: projectService,
		mergeService:   mergeService,
		suggestService: suggestService,
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	listing, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		h.log.Error("ListProjects failed", "error", err)
		RespondDomainError(c, "list_projects_failed", err)
		return
	}
	RespondOK(c, listing)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}

	detail, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		h.log.Error("GetProject failed", "error", err, "project_id", projectID)
		RespondDomainError(c, "get_project_failed", err)
		return
	}
	RespondOK(c, gin.H{"project": detail})
}

type mergeRequest struct {
	SourceProjectID uuid.UUID `json:"source_project_id" binding:"required"`
	TargetProjectID uuid.UUID `json:"target_project_id" binding:"required"`
	Rationale       string    `json:"rationale"`
}

func (h *ProjectHandler) MergeProjects(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	history, err := h.mergeService.Merge(c.Request.Context(), req.SourceProjectID, req.TargetProjectID, req.Rationale)
	if err != nil {
		h.log.Error("MergeProjects failed", "error", err,
			"source_id", req.SourceProjectID, "target_id", req.TargetProjectID)
		RespondDomainError(c, "merge_projects_failed", err)
		return
	}
	RespondOK(c, gin.H{"merge_history": history})
}

type unmergeRequest struct {
	MergeHistoryID uuid.UUID `json:"merge_history_id" binding:"required"`
}

func (h *ProjectHandler) UnmergeProjects(c *gin.Context) {
	var req unmergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.mergeService.Unmerge(c.Request.Context(), req.MergeHistoryID); err != nil {
		h.log.Error("UnmergeProjects failed", "error", err, "history_id", req.MergeHistoryID)
		RespondDomainError(c, "unmerge_projects_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// ListMerges returns merges still in effect, i.e. the ones that can be
// reversed.
func (h *ProjectHandler) ListMerges(c *gin.Context) {
	histories, err := h.mergeService.ListReversibleMerges(c.Request.Context())
	if err != nil {
		h.log.Error("ListMerges failed", "error", err)
		RespondDomainError(c, "list_merges_failed", err)
		return
	}
	RespondOK(c, gin.H{"merges": histories})
}

type suggestRequest struct {
	Threshold float64 `json:"threshold"`
	Limit     int     `json:"limit"`
}

func (h *ProjectHandler) SuggestMerges(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	suggestions, err := h.suggestService.SuggestPairs(c.Request.Context(), req.Threshold, req.Limit)
	if err != nil {
		h.log.Error("SuggestMerges failed", "error", err)
		RespondDomainError(c, "suggest_merges_failed", err)
		return
	}
	RespondOK(c, gin.H{"suggestions": suggestions})
}
