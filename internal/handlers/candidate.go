package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/services"
)

type CandidateHandler struct {
	log              *logger.Logger
	candidateService services.CandidateService
}

func NewCandidateHandler(log *logger.Logger, candidateService services.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		log:              log.With("handler", "CandidateHandler"),
		candidateService: candidateService,
	}
}

type createCandidateRequest struct {
	FullName             string  `json:"full_name" binding:"required"`
	PrimaryRole          string  `json:"primary_role"`
	TotalExperienceYears float64 `json:"total_experience_years"`
}

func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	candidate, err := h.candidateService.CreateCandidate(c.Request.Context(), req.FullName, req.PrimaryRole, req.TotalExperienceYears)
	if err != nil {
		h.log.Error("CreateCandidate failed", "error", err)
		RespondDomainError(c, "create_candidate_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"candidate": candidate})
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	candidateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
		return
	}

	if err := h.candidateService.DeleteCandidate(c.Request.Context(), candidateID); err != nil {
		h.log.Error("DeleteCandidate failed", "error", err, "candidate_id", candidateID)
		RespondDomainError(c, "delete_candidate_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": candidateID})
}
