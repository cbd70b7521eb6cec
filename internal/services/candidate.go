package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/types"
)

type CandidateService interface {
	CreateCandidate(ctx context.Context, fullName, primaryRole string, experienceYears float64) (*types.Candidate, error)
	// DeleteCandidate removes the candidate and every contribution link, then
	// recomputes derived state on each affected project in the same
	// transaction.
	DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error
}

type candidateService struct {
	db            *gorm.DB
	log           *logger.Logger
	candidateRepo repos.CandidateRepo
	linkRepo      repos.ContributionLinkRepo
	linker        LinkerService
	events        EventPublisher
}

func NewCandidateService(
	db *gorm.DB,
	baseLog *logger.Logger,
	candidateRepo repos.CandidateRepo,
	linkRepo repos.ContributionLinkRepo,
	linker LinkerService,
	events EventPublisher,
) CandidateService {
	serviceLog := baseLog.With("service", "CandidateService")
	return &candidateService{
		db:            db,
		log:           serviceLog,
		candidateRepo: candidateRepo,
		linkRepo:      linkRepo,
		linker:        linker,
		events:        events,
	}
}

func (s *candidateService) CreateCandidate(ctx context.Context, fullName, primaryRole string, experienceYears float64) (*types.Candidate, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("candidate full name required: %w", apperrors.ErrInvalidArgument)
	}
	if experienceYears < 0 {
		experienceYears = 0
	}

	now := time.Now().UTC()
	candidate := &types.Candidate{
		ID:                   uuid.New(),
		FullName:             strings.TrimSpace(fullName),
		PrimaryRole:          strings.TrimSpace(primaryRole),
		TotalExperienceYears: experienceYears,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := s.candidateRepo.Create(ctx, nil, []*types.Candidate{candidate}); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	s.log.Info("Candidate created", "candidate_id", candidate.ID)
	return candidate, nil
}

func (s *candidateService) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	if candidateID == uuid.Nil {
		return fmt.Errorf("candidate id required: %w", apperrors.ErrInvalidArgument)
	}

	var affected []uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidates, err := s.candidateRepo.GetByIDs(ctx, tx, []uuid.UUID{candidateID})
		if err != nil {
			return fmt.Errorf("load candidate: %w", err)
		}
		if len(candidates) == 0 {
			return fmt.Errorf("candidate %s: %w", candidateID, apperrors.ErrNotFound)
		}

		links, err := s.linkRepo.GetByCandidateIDs(ctx, tx, []uuid.UUID{candidateID})
		if err != nil {
			return fmt.Errorf("load candidate links: %w", err)
		}
		seen := map[uuid.UUID]bool{}
		for _, link := range links {
			if !seen[link.ProjectID] {
				seen[link.ProjectID] = true
				affected = append(affected, link.ProjectID)
			}
		}

		if err := s.linkRepo.FullDeleteByCandidateIDs(ctx, tx, []uuid.UUID{candidateID}); err != nil {
			return fmt.Errorf("delete candidate links: %w", err)
		}
		if err := s.candidateRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{candidateID}); err != nil {
			return fmt.Errorf("delete candidate: %w", err)
		}

		return s.linker.RefreshDerived(ctx, tx, affected...)
	})
	if err != nil {
		return err
	}

	s.log.Info("Candidate deleted", "candidate_id", candidateID, "affected_projects", len(affected))
	if s.events != nil {
		if pubErr := s.events.Publish(ctx, EventCandidateDeleted, map[string]any{
			"candidate_id":         candidateID,
			"affected_project_ids": affected,
		}); pubErr != nil {
			s.log.Warn("Publish candidate.deleted failed", "error", pubErr)
		}
	}
	return nil
}
