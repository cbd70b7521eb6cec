package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/repos"
	"github.com/hireloop/hireloop-backend/internal/types"
)

// MergeService folds one canonical project into another and can exactly
// reverse a recorded merge. Every operation is a single transaction: either
// all steps land or none are observable.
type MergeService interface {
	Merge(ctx context.Context, sourceID, targetID uuid.UUID, rationale string) (*types.MergeHistory, error)
	Unmerge(ctx context.Context, historyID uuid.UUID) error
	// ListReversibleMerges returns the histories with no reversal yet, the
	// ones Unmerge would still accept.
	ListReversibleMerges(ctx context.Context) ([]*types.MergeHistory, error)
}

type mergeService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	linkRepo    repos.ContributionLinkRepo
	historyRepo repos.MergeHistoryRepo
	linker      LinkerService
	events      EventPublisher
}

func NewMergeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projectRepo repos.ProjectRepo,
	linkRepo repos.ContributionLinkRepo,
	historyRepo repos.MergeHistoryRepo,
	linker LinkerService,
	events EventPublisher,
) MergeService {
	serviceLog := baseLog.With("service", "MergeService")
	return &mergeService{
		db:          db,
		log:         serviceLog,
		projectRepo: projectRepo,
		linkRepo:    linkRepo,
		historyRepo: historyRepo,
		linker:      linker,
		events:      events,
	}
}

func (s *mergeService) Merge(ctx context.Context, sourceID, targetID uuid.UUID, rationale string) (*types.MergeHistory, error) {
	if sourceID == uuid.Nil || targetID == uuid.Nil {
		return nil, fmt.Errorf("source and target ids required: %w", apperrors.ErrInvalidArgument)
	}
	if sourceID == targetID {
		return nil, fmt.Errorf("source and target must differ: %w", apperrors.ErrInvalidArgument)
	}

	var history *types.MergeHistory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, target, err := s.loadPairForUpdate(ctx, tx, sourceID, targetID)
		if err != nil {
			return err
		}
		if source.Tombstoned() {
			return fmt.Errorf("source project %s is already merged: %w", sourceID, apperrors.ErrConflict)
		}
		if target.Tombstoned() {
			return fmt.Errorf("target project %s is itself merged: %w", targetID, apperrors.ErrConflict)
		}
		existing, err := s.historyRepo.GetUnreversedBySourceIDs(ctx, tx, []uuid.UUID{sourceID})
		if err != nil {
			return fmt.Errorf("check merge history: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("source project %s has an unreversed merge history: %w", sourceID, apperrors.ErrConflict)
		}

		sourceBefore := types.SnapshotProject(source)
		targetBefore := types.SnapshotProject(target)

		moves, err := s.absorbLinks(ctx, tx, source, target)
		if err != nil {
			return err
		}

		target.Technologies = datatypes.JSONSlice[string](normalizeTechSet(append(target.Technologies, source.Technologies...)))
		if target.Summary == "" && source.Summary != "" {
			target.Summary = source.Summary
		}

		now := time.Now().UTC()
		source.MergedIntoID = &target.ID
		source.MergedAt = &now
		source.UpdatedAt = now
		target.UpdatedAt = now

		if err := s.projectRepo.Save(ctx, tx, source); err != nil {
			return fmt.Errorf("tombstone source: %w", err)
		}
		if err := s.projectRepo.Save(ctx, tx, target); err != nil {
			return fmt.Errorf("save target: %w", err)
		}

		if err := s.linker.RefreshDerived(ctx, tx, source.ID, target.ID); err != nil {
			return err
		}

		history, err = s.recordHistory(ctx, tx, source.ID, target.ID, sourceBefore, targetBefore, moves, rationale)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Projects merged", "source_id", sourceID, "target_id", targetID, "history_id", history.ID)
	if s.events != nil {
		if pubErr := s.events.Publish(ctx, EventProjectMerged, history); pubErr != nil {
			s.log.Warn("Publish project.merged failed", "error", pubErr)
		}
	}
	return history, nil
}

func (s *mergeService) loadPairForUpdate(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID) (*types.Project, *types.Project, error) {
	projects, err := s.projectRepo.GetByIDsForUpdate(ctx, tx, []uuid.UUID{sourceID, targetID})
	if err != nil {
		return nil, nil, fmt.Errorf("lock projects: %w", err)
	}
	byID := map[uuid.UUID]*types.Project{}
	for _, p := range projects {
		byID[p.ID] = p
	}
	source, ok := byID[sourceID]
	if !ok {
		return nil, nil, fmt.Errorf("source project %s: %w", sourceID, apperrors.ErrNotFound)
	}
	target, ok := byID[targetID]
	if !ok {
		return nil, nil, fmt.Errorf("target project %s: %w", targetID, apperrors.ErrNotFound)
	}
	return source, target, nil
}

// absorbLinks walks the source's links in creation order. Links whose
// candidate already contributes to the target fold into the target link
// (fill-missing scalars, list union) and are deleted; the rest are repointed.
// Every touch is recorded with enough pre-state to invert it.
func (s *mergeService) absorbLinks(ctx context.Context, tx *gorm.DB, source, target *types.Project) ([]types.MoveRecord, error) {
	links, err := s.linkRepo.GetByProjectIDs(ctx, tx, []uuid.UUID{source.ID})
	if err != nil {
		return nil, fmt.Errorf("load source links: %w", err)
	}

	moves := make([]types.MoveRecord, 0, len(links))
	for _, link := range links {
		existing, err := s.linkRepo.GetByCandidateAndProject(ctx, tx, link.CandidateID, target.ID)
		if err != nil {
			return nil, fmt.Errorf("load target link: %w", err)
		}

		if existing != nil {
			targetBefore := types.SnapshotLink(existing)
			sourceSnapshot := types.SnapshotLink(link)

			fillMissing(&existing.Role, link.Role)
			fillMissing(&existing.Description, link.Description)
			fillMissing(&existing.Contribution, link.Contribution)
			fillMissing(&existing.Impact, link.Impact)
			fillMissing(&existing.CandidateStartDate, link.CandidateStartDate)
			fillMissing(&existing.CandidateEndDate, link.CandidateEndDate)
			if existing.CandidateDurationMonths == nil && link.CandidateDurationMonths != nil {
				existing.CandidateDurationMonths = link.CandidateDurationMonths
			}
			existing.Responsibilities = datatypes.JSONSlice[string](mergeLists(existing.Responsibilities, link.Responsibilities))
			existing.Technologies = datatypes.JSONSlice[string](mergeLists(existing.Technologies, link.Technologies))
			existing.UpdatedAt = time.Now().UTC()

			if err := s.linkRepo.Save(ctx, tx, existing); err != nil {
				return nil, fmt.Errorf("absorb link: %w", err)
			}
			if err := s.linkRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{link.ID}); err != nil {
				return nil, fmt.Errorf("delete absorbed link: %w", err)
			}

			moves = append(moves, types.MoveRecord{
				Action:             types.MoveMergeIntoExisting,
				TargetLinkID:       existing.ID,
				TargetLinkBefore:   &targetBefore,
				SourceLinkSnapshot: &sourceSnapshot,
			})
		} else {
			before := types.SnapshotLink(link)
			link.ProjectID = target.ID
			link.UpdatedAt = time.Now().UTC()
			if err := s.linkRepo.Save(ctx, tx, link); err != nil {
				return nil, fmt.Errorf("repoint link: %w", err)
			}
			moves = append(moves, types.MoveRecord{
				Action: types.MoveRepoint,
				LinkID: link.ID,
				Before: &before,
			})
		}
	}
	return moves, nil
}

func (s *mergeService) recordHistory(
	ctx context.Context,
	tx *gorm.DB,
	sourceID, targetID uuid.UUID,
	sourceBefore, targetBefore types.ProjectSnapshot,
	moves []types.MoveRecord,
	rationale string,
) (*types.MergeHistory, error) {
	sourceJSON, err := json.Marshal(sourceBefore)
	if err != nil {
		return nil, fmt.Errorf("marshal source snapshot: %w", err)
	}
	targetJSON, err := json.Marshal(targetBefore)
	if err != nil {
		return nil, fmt.Errorf("marshal target snapshot: %w", err)
	}
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		return nil, fmt.Errorf("marshal moves: %w", err)
	}

	history := &types.MergeHistory{
		ID:              uuid.New(),
		SourceProjectID: sourceID,
		TargetProjectID: targetID,
		SourceBefore:    datatypes.JSON(sourceJSON),
		TargetBefore:    datatypes.JSON(targetJSON),
		Moves:           datatypes.JSON(movesJSON),
		Rationale:       rationale,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := s.historyRepo.Create(ctx, tx, []*types.MergeHistory{history}); err != nil {
		return nil, fmt.Errorf("record merge history: %w", err)
	}
	return history, nil
}

func (s *mergeService) ListReversibleMerges(ctx context.Context) ([]*types.MergeHistory, error) {
	histories, err := s.historyRepo.GetUnreversed(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load reversible merges: %w", err)
	}
	return histories, nil
}
