package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/types"
)

func (s *mergeService) Unmerge(ctx context.Context, historyID uuid.UUID) error {
	if historyID == uuid.Nil {
		return fmt.Errorf("merge history id required: %w", apperrors.ErrInvalidArgument)
	}

	var sourceID, targetID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		histories, err := s.historyRepo.GetByIDs(ctx, tx, []uuid.UUID{historyID})
		if err != nil {
			return fmt.Errorf("load merge history: %w", err)
		}
		if len(histories) == 0 {
			return fmt.Errorf("merge history %s: %w", historyID, apperrors.ErrNotFound)
		}
		history := histories[0]
		if history.Reversed() {
			return fmt.Errorf("merge history %s already reversed: %w", historyID, apperrors.ErrConflict)
		}

		source, target, err := s.loadPairForUpdate(ctx, tx, history.SourceProjectID, history.TargetProjectID)
		if err != nil {
			return err
		}

		var sourceBefore, targetBefore types.ProjectSnapshot
		if err := json.Unmarshal(history.SourceBefore, &sourceBefore); err != nil {
			return fmt.Errorf("decode source snapshot: %w", err)
		}
		if err := json.Unmarshal(history.TargetBefore, &targetBefore); err != nil {
			return fmt.Errorf("decode target snapshot: %w", err)
		}
		var moves []types.MoveRecord
		if err := json.Unmarshal(history.Moves, &moves); err != nil {
			return fmt.Errorf("decode move records: %w", err)
		}

		sourceBefore.Apply(source)
		targetBefore.Apply(target)
		source.MergedIntoID = nil
		source.MergedAt = nil
		now := time.Now().UTC()
		source.UpdatedAt = now
		target.UpdatedAt = now

		if err := s.projectRepo.Save(ctx, tx, source); err != nil {
			return fmt.Errorf("restore source: %w", err)
		}
		if err := s.projectRepo.Save(ctx, tx, target); err != nil {
			return fmt.Errorf("restore target: %w", err)
		}

		for _, move := range moves {
			if err := s.invertMove(ctx, tx, source, move); err != nil {
				return err
			}
		}

		if err := s.linker.RefreshDerived(ctx, tx, source.ID, target.ID); err != nil {
			return err
		}

		history.ReversedAt = &now
		if err := s.historyRepo.Save(ctx, tx, history); err != nil {
			return fmt.Errorf("mark history reversed: %w", err)
		}

		sourceID = source.ID
		targetID = target.ID
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Merge reversed", "history_id", historyID, "source_id", sourceID, "target_id", targetID)
	if s.events != nil {
		if pubErr := s.events.Publish(ctx, EventProjectUnmerged, map[string]any{
			"merge_history_id":  historyID,
			"source_project_id": sourceID,
			"target_project_id": targetID,
		}); pubErr != nil {
			s.log.Warn("Publish project.unmerged failed", "error", pubErr)
		}
	}
	return nil
}

// invertMove applies the exact inverse of one recorded move. External
// mutations since the merge (a vanished link, or a recreated candidate/source
// pair) degrade to warnings rather than failing the whole reversal.
func (s *mergeService) invertMove(ctx context.Context, tx *gorm.DB, source *types.Project, move types.MoveRecord) error {
	switch move.Action {
	case types.MoveRepoint:
		links, err := s.linkRepo.GetByIDs(ctx, tx, []uuid.UUID{move.LinkID})
		if err != nil {
			return fmt.Errorf("load repointed link: %w", err)
		}
		if len(links) == 0 {
			s.log.Warn("Repointed link missing during unmerge, skipping", "link_id", move.LinkID)
			return nil
		}
		link := links[0]
		link.ProjectID = source.ID
		link.UpdatedAt = time.Now().UTC()
		if err := s.linkRepo.Save(ctx, tx, link); err != nil {
			return fmt.Errorf("repoint link back: %w", err)
		}

	case types.MoveMergeIntoExisting:
		if move.TargetLinkBefore != nil {
			links, err := s.linkRepo.GetByIDs(ctx, tx, []uuid.UUID{move.TargetLinkID})
			if err != nil {
				return fmt.Errorf("load target link: %w", err)
			}
			if len(links) > 0 {
				link := links[0]
				move.TargetLinkBefore.ApplyFields(link)
				link.UpdatedAt = time.Now().UTC()
				if err := s.linkRepo.Save(ctx, tx, link); err != nil {
					return fmt.Errorf("restore target link: %w", err)
				}
			} else {
				s.log.Warn("Target link missing during unmerge, skipping restore", "link_id", move.TargetLinkID)
			}
		}

		if move.SourceLinkSnapshot != nil {
			dup, err := s.linkRepo.GetByCandidateAndProject(ctx, tx, move.SourceLinkSnapshot.CandidateID, source.ID)
			if err != nil {
				return fmt.Errorf("check recreated link: %w", err)
			}
			if dup != nil {
				s.log.Warn("Link already exists for candidate on source, skipping recreation",
					"candidate_id", move.SourceLinkSnapshot.CandidateID, "project_id", source.ID)
				return nil
			}
			restored := move.SourceLinkSnapshot.Restore(source.ID)
			if _, err := s.linkRepo.Create(ctx, tx, []*types.ContributionLink{restored}); err != nil {
				return fmt.Errorf("recreate absorbed link: %w", err)
			}
		}

	default:
		s.log.Warn("Unknown move action in merge history, skipping", "action", move.Action)
	}
	return nil
}
