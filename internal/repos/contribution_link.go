package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/types"
)

type ContributionLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.ContributionLink) ([]*types.ContributionLink, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, linkIDs []uuid.UUID) ([]*types.ContributionLink, error)
	GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.ContributionLink, error)
	GetByCandidateIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) ([]*types.ContributionLink, error)
	GetByCandidateAndProject(ctx context.Context, tx *gorm.DB, candidateID, projectID uuid.UUID) (*types.ContributionLink, error)
	Save(ctx context.Context, tx *gorm.DB, link *types.ContributionLink) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, linkIDs []uuid.UUID) error
	FullDeleteByCandidateIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) error
	// CountDistinctCandidates is the source-of-truth aggregate behind
	// project.contributor_count.
	CountDistinctCandidates(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (int, error)
}

type contributionLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContributionLinkRepo(db *gorm.DB, baseLog *logger.Logger) ContributionLinkRepo {
	repoLog := baseLog.With("repo", "ContributionLinkRepo")
	return &contributionLinkRepo{db: db, log: repoLog}
}

func (r *contributionLinkRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.ContributionLink) ([]*types.ContributionLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.ContributionLink{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *contributionLinkRepo) GetByIDs(ctx context.Context, tx *gorm.DB, linkIDs []uuid.UUID) ([]*types.ContributionLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContributionLink
	if len(linkIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", linkIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contributionLinkRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.ContributionLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContributionLink
	if len(projectIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contributionLinkRepo) GetByCandidateIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) ([]*types.ContributionLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContributionLink
	if len(candidateIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("candidate_id IN ?", candidateIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contributionLinkRepo) GetByCandidateAndProject(ctx context.Context, tx *gorm.DB, candidateID, projectID uuid.UUID) (*types.ContributionLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContributionLink
	if err := transaction.WithContext(ctx).
		Where("candidate_id = ? AND project_id = ?", candidateID, projectID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *contributionLinkRepo) Save(ctx context.Context, tx *gorm.DB, link *types.ContributionLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if link == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(link).Error
}

func (r *contributionLinkRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, linkIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(linkIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", linkIDs).
		Delete(&types.ContributionLink{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *contributionLinkRepo) FullDeleteByCandidateIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(candidateIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("candidate_id IN ?", candidateIDs).
		Delete(&types.ContributionLink{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *contributionLinkRepo) CountDistinctCandidates(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContributionLink{}).
		Where("project_id = ?", projectID).
		Distinct("candidate_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
