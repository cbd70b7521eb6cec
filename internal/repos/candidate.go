package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/types"
)

type CandidateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, candidates []*types.Candidate) ([]*types.Candidate, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) ([]*types.Candidate, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) error
}

type candidateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateRepo(db *gorm.DB, baseLog *logger.Logger) CandidateRepo {
	repoLog := baseLog.With("repo", "CandidateRepo")
	return &candidateRepo{db: db, log: repoLog}
}

func (r *candidateRepo) Create(ctx context.Context, tx *gorm.DB, candidates []*types.Candidate) ([]*types.Candidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(candidates) == 0 {
		return []*types.Candidate{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *candidateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) ([]*types.Candidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Candidate
	if len(candidateIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", candidateIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *candidateRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(candidateIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", candidateIDs).
		Delete(&types.Candidate{}).Error; err != nil {
		return err
	}
	return nil
}
