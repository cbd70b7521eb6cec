package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/types"
)

type MergeHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, histories []*types.MergeHistory) ([]*types.MergeHistory, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, historyIDs []uuid.UUID) ([]*types.MergeHistory, error)
	// GetUnreversed returns histories still in effect (reversed_at IS NULL).
	GetUnreversed(ctx context.Context, tx *gorm.DB) ([]*types.MergeHistory, error)
	GetUnreversedBySourceIDs(ctx context.Context, tx *gorm.DB, sourceIDs []uuid.UUID) ([]*types.MergeHistory, error)
	Save(ctx context.Context, tx *gorm.DB, history *types.MergeHistory) error
}

type mergeHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMergeHistoryRepo(db *gorm.DB, baseLog *logger.Logger) MergeHistoryRepo {
	repoLog := baseLog.With("repo", "MergeHistoryRepo")
	return &mergeHistoryRepo{db: db, log: repoLog}
}

func (r *mergeHistoryRepo) Create(ctx context.Context, tx *gorm.DB, histories []*types.MergeHistory) ([]*types.MergeHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(histories) == 0 {
		return []*types.MergeHistory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *mergeHistoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, historyIDs []uuid.UUID) ([]*types.MergeHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MergeHistory
	if len(historyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", historyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mergeHistoryRepo) GetUnreversed(ctx context.Context, tx *gorm.DB) ([]*types.MergeHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MergeHistory
	if err := transaction.WithContext(ctx).
		Where("reversed_at IS NULL").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mergeHistoryRepo) GetUnreversedBySourceIDs(ctx context.Context, tx *gorm.DB, sourceIDs []uuid.UUID) ([]*types.MergeHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MergeHistory
	if len(sourceIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("source_project_id IN ? AND reversed_at IS NULL", sourceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mergeHistoryRepo) Save(ctx context.Context, tx *gorm.DB, history *types.MergeHistory) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if history == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(history).Error
}
