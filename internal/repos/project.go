package repos

import (
	"context"
	"hash/fnv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/types"
)

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error)
	// GetByIDsForUpdate loads rows under FOR UPDATE (postgres only) in
	// ascending id order, so concurrent merges over overlapping projects
	// acquire locks in the same order and cannot deadlock.
	GetByIDsForUpdate(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error)
	// GetActive returns non-tombstoned projects (merged_into_id IS NULL).
	GetActive(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Project, error)
	GetByMergedIntoIDs(ctx context.Context, tx *gorm.DB, targetIDs []uuid.UUID) ([]*types.Project, error)
	Save(ctx context.Context, tx *gorm.DB, project *types.Project) error
	// AdvisoryLockName takes a transaction-scoped advisory lock keyed by the
	// normalized project name. Serializes concurrent first-mention creation of
	// the same real project. No-op on dialects without advisory locks.
	AdvisoryLockName(ctx context.Context, tx *gorm.DB, normalizedName string) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(projects) == 0 {
		return []*types.Project{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Project
	if len(projectIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", projectIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) GetByIDsForUpdate(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Project
	if len(projectIDs) == 0 {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Where("id IN ?", projectIDs).
		Order("id ASC")
	if transaction.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) GetActive(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Project
	query := transaction.WithContext(ctx).
		Where("merged_into_id IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) GetByMergedIntoIDs(ctx context.Context, tx *gorm.DB, targetIDs []uuid.UUID) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Project
	if len(targetIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("merged_into_id IN ?", targetIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) Save(ctx context.Context, tx *gorm.DB, project *types.Project) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if project == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(project).Error
}

func (r *projectRepo) AdvisoryLockName(ctx context.Context, tx *gorm.DB, normalizedName string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if transaction.Dialector.Name() != "postgres" || normalizedName == "" {
		return nil
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalizedName))
	key := int64(h.Sum64())
	return transaction.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", key).Error
}
