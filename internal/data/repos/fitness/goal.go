package fitness

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Goal, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Goal, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	repoLog := baseLog.With("repo", "GoalRepo")
	return &goalRepo{db: db, log: repoLog}
}

func (gr *goalRepo) Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if len(goals) == 0 {
		return []*types.Goal{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (gr *goalRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Goal
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *goalRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *goalRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Goal{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (gr *goalRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Goal{}).Error
}
