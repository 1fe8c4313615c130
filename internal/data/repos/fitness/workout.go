package fitness

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type WorkoutRepo interface {
	Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Workout, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Workout, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type workoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
	repoLog := baseLog.With("repo", "WorkoutRepo")
	return &workoutRepo{db: db, log: repoLog}
}

func (wr *workoutRepo) Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(workouts) == 0 {
		return []*types.Workout{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (wr *workoutRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.Workout
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

func (wr *workoutRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var results []*types.Workout
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Workout{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (wr *workoutRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Workout{}).Error
}
