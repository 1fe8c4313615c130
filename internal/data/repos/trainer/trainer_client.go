package trainer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// TrainerClientRepo covers the trainer/client relationship table. Request
// handling only reads it; rows are written by admin flows.
type TrainerClientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rels []*types.TrainerClient) ([]*types.TrainerClient, error)
	HasActiveRelationship(ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID) (bool, error)
	ListActiveClientIDs(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID, status types.RelationshipStatus) error
}

type trainerClientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainerClientRepo(db *gorm.DB, baseLog *logger.Logger) TrainerClientRepo {
	repoLog := baseLog.With("repo", "TrainerClientRepo")
	return &trainerClientRepo{db: db, log: repoLog}
}

func (tr *trainerClientRepo) Create(ctx context.Context, tx *gorm.DB, rels []*types.TrainerClient) ([]*types.TrainerClient, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(rels) == 0 {
		return []*types.TrainerClient{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (tr *trainerClientRepo) HasActiveRelationship(ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TrainerClient{}).
		Where("trainer_id = ? AND client_id = ? AND status = ?", trainerID, clientID, types.RelationshipActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tr *trainerClientRepo) ListActiveClientIDs(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var clientIDs []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.TrainerClient{}).
		Where("trainer_id = ? AND status = ?", trainerID, types.RelationshipActive).
		Pluck("client_id", &clientIDs).Error; err != nil {
		return nil, err
	}
	return clientIDs, nil
}

func (tr *trainerClientRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID, status types.RelationshipStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.TrainerClient{}).
		Where("trainer_id = ? AND client_id = ?", trainerID, clientID).
		Update("status", status).Error
}
