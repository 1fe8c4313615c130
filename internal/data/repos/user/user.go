package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	GetBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []string) ([]*types.User, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName, notes *string) error
	UpdateAvatarRef(ctx context.Context, tx *gorm.DB, userID uuid.UUID, avatarRef string) error
	UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User

	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(subjectIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("subject_id IN ?", subjectIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName, notes *string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	updates := map[string]any{}
	if displayName != nil {
		updates["display_name"] = *displayName
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (ur *userRepo) UpdateAvatarRef(ctx context.Context, tx *gorm.DB, userID uuid.UUID, avatarRef string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("avatar_ref", avatarRef).Error
}

func (ur *userRepo) UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}
