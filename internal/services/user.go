package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/user"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// UserService owns the mapping between verified token subjects and user rows.
type UserService interface {
	ResolveOrCreate(ctx context.Context, subjectID, email string) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, notes *string) (*types.User, error)
	PromoteRole(ctx context.Context, userID uuid.UUID, role types.Role) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo userrepo.UserRepo
}

func NewUserService(log *logger.Logger, userRepo userrepo.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

// ResolveOrCreate finds the user row for a verified subject, creating one on
// first sight. Two requests racing on the same new subject both resolve to the
// single row the unique subject_id constraint lets through.
func (us *userService) ResolveOrCreate(ctx context.Context, subjectID, email string) (*types.User, error) {
	if subjectID == "" {
		return nil, apierr.Unauthenticated(fmt.Errorf("empty subject id"))
	}

	existing, err := us.userRepo.GetBySubjectIDs(ctx, nil, []string{subjectID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("lookup user by subject: %w", err))
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	created, err := us.userRepo.Create(ctx, nil, []*types.User{
		{
			ID:        uuid.New(),
			SubjectID: subjectID,
			Email:     email,
			Role:      types.RoleClient,
		},
	})
	if err == nil {
		us.log.Info("Created user for new subject", "user_id", created[0].ID)
		return created[0], nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierr.Internal(fmt.Errorf("create user: %w", err))
	}

	// Lost the insert race, the row exists now.
	refetched, err := us.userRepo.GetBySubjectIDs(ctx, nil, []string{subjectID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("refetch user by subject: %w", err))
	}
	if len(refetched) == 0 {
		return nil, apierr.Internal(fmt.Errorf("user for subject vanished after duplicate key"))
	}
	return refetched[0], nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get user: %w", err))
	}
	if len(found) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("user %s not found", userID))
	}
	return found[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, notes *string) (*types.User, error) {
	if _, err := us.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := us.userRepo.UpdateProfile(ctx, nil, userID, displayName, notes); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update profile: %w", err))
	}
	return us.GetByID(ctx, userID)
}

func (us *userService) PromoteRole(ctx context.Context, userID uuid.UUID, role types.Role) (*types.User, error) {
	switch role {
	case types.RoleTrainer, types.RoleClient, types.RoleAdmin:
	default:
		return nil, apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("unknown role %q", role))
	}
	if _, err := us.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := us.userRepo.UpdateRole(ctx, nil, userID, role); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update role: %w", err))
	}
	us.log.Info("Updated user role", "user_id", userID, "role", role)
	return us.GetByID(ctx, userID)
}
