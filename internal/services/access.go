package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	trainerrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/trainer"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// AccessService decides whether a requester may read or write another user's
// data. Every decision degrades to deny: a storage failure never grants.
type AccessService interface {
	CanAccess(ctx context.Context, requester *types.User, targetUserID uuid.UUID) (bool, error)
	ListClientIDs(ctx context.Context, trainer *types.User) ([]uuid.UUID, error)
}

type accessService struct {
	log         *logger.Logger
	trainerRepo trainerrepo.TrainerClientRepo
}

func NewAccessService(log *logger.Logger, trainerRepo trainerrepo.TrainerClientRepo) AccessService {
	serviceLog := log.With("service", "AccessService")
	return &accessService{log: serviceLog, trainerRepo: trainerRepo}
}

func (as *accessService) CanAccess(ctx context.Context, requester *types.User, targetUserID uuid.UUID) (bool, error) {
	if requester == nil {
		return false, nil
	}
	if requester.ID == targetUserID {
		return true, nil
	}
	if requester.Role != types.RoleTrainer {
		return false, nil
	}

	active, err := as.trainerRepo.HasActiveRelationship(ctx, nil, requester.ID, targetUserID)
	if err != nil {
		as.log.Error("Relationship lookup failed, denying access",
			"trainer_id", requester.ID, "client_id", targetUserID, "error", err)
		return false, fmt.Errorf("relationship lookup: %w", err)
	}
	return active, nil
}

func (as *accessService) ListClientIDs(ctx context.Context, trainer *types.User) ([]uuid.UUID, error) {
	if trainer == nil || trainer.Role != types.RoleTrainer {
		return []uuid.UUID{}, nil
	}
	ids, err := as.trainerRepo.ListActiveClientIDs(ctx, nil, trainer.ID)
	if err != nil {
		return nil, fmt.Errorf("list client ids: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}
