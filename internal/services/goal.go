package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	fitnessrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/fitness"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type GoalInput struct {
	Title  string  `json:"title"`
	Metric string  `json:"metric"`
	Target float64 `json:"target"`
}

type GoalService interface {
	List(ctx context.Context, requester *types.User, targetUserID uuid.UUID, limit, offset int) ([]*types.Goal, error)
	Create(ctx context.Context, requester *types.User, targetUserID uuid.UUID, input GoalInput) (*types.Goal, error)
	Update(ctx context.Context, requester *types.User, goalID uuid.UUID, updates map[string]any) (*types.Goal, error)
	Delete(ctx context.Context, requester *types.User, goalID uuid.UUID) error
}

type goalService struct {
	log      *logger.Logger
	goalRepo fitnessrepo.GoalRepo
	access   AccessService
}

func NewGoalService(log *logger.Logger, goalRepo fitnessrepo.GoalRepo, access AccessService) GoalService {
	serviceLog := log.With("service", "GoalService")
	return &goalService{log: serviceLog, goalRepo: goalRepo, access: access}
}

func (gs *goalService) List(ctx context.Context, requester *types.User, targetUserID uuid.UUID, limit, offset int) ([]*types.Goal, error) {
	if err := gs.requireAccess(ctx, requester, targetUserID); err != nil {
		return nil, err
	}
	goals, err := gs.goalRepo.ListByUserID(ctx, nil, targetUserID, limit, offset)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list goals: %w", err))
	}
	if goals == nil {
		goals = []*types.Goal{}
	}
	return goals, nil
}

func (gs *goalService) Create(ctx context.Context, requester *types.User, targetUserID uuid.UUID, input GoalInput) (*types.Goal, error) {
	if err := gs.requireAccess(ctx, requester, targetUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("goal title is required"))
	}

	goal := &types.Goal{
		ID:     uuid.New(),
		UserID: targetUserID,
		Title:  strings.TrimSpace(input.Title),
		Metric: input.Metric,
		Target: input.Target,
		Status: types.GoalActive,
	}
	created, err := gs.goalRepo.Create(ctx, nil, []*types.Goal{goal})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("create goal: %w", err))
	}
	return created[0], nil
}

func (gs *goalService) Update(ctx context.Context, requester *types.User, goalID uuid.UUID, updates map[string]any) (*types.Goal, error) {
	existing, err := gs.getOwned(ctx, requester, goalID)
	if err != nil {
		return nil, err
	}
	if status, ok := updates["status"]; ok {
		switch types.GoalStatus(fmt.Sprint(status)) {
		case types.GoalActive, types.GoalCompleted, types.GoalArchived:
		default:
			return nil, apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("unknown goal status %v", status))
		}
	}
	filtered := filterUpdates(updates, "title", "metric", "target", "current", "status")
	if len(filtered) == 0 {
		return existing, nil
	}
	if err := gs.goalRepo.Update(ctx, nil, goalID, filtered); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update goal: %w", err))
	}
	updated, err := gs.goalRepo.GetByIDs(ctx, nil, []uuid.UUID{goalID})
	if err != nil || len(updated) == 0 {
		return nil, apierr.Internal(fmt.Errorf("refetch goal: %w", err))
	}
	return updated[0], nil
}

func (gs *goalService) Delete(ctx context.Context, requester *types.User, goalID uuid.UUID) error {
	if _, err := gs.getOwned(ctx, requester, goalID); err != nil {
		return err
	}
	if err := gs.goalRepo.Delete(ctx, nil, goalID); err != nil {
		return apierr.Internal(fmt.Errorf("delete goal: %w", err))
	}
	return nil
}

func (gs *goalService) getOwned(ctx context.Context, requester *types.User, goalID uuid.UUID) (*types.Goal, error) {
	found, err := gs.goalRepo.GetByIDs(ctx, nil, []uuid.UUID{goalID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get goal: %w", err))
	}
	if len(found) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("goal %s not found", goalID))
	}
	if err := gs.requireAccess(ctx, requester, found[0].UserID); err != nil {
		return nil, err
	}
	return found[0], nil
}

func (gs *goalService) requireAccess(ctx context.Context, requester *types.User, targetUserID uuid.UUID) error {
	allowed, err := gs.access.CanAccess(ctx, requester, targetUserID)
	if err != nil {
		return apierr.Internal(err)
	}
	if !allowed {
		return apierr.Forbidden(fmt.Errorf("no access to user %s", targetUserID))
	}
	return nil
}
