package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	fitnessrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/fitness"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type WorkoutInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	DurationMinutes int             `json:"duration_minutes"`
	Intensity       types.Intensity `json:"intensity"`
}

type WorkoutService interface {
	List(ctx context.Context, requester *types.User, targetUserID uuid.UUID, limit, offset int) ([]*types.Workout, error)
	Create(ctx context.Context, requester *types.User, targetUserID uuid.UUID, input WorkoutInput) (*types.Workout, error)
	Update(ctx context.Context, requester *types.User, workoutID uuid.UUID, updates map[string]any) (*types.Workout, error)
	Delete(ctx context.Context, requester *types.User, workoutID uuid.UUID) error
}

type workoutService struct {
	log         *logger.Logger
	workoutRepo fitnessrepo.WorkoutRepo
	access      AccessService
}

func NewWorkoutService(log *logger.Logger, workoutRepo fitnessrepo.WorkoutRepo, access AccessService) WorkoutService {
	serviceLog := log.With("service", "WorkoutService")
	return &workoutService{log: serviceLog, workoutRepo: workoutRepo, access: access}
}

func (ws *workoutService) List(ctx context.Context, requester *types.User, targetUserID uuid.UUID, limit, offset int) ([]*types.Workout, error) {
	if err := ws.requireAccess(ctx, requester, targetUserID); err != nil {
		return nil, err
	}
	workouts, err := ws.workoutRepo.ListByUserID(ctx, nil, targetUserID, limit, offset)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list workouts: %w", err))
	}
	if workouts == nil {
		workouts = []*types.Workout{}
	}
	return workouts, nil
}

func (ws *workoutService) Create(ctx context.Context, requester *types.User, targetUserID uuid.UUID, input WorkoutInput) (*types.Workout, error) {
	if err := ws.requireAccess(ctx, requester, targetUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("workout name is required"))
	}
	if input.DurationMinutes < 0 {
		return nil, apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("duration must be non-negative"))
	}
	switch input.Intensity {
	case "", types.IntensityLow, types.IntensityMedium, types.IntensityHigh:
	default:
		return nil, apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("unknown intensity %q", input.Intensity))
	}

	workout := &types.Workout{
		ID:              uuid.New(),
		UserID:          targetUserID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Date:            input.Date,
		DurationMinutes: input.DurationMinutes,
		Intensity:       input.Intensity,
	}
	if workout.Date.IsZero() {
		workout.Date = time.Now().UTC()
	}
	if workout.Intensity == "" {
		workout.Intensity = types.IntensityMedium
	}
	// A trainer logging a session for a client is recorded as its author.
	if requester != nil && requester.ID != targetUserID {
		workout.TrainerID = &requester.ID
	}

	created, err := ws.workoutRepo.Create(ctx, nil, []*types.Workout{workout})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("create workout: %w", err))
	}
	return created[0], nil
}

func (ws *workoutService) Update(ctx context.Context, requester *types.User, workoutID uuid.UUID, updates map[string]any) (*types.Workout, error) {
	existing, err := ws.getOwned(ctx, requester, workoutID)
	if err != nil {
		return nil, err
	}
	filtered := filterUpdates(updates, "name", "description", "date", "duration_minutes", "intensity")
	if len(filtered) == 0 {
		return existing, nil
	}
	if err := ws.workoutRepo.Update(ctx, nil, workoutID, filtered); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update workout: %w", err))
	}
	updated, err := ws.workoutRepo.GetByIDs(ctx, nil, []uuid.UUID{workoutID})
	if err != nil || len(updated) == 0 {
		return nil, apierr.Internal(fmt.Errorf("refetch workout: %w", err))
	}
	return updated[0], nil
}

func (ws *workoutService) Delete(ctx context.Context, requester *types.User, workoutID uuid.UUID) error {
	if _, err := ws.getOwned(ctx, requester, workoutID); err != nil {
		return err
	}
	if err := ws.workoutRepo.Delete(ctx, nil, workoutID); err != nil {
		return apierr.Internal(fmt.Errorf("delete workout: %w", err))
	}
	return nil
}

func (ws *workoutService) getOwned(ctx context.Context, requester *types.User, workoutID uuid.UUID) (*types.Workout, error) {
	found, err := ws.workoutRepo.GetByIDs(ctx, nil, []uuid.UUID{workoutID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get workout: %w", err))
	}
	if len(found) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("workout %s not found", workoutID))
	}
	if err := ws.requireAccess(ctx, requester, found[0].UserID); err != nil {
		return nil, err
	}
	return found[0], nil
}

func (ws *workoutService) requireAccess(ctx context.Context, requester *types.User, targetUserID uuid.UUID) error {
	allowed, err := ws.access.CanAccess(ctx, requester, targetUserID)
	if err != nil {
		return apierr.Internal(err)
	}
	if !allowed {
		return apierr.Forbidden(fmt.Errorf("no access to user %s", targetUserID))
	}
	return nil
}

func filterUpdates(updates map[string]any, allowed ...string) map[string]any {
	if len(updates) == 0 {
		return nil
	}
	permitted := make(map[string]struct{}, len(allowed))
	for _, col := range allowed {
		permitted[col] = struct{}{}
	}
	filtered := make(map[string]any, len(updates))
	for col, val := range updates {
		if _, ok := permitted[col]; ok {
			filtered[col] = val
		}
	}
	return filtered
}
