package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, subjectID, email string, role types.Role) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTrainerClient(tb testing.TB, ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID, status types.RelationshipStatus) *types.TrainerClient {
	tb.Helper()
	tc := &types.TrainerClient{
		ID:        uuid.New(),
		TrainerID: trainerID,
		ClientID:  clientID,
		Status:    status,
	}
	if err := tx.WithContext(ctx).Create(tc).Error; err != nil {
		tb.Fatalf("seed trainer client: %v", err)
	}
	return tc
}

func SeedWorkout(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) *types.Workout {
	tb.Helper()
	w := &types.Workout{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Date:            time.Now().UTC(),
		DurationMinutes: 45,
		Intensity:       types.IntensityMedium,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed workout: %v", err)
	}
	return w
}

func SeedGoal(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string) *types.Goal {
	tb.Helper()
	g := &types.Goal{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Metric: "weight_kg",
		Target: 80,
		Status: types.GoalActive,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}

func PtrString(v string) *string { return &v }

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
