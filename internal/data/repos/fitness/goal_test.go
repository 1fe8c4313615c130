package fitness

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge-backend/internal/data/repos/testutil"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

func TestGoalRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewGoalRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "goal-owner", "goal@example.com", types.RoleClient)

	created, err := repo.Create(ctx, tx, []*types.Goal{
		{
			ID:     uuid.New(),
			UserID: owner.ID,
			Title:  "Lose 5kg",
			Metric: "weight_kg",
			Target: 75,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 goal, got %d", len(created))
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Lose 5kg" {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}

	if err := repo.Update(ctx, tx, created[0].ID, map[string]any{
		"current": 2.5,
		"status":  types.GoalCompleted,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs (after update): %v", err)
	}
	if got[0].Current != 2.5 || got[0].Status != types.GoalCompleted {
		t.Fatalf("Update not applied: %+v", got[0])
	}

	listed, err := repo.ListByUserID(ctx, tx, owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListByUserID: expected 1 goal, got %d", len(listed))
	}

	if err := repo.Delete(ctx, tx, created[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	listed, err = repo.ListByUserID(ctx, tx, owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListByUserID (after delete): %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("Delete: goal still present: %+v", listed)
	}
}
