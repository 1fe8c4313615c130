package trainer

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge-backend/internal/data/repos/testutil"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

func TestTrainerClientRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewTrainerClientRepo(db, testutil.Logger(t))
	ctx := context.Background()

	trainer := testutil.SeedUser(t, ctx, tx, "tc-trainer", "trainer@example.com", types.RoleTrainer)
	client := testutil.SeedUser(t, ctx, tx, "tc-client", "client@example.com", types.RoleClient)

	created, err := repo.Create(ctx, tx, []*types.TrainerClient{
		{
			ID:        uuid.New(),
			TrainerID: trainer.ID,
			ClientID:  client.ID,
			Status:    types.RelationshipActive,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 relationship, got %d", len(created))
	}

	active, err := repo.HasActiveRelationship(ctx, tx, trainer.ID, client.ID)
	if err != nil {
		t.Fatalf("HasActiveRelationship: %v", err)
	}
	if !active {
		t.Fatalf("HasActiveRelationship: expected true")
	}

	active, err = repo.HasActiveRelationship(ctx, tx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("HasActiveRelationship (reversed): %v", err)
	}
	if active {
		t.Fatalf("HasActiveRelationship (reversed): expected false")
	}

	ids, err := repo.ListActiveClientIDs(ctx, tx, trainer.ID)
	if err != nil {
		t.Fatalf("ListActiveClientIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != client.ID {
		t.Fatalf("ListActiveClientIDs: unexpected result: %v", ids)
	}
}

func TestTrainerClientRepoInactiveIsNotActive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewTrainerClientRepo(db, testutil.Logger(t))
	ctx := context.Background()

	trainer := testutil.SeedUser(t, ctx, tx, "tci-trainer", "tci-trainer@example.com", types.RoleTrainer)
	client := testutil.SeedUser(t, ctx, tx, "tci-client", "tci-client@example.com", types.RoleClient)

	testutil.SeedTrainerClient(t, ctx, tx, trainer.ID, client.ID, types.RelationshipInactive)

	active, err := repo.HasActiveRelationship(ctx, tx, trainer.ID, client.ID)
	if err != nil {
		t.Fatalf("HasActiveRelationship: %v", err)
	}
	if active {
		t.Fatalf("HasActiveRelationship: expected false for inactive relationship")
	}

	ids, err := repo.ListActiveClientIDs(ctx, tx, trainer.ID)
	if err != nil {
		t.Fatalf("ListActiveClientIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ListActiveClientIDs: expected empty, got %v", ids)
	}

	if err := repo.UpdateStatus(ctx, tx, trainer.ID, client.ID, types.RelationshipActive); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	active, err = repo.HasActiveRelationship(ctx, tx, trainer.ID, client.ID)
	if err != nil {
		t.Fatalf("HasActiveRelationship (after update): %v", err)
	}
	if !active {
		t.Fatalf("HasActiveRelationship (after update): expected true")
	}
}
