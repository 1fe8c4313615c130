package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitbridge/fitbridge-backend/internal/data/repos/testutil"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{
			ID:          uuid.New(),
			SubjectID:   "firebase-uid-1",
			Email:       "userrepo@example.com",
			DisplayName: "User Repo",
			Role:        types.RoleClient,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotBySubjects, err := repo.GetBySubjectIDs(ctx, tx, []string{"firebase-uid-1"})
	if err != nil {
		t.Fatalf("GetBySubjectIDs: %v", err)
	}
	if len(gotBySubjects) != 1 || gotBySubjects[0].SubjectID != "firebase-uid-1" {
		t.Fatalf("GetBySubjectIDs: unexpected result: %+v", gotBySubjects)
	}

	gotBySubjects, err = repo.GetBySubjectIDs(ctx, tx, []string{"no-such-subject"})
	if err != nil {
		t.Fatalf("GetBySubjectIDs (missing): %v", err)
	}
	if len(gotBySubjects) != 0 {
		t.Fatalf("GetBySubjectIDs (missing): expected empty, got %+v", gotBySubjects)
	}
}

func TestUserRepoDuplicateSubjectID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedUser(t, ctx, tx, "dup-subject", "first@example.com", types.RoleClient)

	_, err := repo.Create(ctx, tx, []*types.User{
		{
			ID:        uuid.New(),
			SubjectID: "dup-subject",
			Email:     "second@example.com",
			Role:      types.RoleClient,
		},
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create duplicate subject: expected ErrDuplicatedKey, got %v", err)
	}
}

func TestUserRepoUpdates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "update-subject", "update@example.com", types.RoleClient)

	if err := repo.UpdateProfile(ctx, tx, u.ID, testutil.PtrString("New Name"), testutil.PtrString("notes")); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if err := repo.UpdateAvatarRef(ctx, tx, u.ID, types.AvatarRefCustom); err != nil {
		t.Fatalf("UpdateAvatarRef: %v", err)
	}
	if err := repo.UpdateRole(ctx, tx, u.ID, types.RoleTrainer); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetByIDs: expected 1 user, got %d", len(got))
	}
	if got[0].DisplayName != "New Name" {
		t.Fatalf("DisplayName not updated: %q", got[0].DisplayName)
	}
	if got[0].Notes != "notes" {
		t.Fatalf("Notes not updated: %q", got[0].Notes)
	}
	if got[0].AvatarRef != types.AvatarRefCustom {
		t.Fatalf("AvatarRef not updated: %q", got[0].AvatarRef)
	}
	if got[0].Role != types.RoleTrainer {
		t.Fatalf("Role not updated: %q", got[0].Role)
	}
}

func TestUserRepoUpdateProfilePartial(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "partial-subject", "partial@example.com", types.RoleClient)

	if err := repo.UpdateProfile(ctx, tx, u.ID, testutil.PtrString("Only Name"), nil); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if got[0].DisplayName != "Only Name" {
		t.Fatalf("DisplayName not updated: %q", got[0].DisplayName)
	}
	if got[0].Notes != u.Notes {
		t.Fatalf("Notes should be unchanged, got %q", got[0].Notes)
	}
}
