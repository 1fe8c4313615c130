package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

func TestCanAccessSelf(t *testing.T) {
	svc := NewAccessService(testLogger(t), newFakeTrainerClientRepo())
	self := &types.User{ID: uuid.New(), Role: types.RoleClient}

	allowed, err := svc.CanAccess(context.Background(), self, self.ID)
	if err != nil {
		t.Fatalf("CanAccess: %v", err)
	}
	if !allowed {
		t.Fatalf("self access must always be allowed")
	}
}

func TestCanAccessTrainerWithActiveClient(t *testing.T) {
	repo := newFakeTrainerClientRepo()
	svc := NewAccessService(testLogger(t), repo)

	trainer := &types.User{ID: uuid.New(), Role: types.RoleTrainer}
	clientID := uuid.New()
	repo.link(trainer.ID, clientID)

	allowed, err := svc.CanAccess(context.Background(), trainer, clientID)
	if err != nil {
		t.Fatalf("CanAccess: %v", err)
	}
	if !allowed {
		t.Fatalf("trainer with active relationship must be allowed")
	}

	allowed, err = svc.CanAccess(context.Background(), trainer, uuid.New())
	if err != nil {
		t.Fatalf("CanAccess (stranger): %v", err)
	}
	if allowed {
		t.Fatalf("trainer without relationship must be denied")
	}
}

func TestCanAccessClientNeverReachesOthers(t *testing.T) {
	repo := newFakeTrainerClientRepo()
	svc := NewAccessService(testLogger(t), repo)

	client := &types.User{ID: uuid.New(), Role: types.RoleClient}
	otherID := uuid.New()
	// Even a recorded relationship does not grant a client-role requester.
	repo.link(client.ID, otherID)

	allowed, err := svc.CanAccess(context.Background(), client, otherID)
	if err != nil {
		t.Fatalf("CanAccess: %v", err)
	}
	if allowed {
		t.Fatalf("client role must never access other users")
	}
}

func TestCanAccessFailsClosedOnLookupError(t *testing.T) {
	repo := newFakeTrainerClientRepo()
	repo.lookupErr = errors.New("connection refused")
	svc := NewAccessService(testLogger(t), repo)

	trainer := &types.User{ID: uuid.New(), Role: types.RoleTrainer}

	allowed, err := svc.CanAccess(context.Background(), trainer, uuid.New())
	if err == nil {
		t.Fatalf("expected error from failed lookup")
	}
	if allowed {
		t.Fatalf("lookup failure must deny")
	}
}

func TestCanAccessNilRequester(t *testing.T) {
	svc := NewAccessService(testLogger(t), newFakeTrainerClientRepo())

	allowed, err := svc.CanAccess(context.Background(), nil, uuid.New())
	if err != nil {
		t.Fatalf("CanAccess: %v", err)
	}
	if allowed {
		t.Fatalf("nil requester must be denied")
	}
}

func TestListClientIDs(t *testing.T) {
	repo := newFakeTrainerClientRepo()
	svc := NewAccessService(testLogger(t), repo)

	trainer := &types.User{ID: uuid.New(), Role: types.RoleTrainer}
	clientID := uuid.New()
	repo.link(trainer.ID, clientID)

	ids, err := svc.ListClientIDs(context.Background(), trainer)
	if err != nil {
		t.Fatalf("ListClientIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != clientID {
		t.Fatalf("unexpected client ids: %v", ids)
	}

	client := &types.User{ID: uuid.New(), Role: types.RoleClient}
	ids, err = svc.ListClientIDs(context.Background(), client)
	if err != nil {
		t.Fatalf("ListClientIDs (client role): %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("client role must list no clients, got %v", ids)
	}
}
