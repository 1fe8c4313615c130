package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/cache"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func testCache(t *testing.T) (cache.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := cache.New(testLogger(t), cache.Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("init cache: %v", err)
	}
	return store, mr
}

type fakeUserRepo struct {
	bySubject map[string]*types.User
	byID      map[uuid.UUID]*types.User

	createErr  error
	avatarRefs map[uuid.UUID]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		bySubject:  map[string]*types.User{},
		byID:       map[uuid.UUID]*types.User{},
		avatarRefs: map[uuid.UUID]string{},
	}
}

func (f *fakeUserRepo) add(u *types.User) *types.User {
	f.bySubject[u.SubjectID] = u
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range users {
		if _, exists := f.bySubject[u.SubjectID]; exists {
			return nil, gorm.ErrDuplicatedKey
		}
		f.add(u)
	}
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []string) ([]*types.User, error) {
	var out []*types.User
	for _, s := range subjectIDs {
		if u, ok := f.bySubject[s]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName, notes *string) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("user not found")
	}
	if displayName != nil {
		u.DisplayName = *displayName
	}
	if notes != nil {
		u.Notes = *notes
	}
	return nil
}

func (f *fakeUserRepo) UpdateAvatarRef(ctx context.Context, tx *gorm.DB, userID uuid.UUID, avatarRef string) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.AvatarRef = avatarRef
	f.avatarRefs[userID] = avatarRef
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.Role = role
	return nil
}

type fakeTrainerClientRepo struct {
	active    map[uuid.UUID]map[uuid.UUID]bool
	lookupErr error
}

func newFakeTrainerClientRepo() *fakeTrainerClientRepo {
	return &fakeTrainerClientRepo{active: map[uuid.UUID]map[uuid.UUID]bool{}}
}

func (f *fakeTrainerClientRepo) link(trainerID, clientID uuid.UUID) {
	if f.active[trainerID] == nil {
		f.active[trainerID] = map[uuid.UUID]bool{}
	}
	f.active[trainerID][clientID] = true
}

func (f *fakeTrainerClientRepo) Create(ctx context.Context, tx *gorm.DB, rels []*types.TrainerClient) ([]*types.TrainerClient, error) {
	for _, rel := range rels {
		if rel.Status == types.RelationshipActive {
			f.link(rel.TrainerID, rel.ClientID)
		}
	}
	return rels, nil
}

func (f *fakeTrainerClientRepo) HasActiveRelationship(ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.active[trainerID][clientID], nil
}

func (f *fakeTrainerClientRepo) ListActiveClientIDs(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]uuid.UUID, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	var out []uuid.UUID
	for clientID := range f.active[trainerID] {
		out = append(out, clientID)
	}
	return out, nil
}

func (f *fakeTrainerClientRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, trainerID, clientID uuid.UUID, status types.RelationshipStatus) error {
	if status == types.RelationshipActive {
		f.link(trainerID, clientID)
	} else if f.active[trainerID] != nil {
		delete(f.active[trainerID], clientID)
	}
	return nil
}

type fakeObjectStore struct {
	objects   map[string][]byte
	signErr   error
	signCalls int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[key] = raw
	return nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	if _, ok := f.objects[key]; !ok {
		return errors.New("object not found")
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) SignedURL(key string, validity time.Duration) (string, error) {
	f.signCalls++
	if f.signErr != nil {
		return "", f.signErr
	}
	return fmt.Sprintf("https://storage.example.com/%s?sig=%d", key, f.signCalls), nil
}
