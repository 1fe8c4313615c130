package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	userrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/user"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/platform/bucket"
	"github.com/fitbridge/fitbridge-backend/internal/platform/cache"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

const (
	avatarMaxBytes      = 5 << 20
	avatarSignedURLTTL  = 7 * 24 * time.Hour
	avatarURLCacheTTL   = time.Hour
	avatarObjectPrefix  = "avatars"
	gravatarURLTemplate = "https://www.gravatar.com/avatar/%s?s=200&d=identicon"
)

var avatarContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AvatarService resolves profile picture URLs and manages custom uploads.
// A user without a custom upload always resolves to a gravatar identicon,
// so Resolve never returns an empty URL.
type AvatarService interface {
	Resolve(ctx context.Context, user *types.User) (string, error)
	Upload(ctx context.Context, user *types.User, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, user *types.User) error
	UseGravatar(ctx context.Context, user *types.User) (string, error)
	GravatarURL(email string) string
}

type avatarService struct {
	log      *logger.Logger
	objects  bucket.ObjectStore
	urlCache cache.Store
	userRepo userrepo.UserRepo
}

func NewAvatarService(log *logger.Logger, objects bucket.ObjectStore, urlCache cache.Store, userRepo userrepo.UserRepo) AvatarService {
	serviceLog := log.With("service", "AvatarService")
	return &avatarService{
		log:      serviceLog,
		objects:  objects,
		urlCache: urlCache,
		userRepo: userRepo,
	}
}

func (av *avatarService) Resolve(ctx context.Context, user *types.User) (string, error) {
	if user == nil {
		return "", apierr.Internal(fmt.Errorf("resolve avatar for nil user"))
	}
	if !user.HasCustomAvatar() {
		return av.GravatarURL(user.Email), nil
	}

	cacheKey := user.ID.String()

	var cached string
	hit, err := av.urlCache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		av.log.Warn("Avatar URL cache read failed", "user_id", user.ID, "error", err)
	}
	if hit && cached != "" {
		return cached, nil
	}

	signed, err := av.objects.SignedURL(av.objectKey(user.SubjectID), avatarSignedURLTTL)
	if err != nil {
		av.log.Error("Signing avatar URL failed, falling back to gravatar",
			"user_id", user.ID, "error", err)
		return av.GravatarURL(user.Email), nil
	}

	if err := av.urlCache.SetJSON(ctx, cacheKey, signed, avatarURLCacheTTL); err != nil {
		av.log.Warn("Avatar URL cache write failed", "user_id", user.ID, "error", err)
	}
	return signed, nil
}

func (av *avatarService) Upload(ctx context.Context, user *types.User, data []byte, contentType string) (string, error) {
	if user == nil {
		return "", apierr.Internal(fmt.Errorf("upload avatar for nil user"))
	}
	if len(data) == 0 {
		return "", apierr.New(400, apierr.CodeInvalidRequest, fmt.Errorf("empty avatar payload"))
	}
	if len(data) > avatarMaxBytes {
		return "", apierr.New(400, apierr.CodeInvalidRequest,
			fmt.Errorf("avatar exceeds %d bytes", avatarMaxBytes))
	}
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := avatarContentTypes[normalized]; !ok {
		return "", apierr.New(400, apierr.CodeInvalidRequest,
			fmt.Errorf("unsupported avatar content type %q", contentType))
	}

	key := av.objectKey(user.SubjectID)
	if err := av.objects.Upload(ctx, key, bytes.NewReader(data), normalized); err != nil {
		return "", apierr.Internal(fmt.Errorf("upload avatar object: %w", err))
	}

	if err := av.userRepo.UpdateAvatarRef(ctx, nil, user.ID, types.AvatarRefCustom); err != nil {
		return "", apierr.Internal(fmt.Errorf("update avatar ref: %w", err))
	}

	if err := av.urlCache.Delete(ctx, user.ID.String()); err != nil {
		av.log.Warn("Avatar URL cache invalidation failed", "user_id", user.ID, "error", err)
	}

	signed, err := av.objects.SignedURL(key, avatarSignedURLTTL)
	if err != nil {
		return "", apierr.Internal(fmt.Errorf("sign avatar url: %w", err))
	}
	if err := av.urlCache.SetJSON(ctx, user.ID.String(), signed, avatarURLCacheTTL); err != nil {
		av.log.Warn("Avatar URL cache write failed", "user_id", user.ID, "error", err)
	}

	av.log.Info("Uploaded custom avatar", "user_id", user.ID, "bytes", len(data))
	return signed, nil
}

func (av *avatarService) Remove(ctx context.Context, user *types.User) error {
	if user == nil {
		return apierr.Internal(fmt.Errorf("remove avatar for nil user"))
	}
	if !user.HasCustomAvatar() {
		return apierr.NotFound(fmt.Errorf("user has no custom avatar"))
	}

	// The ref flip is what matters. A stranded object gets overwritten on the
	// next upload since the key is derived from the subject.
	if err := av.objects.Delete(ctx, av.objectKey(user.SubjectID)); err != nil {
		av.log.Warn("Avatar object delete failed", "user_id", user.ID, "error", err)
	}
	if err := av.userRepo.UpdateAvatarRef(ctx, nil, user.ID, ""); err != nil {
		return apierr.Internal(fmt.Errorf("clear avatar ref: %w", err))
	}
	if err := av.urlCache.Delete(ctx, user.ID.String()); err != nil {
		av.log.Warn("Avatar URL cache invalidation failed", "user_id", user.ID, "error", err)
	}

	av.log.Info("Removed custom avatar", "user_id", user.ID)
	return nil
}

// UseGravatar flips a user back to the gravatar tier without touching the
// stored object.
func (av *avatarService) UseGravatar(ctx context.Context, user *types.User) (string, error) {
	if user == nil {
		return "", apierr.Internal(fmt.Errorf("set gravatar for nil user"))
	}
	if user.HasCustomAvatar() {
		if err := av.userRepo.UpdateAvatarRef(ctx, nil, user.ID, ""); err != nil {
			return "", apierr.Internal(fmt.Errorf("clear avatar ref: %w", err))
		}
		if err := av.urlCache.Delete(ctx, user.ID.String()); err != nil {
			av.log.Warn("Avatar URL cache invalidation failed", "user_id", user.ID, "error", err)
		}
	}
	return av.GravatarURL(user.Email), nil
}

func (av *avatarService) GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf(gravatarURLTemplate, hex.EncodeToString(sum[:]))
}

// objectKey shards avatar objects by subject prefix so a single directory
// listing never has to walk the whole user base.
func (av *avatarService) objectKey(subjectID string) string {
	shard := subjectID
	if len(shard) > 6 {
		shard = shard[:6]
	}
	return fmt.Sprintf("%s/%s/%s", avatarObjectPrefix, shard, subjectID)
}
