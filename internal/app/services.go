package app

import (
	"fmt"

	"github.com/fitbridge/fitbridge-backend/internal/auth"
	"github.com/fitbridge/fitbridge-backend/internal/platform/bucket"
	"github.com/fitbridge/fitbridge-backend/internal/platform/cache"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
	"github.com/fitbridge/fitbridge-backend/internal/services"
)

type Services struct {
	User    services.UserService
	Access  services.AccessService
	Avatar  services.AvatarService
	Workout services.WorkoutService
	Goal    services.GoalService

	Verifier *auth.Verifier
}

func wireServices(log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	store, err := cache.New(log, cache.Config{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init redis: %w", err)
	}

	objects, err := bucket.New(log, bucket.Config{
		BucketName:      cfg.BucketName,
		CredentialsFile: cfg.BucketCredentialsFile,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init bucket: %w", err)
	}

	keys := auth.NewKeySetFetcher(log, cfg.JWKSURL, cfg.KeySetTTL)
	verifier := auth.NewVerifier(log, keys, cache.Namespace(store, "token"), auth.VerifierConfig{
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		CacheTTL: cfg.TokenCacheTTL,
	})

	userService := services.NewUserService(log, repos.User)
	accessService := services.NewAccessService(log, repos.TrainerClient)
	avatarService := services.NewAvatarService(log, objects, cache.Namespace(store, "avatar"), repos.User)

	return Services{
		User:     userService,
		Access:   accessService,
		Avatar:   avatarService,
		Workout:  services.NewWorkoutService(log, repos.Workout, accessService),
		Goal:     services.NewGoalService(log, repos.Goal, accessService),
		Verifier: verifier,
	}, nil
}
