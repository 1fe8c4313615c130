package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/fitbridge/fitbridge-backend/internal/http"
	httpH "github.com/fitbridge/fitbridge-backend/internal/http/handlers"
	httpMW "github.com/fitbridge/fitbridge-backend/internal/http/middleware"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	User    *httpH.UserHandler
	Avatar  *httpH.AvatarHandler
	Workout *httpH.WorkoutHandler
	Goal    *httpH.GoalHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Verifier, services.User),
	}
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		User:    httpH.NewUserHandler(services.User, services.Access, services.Avatar),
		Avatar:  httpH.NewAvatarHandler(services.Avatar),
		Workout: httpH.NewWorkoutHandler(services.Workout),
		Goal:    httpH.NewGoalHandler(services.Goal),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,
		AllowedOrigins: cfg.AllowedOrigins,
		HealthHandler:  handlers.Health,
		UserHandler:    handlers.User,
		AvatarHandler:  handlers.Avatar,
		WorkoutHandler: handlers.Workout,
		GoalHandler:    handlers.Goal,
	})
}
