package http

import (
	"github.com/gin-gonic/gin"

	types "github.com/fitbridge/fitbridge-backend/internal/domain"
	httpH "github.com/fitbridge/fitbridge-backend/internal/http/handlers"
	httpMW "github.com/fitbridge/fitbridge-backend/internal/http/middleware"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	AllowedOrigins []string

	HealthHandler  *httpH.HealthHandler
	UserHandler    *httpH.UserHandler
	AvatarHandler  *httpH.AvatarHandler
	WorkoutHandler *httpH.WorkoutHandler
	GoalHandler    *httpH.GoalHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health (public)
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.GET("/users/:id", cfg.UserHandler.GetUser)
			protected.PATCH("/users/:id", cfg.UserHandler.UpdateUser)
			protected.GET("/clients", cfg.UserHandler.ListClients)
		}

		if cfg.AvatarHandler != nil {
			protected.GET("/avatar", cfg.AvatarHandler.GetAvatar)
			protected.POST("/avatar/upload", cfg.AvatarHandler.Upload)
			protected.DELETE("/avatar", cfg.AvatarHandler.Remove)
			protected.POST("/avatar/gravatar", cfg.AvatarHandler.SetGravatar)
		}

		if cfg.WorkoutHandler != nil {
			protected.GET("/workouts", cfg.WorkoutHandler.List)
			protected.POST("/workouts", cfg.WorkoutHandler.Create)
			protected.PATCH("/workouts/:id", cfg.WorkoutHandler.Update)
			protected.DELETE("/workouts/:id", cfg.WorkoutHandler.Delete)
		}

		if cfg.GoalHandler != nil {
			protected.GET("/goals", cfg.GoalHandler.List)
			protected.POST("/goals", cfg.GoalHandler.Create)
			protected.PATCH("/goals/:id", cfg.GoalHandler.Update)
			protected.DELETE("/goals/:id", cfg.GoalHandler.Delete)
		}

		if cfg.UserHandler != nil && cfg.AuthMiddleware != nil {
			admin := protected.Group("/admin")
			admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
			admin.POST("/users/:id/role", cfg.UserHandler.PromoteRole)
		}
	}

	return r
}
