package domain

import (
	"github.com/fitbridge/fitbridge-backend/internal/domain/fitness"
	"github.com/fitbridge/fitbridge-backend/internal/domain/user"
)

type (
	User               = user.User
	Role               = user.Role
	TrainerClient      = user.TrainerClient
	RelationshipStatus = user.RelationshipStatus

	Workout    = fitness.Workout
	Intensity  = fitness.Intensity
	Goal       = fitness.Goal
	GoalStatus = fitness.GoalStatus
)

const (
	RoleTrainer = user.RoleTrainer
	RoleClient  = user.RoleClient
	RoleAdmin   = user.RoleAdmin

	AvatarRefCustom = user.AvatarRefCustom

	RelationshipActive   = user.RelationshipActive
	RelationshipInactive = user.RelationshipInactive
	RelationshipPending  = user.RelationshipPending

	IntensityLow    = fitness.IntensityLow
	IntensityMedium = fitness.IntensityMedium
	IntensityHigh   = fitness.IntensityHigh

	GoalActive    = fitness.GoalActive
	GoalCompleted = fitness.GoalCompleted
	GoalArchived  = fitness.GoalArchived
)
