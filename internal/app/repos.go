package app

import (
	"gorm.io/gorm"

	fitnessrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/fitness"
	trainerrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/trainer"
	userrepo "github.com/fitbridge/fitbridge-backend/internal/data/repos/user"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

type Repos struct {
	User          userrepo.UserRepo
	TrainerClient trainerrepo.TrainerClientRepo
	Workout       fitnessrepo.WorkoutRepo
	Goal          fitnessrepo.GoalRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          userrepo.NewUserRepo(db, log),
		TrainerClient: trainerrepo.NewTrainerClientRepo(db, log),
		Workout:       fitnessrepo.NewWorkoutRepo(db, log),
		Goal:          fitnessrepo.NewGoalRepo(db, log),
	}
}
