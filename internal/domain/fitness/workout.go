package fitness

import (
	"time"

	"github.com/google/uuid"
)

type Intensity string

const (
	IntensityLow    Intensity = "LOW"
	IntensityMedium Intensity = "MEDIUM"
	IntensityHigh   Intensity = "HIGH"
)

type Workout struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	TrainerID       *uuid.UUID `gorm:"type:uuid;column:trainer_id" json:"trainer_id,omitempty"`
	Name            string     `gorm:"not null;column:name" json:"name"`
	Description     string     `gorm:"column:description" json:"description"`
	Date            time.Time  `gorm:"not null;index;column:date" json:"date"`
	DurationMinutes int        `gorm:"not null;default:0;column:duration_minutes" json:"duration_minutes"`
	Intensity       Intensity  `gorm:"not null;default:'MEDIUM';column:intensity" json:"intensity"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Workout) TableName() string { return "workouts" }
