package fitness

import (
	"time"

	"github.com/google/uuid"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalArchived  GoalStatus = "ARCHIVED"
)

type Goal struct {
	ID      uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Title   string     `gorm:"not null;column:title" json:"title"`
	Metric  string     `gorm:"not null;column:metric" json:"metric"`
	Target  float64    `gorm:"not null;column:target" json:"target"`
	Current float64    `gorm:"not null;default:0;column:current" json:"current"`
	Status  GoalStatus `gorm:"not null;default:'ACTIVE';column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Goal) TableName() string { return "goals" }
