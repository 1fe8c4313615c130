package user

import (
	"time"

	"github.com/google/uuid"
)

type RelationshipStatus string

const (
	RelationshipActive   RelationshipStatus = "ACTIVE"
	RelationshipInactive RelationshipStatus = "INACTIVE"
	RelationshipPending  RelationshipStatus = "PENDING"
)

// TrainerClient links a trainer to a client. Only rows with status ACTIVE
// grant the trainer access to the client's data; a missing row and a
// non-active row are equivalent for authorization.
type TrainerClient struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TrainerID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_trainer_client;column:trainer_id" json:"trainer_id"`
	ClientID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_trainer_client;column:client_id" json:"client_id"`
	Status    RelationshipStatus `gorm:"not null;default:'PENDING';column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (TrainerClient) TableName() string { return "trainer_clients" }
