package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleTrainer Role = "TRAINER"
	RoleClient  Role = "CLIENT"
	RoleAdmin   Role = "ADMIN"
)

// AvatarRefCustom marks a user whose avatar lives in the object store. An
// empty AvatarRef means "no custom avatar" and resolves to the email-derived
// fallback.
const AvatarRefCustom = "custom"

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubjectID   string    `gorm:"uniqueIndex;not null;column:subject_id" json:"subject_id"`
	Email       string    `gorm:"index;not null;column:email" json:"email"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`
	Role        Role      `gorm:"not null;default:'CLIENT';column:role" json:"role"`
	AvatarRef   string    `gorm:"column:avatar_ref" json:"avatar_ref"`
	Notes       string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) HasCustomAvatar() bool { return u.AvatarRef == AvatarRefCustom }
