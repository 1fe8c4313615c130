package auth

import "time"

// Identity is the payload of a successfully verified bearer credential.
// It is cached by raw credential value and never persisted on its own.
type Identity struct {
	SubjectID     string    `json:"subject_id"`
	Issuer        string    `json:"issuer"`
	Audience      string    `json:"audience"`
	Email         string    `json:"email,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (id *Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.After(now)
}
