package auth

import (
	"time"

	"github.com/corkboard/corkboard/internal/shared"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         shared.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
