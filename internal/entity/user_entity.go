// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the billing-side projection of the platform user. Identity and
// authentication live in the auth service; this service only reads the
// verification flag and owns the engagement counters.
type User struct {
	Id          uuid.UUID
	Email       string
	IsVerified  bool
	LastLoginAt *time.Time
	StreakCount int
	Xp          int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
