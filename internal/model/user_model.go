package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the shared users table owned by the auth service. This
// service reads is_verified and writes only the engagement columns.
type User struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	IsVerified  bool       `gorm:"default:false"`
	LastLoginAt *time.Time `gorm:""`
	StreakCount int        `gorm:"default:0"`
	Xp          int        `gorm:"default:0"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
