package model

import (
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	DiscountType  string     `gorm:"type:varchar(50);not null"`
	DiscountValue float64    `gorm:"type:decimal(10,2);not null"`
	ApplicableTo  string     `gorm:"type:varchar(50);not null;default:'ALL'"`
	IsActive      bool       `gorm:"default:true"`
	ExpiryDate    *time.Time `gorm:""`
	MaxUses       *int       `gorm:""`
	UsedCount     int        `gorm:"not null;default:0"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// CouponUsage enforces single use per user via the composite unique index.
type CouponUsage struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CouponId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_user"`
	UserId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_user"`
	UsedAt   time.Time `gorm:"default:now();not null"`
}

func (CouponUsage) TableName() string {
	return "coupon_usages"
}
