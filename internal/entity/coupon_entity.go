// FILE: internal/entity/coupon_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string
type CouponType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"

	CouponTypeAll          CouponType = "ALL"
	CouponTypeSubscription CouponType = "SUBSCRIPTION"
	CouponTypeCredit       CouponType = "CREDIT"
)

type Coupon struct {
	Id            uuid.UUID
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	ApplicableTo  CouponType
	IsActive      bool
	ExpiryDate    *time.Time
	MaxUses       *int
	UsedCount     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CouponUsage struct {
	Id       uuid.UUID
	CouponId uuid.UUID
	UserId   uuid.UUID
	UsedAt   time.Time
}
