package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                  string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName           string         `gorm:"type:varchar(255);not null"`
	PriceMonthly          float64        `gorm:"type:decimal(10,2);not null;default:0"`
	PriceYearly           float64        `gorm:"type:decimal(10,2);not null;default:0"`
	Features              datatypes.JSON `gorm:"type:jsonb;not null"`
	RazorpayPlanIdMonthly *string        `gorm:"type:varchar(255)"`
	RazorpayPlanIdYearly  *string        `gorm:"type:varchar(255)"`
	IsActive              bool           `gorm:"default:true"`
	SortOrder             int            `gorm:"default:0"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// UserSubscription holds the single subscription row per user (unique on
// user_id). Period fields advance through lazy renewal, not a scheduler.
type UserSubscription struct {
	Id                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                 uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PlanId                 uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                 string    `gorm:"type:varchar(50);not null"`
	RazorpayCustomerId     *string   `gorm:"type:varchar(255)"`
	RazorpaySubscriptionId *string   `gorm:"type:varchar(255);index"`
	CurrentPeriodStart     time.Time `gorm:"not null"`
	CurrentPeriodEnd       time.Time `gorm:"not null"`
	CancelAtPeriodEnd      bool      `gorm:"default:false"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
