package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Plans ---

type PlanFeaturesResponse struct {
	ResumeReviews   interface{} `json:"resume_reviews"`
	Interviews      interface{} `json:"interviews"`
	SkillTests      interface{} `json:"skill_tests"`
	JobAlerts       bool        `json:"job_alerts"`
	PrioritySupport bool        `json:"priority_support"`
	ApiAccess       bool        `json:"api_access"`
}

type PlanResponse struct {
	Id           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	DisplayName  string               `json:"display_name"`
	PriceMonthly float64              `json:"price_monthly"`
	PriceYearly  float64              `json:"price_yearly"`
	Currency     string               `json:"currency"`
	Features     PlanFeaturesResponse `json:"features"`
}

// --- Subscribe / Cancel ---

type SubscribeRequest struct {
	PlanName     string `json:"plan_name" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	CouponCode   string `json:"coupon_code,omitempty"`
	// Optional payer details forwarded to the gateway customer record.
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type SubscribeResponse struct {
	SubscriptionId         uuid.UUID `json:"subscription_id"`
	PlanName               string    `json:"plan_name"`
	Status                 string    `json:"status"`
	RazorpaySubscriptionId *string   `json:"razorpay_subscription_id,omitempty"`
	ShortUrl               string    `json:"short_url,omitempty"`
	KeyId                  string    `json:"key_id,omitempty"`
}

type CancelSubscriptionRequest struct {
	// Immediate revokes access now instead of at the period end.
	Immediate bool `json:"immediate"`
}

type CancelSubscriptionResponse struct {
	PlanName          string    `json:"plan_name"`
	Status            string    `json:"status"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
}

// --- Current subscription ---

type UserSubscriptionResponse struct {
	PlanName           string     `json:"plan_name"`
	DisplayName        string     `json:"display_name"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
}
