// FILE: internal/entity/subscription_entity.go
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type BillingCycle string

const (
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"

	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"

	// FreePlanName is the catalog key of the zero-price tier every user
	// starts on.
	FreePlanName = "free"
)

// FeatureLimit is the per-feature entitlement of a plan: either a numeric
// cap or unlimited. The plan catalog stores it as JSON, where the literal
// string "unlimited" marks the unlimited variant.
type FeatureLimit struct {
	Unlimited bool
	Limit     int
}

func Limited(n int) FeatureLimit { return FeatureLimit{Limit: n} }
func Unlimited() FeatureLimit    { return FeatureLimit{Unlimited: true} }

func (f *FeatureLimit) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "unlimited" {
			*f = FeatureLimit{Unlimited: true}
			return nil
		}
		// Unknown string values count as zero entitlement.
		*f = FeatureLimit{}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FeatureLimit{Limit: n}
	return nil
}

func (f FeatureLimit) MarshalJSON() ([]byte, error) {
	if f.Unlimited {
		return json.Marshal("unlimited")
	}
	return json.Marshal(f.Limit)
}

// PlanFeatures mirrors the plan's features JSON. The three credit-backed
// features are tagged unions; the rest are plain flags.
type PlanFeatures struct {
	ResumeReviews   FeatureLimit `json:"resumeReviews"`
	Interviews      FeatureLimit `json:"interviews"`
	SkillTests      FeatureLimit `json:"skillTests"`
	JobAlerts       bool         `json:"jobAlerts,omitempty"`
	PrioritySupport bool         `json:"prioritySupport,omitempty"`
	ApiAccess       bool         `json:"apiAccess,omitempty"`
}

// ForCreditType maps a credit type to its plan feature limit. The switch is
// exhaustive over AllCreditTypes.
func (p PlanFeatures) ForCreditType(t CreditType) FeatureLimit {
	switch t {
	case CreditTypeResumeReview:
		return p.ResumeReviews
	case CreditTypeAiInterview:
		return p.Interviews
	case CreditTypeSkillTest:
		return p.SkillTests
	}
	return FeatureLimit{}
}

type SubscriptionPlan struct {
	Id                    uuid.UUID
	Name                  string
	DisplayName           string
	PriceMonthly          float64
	PriceYearly           float64
	Features              PlanFeatures
	RazorpayPlanIdMonthly *string
	RazorpayPlanIdYearly  *string
	IsActive              bool
	SortOrder             int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (p *SubscriptionPlan) IsFree() bool {
	return p.Name == FreePlanName
}

// RazorpayPlanIdFor returns the gateway plan id configured for the given
// billing cycle, or nil if the plan is not configured for payments.
func (p *SubscriptionPlan) RazorpayPlanIdFor(cycle BillingCycle) *string {
	if cycle == BillingCycleYearly {
		return p.RazorpayPlanIdYearly
	}
	return p.RazorpayPlanIdMonthly
}

type UserSubscription struct {
	Id                     uuid.UUID
	UserId                 uuid.UUID
	PlanId                 uuid.UUID
	Status                 SubscriptionStatus
	RazorpayCustomerId     *string
	RazorpaySubscriptionId *string
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time
	CancelAtPeriodEnd      bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
