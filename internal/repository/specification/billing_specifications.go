package specification

import "gorm.io/gorm"

// ByCreditType filters credit rows and transactions by credit type.
type ByCreditType struct {
	CreditType string
}

func (s ByCreditType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("credit_type = ?", s.CreditType)
}

// ByPlanName filters the plan catalog by its unique name key.
type ByPlanName struct {
	Name string
}

func (s ByPlanName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ActivePlans narrows the catalog to plans shown to users.
type ActivePlans struct{}

func (s ActivePlans) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByRazorpaySubscriptionId resolves the local subscription for a gateway
// webhook payload.
type ByRazorpaySubscriptionId struct {
	SubscriptionId string
}

func (s ByRazorpaySubscriptionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("razorpay_subscription_id = ?", s.SubscriptionId)
}

// ByCouponCode filters coupons by their unique code.
type ByCouponCode struct {
	Code string
}

func (s ByCouponCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}
