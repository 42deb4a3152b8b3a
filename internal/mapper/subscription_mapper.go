package mapper

import (
	"encoding/json"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/model"

	"gorm.io/datatypes"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	var features entity.PlanFeatures
	// Malformed catalog JSON degrades to zero entitlements rather than
	// failing the read path.
	_ = json.Unmarshal(p.Features, &features)
	return &entity.SubscriptionPlan{
		Id:                    p.Id,
		Name:                  p.Name,
		DisplayName:           p.DisplayName,
		PriceMonthly:          p.PriceMonthly,
		PriceYearly:           p.PriceYearly,
		Features:              features,
		RazorpayPlanIdMonthly: p.RazorpayPlanIdMonthly,
		RazorpayPlanIdYearly:  p.RazorpayPlanIdYearly,
		IsActive:              p.IsActive,
		SortOrder:             p.SortOrder,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	features, _ := json.Marshal(p.Features)
	return &model.SubscriptionPlan{
		Id:                    p.Id,
		Name:                  p.Name,
		DisplayName:           p.DisplayName,
		PriceMonthly:          p.PriceMonthly,
		PriceYearly:           p.PriceYearly,
		Features:              datatypes.JSON(features),
		RazorpayPlanIdMonthly: p.RazorpayPlanIdMonthly,
		RazorpayPlanIdYearly:  p.RazorpayPlanIdYearly,
		IsActive:              p.IsActive,
		SortOrder:             p.SortOrder,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) UserSubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                     s.Id,
		UserId:                 s.UserId,
		PlanId:                 s.PlanId,
		Status:                 entity.SubscriptionStatus(s.Status),
		RazorpayCustomerId:     s.RazorpayCustomerId,
		RazorpaySubscriptionId: s.RazorpaySubscriptionId,
		CurrentPeriodStart:     s.CurrentPeriodStart,
		CurrentPeriodEnd:       s.CurrentPeriodEnd,
		CancelAtPeriodEnd:      s.CancelAtPeriodEnd,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) UserSubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                     s.Id,
		UserId:                 s.UserId,
		PlanId:                 s.PlanId,
		Status:                 string(s.Status),
		RazorpayCustomerId:     s.RazorpayCustomerId,
		RazorpaySubscriptionId: s.RazorpaySubscriptionId,
		CurrentPeriodStart:     s.CurrentPeriodStart,
		CurrentPeriodEnd:       s.CurrentPeriodEnd,
		CancelAtPeriodEnd:      s.CancelAtPeriodEnd,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}
