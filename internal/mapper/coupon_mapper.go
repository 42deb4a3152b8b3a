package mapper

import (
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/model"
)

type CouponMapper struct{}

func NewCouponMapper() *CouponMapper {
	return &CouponMapper{}
}

func (m *CouponMapper) ToEntity(c *model.Coupon) *entity.Coupon {
	if c == nil {
		return nil
	}
	return &entity.Coupon{
		Id:            c.Id,
		Code:          c.Code,
		DiscountType:  entity.DiscountType(c.DiscountType),
		DiscountValue: c.DiscountValue,
		ApplicableTo:  entity.CouponType(c.ApplicableTo),
		IsActive:      c.IsActive,
		ExpiryDate:    c.ExpiryDate,
		MaxUses:       c.MaxUses,
		UsedCount:     c.UsedCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *CouponMapper) ToModel(c *entity.Coupon) *model.Coupon {
	if c == nil {
		return nil
	}
	return &model.Coupon{
		Id:            c.Id,
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		ApplicableTo:  string(c.ApplicableTo),
		IsActive:      c.IsActive,
		ExpiryDate:    c.ExpiryDate,
		MaxUses:       c.MaxUses,
		UsedCount:     c.UsedCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *CouponMapper) UsageToEntity(u *model.CouponUsage) *entity.CouponUsage {
	if u == nil {
		return nil
	}
	return &entity.CouponUsage{
		Id:       u.Id,
		CouponId: u.CouponId,
		UserId:   u.UserId,
		UsedAt:   u.UsedAt,
	}
}
