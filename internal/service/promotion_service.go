package service

import (
	"context"
	"math"
	"strings"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/repository/specification"
	"careerhub-billing/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IPromotionService validates coupon codes and applies discounts.
type IPromotionService interface {
	// ValidateCoupon runs the full eligibility chain for a code. The
	// purchase kind is SUBSCRIPTION or CREDIT; ALL coupons match both.
	ValidateCoupon(ctx context.Context, code string, userId uuid.UUID, purchase entity.CouponType) (*entity.Coupon, error)

	// RecordUsage marks the coupon as used by the user and bumps the
	// counter, in one transaction.
	RecordUsage(ctx context.Context, couponId, userId uuid.UUID) error
}

type promotionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPromotionService(uowFactory unitofwork.RepositoryFactory) IPromotionService {
	return &promotionService{
		uowFactory: uowFactory,
	}
}

func (s *promotionService) ValidateCoupon(ctx context.Context, code string, userId uuid.UUID, purchase entity.CouponType) (*entity.Coupon, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	coupons := uow.CouponRepository()

	coupon, err := coupons.FindOne(ctx, specification.ByCouponCode{Code: strings.ToUpper(strings.TrimSpace(code))})
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, serverutils.ErrInvalidCoupon
	}
	if !coupon.IsActive {
		return nil, serverutils.ErrCouponInactive
	}
	if coupon.ExpiryDate != nil && coupon.ExpiryDate.Before(nowFunc()) {
		return nil, serverutils.ErrCouponExpired
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, serverutils.ErrCouponLimitReached
	}
	if coupon.ApplicableTo != entity.CouponTypeAll && coupon.ApplicableTo != purchase {
		return nil, serverutils.ErrCouponTypeMismatch
	}

	usage, err := coupons.FindOneUsage(ctx, coupon.Id, userId)
	if err != nil {
		return nil, err
	}
	if usage != nil {
		return nil, serverutils.ErrCouponAlreadyUsed
	}

	return coupon, nil
}

func (s *promotionService) RecordUsage(ctx context.Context, couponId, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CouponRepository().CreateUsage(ctx, couponId, userId); err != nil {
		return err
	}
	if err := uow.CouponRepository().IncrementUsedCount(ctx, couponId); err != nil {
		return err
	}

	return uow.Commit()
}

// CalculateDiscount returns the discount in paise for the given amount.
// PERCENTAGE floors to whole paise; FIXED_AMOUNT coupons are denominated
// in rupees and never exceed the amount itself.
func CalculateDiscount(coupon *entity.Coupon, amountPaise int64) int64 {
	switch coupon.DiscountType {
	case entity.DiscountTypePercentage:
		return int64(math.Floor(float64(amountPaise) * coupon.DiscountValue / 100))
	case entity.DiscountTypeFixedAmount:
		discount := int64(coupon.DiscountValue * 100)
		if discount > amountPaise {
			return amountPaise
		}
		return discount
	}
	return 0
}
