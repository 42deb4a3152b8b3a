package service

import (
	"context"
	"testing"
	"time"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name         string
		discountType entity.DiscountType
		value        float64
		amount       int64
		want         int64
	}{
		{name: "percentage", discountType: entity.DiscountTypePercentage, value: 10, amount: 10000, want: 1000},
		{name: "percentage floors fractional paise", discountType: entity.DiscountTypePercentage, value: 33, amount: 9999, want: 3299},
		{name: "hundred percent", discountType: entity.DiscountTypePercentage, value: 100, amount: 4900, want: 4900},
		{name: "fixed amount in rupees", discountType: entity.DiscountTypeFixedAmount, value: 50, amount: 10000, want: 5000},
		{name: "fixed amount capped at total", discountType: entity.DiscountTypeFixedAmount, value: 500, amount: 10000, want: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := &entity.Coupon{DiscountType: tt.discountType, DiscountValue: tt.value}
			assert.Equal(t, tt.want, CalculateDiscount(coupon, tt.amount))
		})
	}
}

func TestValidateCoupon(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	two := 2

	tests := []struct {
		name     string
		coupon   *entity.Coupon
		code     string
		purchase entity.CouponType
		usedBy   bool
		wantErr  *serverutils.AppError
	}{
		{
			name:     "unknown code",
			code:     "NOPE",
			purchase: entity.CouponTypeCredit,
			wantErr:  serverutils.ErrInvalidCoupon,
		},
		{
			name:     "inactive",
			coupon:   &entity.Coupon{Code: "SAVE10", DiscountType: entity.DiscountTypePercentage, DiscountValue: 10, ApplicableTo: entity.CouponTypeAll},
			code:     "SAVE10",
			purchase: entity.CouponTypeCredit,
			wantErr:  serverutils.ErrCouponInactive,
		},
		{
			name:     "expired",
			coupon:   &entity.Coupon{Code: "SAVE10", IsActive: true, ExpiryDate: &past, ApplicableTo: entity.CouponTypeAll},
			code:     "SAVE10",
			purchase: entity.CouponTypeCredit,
			wantErr:  serverutils.ErrCouponExpired,
		},
		{
			name:     "limit reached",
			coupon:   &entity.Coupon{Code: "SAVE10", IsActive: true, MaxUses: &two, UsedCount: 2, ApplicableTo: entity.CouponTypeAll},
			code:     "SAVE10",
			purchase: entity.CouponTypeCredit,
			wantErr:  serverutils.ErrCouponLimitReached,
		},
		{
			name:     "type mismatch",
			coupon:   &entity.Coupon{Code: "SUBONLY", IsActive: true, ApplicableTo: entity.CouponTypeSubscription},
			code:     "SUBONLY",
			purchase: entity.CouponTypeCredit,
			wantErr:  serverutils.ErrCouponTypeMismatch,
		},
		{
			name:     "already used",
			coupon:   &entity.Coupon{Code: "SAVE10", IsActive: true, ApplicableTo: entity.CouponTypeAll},
			code:     "SAVE10",
			purchase: entity.CouponTypeCredit,
			usedBy:   true,
			wantErr:  serverutils.ErrCouponAlreadyUsed,
		},
		{
			name:     "ALL coupon matches credit purchase",
			coupon:   &entity.Coupon{Code: "SAVE10", IsActive: true, ExpiryDate: &future, ApplicableTo: entity.CouponTypeAll},
			code:     "SAVE10",
			purchase: entity.CouponTypeCredit,
		},
		{
			name:     "code is trimmed and upcased",
			coupon:   &entity.Coupon{Code: "SAVE10", IsActive: true, ApplicableTo: entity.CouponTypeCredit},
			code:     "  save10  ",
			purchase: entity.CouponTypeCredit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			svc := NewPromotionService(factory)

			if tt.coupon != nil {
				tt.coupon.Id = uuid.New()
				factory.store.coupons = append(factory.store.coupons, tt.coupon)
				if tt.usedBy {
					factory.store.usages = append(factory.store.usages, &entity.CouponUsage{
						CouponId: tt.coupon.Id, UserId: userId,
					})
				}
			}

			coupon, err := svc.ValidateCoupon(ctx, tt.code, userId, tt.purchase)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, coupon)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, coupon)
			assert.Equal(t, tt.coupon.Code, coupon.Code)
		})
	}
}

func TestRecordUsage(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := NewPromotionService(factory)

	coupon := &entity.Coupon{Id: uuid.New(), Code: "SAVE10", IsActive: true, ApplicableTo: entity.CouponTypeAll}
	factory.store.coupons = append(factory.store.coupons, coupon)
	userId := uuid.New()

	require.NoError(t, svc.RecordUsage(ctx, coupon.Id, userId))
	assert.Equal(t, 1, coupon.UsedCount)
	assert.Len(t, factory.store.usages, 1)

	// A second validation for the same user now fails.
	_, err := svc.ValidateCoupon(ctx, "SAVE10", userId, entity.CouponTypeCredit)
	assert.ErrorIs(t, err, serverutils.ErrCouponAlreadyUsed)
}
