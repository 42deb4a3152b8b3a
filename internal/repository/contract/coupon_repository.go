package contract

import (
	"context"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/repository/specification"

	"github.com/google/uuid"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error)
	FindOneUsage(ctx context.Context, couponId, userId uuid.UUID) (*entity.CouponUsage, error)

	// CreateUsage inserts the usage row. IncrementUsedCount bumps the
	// counter. The service runs both inside one unit of work.
	CreateUsage(ctx context.Context, couponId, userId uuid.UUID) error
	IncrementUsedCount(ctx context.Context, couponId uuid.UUID) error
}
