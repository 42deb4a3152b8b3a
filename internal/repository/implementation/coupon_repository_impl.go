package implementation

import (
	"context"
	"errors"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/mapper"
	"careerhub-billing/internal/model"
	"careerhub-billing/internal/repository/contract"
	"careerhub-billing/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CouponMapper
}

func NewCouponRepository(db *gorm.DB) contract.CouponRepository {
	return &CouponRepositoryImpl{
		db:     db,
		mapper: mapper.NewCouponMapper(),
	}
}

func (r *CouponRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CouponRepositoryImpl) Create(ctx context.Context, coupon *entity.Coupon) error {
	m := r.mapper.ToModel(coupon)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*coupon = *r.mapper.ToEntity(m)
	return nil
}

func (r *CouponRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error) {
	var m model.Coupon
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CouponRepositoryImpl) FindOneUsage(ctx context.Context, couponId, userId uuid.UUID) (*entity.CouponUsage, error) {
	var m model.CouponUsage
	err := r.db.WithContext(ctx).
		Where("coupon_id = ? AND user_id = ?", couponId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UsageToEntity(&m), nil
}

func (r *CouponRepositoryImpl) CreateUsage(ctx context.Context, couponId, userId uuid.UUID) error {
	m := &model.CouponUsage{
		Id:       uuid.New(),
		CouponId: couponId,
		UserId:   userId,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *CouponRepositoryImpl) IncrementUsedCount(ctx context.Context, couponId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ?", couponId).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
