package unitofwork

import (
	"context"

	"careerhub-billing/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CreditRepository() contract.CreditRepository
	SubscriptionRepository() contract.SubscriptionRepository
	CouponRepository() contract.CouponRepository
	SettingRepository() contract.SettingRepository
	UserRepository() contract.UserRepository
}
