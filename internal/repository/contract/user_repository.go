package contract

import (
	"context"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/repository/specification"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
