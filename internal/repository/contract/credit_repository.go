package contract

import (
	"context"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/repository/specification"

	"github.com/google/uuid"
)

type CreditRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserCredit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserCredit, error)

	// AddBalance upserts the (user, creditType) row, incrementing the
	// balance by amount.
	AddBalance(ctx context.Context, userId uuid.UUID, creditType entity.CreditType, amount int) (*entity.UserCredit, error)

	// SetBalance upserts the (user, creditType) row, overwriting the
	// balance. Used by period renewals.
	SetBalance(ctx context.Context, userId uuid.UUID, creditType entity.CreditType, amount int) (*entity.UserCredit, error)

	// ConsumeOne decrements the balance by one, guarded by balance > 0
	// in the same statement. Returns false when no row qualified, which
	// callers must treat as insufficient credits even if an earlier read
	// saw a positive balance.
	ConsumeOne(ctx context.Context, userId uuid.UUID, creditType entity.CreditType) (bool, error)

	CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error
	FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
}
