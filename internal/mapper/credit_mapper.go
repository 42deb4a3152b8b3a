package mapper

import (
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/model"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) UserCreditToEntity(c *model.UserCredit) *entity.UserCredit {
	if c == nil {
		return nil
	}
	return &entity.UserCredit{
		Id:         c.Id,
		UserId:     c.UserId,
		CreditType: entity.CreditType(c.CreditType),
		Balance:    c.Balance,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *CreditMapper) UserCreditToModel(c *entity.UserCredit) *model.UserCredit {
	if c == nil {
		return nil
	}
	return &model.UserCredit{
		Id:         c.Id,
		UserId:     c.UserId,
		CreditType: string(c.CreditType),
		Balance:    c.Balance,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *CreditMapper) TransactionToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		CreditType:      entity.CreditType(t.CreditType),
		Amount:          t.Amount,
		TransactionType: entity.TransactionType(t.TransactionType),
		Description:     t.Description,
		ReferenceId:     t.ReferenceId,
		CreatedAt:       t.CreatedAt,
	}
}

func (m *CreditMapper) TransactionToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		CreditType:      string(t.CreditType),
		Amount:          t.Amount,
		TransactionType: string(t.TransactionType),
		Description:     t.Description,
		ReferenceId:     t.ReferenceId,
		CreatedAt:       t.CreatedAt,
	}
}
