package implementation

import (
	"context"
	"errors"
	"time"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/mapper"
	"careerhub-billing/internal/model"
	"careerhub-billing/internal/repository/contract"
	"careerhub-billing/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditMapper
}

func NewCreditRepository(db *gorm.DB) contract.CreditRepository {
	return &CreditRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditMapper(),
	}
}

func (r *CreditRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CreditRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserCredit, error) {
	var m model.UserCredit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserCreditToEntity(&m), nil
}

func (r *CreditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserCredit, error) {
	var models []*model.UserCredit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UserCredit, len(models))
	for i, m := range models {
		entities[i] = r.mapper.UserCreditToEntity(m)
	}
	return entities, nil
}

func (r *CreditRepositoryImpl) AddBalance(ctx context.Context, userId uuid.UUID, creditType entity.CreditType, amount int) (*entity.UserCredit, error) {
	m := &model.UserCredit{
		Id:         uuid.New(),
		UserId:     userId,
		CreditType: string(creditType),
		Balance:    amount,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "credit_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("user_credits.balance + EXCLUDED.balance"),
			"updated_at": time.Now(),
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByCreditType{CreditType: string(creditType)})
}

func (r *CreditRepositoryImpl) SetBalance(ctx context.Context, userId uuid.UUID, creditType entity.CreditType, amount int) (*entity.UserCredit, error) {
	m := &model.UserCredit{
		Id:         uuid.New(),
		UserId:     userId,
		CreditType: string(creditType),
		Balance:    amount,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "credit_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    amount,
			"updated_at": time.Now(),
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByCreditType{CreditType: string(creditType)})
}

func (r *CreditRepositoryImpl) ConsumeOne(ctx context.Context, userId uuid.UUID, creditType entity.CreditType) (bool, error) {
	// The balance > 0 guard makes the decrement safe under concurrent
	// consumption; losers of the race see zero rows affected.
	res := r.db.WithContext(ctx).Model(&model.UserCredit{}).
		Where("user_id = ? AND credit_type = ? AND balance > 0", userId, string(creditType)).
		UpdateColumns(map[string]interface{}{
			"balance":    gorm.Expr("balance - 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CreditRepositoryImpl) CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error {
	m := r.mapper.TransactionToModel(tx)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.TransactionToEntity(m)
	return nil
}

func (r *CreditRepositoryImpl) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var models []*model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CreditTransaction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TransactionToEntity(m)
	}
	return entities, nil
}
