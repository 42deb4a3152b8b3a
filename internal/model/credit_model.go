package model

import (
	"time"

	"github.com/google/uuid"
)

type UserCredit struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_credit_type"`
	CreditType string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_credit_type"`
	Balance    int       `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (UserCredit) TableName() string {
	return "user_credits"
}

// CreditTransaction rows are append-only. The partial unique index on
// (user_id, reference_id) makes purchase confirmations replay-safe: a
// second confirm with the same payment id cannot insert a second
// PURCHASE row. The index is scoped to PURCHASE rows so CONSUME rows
// can repeat a feature invocation id.
type CreditTransaction struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_credit_tx_purchase_ref,where:transaction_type = 'PURCHASE' AND reference_id IS NOT NULL"`
	CreditType      string    `gorm:"type:varchar(50);not null"`
	Amount          int       `gorm:"not null"`
	TransactionType string    `gorm:"type:varchar(50);not null"`
	Description     string    `gorm:"type:text"`
	ReferenceId     *string   `gorm:"type:varchar(255);uniqueIndex:idx_credit_tx_purchase_ref,where:transaction_type = 'PURCHASE' AND reference_id IS NOT NULL"`
	CreatedAt       time.Time `gorm:"default:now();not null;index"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
