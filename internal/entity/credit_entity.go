// FILE: internal/entity/credit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type CreditType string
type TransactionType string

const (
	CreditTypeResumeReview CreditType = "RESUME_REVIEW"
	CreditTypeAiInterview  CreditType = "AI_INTERVIEW"
	CreditTypeSkillTest    CreditType = "SKILL_TEST"

	TransactionTypeGrant    TransactionType = "GRANT"
	TransactionTypePurchase TransactionType = "PURCHASE"
	TransactionTypeConsume  TransactionType = "CONSUME"
)

// AllCreditTypes lists every consumable credit type. Balance maps always
// contain all three keys, defaulting to zero.
var AllCreditTypes = []CreditType{
	CreditTypeResumeReview,
	CreditTypeAiInterview,
	CreditTypeSkillTest,
}

func (t CreditType) Valid() bool {
	switch t {
	case CreditTypeResumeReview, CreditTypeAiInterview, CreditTypeSkillTest:
		return true
	}
	return false
}

type UserCredit struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	CreditType CreditType
	Balance    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreditTransaction is an append-only ledger entry. Amount is signed:
// positive for GRANT/PURCHASE, -1 for CONSUME.
type CreditTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	CreditType      CreditType
	Amount          int
	TransactionType TransactionType
	Description     string
	ReferenceId     *string
	CreatedAt       time.Time
}

// UnlimitedBalance is the wire value reported for a credit type whose plan
// feature is unlimited.
const UnlimitedBalance = -1
