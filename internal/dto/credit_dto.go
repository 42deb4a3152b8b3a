package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Credit Pricing ---

type CreditBundleResponse struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Savings  string  `json:"savings,omitempty"`
}

// CreditPricingResponse reports prices in rupees. Storage and gateway
// amounts stay in paise.
type CreditPricingResponse struct {
	PerCredit map[string]float64                `json:"per_credit"`
	Bundles   map[string][]CreditBundleResponse `json:"bundles"`
	Currency  string                            `json:"currency"`
}

// --- Balances & History ---

type CreditBalancesResponse struct {
	Balances map[string]int `json:"balances"`
}

type CreditTransactionResponse struct {
	Id              uuid.UUID `json:"id"`
	CreditType      string    `json:"credit_type"`
	Amount          int       `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	ReferenceId     *string   `json:"reference_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreditHistoryResponse struct {
	Transactions []*CreditTransactionResponse `json:"transactions"`
}

// --- Consume & Check ---

type ConsumeCreditRequest struct {
	CreditType string `json:"credit_type" validate:"required"`
	// FeatureId is the caller's invocation id, kept on the ledger row
	// so a consume can be traced back to the feature that spent it.
	FeatureId string `json:"feature_id,omitempty"`
}

type ConsumeCreditResponse struct {
	CreditType string `json:"credit_type"`
	Remaining  int    `json:"remaining"`
	Unlimited  bool   `json:"unlimited"`
}

type CheckCreditResponse struct {
	CreditType string `json:"credit_type"`
	HasCredits bool   `json:"has_credits"`
	Balance    int    `json:"balance"`
}

// --- Purchase ---

type CreatePurchaseOrderRequest struct {
	CreditType string `json:"credit_type" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=100"`
	CouponCode string `json:"coupon_code,omitempty"`
}

type CreatePurchaseOrderResponse struct {
	OrderId  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Discount float64 `json:"discount,omitempty"`
	Currency string  `json:"currency"`
	KeyId    string  `json:"key_id"`
}

type ConfirmPurchaseRequest struct {
	OrderId    string `json:"order_id" validate:"required"`
	PaymentId  string `json:"payment_id" validate:"required"`
	Signature  string `json:"signature" validate:"required"`
	CreditType string `json:"credit_type" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=100"`
	CouponCode string `json:"coupon_code,omitempty"`
}

type ConfirmPurchaseResponse struct {
	CreditType string `json:"credit_type"`
	Added      int    `json:"added"`
	Balance    int    `json:"balance"`
}
