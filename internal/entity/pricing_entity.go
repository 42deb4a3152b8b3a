// FILE: internal/entity/pricing_entity.go
package entity

// All monetary amounts here are in paise (INR minor units). Conversion to
// rupees happens at the API boundary only.

type CreditBundle struct {
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Savings  string `json:"savings"`
}

type CreditPricing struct {
	PerCredit map[CreditType]int64          `json:"perCredit"`
	Bundles   map[CreditType][]CreditBundle `json:"bundles"`
}

// BundleFor returns the bundle matching the exact quantity, if one exists.
func (p *CreditPricing) BundleFor(creditType CreditType, quantity int) *CreditBundle {
	for _, b := range p.Bundles[creditType] {
		if b.Quantity == quantity {
			return &b
		}
	}
	return nil
}

// AmountFor resolves the order amount in paise: bundle price on an exact
// quantity match, unit price times quantity otherwise.
func (p *CreditPricing) AmountFor(creditType CreditType, quantity int) int64 {
	if b := p.BundleFor(creditType, quantity); b != nil {
		return b.Price
	}
	return p.PerCredit[creditType] * int64(quantity)
}
