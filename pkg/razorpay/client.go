package razorpay

import (
	"context"
	"errors"
	"fmt"

	razorpaysdk "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured is returned when the gateway credentials are missing
// or still the deploy-template placeholder. Callers surface this as a
// payment-unavailable condition instead of crashing at startup.
var ErrNotConfigured = errors.New("razorpay credentials are not configured")

const placeholderCredential = "xxxx"

// Order is the subset of a gateway order the billing flows need.
type Order struct {
	Id       string
	Amount   int64
	Currency string
}

// Customer identifies the payer on gateway subscriptions. Name and
// Contact are optional.
type Customer struct {
	Email   string
	Name    string
	Contact string
}

// Subscription is the subset of a gateway subscription the billing
// flows need.
type Subscription struct {
	Id         string
	Status     string
	ShortUrl   string
	CustomerId string
}

// Gateway abstracts the payment provider so services can be tested
// against a fake.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency string, notes map[string]interface{}) (*Order, error)
	CreateSubscription(ctx context.Context, planId string, customer Customer, notes map[string]interface{}) (*Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionId string, atCycleEnd bool) error
}

type Client struct {
	api        *razorpaysdk.Client
	configured bool
}

func NewClient(keyId, keySecret string) *Client {
	configured := keyId != "" && keySecret != "" &&
		keyId != placeholderCredential && keySecret != placeholderCredential

	api := razorpaysdk.NewClient(keyId, keySecret)
	api.SetTimeout(15)

	return &Client{
		api:        api,
		configured: configured,
	}
}

func (c *Client) Configured() bool {
	return c.configured
}

func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency string, notes map[string]interface{}) (*Order, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"notes":    notes,
	}
	resp, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &Order{
		Id:       stringField(resp, "id"),
		Amount:   intField(resp, "amount"),
		Currency: stringField(resp, "currency"),
	}, nil
}

func (c *Client) CreateSubscription(ctx context.Context, planId string, customer Customer, notes map[string]interface{}) (*Subscription, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	customerId, err := c.ensureCustomer(customer)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"plan_id":         planId,
		"customer_id":     customerId,
		"total_count":     12,
		"customer_notify": 1,
		"notes":           notes,
	}
	resp, err := c.api.Subscription.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	return &Subscription{
		Id:         stringField(resp, "id"),
		Status:     stringField(resp, "status"),
		ShortUrl:   stringField(resp, "short_url"),
		CustomerId: customerId,
	}, nil
}

func (c *Client) CancelSubscription(ctx context.Context, subscriptionId string, atCycleEnd bool) error {
	if !c.configured {
		return ErrNotConfigured
	}

	data := map[string]interface{}{
		"cancel_at_cycle_end": boolToInt(atCycleEnd),
	}
	if _, err := c.api.Subscription.Cancel(subscriptionId, data, nil); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	return nil
}

// ensureCustomer creates the gateway customer for this email, or reuses
// the existing one. fail_existing=0 makes Razorpay return the existing
// customer instead of erroring.
func (c *Client) ensureCustomer(customer Customer) (string, error) {
	data := map[string]interface{}{
		"email":         customer.Email,
		"name":          customer.Name,
		"contact":       customer.Contact,
		"fail_existing": "0",
	}
	resp, err := c.api.Customer.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("ensure customer: %w", err)
	}
	return stringField(resp, "id"), nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
