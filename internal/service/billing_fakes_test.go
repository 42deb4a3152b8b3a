package service

import (
	"context"
	"fmt"
	"strings"

	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/repository/contract"
	"careerhub-billing/internal/repository/specification"
	"careerhub-billing/internal/repository/unitofwork"
	"careerhub-billing/pkg/events"
	"careerhub-billing/pkg/razorpay"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. Specifications are matched by
// type-switching on the concrete specification types the services use.

type fakeStore struct {
	balances     map[string]int // userId|creditType
	transactions []*entity.CreditTransaction
	plans        []*entity.SubscriptionPlan
	subs         map[uuid.UUID]*entity.UserSubscription
	coupons      []*entity.Coupon
	usages       []*entity.CouponUsage
	settings     map[string][]byte
	settingsErr  error
	users        map[uuid.UUID]*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		balances: map[string]int{},
		subs:     map[uuid.UUID]*entity.UserSubscription{},
		settings: map[string][]byte{},
		users:    map[uuid.UUID]*entity.User{},
	}
}

func balanceKey(userId uuid.UUID, t entity.CreditType) string {
	return userId.String() + "|" + string(t)
}

func (s *fakeStore) balance(userId uuid.UUID, t entity.CreditType) int {
	return s.balances[balanceKey(userId, t)]
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) CreditRepository() contract.CreditRepository {
	return &fakeCreditRepo{store: u.store}
}
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &fakeSubscriptionRepo{store: u.store}
}
func (u *fakeUow) CouponRepository() contract.CouponRepository {
	return &fakeCouponRepo{store: u.store}
}
func (u *fakeUow) SettingRepository() contract.SettingRepository {
	return &fakeSettingRepo{store: u.store}
}
func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newFakeStore()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

// --- Credits ---

type fakeCreditRepo struct {
	store *fakeStore
}

func (r *fakeCreditRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserCredit, error) {
	userId, creditType := creditFilters(specs)
	if userId == uuid.Nil || creditType == "" {
		return nil, nil
	}
	key := balanceKey(userId, creditType)
	if _, ok := r.store.balances[key]; !ok {
		return nil, nil
	}
	return &entity.UserCredit{
		UserId:     userId,
		CreditType: creditType,
		Balance:    r.store.balances[key],
	}, nil
}

func (r *fakeCreditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserCredit, error) {
	userId, _ := creditFilters(specs)
	var out []*entity.UserCredit
	for key, balance := range r.store.balances {
		parts := strings.SplitN(key, "|", 2)
		id, _ := uuid.Parse(parts[0])
		if userId != uuid.Nil && id != userId {
			continue
		}
		out = append(out, &entity.UserCredit{
			UserId:     id,
			CreditType: entity.CreditType(parts[1]),
			Balance:    balance,
		})
	}
	return out, nil
}

func (r *fakeCreditRepo) AddBalance(ctx context.Context, userId uuid.UUID, creditType entity.CreditType, amount int) (*entity.UserCredit, error) {
	key := balanceKey(userId, creditType)
	r.store.balances[key] += amount
	return &entity.UserCredit{UserId: userId, CreditType: creditType, Balance: r.store.balances[key]}, nil
}

func (r *fakeCreditRepo) SetBalance(ctx context.Context, userId uuid.UUID, creditType entity.CreditType, amount int) (*entity.UserCredit, error) {
	key := balanceKey(userId, creditType)
	r.store.balances[key] = amount
	return &entity.UserCredit{UserId: userId, CreditType: creditType, Balance: amount}, nil
}

func (r *fakeCreditRepo) ConsumeOne(ctx context.Context, userId uuid.UUID, creditType entity.CreditType) (bool, error) {
	key := balanceKey(userId, creditType)
	if r.store.balances[key] <= 0 {
		return false, nil
	}
	r.store.balances[key]--
	return true, nil
}

func (r *fakeCreditRepo) CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error {
	if tx.ReferenceId != nil && tx.TransactionType == entity.TransactionTypePurchase {
		for _, existing := range r.store.transactions {
			if existing.ReferenceId != nil &&
				*existing.ReferenceId == *tx.ReferenceId &&
				existing.UserId == tx.UserId &&
				existing.TransactionType == tx.TransactionType {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if tx.Id == uuid.Nil {
		tx.Id = uuid.New()
	}
	r.store.transactions = append(r.store.transactions, tx)
	return nil
}

func (r *fakeCreditRepo) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	userId, _ := creditFilters(specs)
	var out []*entity.CreditTransaction
	for _, tx := range r.store.transactions {
		if userId != uuid.Nil && tx.UserId != userId {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func creditFilters(specs []specification.Specification) (uuid.UUID, entity.CreditType) {
	var userId uuid.UUID
	var creditType entity.CreditType
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			userId = s.UserID
		case specification.ByCreditType:
			creditType = entity.CreditType(s.CreditType)
		}
	}
	return userId, creditType
}

// --- Subscriptions ---

type fakeSubscriptionRepo struct {
	store *fakeStore
}

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	r.store.plans = append(r.store.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	for i, p := range r.store.plans {
		if p.Id == plan.Id {
			r.store.plans[i] = plan
			return nil
		}
	}
	return fmt.Errorf("plan not found")
}

func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, p := range r.store.plans {
		if planMatches(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, p := range r.store.plans {
		if planMatches(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func planMatches(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ByPlanName:
			if p.Name != s.Name {
				return false
			}
		case specification.ActivePlans:
			if !p.IsActive {
				return false
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) UpsertSubscription(ctx context.Context, subscription *entity.UserSubscription) error {
	if existing, ok := r.store.subs[subscription.UserId]; ok {
		subscription.Id = existing.Id
	} else if subscription.Id == uuid.Nil {
		subscription.Id = uuid.New()
	}
	copied := *subscription
	r.store.subs[subscription.UserId] = &copied
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, subscription *entity.UserSubscription) error {
	copied := *subscription
	r.store.subs[subscription.UserId] = &copied
	return nil
}

func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	for _, sub := range r.store.subs {
		if subscriptionMatches(sub, specs) {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, nil
}

func subscriptionMatches(sub *entity.UserSubscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if sub.UserId != s.UserID {
				return false
			}
		case specification.ByRazorpaySubscriptionId:
			if sub.RazorpaySubscriptionId == nil || *sub.RazorpaySubscriptionId != s.SubscriptionId {
				return false
			}
		}
	}
	return true
}

// --- Coupons ---

type fakeCouponRepo struct {
	store *fakeStore
}

func (r *fakeCouponRepo) Create(ctx context.Context, coupon *entity.Coupon) error {
	if coupon.Id == uuid.Nil {
		coupon.Id = uuid.New()
	}
	r.store.coupons = append(r.store.coupons, coupon)
	return nil
}

func (r *fakeCouponRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error) {
	var code string
	for _, spec := range specs {
		if s, ok := spec.(specification.ByCouponCode); ok {
			code = s.Code
		}
	}
	for _, c := range r.store.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) FindOneUsage(ctx context.Context, couponId, userId uuid.UUID) (*entity.CouponUsage, error) {
	for _, u := range r.store.usages {
		if u.CouponId == couponId && u.UserId == userId {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) CreateUsage(ctx context.Context, couponId, userId uuid.UUID) error {
	r.store.usages = append(r.store.usages, &entity.CouponUsage{
		Id: uuid.New(), CouponId: couponId, UserId: userId,
	})
	return nil
}

func (r *fakeCouponRepo) IncrementUsedCount(ctx context.Context, couponId uuid.UUID) error {
	for _, c := range r.store.coupons {
		if c.Id == couponId {
			c.UsedCount++
			return nil
		}
	}
	return nil
}

// --- Settings ---

type fakeSettingRepo struct {
	store *fakeStore
}

func (r *fakeSettingRepo) Find(ctx context.Context, key string) (*entity.SystemSetting, error) {
	if r.store.settingsErr != nil {
		return nil, r.store.settingsErr
	}
	value, ok := r.store.settings[key]
	if !ok {
		return nil, nil
	}
	return &entity.SystemSetting{SettingKey: key, SettingValue: value}, nil
}

func (r *fakeSettingRepo) Set(ctx context.Context, key string, value []byte) error {
	r.store.settings[key] = value
	return nil
}

// --- Users ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var id uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			id = s.ID
		}
	}
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

// --- Gateway ---

type fakeGateway struct {
	configured    bool
	orders        []*razorpay.Order
	subscriptions []*razorpay.Subscription
	cancelled     []string
	lastAmount    int64
	lastCustomer  razorpay.Customer
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountPaise int64, currency string, notes map[string]interface{}) (*razorpay.Order, error) {
	if !g.configured {
		return nil, razorpay.ErrNotConfigured
	}
	g.lastAmount = amountPaise
	order := &razorpay.Order{
		Id:       fmt.Sprintf("order_%d", len(g.orders)+1),
		Amount:   amountPaise,
		Currency: currency,
	}
	g.orders = append(g.orders, order)
	return order, nil
}

func (g *fakeGateway) CreateSubscription(ctx context.Context, planId string, customer razorpay.Customer, notes map[string]interface{}) (*razorpay.Subscription, error) {
	g.lastCustomer = customer
	if !g.configured {
		return nil, razorpay.ErrNotConfigured
	}
	sub := &razorpay.Subscription{
		Id:         fmt.Sprintf("sub_%d", len(g.subscriptions)+1),
		Status:     "created",
		ShortUrl:   "https://rzp.io/i/test",
		CustomerId: "cust_1",
	}
	g.subscriptions = append(g.subscriptions, sub)
	return sub, nil
}

func (g *fakeGateway) CancelSubscription(ctx context.Context, subscriptionId string, atCycleEnd bool) error {
	if !g.configured {
		return razorpay.ErrNotConfigured
	}
	g.cancelled = append(g.cancelled, subscriptionId)
	return nil
}

// --- Events & logging ---

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *capturePublisher) Close() {}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// stubSubscriptions satisfies ISubscriptionService for credit service
// tests that only need entitlement lookups.
type stubSubscriptions struct {
	features entity.PlanFeatures
	renewed  int
}

func (s *stubSubscriptions) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	return nil, nil
}

func (s *stubSubscriptions) GetUserSubscription(ctx context.Context, userId uuid.UUID) (*dto.UserSubscriptionResponse, error) {
	return nil, nil
}

func (s *stubSubscriptions) CreateSubscription(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	return nil, nil
}

func (s *stubSubscriptions) CancelSubscription(ctx context.Context, userId uuid.UUID, immediate bool) (*dto.CancelSubscriptionResponse, error) {
	return nil, nil
}

func (s *stubSubscriptions) CheckAndRenewSubscription(ctx context.Context, userId uuid.UUID) error {
	s.renewed++
	return nil
}

func (s *stubSubscriptions) PlanFeaturesFor(ctx context.Context, userId uuid.UUID) (entity.PlanFeatures, error) {
	return s.features, nil
}

func (s *stubSubscriptions) HandleWebhookEvent(ctx context.Context, body []byte, signature, eventId string) error {
	return nil
}
