package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"careerhub-billing/internal/config"
	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeySecret = "test_key_secret"

func orderReq(creditType string, quantity int, coupon string) *dto.CreatePurchaseOrderRequest {
	return &dto.CreatePurchaseOrderRequest{CreditType: creditType, Quantity: quantity, CouponCode: coupon}
}

func confirmReq(orderId, paymentId, signature, creditType string, quantity int) *dto.ConfirmPurchaseRequest {
	return &dto.ConfirmPurchaseRequest{
		OrderId:    orderId,
		PaymentId:  paymentId,
		Signature:  signature,
		CreditType: creditType,
		Quantity:   quantity,
	}
}

func signPayment(orderId, paymentId string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

type creditHarness struct {
	factory   *fakeFactory
	gateway   *fakeGateway
	subs      *stubSubscriptions
	publisher *capturePublisher
	svc       ICreditService
}

func newCreditHarness(t *testing.T) *creditHarness {
	t.Helper()
	factory := newFakeFactory()
	gateway := &fakeGateway{configured: true}
	subs := &stubSubscriptions{}
	publisher := &capturePublisher{}
	svc := NewCreditService(
		factory,
		NewPricingService(factory, noopLogger{}),
		NewPromotionService(factory),
		subs,
		gateway,
		config.RazorpayConfig{KeyId: "rzp_test_key", KeySecret: testKeySecret},
		publisher,
		noopLogger{},
	)
	return &creditHarness{factory: factory, gateway: gateway, subs: subs, publisher: publisher, svc: svc}
}

func (h *creditHarness) addUser(verified bool) uuid.UUID {
	id := uuid.New()
	h.factory.store.users[id] = &entity.User{Id: id, Email: "user@example.com", IsVerified: verified}
	return id
}

func TestConsumeCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		h := newCreditHarness(t)
		_, err := h.svc.ConsumeCredit(ctx, uuid.New(), "RESUME_REVIEW", "")
		assert.ErrorIs(t, err, serverutils.ErrUserNotFound)
	})

	t.Run("unverified email", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(false)
		_, err := h.svc.ConsumeCredit(ctx, userId, "RESUME_REVIEW", "")
		assert.ErrorIs(t, err, serverutils.ErrEmailNotVerified)
	})

	t.Run("invalid credit type", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)
		_, err := h.svc.ConsumeCredit(ctx, userId, "GOLD_STARS", "")
		assert.ErrorIs(t, err, serverutils.ErrInvalidCreditType)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)
		_, err := h.svc.ConsumeCredit(ctx, userId, "RESUME_REVIEW", "")
		assert.ErrorIs(t, err, serverutils.ErrInsufficientCredits)
	})

	t.Run("decrements and records transaction", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)
		h.factory.store.balances[balanceKey(userId, entity.CreditTypeResumeReview)] = 2

		res, err := h.svc.ConsumeCredit(ctx, userId, "RESUME_REVIEW", "")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Remaining)
		assert.False(t, res.Unlimited)
		assert.Equal(t, 1, h.subs.renewed, "renewal check runs before consuming")

		require.Len(t, h.factory.store.transactions, 1)
		tx := h.factory.store.transactions[0]
		assert.Equal(t, entity.TransactionTypeConsume, tx.TransactionType)
		assert.Equal(t, -1, tx.Amount)

		require.Len(t, h.publisher.published, 1)
	})

	t.Run("feature id lands on the ledger row and may repeat", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)
		h.factory.store.balances[balanceKey(userId, entity.CreditTypeAiInterview)] = 3

		_, err := h.svc.ConsumeCredit(ctx, userId, "AI_INTERVIEW", "interview_42")
		require.NoError(t, err)
		require.Len(t, h.factory.store.transactions, 1)
		require.NotNil(t, h.factory.store.transactions[0].ReferenceId)
		assert.Equal(t, "interview_42", *h.factory.store.transactions[0].ReferenceId)

		// A retried interview reuses its invocation id; unlike purchase
		// confirmations this is not deduplicated.
		_, err = h.svc.ConsumeCredit(ctx, userId, "AI_INTERVIEW", "interview_42")
		require.NoError(t, err)
		assert.Len(t, h.factory.store.transactions, 2)
		assert.Equal(t, 1, h.factory.store.balance(userId, entity.CreditTypeAiInterview))
	})

	t.Run("unlimited plan skips decrement", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)
		h.subs.features = entity.PlanFeatures{ResumeReviews: entity.Unlimited()}
		h.factory.store.balances[balanceKey(userId, entity.CreditTypeResumeReview)] = 2

		res, err := h.svc.ConsumeCredit(ctx, userId, "RESUME_REVIEW", "")
		require.NoError(t, err)
		assert.True(t, res.Unlimited)
		assert.Equal(t, entity.UnlimitedBalance, res.Remaining)
		assert.Equal(t, 2, h.factory.store.balance(userId, entity.CreditTypeResumeReview))
		assert.Empty(t, h.factory.store.transactions)
	})
}

func TestHasCredits(t *testing.T) {
	ctx := context.Background()
	h := newCreditHarness(t)
	userId := h.addUser(true)

	res, err := h.svc.HasCredits(ctx, userId, "SKILL_TEST")
	require.NoError(t, err)
	assert.False(t, res.HasCredits)
	assert.Equal(t, 0, res.Balance)

	h.factory.store.balances[balanceKey(userId, entity.CreditTypeSkillTest)] = 3
	res, err = h.svc.HasCredits(ctx, userId, "SKILL_TEST")
	require.NoError(t, err)
	assert.True(t, res.HasCredits)
	assert.Equal(t, 3, res.Balance)

	h.subs.features = entity.PlanFeatures{SkillTests: entity.Unlimited()}
	res, err = h.svc.HasCredits(ctx, userId, "SKILL_TEST")
	require.NoError(t, err)
	assert.True(t, res.HasCredits)
	assert.Equal(t, entity.UnlimitedBalance, res.Balance)

	// Unknown and unverified users read as false, never an error.
	res, err = h.svc.HasCredits(ctx, uuid.New(), "SKILL_TEST")
	require.NoError(t, err)
	assert.False(t, res.HasCredits)

	unverified := h.addUser(false)
	h.factory.store.balances[balanceKey(unverified, entity.CreditTypeSkillTest)] = 3
	res, err = h.svc.HasCredits(ctx, unverified, "SKILL_TEST")
	require.NoError(t, err)
	assert.False(t, res.HasCredits)
	assert.Equal(t, 0, res.Balance)
}

func TestGetBalances(t *testing.T) {
	ctx := context.Background()
	h := newCreditHarness(t)
	userId := h.addUser(true)
	h.factory.store.balances[balanceKey(userId, entity.CreditTypeResumeReview)] = 4
	h.subs.features = entity.PlanFeatures{Interviews: entity.Unlimited()}

	res, err := h.svc.GetBalances(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Balances["RESUME_REVIEW"])
	assert.Equal(t, entity.UnlimitedBalance, res.Balances["AI_INTERVIEW"])
	assert.Equal(t, 0, res.Balances["SKILL_TEST"])
}

func TestCreatePurchaseOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("gateway not configured", func(t *testing.T) {
		h := newCreditHarness(t)
		h.gateway.configured = false
		userId := h.addUser(true)

		_, err := h.svc.CreatePurchaseOrder(ctx, userId, orderReq("AI_INTERVIEW", 5, ""))
		assert.ErrorIs(t, err, serverutils.ErrPaymentUnavailable)
	})

	t.Run("bundle price", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)

		res, err := h.svc.CreatePurchaseOrder(ctx, userId, orderReq("AI_INTERVIEW", 5, ""))
		require.NoError(t, err)
		assert.Equal(t, int64(39900), h.gateway.lastAmount)
		assert.Equal(t, float64(399), res.Amount)
		assert.Equal(t, "rzp_test_key", res.KeyId)
	})

	t.Run("coupon reduces charge", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)
		h.factory.store.coupons = append(h.factory.store.coupons, &entity.Coupon{
			Id: uuid.New(), Code: "SAVE10", IsActive: true,
			DiscountType: entity.DiscountTypePercentage, DiscountValue: 10,
			ApplicableTo: entity.CouponTypeCredit,
		})

		res, err := h.svc.CreatePurchaseOrder(ctx, userId, orderReq("AI_INTERVIEW", 5, "SAVE10"))
		require.NoError(t, err)
		assert.Equal(t, int64(35910), h.gateway.lastAmount)
		assert.Equal(t, float64(39.9), res.Discount)
	})
}

func TestConfirmPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid signature", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)

		req := confirmReq("order_1", "pay_1", "bogus", "AI_INTERVIEW", 5)
		_, err := h.svc.ConfirmPurchase(ctx, userId, req)
		assert.ErrorIs(t, err, serverutils.ErrInvalidSignature)
		assert.Equal(t, 0, h.factory.store.balance(userId, entity.CreditTypeAiInterview))
	})

	t.Run("credits added once, replay is idempotent", func(t *testing.T) {
		h := newCreditHarness(t)
		userId := h.addUser(true)

		req := confirmReq("order_1", "pay_1", signPayment("order_1", "pay_1"), "AI_INTERVIEW", 5)

		res, err := h.svc.ConfirmPurchase(ctx, userId, req)
		require.NoError(t, err)
		assert.Equal(t, 5, res.Balance)
		require.Len(t, h.factory.store.transactions, 1)
		assert.Equal(t, entity.TransactionTypePurchase, h.factory.store.transactions[0].TransactionType)

		// Replaying the same confirmation must not double-credit.
		res, err = h.svc.ConfirmPurchase(ctx, userId, req)
		require.NoError(t, err)
		assert.Equal(t, 5, res.Balance)
		assert.Len(t, h.factory.store.transactions, 1)
	})
}
