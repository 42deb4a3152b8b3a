package service

import (
	"context"
	"errors"
	"fmt"

	"careerhub-billing/internal/config"
	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/logger"
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/repository/specification"
	"careerhub-billing/internal/repository/unitofwork"
	"careerhub-billing/pkg/events"
	"careerhub-billing/pkg/razorpay"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICreditService interface {
	GetPricing(ctx context.Context) (*dto.CreditPricingResponse, error)
	GetBalances(ctx context.Context, userId uuid.UUID) (*dto.CreditBalancesResponse, error)
	GetTransactionHistory(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.CreditHistoryResponse, error)
	ConsumeCredit(ctx context.Context, userId uuid.UUID, creditType, featureId string) (*dto.ConsumeCreditResponse, error)
	HasCredits(ctx context.Context, userId uuid.UUID, creditType string) (*dto.CheckCreditResponse, error)
	CreatePurchaseOrder(ctx context.Context, userId uuid.UUID, req *dto.CreatePurchaseOrderRequest) (*dto.CreatePurchaseOrderResponse, error)
	ConfirmPurchase(ctx context.Context, userId uuid.UUID, req *dto.ConfirmPurchaseRequest) (*dto.ConfirmPurchaseResponse, error)
}

type creditService struct {
	uowFactory    unitofwork.RepositoryFactory
	pricing       IPricingService
	promotions    IPromotionService
	subscriptions ISubscriptionService
	gateway       razorpay.Gateway
	rzpCfg        config.RazorpayConfig
	publisher     events.Publisher
	logger        logger.ILogger
}

func NewCreditService(
	uowFactory unitofwork.RepositoryFactory,
	pricing IPricingService,
	promotions IPromotionService,
	subscriptions ISubscriptionService,
	gateway razorpay.Gateway,
	rzpCfg config.RazorpayConfig,
	publisher events.Publisher,
	log logger.ILogger,
) ICreditService {
	return &creditService{
		uowFactory:    uowFactory,
		pricing:       pricing,
		promotions:    promotions,
		subscriptions: subscriptions,
		gateway:       gateway,
		rzpCfg:        rzpCfg,
		publisher:     publisher,
		logger:        log,
	}
}

func (s *creditService) GetPricing(ctx context.Context) (*dto.CreditPricingResponse, error) {
	pricing, err := s.pricing.GetPricing(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.CreditPricingResponse{
		PerCredit: make(map[string]float64, len(pricing.PerCredit)),
		Bundles:   make(map[string][]dto.CreditBundleResponse, len(pricing.Bundles)),
		Currency:  "INR",
	}
	for t, price := range pricing.PerCredit {
		res.PerCredit[string(t)] = paiseToRupees(price)
	}
	for t, bundles := range pricing.Bundles {
		out := make([]dto.CreditBundleResponse, 0, len(bundles))
		for _, b := range bundles {
			out = append(out, dto.CreditBundleResponse{
				Quantity: b.Quantity,
				Price:    paiseToRupees(b.Price),
				Savings:  b.Savings,
			})
		}
		res.Bundles[string(t)] = out
	}
	return res, nil
}

func (s *creditService) GetBalances(ctx context.Context, userId uuid.UUID) (*dto.CreditBalancesResponse, error) {
	if err := s.subscriptions.CheckAndRenewSubscription(ctx, userId); err != nil {
		return nil, err
	}

	features, err := s.subscriptions.PlanFeaturesFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.CreditRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	stored := make(map[entity.CreditType]int, len(rows))
	for _, row := range rows {
		stored[row.CreditType] = row.Balance
	}

	balances := make(map[string]int, len(entity.AllCreditTypes))
	for _, t := range entity.AllCreditTypes {
		if features.ForCreditType(t).Unlimited {
			balances[string(t)] = entity.UnlimitedBalance
			continue
		}
		balances[string(t)] = stored[t]
	}

	return &dto.CreditBalancesResponse{Balances: balances}, nil
}

func (s *creditService) GetTransactionHistory(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.CreditHistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txs, err := uow.CreditRepository().FindTransactions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.CreditHistoryResponse{
		Transactions: make([]*dto.CreditTransactionResponse, 0, len(txs)),
	}
	for _, tx := range txs {
		res.Transactions = append(res.Transactions, &dto.CreditTransactionResponse{
			Id:              tx.Id,
			CreditType:      string(tx.CreditType),
			Amount:          tx.Amount,
			TransactionType: string(tx.TransactionType),
			Description:     tx.Description,
			ReferenceId:     tx.ReferenceId,
			CreatedAt:       tx.CreatedAt,
		})
	}
	return res, nil
}

func (s *creditService) ConsumeCredit(ctx context.Context, userId uuid.UUID, creditType, featureId string) (*dto.ConsumeCreditResponse, error) {
	t := entity.CreditType(creditType)
	if !t.Valid() {
		return nil, serverutils.ErrInvalidCreditType
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, serverutils.ErrEmailNotVerified
	}

	if err := s.subscriptions.CheckAndRenewSubscription(ctx, userId); err != nil {
		return nil, err
	}

	features, err := s.subscriptions.PlanFeaturesFor(ctx, userId)
	if err != nil {
		return nil, err
	}
	if features.ForCreditType(t).Unlimited {
		return &dto.ConsumeCreditResponse{
			CreditType: creditType,
			Remaining:  entity.UnlimitedBalance,
			Unlimited:  true,
		}, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	credits := uow.CreditRepository()
	ok, err := credits.ConsumeOne(ctx, userId, t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, serverutils.ErrInsufficientCredits
	}

	tx := &entity.CreditTransaction{
		UserId:          userId,
		CreditType:      t,
		Amount:          -1,
		TransactionType: entity.TransactionTypeConsume,
		Description:     fmt.Sprintf("Used 1 %s credit", t),
	}
	if featureId != "" {
		tx.ReferenceId = &featureId
	}
	if err := credits.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	row, err := credits.FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByCreditType{CreditType: creditType})
	if err != nil {
		return nil, err
	}
	remaining := 0
	if row != nil {
		remaining = row.Balance
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewCreditsConsumedEvent(userId.String(), creditType, remaining))

	return &dto.ConsumeCreditResponse{
		CreditType: creditType,
		Remaining:  remaining,
	}, nil
}

func (s *creditService) HasCredits(ctx context.Context, userId uuid.UUID, creditType string) (*dto.CheckCreditResponse, error) {
	t := entity.CreditType(creditType)
	if !t.Valid() {
		return nil, serverutils.ErrInvalidCreditType
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// This feeds UI button state; unverified users cannot spend
	// credits, so report false rather than an error.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsVerified {
		return &dto.CheckCreditResponse{
			CreditType: creditType,
			HasCredits: false,
		}, nil
	}

	if err := s.subscriptions.CheckAndRenewSubscription(ctx, userId); err != nil {
		return nil, err
	}

	features, err := s.subscriptions.PlanFeaturesFor(ctx, userId)
	if err != nil {
		return nil, err
	}
	if features.ForCreditType(t).Unlimited {
		return &dto.CheckCreditResponse{
			CreditType: creditType,
			HasCredits: true,
			Balance:    entity.UnlimitedBalance,
		}, nil
	}

	row, err := uow.CreditRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByCreditType{CreditType: creditType},
	)
	if err != nil {
		return nil, err
	}

	balance := 0
	if row != nil {
		balance = row.Balance
	}
	return &dto.CheckCreditResponse{
		CreditType: creditType,
		HasCredits: balance > 0,
		Balance:    balance,
	}, nil
}

func (s *creditService) CreatePurchaseOrder(ctx context.Context, userId uuid.UUID, req *dto.CreatePurchaseOrderRequest) (*dto.CreatePurchaseOrderResponse, error) {
	t := entity.CreditType(req.CreditType)
	if !t.Valid() {
		return nil, serverutils.ErrInvalidCreditType
	}

	pricing, err := s.pricing.GetPricing(ctx)
	if err != nil {
		return nil, err
	}
	amount := pricing.AmountFor(t, req.Quantity)

	var discount int64
	if req.CouponCode != "" {
		coupon, err := s.promotions.ValidateCoupon(ctx, req.CouponCode, userId, entity.CouponTypeCredit)
		if err != nil {
			return nil, err
		}
		discount = CalculateDiscount(coupon, amount)
	}
	payable := amount - discount
	if payable < 100 {
		// Razorpay rejects orders below one rupee.
		payable = 100
	}

	order, err := s.gateway.CreateOrder(ctx, payable, "INR", map[string]interface{}{
		"user_id":     userId.String(),
		"credit_type": req.CreditType,
		"quantity":    req.Quantity,
	})
	if err != nil {
		if errors.Is(err, razorpay.ErrNotConfigured) {
			return nil, serverutils.ErrPaymentUnavailable
		}
		return nil, fmt.Errorf("gateway order: %w", err)
	}

	return &dto.CreatePurchaseOrderResponse{
		OrderId:  order.Id,
		Amount:   paiseToRupees(order.Amount),
		Discount: paiseToRupees(discount),
		Currency: order.Currency,
		KeyId:    s.rzpCfg.KeyId,
	}, nil
}

func (s *creditService) ConfirmPurchase(ctx context.Context, userId uuid.UUID, req *dto.ConfirmPurchaseRequest) (*dto.ConfirmPurchaseResponse, error) {
	t := entity.CreditType(req.CreditType)
	if !t.Valid() {
		return nil, serverutils.ErrInvalidCreditType
	}

	secret := s.rzpCfg.KeySecret
	if secret == "" || secret == "xxxx" {
		return nil, serverutils.ErrPaymentUnavailable
	}
	if !razorpay.VerifyPaymentSignature(req.OrderId, req.PaymentId, req.Signature, secret) {
		return nil, serverutils.ErrInvalidSignature
	}

	var coupon *entity.Coupon
	if req.CouponCode != "" {
		// Revalidation may fail here if the coupon was exhausted between
		// order creation and payment. The purchase still goes through.
		c, err := s.promotions.ValidateCoupon(ctx, req.CouponCode, userId, entity.CouponTypeCredit)
		if err == nil {
			coupon = c
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	credits := uow.CreditRepository()

	referenceId := req.PaymentId
	tx := &entity.CreditTransaction{
		UserId:          userId,
		CreditType:      t,
		Amount:          req.Quantity,
		TransactionType: entity.TransactionTypePurchase,
		Description:     fmt.Sprintf("Purchased %d %s credits", req.Quantity, t),
		ReferenceId:     &referenceId,
	}
	if err := credits.CreateTransaction(ctx, tx); err != nil {
		// The unique index on (user, type, reference) turns a replayed
		// confirmation into a duplicate-key error: the credits were
		// already added, so report the current balance.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			_ = uow.Rollback()
			return s.alreadyConfirmed(ctx, userId, t, req.Quantity)
		}
		return nil, err
	}

	row, err := credits.AddBalance(ctx, userId, t, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if coupon != nil {
		if err := s.promotions.RecordUsage(ctx, coupon.Id, userId); err != nil {
			s.logger.Warn("credits", "failed to record coupon usage", map[string]interface{}{
				"coupon": coupon.Code, "user_id": userId.String(), "error": err.Error(),
			})
		}
	}

	s.publish(ctx, events.NewCreditsPurchasedEvent(userId.String(), req.CreditType, req.Quantity, 0))

	return &dto.ConfirmPurchaseResponse{
		CreditType: req.CreditType,
		Added:      req.Quantity,
		Balance:    row.Balance,
	}, nil
}

func (s *creditService) alreadyConfirmed(ctx context.Context, userId uuid.UUID, t entity.CreditType, quantity int) (*dto.ConfirmPurchaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := uow.CreditRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByCreditType{CreditType: string(t)},
	)
	if err != nil {
		return nil, err
	}

	balance := 0
	if row != nil {
		balance = row.Balance
	}
	return &dto.ConfirmPurchaseResponse{
		CreditType: string(t),
		Added:      quantity,
		Balance:    balance,
	}, nil
}

func (s *creditService) publish(ctx context.Context, evt events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("events", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(), "error": err.Error(),
		})
	}
}

func paiseToRupees(paise int64) float64 {
	return float64(paise) / 100
}
