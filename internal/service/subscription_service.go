package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careerhub-billing/internal/config"
	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/logger"
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/repository/specification"
	"careerhub-billing/internal/repository/unitofwork"
	"careerhub-billing/pkg/events"
	"careerhub-billing/pkg/razorpay"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ISubscriptionService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	GetUserSubscription(ctx context.Context, userId uuid.UUID) (*dto.UserSubscriptionResponse, error)
	CreateSubscription(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error)
	CancelSubscription(ctx context.Context, userId uuid.UUID, immediate bool) (*dto.CancelSubscriptionResponse, error)

	// CheckAndRenewSubscription rolls the billing period forward when it
	// has lapsed, resetting plan credits. Reads that depend on current
	// entitlements call this first.
	CheckAndRenewSubscription(ctx context.Context, userId uuid.UUID) error

	// PlanFeaturesFor resolves the effective entitlements for a user:
	// the active subscription's plan, or the free tier.
	PlanFeaturesFor(ctx context.Context, userId uuid.UUID) (entity.PlanFeatures, error)

	// HandleWebhookEvent verifies and processes a gateway webhook
	// delivery. eventId deduplicates redelivery attempts.
	HandleWebhookEvent(ctx context.Context, body []byte, signature, eventId string) error
}

// renewalPeriod is the subscription billing window. Yearly plans are
// charged yearly by the gateway but entitlements still refill monthly.
const renewalPeriod = 30 * 24 * time.Hour

const webhookDedupTTL = 24 * time.Hour

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	promotions IPromotionService
	gateway    razorpay.Gateway
	rzpCfg     config.RazorpayConfig
	redis      *redis.Client
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	promotions IPromotionService,
	gateway razorpay.Gateway,
	rzpCfg config.RazorpayConfig,
	redisClient *redis.Client,
	publisher events.Publisher,
	log logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		promotions: promotions,
		gateway:    gateway,
		rzpCfg:     rzpCfg,
		redis:      redisClient,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *subscriptionService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.ActivePlans{},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, planToDTO(p))
	}
	return res, nil
}

func (s *subscriptionService) GetUserSubscription(ctx context.Context, userId uuid.UUID) (*dto.UserSubscriptionResponse, error) {
	if err := s.CheckAndRenewSubscription(ctx, userId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	if sub == nil || sub.Status == entity.SubscriptionStatusCancelled {
		free, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByPlanName{Name: entity.FreePlanName})
		if err != nil {
			return nil, err
		}
		res := &dto.UserSubscriptionResponse{
			PlanName:    entity.FreePlanName,
			DisplayName: "Free",
			Status:      string(entity.SubscriptionStatusActive),
		}
		if free != nil {
			res.DisplayName = free.DisplayName
		}
		return res, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, serverutils.ErrPlanNotFound
	}

	return &dto.UserSubscriptionResponse{
		PlanName:           plan.Name,
		DisplayName:        plan.DisplayName,
		Status:             string(sub.Status),
		CurrentPeriodStart: &sub.CurrentPeriodStart,
		CurrentPeriodEnd:   &sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}, nil
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs := uow.SubscriptionRepository()

	plan, err := subs.FindOnePlan(ctx, specification.ByPlanName{Name: req.PlanName})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, serverutils.ErrPlanNotFound
	}

	existing, err := subs.FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case entity.SubscriptionStatusPending:
			return nil, serverutils.ErrSubscriptionExists
		case entity.SubscriptionStatusActive:
			if existing.PlanId == plan.Id {
				return nil, serverutils.ErrAlreadySubscribed
			}
			currentPlan, err := subs.FindOnePlan(ctx, specification.ByID{ID: existing.PlanId})
			if err != nil {
				return nil, err
			}
			if currentPlan != nil && !currentPlan.IsFree() {
				// Leaving a paid plan always needs an explicit cancel
				// first. Downgrading to free gets its own code so the
				// client can point at the cancel flow.
				if plan.IsFree() {
					return nil, serverutils.ErrCancelRequired
				}
				return nil, serverutils.ErrSubscriptionExists
			}
		}
	}

	var coupon *entity.Coupon
	if req.CouponCode != "" && !plan.IsFree() {
		coupon, err = s.promotions.ValidateCoupon(ctx, req.CouponCode, userId, entity.CouponTypeSubscription)
		if err != nil {
			return nil, err
		}
	}

	if plan.IsFree() {
		return s.subscribeFree(ctx, userId, plan)
	}

	cycle := entity.BillingCycle(req.BillingCycle)
	gatewayPlanId := plan.RazorpayPlanIdFor(cycle)
	if gatewayPlanId == nil || *gatewayPlanId == "" {
		return nil, serverutils.ErrPlanNotConfigured
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.ErrUserNotFound
	}

	customer := razorpay.Customer{
		Email:   user.Email,
		Name:    req.Name,
		Contact: req.Contact,
	}
	gwSub, err := s.gateway.CreateSubscription(ctx, *gatewayPlanId, customer, map[string]interface{}{
		"user_id":   userId.String(),
		"plan_name": plan.Name,
	})
	if err != nil {
		if errors.Is(err, razorpay.ErrNotConfigured) {
			return nil, serverutils.ErrPaymentUnavailable
		}
		return nil, fmt.Errorf("gateway subscription: %w", err)
	}

	now := nowFunc()
	periodEnd := now.Add(renewalPeriod)
	if cycle == entity.BillingCycleYearly {
		periodEnd = now.AddDate(1, 0, 0)
	}
	sub := &entity.UserSubscription{
		UserId:                 userId,
		PlanId:                 plan.Id,
		Status:                 entity.SubscriptionStatusPending,
		RazorpayCustomerId:     &gwSub.CustomerId,
		RazorpaySubscriptionId: &gwSub.Id,
		CurrentPeriodStart:     now,
		CurrentPeriodEnd:       periodEnd,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionRepository().UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if coupon != nil {
		if err := s.promotions.RecordUsage(ctx, coupon.Id, userId); err != nil {
			s.logger.Warn("subscription", "failed to record coupon usage", map[string]interface{}{
				"coupon": coupon.Code, "user_id": userId.String(), "error": err.Error(),
			})
		}
	}

	return &dto.SubscribeResponse{
		SubscriptionId:         sub.Id,
		PlanName:               plan.Name,
		Status:                 string(sub.Status),
		RazorpaySubscriptionId: sub.RazorpaySubscriptionId,
		ShortUrl:               gwSub.ShortUrl,
		KeyId:                  s.rzpCfg.KeyId,
	}, nil
}

// subscribeFree activates the free tier immediately. Credits are
// granted in the same transaction as the subscription row.
func (s *subscriptionService) subscribeFree(ctx context.Context, userId uuid.UUID, plan *entity.SubscriptionPlan) (*dto.SubscribeResponse, error) {
	now := nowFunc()
	sub := &entity.UserSubscription{
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.Add(renewalPeriod),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionRepository().UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.initializeCreditsForPlan(ctx, uow, userId, plan); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewSubscriptionActivatedEvent(userId.String(), plan.Name))

	return &dto.SubscribeResponse{
		SubscriptionId: sub.Id,
		PlanName:       plan.Name,
		Status:         string(sub.Status),
	}, nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, userId uuid.UUID, immediate bool) (*dto.CancelSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs := uow.SubscriptionRepository()

	sub, err := subs.FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.Status != entity.SubscriptionStatusActive {
		return nil, serverutils.ErrNoActiveSubscription
	}

	plan, err := subs.FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.IsFree() {
		return nil, serverutils.ErrNoActiveSubscription
	}

	if sub.RazorpaySubscriptionId != nil {
		err := s.gateway.CancelSubscription(ctx, *sub.RazorpaySubscriptionId, !immediate)
		if err != nil {
			if errors.Is(err, razorpay.ErrNotConfigured) {
				return nil, serverutils.ErrPaymentUnavailable
			}
			return nil, fmt.Errorf("gateway cancel: %w", err)
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if immediate {
		sub.Status = entity.SubscriptionStatusCancelled
	} else {
		sub.CancelAtPeriodEnd = true
	}
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewSubscriptionCancelledEvent(userId.String(), plan.Name, !immediate))

	return &dto.CancelSubscriptionResponse{
		PlanName:          plan.Name,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
	}, nil
}

func (s *subscriptionService) CheckAndRenewSubscription(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs := uow.SubscriptionRepository()

	sub, err := subs.FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if sub == nil || sub.Status != entity.SubscriptionStatusActive {
		return nil
	}

	now := nowFunc()
	if now.Before(sub.CurrentPeriodEnd) {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if sub.CancelAtPeriodEnd {
		sub.Status = entity.SubscriptionStatusCancelled
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return err
		}
		return uow.Commit()
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return err
	}
	if plan == nil {
		return serverutils.ErrPlanNotFound
	}

	sub.CurrentPeriodStart = now
	sub.CurrentPeriodEnd = now.Add(renewalPeriod)
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}
	if err := s.resetCreditsForPlan(ctx, uow, userId, plan); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *subscriptionService) PlanFeaturesFor(ctx context.Context, userId uuid.UUID) (entity.PlanFeatures, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs := uow.SubscriptionRepository()

	sub, err := subs.FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return entity.PlanFeatures{}, err
	}

	var plan *entity.SubscriptionPlan
	if sub != nil && sub.Status == entity.SubscriptionStatusActive {
		plan, err = subs.FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	} else {
		plan, err = subs.FindOnePlan(ctx, specification.ByPlanName{Name: entity.FreePlanName})
	}
	if err != nil {
		return entity.PlanFeatures{}, err
	}
	if plan == nil {
		return entity.PlanFeatures{}, nil
	}
	return plan.Features, nil
}

func (s *subscriptionService) HandleWebhookEvent(ctx context.Context, body []byte, signature, eventId string) error {
	secret := s.rzpCfg.WebhookSecret
	if secret == "" || secret == "xxxx" {
		return serverutils.ErrPaymentUnavailable
	}
	if !razorpay.VerifyWebhookSignature(body, signature, secret) {
		return serverutils.ErrInvalidSignature
	}

	var evt dto.RazorpayWebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return serverutils.NewError(fiber.StatusBadRequest, "INVALID_BODY", "Malformed webhook payload")
	}

	if s.redis != nil && eventId != "" {
		fresh, err := s.redis.SetNX(ctx, "billing:webhook:"+eventId, 1, webhookDedupTTL).Result()
		if err != nil {
			s.logger.Warn("webhook", "dedup check failed, processing anyway", map[string]interface{}{
				"event_id": eventId, "error": err.Error(),
			})
		} else if !fresh {
			s.logger.Info("webhook", "duplicate delivery skipped", map[string]interface{}{
				"event_id": eventId, "event": evt.Event,
			})
			return nil
		}
	}

	switch evt.Event {
	case "subscription.activated", "subscription.charged":
		return s.handlePaymentSuccess(ctx, evt.Payload.Subscription.Entity.Id, evt.Payload.Payment.Entity.Id)
	default:
		s.logger.Info("webhook", "ignoring event", map[string]interface{}{
			"event": evt.Event, "event_id": eventId,
		})
		return nil
	}
}

// handlePaymentSuccess activates a pending subscription or rolls an
// active one into a fresh paid period. The PENDING check makes first
// activation grant credits exactly once even when both the checkout
// callback and the webhook race.
func (s *subscriptionService) handlePaymentSuccess(ctx context.Context, razorpaySubId, paymentId string) error {
	if razorpaySubId == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.ByRazorpaySubscriptionId{SubscriptionId: razorpaySubId})
	if err != nil {
		return err
	}
	if sub == nil {
		s.logger.Warn("webhook", "payment for unknown subscription", map[string]interface{}{
			"razorpay_subscription_id": razorpaySubId, "payment_id": paymentId,
		})
		return nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return err
	}
	if plan == nil {
		return serverutils.ErrPlanNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := nowFunc()
	switch sub.Status {
	case entity.SubscriptionStatusPending:
		sub.Status = entity.SubscriptionStatusActive
		sub.CurrentPeriodStart = now
		sub.CurrentPeriodEnd = now.Add(renewalPeriod)
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return err
		}
		if err := s.initializeCreditsForPlan(ctx, uow, sub.UserId, plan); err != nil {
			return err
		}
	case entity.SubscriptionStatusActive:
		// Redelivered activation or renewal charge. Period only; credit
		// refills happen through the lazy-renewal path, and touching
		// balances here would wipe mid-period purchases on a replay.
		sub.CurrentPeriodStart = now
		sub.CurrentPeriodEnd = now.Add(renewalPeriod)
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return err
		}
	default:
		s.logger.Info("webhook", "payment for cancelled subscription ignored", map[string]interface{}{
			"razorpay_subscription_id": razorpaySubId,
		})
		return uow.Commit()
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publish(ctx, events.NewSubscriptionActivatedEvent(sub.UserId.String(), plan.Name))
	return nil
}

// initializeCreditsForPlan increments balances by the plan's limits.
// Unlimited features carry no balance rows.
func (s *subscriptionService) initializeCreditsForPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, plan *entity.SubscriptionPlan) error {
	return s.grantPlanCredits(ctx, uow, userId, plan, false,
		fmt.Sprintf("Monthly credit refill from %s plan", plan.Name))
}

// resetCreditsForPlan overwrites balances with the plan's limits.
// Used on period renewal so unused credits do not roll over.
func (s *subscriptionService) resetCreditsForPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, plan *entity.SubscriptionPlan) error {
	return s.grantPlanCredits(ctx, uow, userId, plan, true,
		fmt.Sprintf("Monthly credit renewal from %s plan", plan.Name))
}

func (s *subscriptionService) grantPlanCredits(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, plan *entity.SubscriptionPlan, reset bool, description string) error {
	credits := uow.CreditRepository()
	for _, t := range entity.AllCreditTypes {
		limit := plan.Features.ForCreditType(t)
		if limit.Unlimited || limit.Limit <= 0 {
			continue
		}

		var err error
		if reset {
			_, err = credits.SetBalance(ctx, userId, t, limit.Limit)
		} else {
			_, err = credits.AddBalance(ctx, userId, t, limit.Limit)
		}
		if err != nil {
			return err
		}

		tx := &entity.CreditTransaction{
			UserId:          userId,
			CreditType:      t,
			Amount:          limit.Limit,
			TransactionType: entity.TransactionTypeGrant,
			Description:     description,
		}
		if err := credits.CreateTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func (s *subscriptionService) publish(ctx context.Context, evt events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("events", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(), "error": err.Error(),
		})
	}
}

func planToDTO(p *entity.SubscriptionPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		Id:           p.Id,
		Name:         p.Name,
		DisplayName:  p.DisplayName,
		PriceMonthly: p.PriceMonthly,
		PriceYearly:  p.PriceYearly,
		Currency:     "INR",
		Features: dto.PlanFeaturesResponse{
			ResumeReviews:   featureToDTO(p.Features.ResumeReviews),
			Interviews:      featureToDTO(p.Features.Interviews),
			SkillTests:      featureToDTO(p.Features.SkillTests),
			JobAlerts:       p.Features.JobAlerts,
			PrioritySupport: p.Features.PrioritySupport,
			ApiAccess:       p.Features.ApiAccess,
		},
	}
}

func featureToDTO(f entity.FeatureLimit) interface{} {
	if f.Unlimited {
		return "unlimited"
	}
	return f.Limit
}
