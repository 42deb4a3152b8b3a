package service

import (
	"context"
	"encoding/json"
	"time"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/logger"
	"careerhub-billing/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

// IPricingService resolves the current credit price book. Prices live in
// system_settings so operators can change them without a deploy; the
// resolved book is cached for five minutes.
type IPricingService interface {
	GetPricing(ctx context.Context) (*entity.CreditPricing, error)
	Invalidate()
}

const (
	pricingCacheKey = "credit_pricing"
	pricingCacheTTL = 5 * time.Minute
)

type pricingService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewPricingService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IPricingService {
	return &pricingService{
		uowFactory: uowFactory,
		cache:      gocache.New(pricingCacheTTL, 10*time.Minute),
		logger:     log,
	}
}

func (s *pricingService) GetPricing(ctx context.Context) (*entity.CreditPricing, error) {
	if cached, found := s.cache.Get(pricingCacheKey); found {
		return cached.(*entity.CreditPricing), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings := uow.SettingRepository()

	pricing := defaultPricing()

	// The settings store is advisory. When it is unreachable the
	// default price book keeps pricing and checkout alive; the
	// fallback is not cached so recovery is immediate.
	prices, err := settings.Find(ctx, entity.SettingKeyCreditPrices)
	if err != nil {
		s.logger.Warn("pricing", "failed to load credit prices, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return pricing, nil
	}
	if prices != nil {
		var perCredit map[entity.CreditType]int64
		if err := json.Unmarshal(prices.SettingValue, &perCredit); err == nil && len(perCredit) > 0 {
			for t, p := range perCredit {
				pricing.PerCredit[t] = p
			}
		}
	}

	bundles, err := settings.Find(ctx, entity.SettingKeyCreditBundles)
	if err != nil {
		s.logger.Warn("pricing", "failed to load credit bundles, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return pricing, nil
	}
	if bundles != nil {
		var byType map[entity.CreditType][]entity.CreditBundle
		if err := json.Unmarshal(bundles.SettingValue, &byType); err == nil && len(byType) > 0 {
			for t, b := range byType {
				pricing.Bundles[t] = b
			}
		}
	}

	s.cache.Set(pricingCacheKey, pricing, pricingCacheTTL)
	return pricing, nil
}

func (s *pricingService) Invalidate() {
	s.cache.Delete(pricingCacheKey)
}

// defaultPricing is the fallback price book used when the settings rows
// are absent or unreadable.
func defaultPricing() *entity.CreditPricing {
	return &entity.CreditPricing{
		PerCredit: map[entity.CreditType]int64{
			entity.CreditTypeResumeReview: 4900,
			entity.CreditTypeAiInterview:  9900,
			entity.CreditTypeSkillTest:    2900,
		},
		Bundles: map[entity.CreditType][]entity.CreditBundle{
			entity.CreditTypeResumeReview: {
				{Quantity: 5, Price: 19900, Savings: "20%"},
				{Quantity: 10, Price: 34900, Savings: "30%"},
				{Quantity: 25, Price: 74900, Savings: "40%"},
			},
			entity.CreditTypeAiInterview: {
				{Quantity: 5, Price: 39900, Savings: "20%"},
				{Quantity: 10, Price: 69900, Savings: "30%"},
				{Quantity: 25, Price: 149900, Savings: "40%"},
			},
			entity.CreditTypeSkillTest: {
				{Quantity: 10, Price: 24900, Savings: "15%"},
				{Quantity: 25, Price: 54900, Savings: "25%"},
				{Quantity: 50, Price: 99900, Savings: "35%"},
			},
		},
	}
}
