package service

import (
	"context"
	"errors"
	"testing"

	"careerhub-billing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the default price book", func(t *testing.T) {
		factory := newFakeFactory()
		svc := NewPricingService(factory, noopLogger{})

		pricing, err := svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4900), pricing.PerCredit[entity.CreditTypeResumeReview])
		assert.Equal(t, int64(9900), pricing.PerCredit[entity.CreditTypeAiInterview])
		assert.Len(t, pricing.Bundles[entity.CreditTypeSkillTest], 3)
		assert.Equal(t, "20%", pricing.Bundles[entity.CreditTypeResumeReview][0].Savings)
		assert.Equal(t, "15%", pricing.Bundles[entity.CreditTypeSkillTest][0].Savings)
	})

	t.Run("settings rows override defaults per key", func(t *testing.T) {
		factory := newFakeFactory()
		factory.store.settings[entity.SettingKeyCreditPrices] = []byte(`{"RESUME_REVIEW": 5900}`)
		svc := NewPricingService(factory, noopLogger{})

		pricing, err := svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5900), pricing.PerCredit[entity.CreditTypeResumeReview])
		// Untouched keys keep their defaults.
		assert.Equal(t, int64(2900), pricing.PerCredit[entity.CreditTypeSkillTest])
	})

	t.Run("unreachable settings store falls back to defaults", func(t *testing.T) {
		factory := newFakeFactory()
		factory.store.settingsErr = errors.New("connection refused")
		svc := NewPricingService(factory, noopLogger{})

		pricing, err := svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4900), pricing.PerCredit[entity.CreditTypeResumeReview])
		assert.Len(t, pricing.Bundles[entity.CreditTypeAiInterview], 3)

		// Fallbacks are not cached; once the store recovers, stored
		// overrides apply again.
		factory.store.settingsErr = nil
		factory.store.settings[entity.SettingKeyCreditPrices] = []byte(`{"RESUME_REVIEW": 5900}`)
		pricing, err = svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5900), pricing.PerCredit[entity.CreditTypeResumeReview])
	})

	t.Run("malformed settings are ignored", func(t *testing.T) {
		factory := newFakeFactory()
		factory.store.settings[entity.SettingKeyCreditPrices] = []byte(`not json`)
		svc := NewPricingService(factory, noopLogger{})

		pricing, err := svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4900), pricing.PerCredit[entity.CreditTypeResumeReview])
	})

	t.Run("result is cached until invalidated", func(t *testing.T) {
		factory := newFakeFactory()
		svc := NewPricingService(factory, noopLogger{})

		_, err := svc.GetPricing(ctx)
		require.NoError(t, err)

		factory.store.settings[entity.SettingKeyCreditPrices] = []byte(`{"SKILL_TEST": 9999}`)
		pricing, err := svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2900), pricing.PerCredit[entity.CreditTypeSkillTest], "stale until invalidated")

		svc.Invalidate()
		pricing, err = svc.GetPricing(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(9999), pricing.PerCredit[entity.CreditTypeSkillTest])
	})
}
