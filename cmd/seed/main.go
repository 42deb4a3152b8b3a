package main

import (
	"encoding/json"
	"log"
	"os"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/model"
	"careerhub-billing/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding subscription plans...")
	seedPlans(db)

	color.Cyan("Seeding credit pricing settings...")
	seedPricingSettings(db)

	color.Green("✅ Seeding completed")
}

func seedPlans(db *gorm.DB) {
	plans := []struct {
		Name         string
		DisplayName  string
		PriceMonthly float64
		PriceYearly  float64
		SortOrder    int
		Features     entity.PlanFeatures
	}{
		{
			Name:        "free",
			DisplayName: "Free",
			SortOrder:   1,
			Features: entity.PlanFeatures{
				ResumeReviews: entity.Limited(1),
				Interviews:    entity.Limited(1),
				SkillTests:    entity.Limited(2),
			},
		},
		{
			Name:         "starter",
			DisplayName:  "Starter",
			PriceMonthly: 299,
			PriceYearly:  2999,
			SortOrder:    2,
			Features: entity.PlanFeatures{
				ResumeReviews: entity.Limited(5),
				Interviews:    entity.Limited(5),
				SkillTests:    entity.Limited(10),
				JobAlerts:     true,
			},
		},
		{
			Name:         "pro",
			DisplayName:  "Pro",
			PriceMonthly: 599,
			PriceYearly:  5999,
			SortOrder:    3,
			Features: entity.PlanFeatures{
				ResumeReviews:   entity.Unlimited(),
				Interviews:      entity.Limited(20),
				SkillTests:      entity.Unlimited(),
				JobAlerts:       true,
				PrioritySupport: true,
				ApiAccess:       true,
			},
		},
	}

	for _, p := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", p.Name)
			continue
		}

		featuresJSON, err := json.Marshal(p.Features)
		if err != nil {
			log.Fatalf("Error marshalling features for '%s': %v", p.Name, err)
		}

		row := model.SubscriptionPlan{
			Name:         p.Name,
			DisplayName:  p.DisplayName,
			PriceMonthly: p.PriceMonthly,
			PriceYearly:  p.PriceYearly,
			Features:     datatypes.JSON(featuresJSON),
			IsActive:     true,
			SortOrder:    p.SortOrder,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Name, err)
		} else {
			color.Green("Created plan: %s", p.DisplayName)
		}
	}
}

func seedPricingSettings(db *gorm.DB) {
	prices := map[entity.CreditType]int64{
		entity.CreditTypeResumeReview: 4900,
		entity.CreditTypeAiInterview:  9900,
		entity.CreditTypeSkillTest:    2900,
	}
	bundles := map[entity.CreditType][]entity.CreditBundle{
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
	}

	settings := map[string]interface{}{
		entity.SettingKeyCreditPrices:  prices,
		entity.SettingKeyCreditBundles: bundles,
	}

	for key, value := range settings {
		var existing model.SystemSetting
		if err := db.Where("setting_key = ?", key).First(&existing).Error; err == nil {
			color.Yellow("Setting '%s' already exists, skipping...", key)
			continue
		}

		data, err := json.Marshal(value)
		if err != nil {
			log.Fatalf("Error marshalling setting '%s': %v", key, err)
		}

		row := model.SystemSetting{
			SettingKey:   key,
			SettingValue: datatypes.JSON(data),
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("Error creating setting '%s': %v", key, err)
		} else {
			color.Green("Created setting: %s", key)
		}
	}
}
