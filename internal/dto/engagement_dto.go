package dto

import "time"

type DailyLoginResponse struct {
	StreakCount   int  `json:"streak_count"`
	Xp            int  `json:"xp"`
	XpAwarded     int  `json:"xp_awarded"`
	CreditAwarded bool `json:"credit_awarded"`
}

type EngagementStatusResponse struct {
	StreakCount int        `json:"streak_count"`
	Xp          int        `json:"xp"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
