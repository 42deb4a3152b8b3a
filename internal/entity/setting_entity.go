// FILE: internal/entity/setting_entity.go
package entity

import "time"

// SystemSetting is a key-value row holding operator-editable JSON blobs
// (credit prices, credit bundles).
type SystemSetting struct {
	SettingKey   string
	SettingValue []byte
	UpdatedAt    time.Time
}

const (
	SettingKeyCreditPrices  = "credit_prices"
	SettingKeyCreditBundles = "credit_bundles"
)
