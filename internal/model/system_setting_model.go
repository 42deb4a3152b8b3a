package model

import (
	"time"

	"gorm.io/datatypes"
)

type SystemSetting struct {
	SettingKey   string         `gorm:"type:varchar(100);primaryKey"`
	SettingValue datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
