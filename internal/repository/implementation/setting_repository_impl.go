package implementation

import (
	"context"
	"errors"

	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/model"
	"careerhub-billing/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) contract.SettingRepository {
	return &SettingRepositoryImpl{db: db}
}

func (r *SettingRepositoryImpl) Find(ctx context.Context, key string) (*entity.SystemSetting, error) {
	var m model.SystemSetting
	if err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.SystemSetting{
		SettingKey:   m.SettingKey,
		SettingValue: []byte(m.SettingValue),
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r *SettingRepositoryImpl) Set(ctx context.Context, key string, value []byte) error {
	m := &model.SystemSetting{
		SettingKey:   key,
		SettingValue: datatypes.JSON(value),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(m).Error
}
