package contract

import (
	"context"

	"careerhub-billing/internal/entity"
)

type SettingRepository interface {
	// Find returns nil when the key does not exist.
	Find(ctx context.Context, key string) (*entity.SystemSetting, error)
	Set(ctx context.Context, key string, value []byte) error
}
