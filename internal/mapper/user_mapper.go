package mapper

import (
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:          u.Id,
		Email:       u.Email,
		IsVerified:  u.IsVerified,
		LastLoginAt: u.LastLoginAt,
		StreakCount: u.StreakCount,
		Xp:          u.Xp,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:          u.Id,
		Email:       u.Email,
		IsVerified:  u.IsVerified,
		LastLoginAt: u.LastLoginAt,
		StreakCount: u.StreakCount,
		Xp:          u.Xp,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
