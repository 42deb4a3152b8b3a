package service

import (
	"context"
	"fmt"
	"time"

	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/entity"
	"careerhub-billing/internal/pkg/logger"
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/repository/specification"
	"careerhub-billing/internal/repository/unitofwork"
	"careerhub-billing/pkg/events"

	"github.com/google/uuid"
)

// IEngagementService tracks daily login streaks and XP. Every seventh
// consecutive day grants one AI interview credit.
type IEngagementService interface {
	ProcessDailyLogin(ctx context.Context, userId uuid.UUID) (*dto.DailyLoginResponse, error)
	GetEngagementStatus(ctx context.Context, userId uuid.UUID) (*dto.EngagementStatusResponse, error)
}

const (
	dailyLoginXp      = 25
	streakRewardEvery = 7
)

type engagementService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewEngagementService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) IEngagementService {
	return &engagementService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *engagementService) ProcessDailyLogin(ctx context.Context, userId uuid.UUID) (*dto.DailyLoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.ErrUserNotFound
	}

	now := nowFunc()
	if user.LastLoginAt != nil && sameCalendarDay(*user.LastLoginAt, now) {
		return &dto.DailyLoginResponse{
			StreakCount: user.StreakCount,
			Xp:          user.Xp,
		}, nil
	}

	streak := 1
	if user.LastLoginAt != nil && sameCalendarDay(*user.LastLoginAt, now.AddDate(0, 0, -1)) {
		streak = user.StreakCount + 1
	}

	user.LastLoginAt = &now
	user.StreakCount = streak
	user.Xp += dailyLoginXp
	creditAwarded := streak%streakRewardEvery == 0

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	if creditAwarded {
		credits := uow.CreditRepository()
		if _, err := credits.AddBalance(ctx, userId, entity.CreditTypeAiInterview, 1); err != nil {
			return nil, err
		}
		tx := &entity.CreditTransaction{
			UserId:          userId,
			CreditType:      entity.CreditTypeAiInterview,
			Amount:          1,
			TransactionType: entity.TransactionTypeGrant,
			Description:     fmt.Sprintf("%d-day login streak reward", streak),
		}
		if err := credits.CreateTransaction(ctx, tx); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if creditAwarded && s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewStreakCreditAwardedEvent(userId.String(), streak)); err != nil {
			s.logger.Warn("engagement", "failed to publish event", map[string]interface{}{
				"user_id": userId.String(), "error": err.Error(),
			})
		}
	}

	return &dto.DailyLoginResponse{
		StreakCount:   streak,
		Xp:            user.Xp,
		XpAwarded:     dailyLoginXp,
		CreditAwarded: creditAwarded,
	}, nil
}

func (s *engagementService) GetEngagementStatus(ctx context.Context, userId uuid.UUID) (*dto.EngagementStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.ErrUserNotFound
	}

	return &dto.EngagementStatusResponse{
		StreakCount: user.StreakCount,
		Xp:          user.Xp,
		LastLoginAt: user.LastLoginAt,
	}, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
