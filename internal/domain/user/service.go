package user

import (
	"context"
	"net/http"
	"time"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/eventbus"
)

type Service interface {
	Register(ctx context.Context, id, username, email string) (User, error)
	Login(ctx context.Context, userID string) (User, error)
	SetUserActive(ctx context.Context, userID string, isActive bool) (User, error)
}

type service struct {
	uow    domain.UnitOfWork
	users  Repository
	events eventbus.Emitter
	now    func() time.Time
}

func NewService(uow domain.UnitOfWork, users Repository, events eventbus.Emitter) Service {
	return &service{
		uow:    uow,
		users:  users,
		events: events,
		now:    time.Now,
	}
}

func (s *service) Register(ctx context.Context, id, username, email string) (User, error) {
	var res User

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.users.Create(ctx, User{
			ID:       id,
			Username: username,
			Email:    email,
			IsActive: true,
		})
		if err != nil {
			return err
		}
		res = created
		return nil
	})
	if err != nil {
		return User{}, err
	}

	if s.events != nil {
		eventbus.Publish(ctx, s.events, domain.UserRegisteredTopic, domain.UserRegistered{
			UserID:   res.ID,
			Username: res.Username,
			Email:    res.Email,
		})
	}

	return res, nil
}

func (s *service) Login(ctx context.Context, userID string) (User, error) {
	var res User
	at := s.now().UTC()

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !u.IsActive {
			return &domain.DomainError{
				Code:       domain.ErrorCodeUserInactive,
				Message:    "user is deactivated",
				HTTPStatus: http.StatusForbidden,
			}
		}

		if err := s.users.TouchLastLogin(ctx, userID, at); err != nil {
			return err
		}
		u.LastLoginAt = &at
		res = u
		return nil
	})
	if err != nil {
		return User{}, err
	}

	if s.events != nil {
		eventbus.PublishSync(ctx, s.events, domain.UserLoggedInTopic, domain.UserLoggedIn{
			UserID: res.ID,
			At:     at,
		})
	}

	return res, nil
}

func (s *service) SetUserActive(ctx context.Context, userID string, isActive bool) (User, error) {
	var res User

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.users.SetActive(ctx, userID, isActive)
		if err != nil {
			return err
		}
		res = u
		return nil
	})
	if err != nil {
		return User{}, err
	}

	if s.events != nil {
		eventbus.PublishSync(ctx, s.events, domain.UserStatusChangedTopic, domain.UserStatusChanged{
			UserID:   res.ID,
			IsActive: res.IsActive,
		})
	}

	return res, nil
}
