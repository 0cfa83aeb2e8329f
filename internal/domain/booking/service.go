package booking

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/user"
	"bookingsvc/internal/eventbus"
)

type Service interface {
	Create(ctx context.Context, userID, resource string, startsAt time.Time, priceCents int64) (Booking, error)
	Cancel(ctx context.Context, id string) (Booking, error)
	Get(ctx context.Context, id string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
}

type service struct {
	uow      domain.UnitOfWork
	bookings Repository
	users    user.Repository
	events   eventbus.Emitter
	newID    func() string
}

func NewService(
	uow domain.UnitOfWork,
	bookings Repository,
	users user.Repository,
	events eventbus.Emitter,
) Service {
	return &service{
		uow:      uow,
		bookings: bookings,
		users:    users,
		events:   events,
		newID:    uuid.NewString,
	}
}

func (s *service) Create(ctx context.Context, userID, resource string, startsAt time.Time, priceCents int64) (Booking, error) {
	var res Booking

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		owner, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !owner.IsActive {
			return &domain.DomainError{
				Code:       domain.ErrorCodeUserInactive,
				Message:    "user is deactivated",
				HTTPStatus: http.StatusForbidden,
			}
		}

		taken, err := s.bookings.SlotTaken(ctx, resource, startsAt)
		if err != nil {
			return err
		}
		if taken {
			return &domain.DomainError{
				Code:       domain.ErrorCodeSlotTaken,
				Message:    "resource is already booked for this time",
				HTTPStatus: http.StatusConflict,
			}
		}

		created, err := s.bookings.Create(ctx, Booking{
			ID:         s.newID(),
			UserID:     owner.ID,
			Resource:   resource,
			StartsAt:   startsAt.UTC(),
			PriceCents: priceCents,
			Status:     StatusPending,
		})
		if err != nil {
			return err
		}
		res = created
		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	if s.events != nil {
		eventbus.Publish(ctx, s.events, domain.BookingCreatedTopic, ToEvent(res))
	}

	return res, nil
}

// Cancel is idempotent: cancelling a cancelled booking returns it unchanged
// and emits nothing.
func (s *service) Cancel(ctx context.Context, id string) (Booking, error) {
	var (
		res       Booking
		cancelled bool
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.bookings.LockByID(ctx, id)
		if err != nil {
			return err
		}

		if current.Status == StatusCancelled {
			res = current
			return nil
		}

		updated, err := s.bookings.UpdateStatus(ctx, id, StatusCancelled)
		if err != nil {
			return err
		}
		res = updated
		cancelled = true
		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	if cancelled && s.events != nil {
		eventbus.Publish(ctx, s.events, domain.BookingCancelledTopic, ToEvent(res))
	}

	return res, nil
}

func (s *service) Get(ctx context.Context, id string) (Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(ctx, userID)
}

func ToEvent(b Booking) domain.BookingEvent {
	return domain.BookingEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		Resource:   b.Resource,
		StartsAt:   b.StartsAt,
		PriceCents: b.PriceCents,
	}
}
