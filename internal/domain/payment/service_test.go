package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/booking"
	"bookingsvc/internal/domain/payment"
	"bookingsvc/internal/eventbus/eventbustest"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type bookingRepoFake struct{ byID map[string]booking.Booking }

func (r *bookingRepoFake) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	r.byID[b.ID] = b
	return b, nil
}
func (r *bookingRepoFake) LockByID(ctx context.Context, id string) (booking.Booking, error) {
	return r.GetByID(ctx, id)
}
func (r *bookingRepoFake) GetByID(ctx context.Context, id string) (booking.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return booking.Booking{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "booking not found", HTTPStatus: 404}
	}
	return b, nil
}
func (r *bookingRepoFake) SlotTaken(ctx context.Context, resource string, startsAt time.Time) (bool, error) {
	return false, nil
}
func (r *bookingRepoFake) UpdateStatus(ctx context.Context, id string, status booking.Status) (booking.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	b.Status = status
	r.byID[id] = b
	return b, nil
}
func (r *bookingRepoFake) ListByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	return nil, nil
}

type paymentRepoFake struct{ list []payment.Payment }

func (r *paymentRepoFake) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	r.list = append(r.list, p)
	return p, nil
}
func (r *paymentRepoFake) ListByBooking(ctx context.Context, bookingID string) ([]payment.Payment, error) {
	var res []payment.Payment
	for _, p := range r.list {
		if p.BookingID == bookingID {
			res = append(res, p)
		}
	}
	return res, nil
}

func setup(status booking.Status) (payment.Service, *bookingRepoFake, *paymentRepoFake, *eventbustest.Recorder) {
	bookings := &bookingRepoFake{byID: map[string]booking.Booking{
		"b1": {ID: "b1", UserID: "u1", Resource: "court-1", PriceCents: 2500, Status: status},
	}}
	payments := &paymentRepoFake{}
	events := &eventbustest.Recorder{}
	return payment.NewService(uowStub{}, payments, bookings, events), bookings, payments, events
}

func TestPay_Succeeds(t *testing.T) {
	svc, bookings, payments, events := setup(booking.StatusPending)

	p, b, err := svc.Pay(context.Background(), "b1", 2500)
	require.NoError(t, err)

	assert.Equal(t, payment.StatusSucceeded, p.Status)
	assert.Equal(t, booking.StatusConfirmed, b.Status)
	assert.Equal(t, booking.StatusConfirmed, bookings.byID["b1"].Status)
	assert.Len(t, payments.list, 1)
	assert.Equal(t, []string{domain.EventPaymentSucceeded, domain.EventBookingConfirmed}, events.Names())

	ev, ok := events.Emissions()[0].Payload.(domain.PaymentEvent)
	require.True(t, ok)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, int64(2500), ev.AmountCents)
}

func TestPay_AmountMismatchRecordsFailure(t *testing.T) {
	svc, bookings, payments, events := setup(booking.StatusPending)

	p, _, err := svc.Pay(context.Background(), "b1", 100)

	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ErrorCodePaymentDeclined, de.Code)
	assert.Equal(t, payment.StatusFailed, p.Status)
	assert.NotEmpty(t, p.Reason)
	assert.Equal(t, booking.StatusPending, bookings.byID["b1"].Status)
	require.Len(t, payments.list, 1)
	assert.Equal(t, payment.StatusFailed, payments.list[0].Status)
	assert.Equal(t, []string{domain.EventPaymentFailed}, events.Names())
}

func TestPay_AlreadyPaid(t *testing.T) {
	svc, _, payments, events := setup(booking.StatusConfirmed)

	_, _, err := svc.Pay(context.Background(), "b1", 2500)

	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ErrorCodeAlreadyPaid, de.Code)
	assert.Empty(t, payments.list)
	assert.Empty(t, events.Emissions())
}

func TestPay_CancelledBooking(t *testing.T) {
	svc, _, _, events := setup(booking.StatusCancelled)

	_, _, err := svc.Pay(context.Background(), "b1", 2500)

	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ErrorCodeBookingClosed, de.Code)
	assert.Empty(t, events.Emissions())
}

func TestListByBooking(t *testing.T) {
	svc, _, _, _ := setup(booking.StatusPending)

	_, _, _ = svc.Pay(context.Background(), "b1", 1)
	_, _, err := svc.Pay(context.Background(), "b1", 2500)
	require.NoError(t, err)

	list, err := svc.ListByBooking(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListByBooking(context.Background(), "missing")
	assert.Error(t, err)
}
