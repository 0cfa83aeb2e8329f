package subscribers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/eventbus"
	"bookingsvc/internal/infrastructure/async"
)

type Notification struct {
	UserID  string
	Subject string
	Body    string
}

// Sender delivers a notification to a user.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// LogSender writes notifications to the log instead of delivering them.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(ctx context.Context, n Notification) error {
	s.Log.Info("notification sent",
		zap.String("user_id", n.UserID),
		zap.String("subject", n.Subject),
	)
	return nil
}

type Notifier struct {
	pool   *async.WorkerPool
	sender Sender
	log    *zap.Logger
}

func NewNotifier(pool *async.WorkerPool, sender Sender, log *zap.Logger) *Notifier {
	return &Notifier{pool: pool, sender: sender, log: log.Named("notifier")}
}

func (n *Notifier) Register(bus *eventbus.Bus) eventbus.Unsubscribe {
	return group(
		eventbus.Subscribe(bus, domain.UserRegisteredTopic, n.onUserRegistered, eventbus.Async()),
		eventbus.Subscribe(bus, domain.BookingConfirmedTopic, n.onBookingConfirmed, eventbus.Async()),
		eventbus.Subscribe(bus, domain.BookingCancelledTopic, n.onBookingCancelled, eventbus.Async()),
	)
}

func (n *Notifier) onUserRegistered(ctx context.Context, ev domain.UserRegistered) error {
	return n.enqueue(ctx, Notification{
		UserID:  ev.UserID,
		Subject: "Welcome",
		Body:    fmt.Sprintf("Hi %s, your account is ready.", ev.Username),
	})
}

func (n *Notifier) onBookingConfirmed(ctx context.Context, ev domain.BookingEvent) error {
	return n.enqueue(ctx, Notification{
		UserID:  ev.UserID,
		Subject: "Booking confirmed",
		Body:    fmt.Sprintf("%s on %s is confirmed.", ev.Resource, ev.StartsAt.Format("2006-01-02 15:04 MST")),
	})
}

func (n *Notifier) onBookingCancelled(ctx context.Context, ev domain.BookingEvent) error {
	return n.enqueue(ctx, Notification{
		UserID:  ev.UserID,
		Subject: "Booking cancelled",
		Body:    fmt.Sprintf("%s on %s was cancelled.", ev.Resource, ev.StartsAt.Format("2006-01-02 15:04 MST")),
	})
}

func (n *Notifier) enqueue(ctx context.Context, msg Notification) error {
	ok := n.pool.Submit(ctx, func(ctx context.Context) {
		if err := n.sender.Send(ctx, msg); err != nil {
			n.log.Error("notification delivery failed",
				zap.String("user_id", msg.UserID),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	})
	if !ok {
		return fmt.Errorf("notification %q for %s not queued", msg.Subject, msg.UserID)
	}
	return nil
}
