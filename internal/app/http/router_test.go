package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookingsvc/internal/app/dto"
	httpapi "bookingsvc/internal/app/http"
	"bookingsvc/internal/app/http/handler"
	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/booking"
	"bookingsvc/internal/domain/payment"
	"bookingsvc/internal/domain/stats"
	"bookingsvc/internal/domain/user"
	"bookingsvc/internal/eventbus"
	"bookingsvc/internal/subscribers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errDBDown = errors.New("db down")

type userSvcFake struct{}

func (userSvcFake) Register(ctx context.Context, id, username, email string) (user.User, error) {
	return user.User{ID: id, Username: username, Email: email, IsActive: true}, nil
}
func (userSvcFake) Login(ctx context.Context, userID string) (user.User, error) {
	return user.User{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "user not found", HTTPStatus: http.StatusNotFound}
}
func (userSvcFake) SetUserActive(ctx context.Context, userID string, isActive bool) (user.User, error) {
	return user.User{}, errDBDown
}

type bookingSvcFake struct{}

func (bookingSvcFake) Create(ctx context.Context, userID, resource string, startsAt time.Time, priceCents int64) (booking.Booking, error) {
	return booking.Booking{ID: "b1", UserID: userID, Resource: resource, StartsAt: startsAt, PriceCents: priceCents, Status: booking.StatusPending}, nil
}
func (bookingSvcFake) Cancel(ctx context.Context, id string) (booking.Booking, error) {
	return booking.Booking{ID: id, Status: booking.StatusCancelled}, nil
}
func (bookingSvcFake) Get(ctx context.Context, id string) (booking.Booking, error) {
	panic("unexpected nil booking")
}
func (bookingSvcFake) ListByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	return nil, nil
}

type paymentSvcFake struct{}

func (paymentSvcFake) Pay(ctx context.Context, bookingID string, amountCents int64) (payment.Payment, booking.Booking, error) {
	p := payment.Payment{ID: "p1", BookingID: bookingID, AmountCents: amountCents, Status: payment.StatusFailed, Reason: "amount mismatch"}
	return p, booking.Booking{ID: bookingID}, &domain.DomainError{Code: domain.ErrorCodePaymentDeclined, Message: "amount mismatch", HTTPStatus: http.StatusPaymentRequired}
}
func (paymentSvcFake) ListByBooking(ctx context.Context, bookingID string) ([]payment.Payment, error) {
	return nil, nil
}

type statsSvcFake struct{}

func (statsSvcFake) Record(ctx context.Context, eventName string) error { return nil }
func (statsSvcFake) EventCounts(ctx context.Context) ([]stats.EventCount, error) {
	return []stats.EventCount{{EventName: domain.EventBookingCreated, Count: 3}}, nil
}

type appErrors struct {
	mu   sync.Mutex
	list []domain.AppError
}

func (a *appErrors) all() []domain.AppError {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AppError(nil), a.list...)
}

func newTestRouter(t *testing.T) (*gin.Engine, *eventbus.Bus, *appErrors) {
	t.Helper()

	bus := eventbus.New(zap.NewNop())
	monitor := subscribers.NewMonitor()
	monitor.Register(bus)

	reported := &appErrors{}
	eventbus.Subscribe(bus, domain.AppErrorTopic, func(ctx context.Context, ev domain.AppError) error {
		reported.mu.Lock()
		reported.list = append(reported.list, ev)
		reported.mu.Unlock()
		return nil
	})

	h := handler.New(userSvcFake{}, bookingSvcFake{}, paymentSvcFake{}, statsSvcFake{}, bus, monitor, bus, zap.NewNop())
	return httpapi.NewRouter(h, zap.NewNop()), bus, reported
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Error {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRegister(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/auth/register", map[string]string{
		"user_id": "u1", "username": "alice", "email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User dto.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.User.UserID)
	assert.True(t, resp.User.IsActive)
}

func TestAuthRegister_Validation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/auth/register", map[string]string{
		"user_id": "u1", "username": "alice", "email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, w).Code)
}

func TestDomainErrorMapping(t *testing.T) {
	r, _, reported := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/auth/login", map[string]string{"user_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(domain.ErrorCodeNotFound), decodeError(t, w).Code)
	assert.Empty(t, reported.all())
}

func TestInternalErrorReportsAppError(t *testing.T) {
	r, _, reported := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/users/setIsActive", map[string]any{"user_id": "u1", "is_active": true})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Code)

	errs := reported.all()
	require.Len(t, errs, 1)
	assert.Equal(t, "/users/setIsActive", errs[0].Path)
	assert.Equal(t, errDBDown.Error(), errs[0].Err)
	assert.False(t, errs[0].Panic)
}

func TestPanicRecoveryReportsAppError(t *testing.T) {
	r, _, reported := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/bookings/get?booking_id=b1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	errs := reported.all()
	require.Len(t, errs, 1)
	assert.True(t, errs[0].Panic)
	assert.Equal(t, http.MethodGet, errs[0].Method)
}

func TestBookingCreate(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/bookings/create", map[string]any{
		"user_id":     "u1",
		"resource":    "court-1",
		"starts_at":   "2026-11-02T10:00:00Z",
		"price_cents": 2500,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Booking dto.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PENDING", resp.Booking.Status)
	assert.Equal(t, int64(2500), resp.Booking.PriceCents)

	w = do(t, r, http.MethodPost, "/bookings/create", map[string]any{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentDeclined(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/payments/pay", map[string]any{"booking_id": "b1", "amount_cents": 10})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp struct {
		Error   dto.Error   `json:"error"`
		Payment dto.Payment `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.ErrorCodePaymentDeclined), resp.Error.Code)
	assert.Equal(t, "FAILED", resp.Payment.Status)
}

func TestStatsEvents(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/stats/events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.EventStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, int64(3), resp.Events[0].Count)
}

func TestStatsBus(t *testing.T) {
	r, bus, _ := newTestRouter(t)

	bus.Emit(context.Background(), domain.EventBookingCreated, domain.BookingEvent{BookingID: "b1"})

	w := do(t, r, http.MethodGet, "/stats/bus", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BusStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, eventbus.DefaultMaxListeners, resp.MaxListeners)

	counts := map[string]int{}
	for _, l := range resp.Listeners {
		counts[l.EventName] = l.ListenerCount
	}
	assert.Equal(t, 2, counts[domain.EventAppError])
	assert.Equal(t, 1, counts[domain.EventBookingCreated])

	require.Len(t, resp.Observed, 1)
	assert.Equal(t, domain.EventBookingCreated, resp.Observed[0].EventName)
	assert.Equal(t, int64(1), resp.Observed[0].Count)
}

func TestRequiredFieldsAreRejected(t *testing.T) {
	r, _, reported := newTestRouter(t)

	cases := []struct {
		path string
		body any
	}{
		{"/auth/login", map[string]string{}},
		{"/users/setIsActive", map[string]any{"is_active": true}},
		{"/bookings/cancel", map[string]string{"booking_id": ""}},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, w).Code, tc.path)
	}
	assert.Empty(t, reported.all())
}
