package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookingsvc/internal/app/http/handler"
	"bookingsvc/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log, h.Events),
	)

	r.GET("/health", h.Health)

	r.POST("/auth/register", h.AuthRegister)
	r.POST("/auth/login", h.AuthLogin)
	r.POST("/users/setIsActive", h.UserSetIsActive)

	r.POST("/bookings/create", h.BookingCreate)
	r.POST("/bookings/cancel", h.BookingCancel)
	r.GET("/bookings/get", h.BookingGet)
	r.GET("/bookings/byUser", h.BookingListByUser)

	r.POST("/payments/pay", h.PaymentPay)
	r.GET("/payments/byBooking", h.PaymentListByBooking)

	r.GET("/stats/events", h.StatsEvents)
	r.GET("/stats/bus", h.StatsBus)

	return r
}
