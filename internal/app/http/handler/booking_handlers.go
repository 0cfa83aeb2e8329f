package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookingsvc/internal/app/dto"
	"bookingsvc/internal/domain/booking"
)

func toBookingDTO(b booking.Booking) dto.Booking {
	return dto.Booking{
		BookingID:   b.ID,
		UserID:      b.UserID,
		Resource:    b.Resource,
		StartsAt:    b.StartsAt,
		PriceCents:  b.PriceCents,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
}

func (h *Handler) BookingCreate(c *gin.Context) {
	var body struct {
		UserID     string    `json:"user_id" binding:"required"`
		Resource   string    `json:"resource" binding:"required"`
		StartsAt   time.Time `json:"starts_at" binding:"required"`
		PriceCents int64     `json:"price_cents" binding:"gt=0"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "user_id, resource, starts_at and a positive price_cents are required")
		return
	}

	b, err := h.BookingSvc.Create(c.Request.Context(), body.UserID, body.Resource, body.StartsAt, body.PriceCents)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": toBookingDTO(b)})
}

func (h *Handler) BookingCancel(c *gin.Context) {
	var body struct {
		BookingID string `json:"booking_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "booking_id is required")
		return
	}

	b, err := h.BookingSvc.Cancel(c.Request.Context(), body.BookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": toBookingDTO(b)})
}

func (h *Handler) BookingGet(c *gin.Context) {
	id := c.Query("booking_id")
	if id == "" {
		h.badRequest(c, "booking_id is required")
		return
	}

	b, err := h.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": toBookingDTO(b)})
}

func (h *Handler) BookingListByUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		h.badRequest(c, "user_id is required")
		return
	}

	list, err := h.BookingSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		UserID   string        `json:"user_id"`
		Bookings []dto.Booking `json:"bookings"`
	}{
		UserID:   userID,
		Bookings: make([]dto.Booking, 0, len(list)),
	}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, toBookingDTO(b))
	}

	c.JSON(http.StatusOK, resp)
}
