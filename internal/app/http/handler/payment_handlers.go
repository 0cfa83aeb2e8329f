package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingsvc/internal/app/dto"
	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/payment"
)

func toPaymentDTO(p payment.Payment) dto.Payment {
	return dto.Payment{
		PaymentID:   p.ID,
		BookingID:   p.BookingID,
		AmountCents: p.AmountCents,
		Status:      string(p.Status),
		Reason:      p.Reason,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) PaymentPay(c *gin.Context) {
	var body struct {
		BookingID   string `json:"booking_id" binding:"required"`
		AmountCents int64  `json:"amount_cents" binding:"gt=0"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "booking_id and a positive amount_cents are required")
		return
	}

	p, b, err := h.PaymentSvc.Pay(c.Request.Context(), body.BookingID, body.AmountCents)
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) && de.Code == domain.ErrorCodePaymentDeclined {
			c.JSON(de.HTTPStatus, gin.H{
				"error":   dto.Error{Code: string(de.Code), Message: de.Message},
				"payment": toPaymentDTO(p),
			})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": toPaymentDTO(p),
		"booking": toBookingDTO(b),
	})
}

func (h *Handler) PaymentListByBooking(c *gin.Context) {
	id := c.Query("booking_id")
	if id == "" {
		h.badRequest(c, "booking_id is required")
		return
	}

	list, err := h.PaymentSvc.ListByBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.Payment, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentDTO(p))
	}

	c.JSON(http.StatusOK, gin.H{"booking_id": id, "payments": out})
}
