package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookingsvc/internal/app/dto"
	"bookingsvc/internal/domain"
	"bookingsvc/internal/eventbus"
)

func (h *Handler) writeError(c *gin.Context, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		c.JSON(de.HTTPStatus, dto.ErrorResponse{
			Error: dto.Error{
				Code:    string(de.Code),
				Message: de.Message,
			},
		})
		return
	}

	h.Log.Error("internal error", zap.Error(err))
	if h.Events != nil {
		eventbus.PublishSync(c.Request.Context(), h.Events, domain.AppErrorTopic, domain.AppError{
			Method: c.Request.Method,
			Path:   c.FullPath(),
			Err:    err.Error(),
		})
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: dto.Error{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: dto.Error{
			Code:    "BAD_REQUEST",
			Message: msg,
		},
	})
}
